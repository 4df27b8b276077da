package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// document is the backend-neutral form of a stored record: the raw JSON handed
// back to callers plus the decoded top-level fields used for filtering.
type document struct {
	raw    []byte
	fields map[string]any
}

// encodeDocument serialises doc and checks that it is a JSON object.
func encodeDocument(doc any) (document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return document{}, fmt.Errorf("encode document: %w", err)
	}
	return decodeDocument(raw)
}

// decodeDocument parses raw JSON read back from a backend.
func decodeDocument(raw []byte) (document, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return document{}, ErrNotObject
	}
	return document{raw: raw, fields: fields}, nil
}

// normalizeFilter round-trips the filter through JSON so that its values compare
// equal to the values decoded from stored documents (e.g. int vs float64).
func normalizeFilter(filter Filter) (map[string]any, error) {
	if len(filter) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode filter: %w", err)
	}
	return out, nil
}

// matches reports whether every filter field equals the document field.
// A nil filter value also matches a missing field.
func (d document) matches(filter map[string]any) bool {
	for key, want := range filter {
		got, ok := d.fields[key]
		if !ok {
			if want == nil {
				continue
			}
			return false
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// uniqueValue returns the JSON text of field, or false when the document lacks it.
func (d document) uniqueValue(field string) (string, bool) {
	v, ok := d.fields[field]
	if !ok || v == nil {
		return "", false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// decodeInto unmarshals a single document into out.
func decodeInto(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// decodeAll unmarshals documents into out, a pointer to a slice.
func decodeAll(raws [][]byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("decode documents: out must be a non-nil pointer to a slice, got %T", out)
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, raw := range raws {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')
	if err := json.Unmarshal(buf.Bytes(), out); err != nil {
		return fmt.Errorf("decode documents: %w", err)
	}
	return nil
}
