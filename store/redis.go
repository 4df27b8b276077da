package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection as a Redis list of JSON documents under
// `<prefix>:<collection>`; unique indexes are claimed with SETNX on
// `<prefix>:<collection>:unique:<field>:<value>` before the document is appended.
// Filtering happens client-side, which is fine for the portal's collection sizes.
type RedisStore struct {
	client *redis.Client
	prefix string
	unique map[string][]string
}

// NewRedisStore builds a Redis-backed store.
func NewRedisStore(addr, password string, db int, prefix string, indexes ...Index) *RedisStore {
	return NewRedisStoreFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), prefix, indexes...)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string, indexes ...Index) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "deptaihub"
	}
	return &RedisStore{client: client, prefix: prefix, unique: indexFields(indexes)}
}

// Collection returns a handle on the named collection.
func (s *RedisStore) Collection(name string) Collection {
	return &redisCollection{
		client: s.client,
		name:   name,
		key:    s.prefix + ":" + name,
		unique: s.unique[name],
	}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

type redisCollection struct {
	client *redis.Client
	name   string
	key    string
	unique []string
}

// load reads and decodes the whole list.
func (c *redisCollection) load(ctx context.Context) ([]document, error) {
	vals, err := c.client.LRange(ctx, c.key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	docs := make([]document, 0, len(vals))
	for _, val := range vals {
		doc, err := decodeDocument([]byte(val))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", c.name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *redisCollection) FindOne(ctx context.Context, filter Filter, out any) (bool, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return false, err
	}
	docs, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	for _, doc := range docs {
		if doc.matches(want) {
			return true, decodeInto(doc.raw, out)
		}
	}
	return false, nil
}

func (c *redisCollection) Find(ctx context.Context, filter Filter, out any) error {
	want, err := normalizeFilter(filter)
	if err != nil {
		return err
	}
	docs, err := c.load(ctx)
	if err != nil {
		return err
	}
	raws := make([][]byte, 0, len(docs))
	for _, doc := range docs {
		if doc.matches(want) {
			raws = append(raws, doc.raw)
		}
	}
	return decodeAll(raws, out)
}

func (c *redisCollection) InsertOne(ctx context.Context, doc any) error {
	encoded, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	claimed := make([]string, 0, len(c.unique))
	release := func() {
		if len(claimed) > 0 {
			_ = c.client.Del(ctx, claimed...).Err()
		}
	}
	for _, field := range c.unique {
		value, ok := encoded.uniqueValue(field)
		if !ok {
			continue
		}
		lockKey := c.key + ":unique:" + field + ":" + value
		ok, err := c.client.SetNX(ctx, lockKey, 1, 0).Result()
		if err != nil {
			release()
			return fmt.Errorf("claim %s.%s: %w", c.name, field, err)
		}
		if !ok {
			release()
			return fmt.Errorf("%s.%s=%s: %w", c.name, field, value, ErrDuplicate)
		}
		claimed = append(claimed, lockKey)
	}

	if err := c.client.RPush(ctx, c.key, encoded.raw).Err(); err != nil {
		release()
		return fmt.Errorf("insert into %s: %w", c.name, err)
	}
	return nil
}

func (c *redisCollection) Count(ctx context.Context, filter Filter) (int, error) {
	want, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}
	if want == nil {
		n, err := c.client.LLen(ctx, c.key).Result()
		if err != nil {
			return 0, fmt.Errorf("count %s: %w", c.name, err)
		}
		return int(n), nil
	}
	docs, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, doc := range docs {
		if doc.matches(want) {
			n++
		}
	}
	return n, nil
}
