// Package records holds the portal's content records (notices, events,
// timetable entries, resources and faculty) and the handlers that list and
// create them.
package records

import (
	"github.com/user/deptaihub-go/store"
	"github.com/user/deptaihub-go/visibility"
)

// Record is implemented by every content record type.
type Record interface {
	// Kind names the record type.
	Kind() visibility.Kind
	// SetID overwrites the record id.
	SetID(id string)
	// NaturalKey identifies the record among seeded content, so seeding twice inserts nothing new.
	NaturalKey() store.Filter
}

// Notice is a department announcement.
type Notice struct {
	ID          string  `json:"id" yaml:"-"`
	Title       string  `json:"title" yaml:"title" validate:"required" example:"Mid-Term Examinations Schedule"`
	Description string  `json:"description" yaml:"description" validate:"required"`
	Category    string  `json:"category" yaml:"category" validate:"required" example:"Exams"`
	Date        string  `json:"date" yaml:"date" validate:"required" example:"2024-03-01"`
	PDFURL      *string `json:"pdf_url" yaml:"pdf_url,omitempty"`
}

func (*Notice) Kind() visibility.Kind { return visibility.KindNotice }
func (n *Notice) SetID(id string) { n.ID = id }
func (n *Notice) NaturalKey() store.Filter { return store.Filter{"title": n.Title} }

// Event is a department event.
type Event struct {
	ID          string  `json:"id" yaml:"-"`
	Title       string  `json:"title" yaml:"title" validate:"required" example:"AI Tech Fest 2024"`
	Description string  `json:"description" yaml:"description" validate:"required"`
	Date        string  `json:"date" yaml:"date" validate:"required" example:"2024-03-25"`
	Location    string  `json:"location" yaml:"location" validate:"required" example:"AI Department Auditorium"`
	RSVPLink    *string `json:"rsvp_link" yaml:"rsvp_link,omitempty"`
}

func (*Event) Kind() visibility.Kind { return visibility.KindEvent }
func (e *Event) SetID(id string) { e.ID = id }
func (e *Event) NaturalKey() store.Filter { return store.Filter{"title": e.Title} }

// TimetableEntry is one class slot of a semester and section.
type TimetableEntry struct {
	ID       string `json:"id" yaml:"-"`
	Day      string `json:"day" yaml:"day" validate:"required" example:"Monday"`
	Time     string `json:"time" yaml:"time" validate:"required" example:"09:00-10:00"`
	Subject  string `json:"subject" yaml:"subject" validate:"required" example:"Machine Learning"`
	Faculty  string `json:"faculty" yaml:"faculty" validate:"required" example:"Dr. Smith"`
	Semester string `json:"semester" yaml:"semester" validate:"required" example:"3"`
	Section  string `json:"section" yaml:"section" validate:"required" example:"A"`
}

func (*TimetableEntry) Kind() visibility.Kind { return visibility.KindTimetable }
func (t *TimetableEntry) SetID(id string) { t.ID = id }
func (t *TimetableEntry) NaturalKey() store.Filter {
	return store.Filter{"day": t.Day, "time": t.Time, "semester": t.Semester, "section": t.Section}
}

// Resource is study material for a semester.
// UploadedBy and UploadDate default to the uploading admin and the current date.
type Resource struct {
	ID         string `json:"id" yaml:"-"`
	Title      string `json:"title" yaml:"title" validate:"required" example:"Neural Networks Lecture Notes"`
	Subject    string `json:"subject" yaml:"subject" validate:"required" example:"Neural Networks"`
	Semester   string `json:"semester" yaml:"semester" validate:"required" example:"3"`
	FileURL    string `json:"file_url" yaml:"file_url" validate:"required" example:"https://example.com/notes.pdf"`
	UploadedBy string `json:"uploaded_by" yaml:"uploaded_by" example:"Department Admin"`
	UploadDate string `json:"upload_date" yaml:"upload_date" example:"2024-03-01"`
}

func (*Resource) Kind() visibility.Kind { return visibility.KindResource }
func (r *Resource) SetID(id string) { r.ID = id }
func (r *Resource) NaturalKey() store.Filter {
	return store.Filter{"title": r.Title, "semester": r.Semester}
}

// Faculty is a member of the department's staff.
type Faculty struct {
	ID          string  `json:"id" yaml:"-"`
	Name        string  `json:"name" yaml:"name" validate:"required" example:"Dr. Sarah Smith"`
	Designation string  `json:"designation" yaml:"designation" validate:"required" example:"Professor & Head of Department"`
	Email       string  `json:"email" yaml:"email" validate:"required,email" example:"sarah.smith@pbrvits.edu.in"`
	PhotoURL    *string `json:"photo_url" yaml:"photo_url,omitempty"`
	LinkedIn    *string `json:"linkedin" yaml:"linkedin,omitempty"`
}

func (*Faculty) Kind() visibility.Kind { return visibility.KindFaculty }
func (f *Faculty) SetID(id string) { f.ID = id }
func (f *Faculty) NaturalKey() store.Filter { return store.Filter{"email": f.Email} }

// CreatedResponse is returned by every create endpoint.
type CreatedResponse struct {
	Message string `json:"message" example:"Notice created successfully"`
	ID      string `json:"id" example:"3f1c1f7e-9a43-4b8e-8a57-2d4f8f1f2b6a"`
}
