package model

// None is the "no constraint / no selection" sentinel used by filter axes and form fields.
const None = "None"

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

// Statuses lists every status in display order (dashboard cards, filter options).
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

type Category string

const (
	CategoryHardware Category = "Hardware"
	CategorySoftware Category = "Software"
	CategoryAccess   Category = "Access"
	CategoryNetwork  Category = "Network"
	CategorySupport  Category = "Support"
	CategoryNone     Category = None
)

var Categories = []Category{CategoryHardware, CategorySoftware, CategoryAccess, CategoryNetwork, CategorySupport}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleClient  Role = "client"
	RoleSupport Role = "support"
	RoleAdmin   Role = "admin"
)

type Assignee struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Role      Role   `json:"role" yaml:"role"`
	ImagePath string `json:"imagePath,omitempty" yaml:"imagePath,omitempty"`
}

type Attachment struct {
	Name       string `json:"name" yaml:"name"`
	Size       int64  `json:"size" yaml:"size"`
	Type       string `json:"type" yaml:"type"`
	UploadedAt string `json:"uploadedAt,omitempty" yaml:"uploadedAt,omitempty"`
}

type Ticket struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Status      Status       `json:"status" yaml:"status"`
	Category    Category     `json:"category" yaml:"category"`
	Description string       `json:"description" yaml:"description"`
	Files       []Attachment `json:"files" yaml:"files,omitempty"`

	// Dates are YYYY-MM-DD.
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`

	AssignedTo *Assignee `json:"assignedTo" yaml:"assignedTo,omitempty"`
}

// Clone returns a deep copy so snapshots and views never alias the canonical list.
func (t Ticket) Clone() Ticket {
	out := t
	if t.Files != nil {
		out.Files = append([]Attachment(nil), t.Files...)
	}
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		out.AssignedTo = &a
	}
	return out
}

func (t Ticket) AssigneeName() string {
	if t.AssignedTo == nil {
		return ""
	}
	return t.AssignedTo.Name
}

func CloneTickets(ts []Ticket) []Ticket {
	if ts == nil {
		return nil
	}
	out := make([]Ticket, len(ts))
	for i := range ts {
		out[i] = ts[i].Clone()
	}
	return out
}

type MessageSource string

const (
	SourceYou   MessageSource = "you"
	SourceOther MessageSource = "other"
)

type Message struct {
	ID       string        `json:"id" yaml:"id,omitempty"`
	TicketID string        `json:"ticketId" yaml:"ticketId"`
	Source   MessageSource `json:"source" yaml:"source"`
	Date     string        `json:"date" yaml:"date"`
	Body     string        `json:"body" yaml:"body"`
}

type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}
