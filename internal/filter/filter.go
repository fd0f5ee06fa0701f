// Package filter derives the displayed ticket list from the canonical list and the
// active filter criteria. Everything here is pure: inputs are never mutated and the
// same inputs always produce the same output.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"ticketdesk/internal/model"
	"ticketdesk/internal/statusutil"
)

type Axis string

const (
	AxisStatus     Axis = "status"
	AxisCategory   Axis = "category"
	AxisYear       Axis = "year"
	AxisMonth      Axis = "month"
	AxisAssignment Axis = "assignment"
)

// Axes lists every axis in the order the filter panel shows them.
var Axes = []Axis{AxisStatus, AxisCategory, AxisYear, AxisMonth, AxisAssignment}

// Unassigned is the assignment value that matches tickets without an assignee.
const Unassigned = "Unassigned"

var ErrUnknownAxis = errors.New("unknown filter axis")

func ParseAxis(s string) (Axis, error) {
	k := Axis(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range Axes {
		if a == k {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// Criteria holds one value per axis. model.None means "no constraint".
// Month is stored in its zero-padded numeric form ("01".."12").
type Criteria struct {
	Status     string `json:"status"`
	Category   string `json:"category"`
	Year       string `json:"year"`
	Month      string `json:"month"`
	Assignment string `json:"assignment"`
}

func NewCriteria() Criteria {
	return Criteria{
		Status:     model.None,
		Category:   model.None,
		Year:       model.None,
		Month:      model.None,
		Assignment: model.None,
	}
}

// Set updates one axis. Empty values reset the axis to model.None. Month values are
// month names (or 1..12) and are converted to "01".."12"; an unknown month name
// clears the axis rather than failing.
func (c *Criteria) Set(axis Axis, value string) error {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, model.None) {
		v = model.None
	}
	switch axis {
	case AxisStatus:
		if v != model.None {
			if s, err := statusutil.Normalize(v); err == nil && s != "" {
				v = string(s)
			}
		}
		c.Status = v
	case AxisCategory:
		if v != model.None {
			if cat, err := statusutil.NormalizeCategory(v); err == nil {
				v = string(cat)
			}
		}
		c.Category = v
	case AxisYear:
		c.Year = v
	case AxisMonth:
		if v != model.None {
			idx, ok := MonthIndex(v)
			if !ok {
				idx = model.None
			}
			v = idx
		}
		c.Month = v
	case AxisAssignment:
		c.Assignment = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAxis, axis)
	}
	return nil
}

func (c Criteria) Get(axis Axis) string {
	switch axis {
	case AxisStatus:
		return c.Status
	case AxisCategory:
		return c.Category
	case AxisYear:
		return c.Year
	case AxisMonth:
		return c.Month
	case AxisAssignment:
		return c.Assignment
	default:
		return model.None
	}
}

func (c *Criteria) Reset() {
	*c = NewCriteria()
}

// Active returns the constraint values of every axis that is not model.None.
func (c Criteria) Active() []string {
	var out []string
	for _, v := range []string{c.Status, c.Category, c.Year, c.Month, c.Assignment} {
		if v == "" || v == model.None {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (c Criteria) IsZero() bool {
	return len(c.Active()) == 0
}

// Apply returns the tickets of canonical that match every active constraint.
// With no active constraint it returns a copy of canonical in canonical order.
func Apply(canonical []model.Ticket, c Criteria) []model.Ticket {
	constraints := c.Active()
	out := make([]model.Ticket, 0, len(canonical))
	for _, t := range canonical {
		if len(constraints) > 0 && !MatchesAll(t, constraints) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

func MatchesAll(t model.Ticket, constraints []string) bool {
	for _, v := range constraints {
		if !Matches(t, v) {
			return false
		}
	}
	return true
}

// Matches reports whether v equals one of the ticket's field values, or the year or
// zero-padded month of its creation date.
func Matches(t model.Ticket, v string) bool {
	if v == "" {
		return false
	}
	fields := []string{
		t.ID,
		t.Title,
		string(t.Status),
		string(t.Category),
		t.Description,
		t.CreatedAt,
		t.UpdatedAt,
	}
	for _, f := range fields {
		if f == v {
			return true
		}
	}
	if t.AssignedTo == nil {
		if v == Unassigned {
			return true
		}
	} else if v == t.AssignedTo.ID || v == t.AssignedTo.Name || v == string(t.AssignedTo.Role) {
		return true
	}
	year, month := dateParts(t.CreatedAt)
	return (year != "" && v == year) || (month != "" && v == month)
}

func dateParts(date string) (year, month string) {
	parts := strings.SplitN(strings.TrimSpace(date), "-", 3)
	if len(parts) > 0 {
		year = parts[0]
	}
	if len(parts) > 1 {
		month = parts[1]
	}
	return year, month
}
