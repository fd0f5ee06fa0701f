package filter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"ticketdesk/internal/model"
)

type SortKey string

const (
	SortByID       SortKey = "id"
	SortByTitle    SortKey = "title"
	SortByStatus   SortKey = "status"
	SortByCategory SortKey = "category"
	SortByCreated  SortKey = "created"
	SortByUpdated  SortKey = "updated"
	SortByAssignee SortKey = "assignee"
)

// SortKeys is the cycle order used by the table's sort toggle.
var SortKeys = []SortKey{SortByID, SortByTitle, SortByStatus, SortByCategory, SortByCreated, SortByUpdated, SortByAssignee}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortByID, nil
	}
	for _, v := range SortKeys {
		if v == k {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid sort key: %q", s)
}

func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// Sort orders tickets in place. Ties break by ID so the order is deterministic.
func Sort(tickets []model.Ticket, key SortKey, desc bool) {
	slices.SortStableFunc(tickets, func(a, b model.Ticket) int {
		c := compareBy(a, b, key)
		if c == 0 && key != SortByID {
			c = CompareIDs(a.ID, b.ID)
		}
		if desc {
			return -c
		}
		return c
	})
}

func compareBy(a, b model.Ticket, key SortKey) int {
	switch key {
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByStatus:
		return statusRank(a.Status) - statusRank(b.Status)
	case SortByCategory:
		return strings.Compare(string(a.Category), string(b.Category))
	case SortByCreated:
		// YYYY-MM-DD compares chronologically as a string.
		return strings.Compare(a.CreatedAt, b.CreatedAt)
	case SortByUpdated:
		return strings.Compare(a.UpdatedAt, b.UpdatedAt)
	case SortByAssignee:
		return strings.Compare(strings.ToLower(a.AssigneeName()), strings.ToLower(b.AssigneeName()))
	default:
		return CompareIDs(a.ID, b.ID)
	}
}

func statusRank(s model.Status) int {
	if i := slices.Index(model.Statuses, s); i >= 0 {
		return i
	}
	return len(model.Statuses)
}

// CompareIDs orders ticket IDs by prefix, then numerically by suffix, so "T-9" sorts
// before "T-10". IDs without a numeric suffix fall back to plain string order.
func CompareIDs(a, b string) int {
	pa, na, oka := SplitID(a)
	pb, nb, okb := SplitID(b)
	if !oka || !okb {
		return strings.Compare(a, b)
	}
	if c := strings.Compare(pa, pb); c != 0 {
		return c
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SplitID splits "TKT-007" into ("TKT", 7, true).
func SplitID(id string) (prefix string, n int, ok bool) {
	id = strings.TrimSpace(id)
	i := strings.LastIndex(id, "-")
	if i < 0 || i == len(id)-1 {
		return "", 0, false
	}
	v, err := strconv.Atoi(id[i+1:])
	if err != nil || v < 0 {
		return "", 0, false
	}
	return id[:i], v, true
}
