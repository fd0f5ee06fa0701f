package store

import (
	"fmt"

	"ticketdesk/internal/filter"
)

const ticketIDPrefix = "TKT"

// NextTicketID returns the ID the creation form assigns: the numeric suffix of the last
// canonical ticket plus one, as TKT-<n> zero-padded to three digits ("TKT-007" -> "TKT-008").
// IDs already used by the canonical list or held by the undo snapshot are skipped, so an
// undo can never resurrect a ticket whose ID was reused.
func (s *Store) NextTicketID() string {
	n := 0
	if len(s.tickets) > 0 {
		if _, last, ok := filter.SplitID(s.tickets[len(s.tickets)-1].ID); ok {
			n = last
		} else {
			n = s.maxIDSuffix()
		}
	}
	for {
		n++
		id := formatTicketID(n)
		if !s.idTaken(id) {
			return id
		}
	}
}

func formatTicketID(n int) string {
	return fmt.Sprintf("%s-%03d", ticketIDPrefix, n)
}

func (s *Store) maxIDSuffix() int {
	max := 0
	for _, t := range s.tickets {
		if _, n, ok := filter.SplitID(t.ID); ok && n > max {
			max = n
		}
	}
	return max
}

func (s *Store) idTaken(id string) bool {
	if s.indexOf(id) >= 0 {
		return true
	}
	for _, t := range s.snapshot {
		if t.ID == id {
			return true
		}
	}
	return false
}
