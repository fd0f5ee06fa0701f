package store

import (
	"slices"
	"strings"

	"ticketdesk/internal/filter"
)

// ToggleSelection flips id's membership in the selection and returns the new state.
// IDs that are not in the canonical list are ignored.
func (s *Store) ToggleSelection(id string) bool {
	id = strings.TrimSpace(id)
	if s.indexOf(id) < 0 {
		return false
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

// ToggleSelectAll clears the selection when it already equals the displayed IDs, and
// otherwise replaces it with exactly the displayed IDs. Tickets hidden by the current
// filter are never selected by it.
func (s *Store) ToggleSelectAll() {
	if s.AllDisplayedSelected() || (len(s.displayed) == 0 && len(s.selected) == 0) {
		clear(s.selected)
		return
	}
	clear(s.selected)
	for _, t := range s.displayed {
		s.selected[t.ID] = struct{}{}
	}
}

// AllDisplayedSelected reports whether the selection equals the displayed ID set.
func (s *Store) AllDisplayedSelected() bool {
	if len(s.selected) != len(s.displayed) || len(s.displayed) == 0 {
		return false
	}
	for _, t := range s.displayed {
		if _, ok := s.selected[t.ID]; !ok {
			return false
		}
	}
	return true
}

func (s *Store) ClearSelection() {
	clear(s.selected)
}

func (s *Store) IsSelected(id string) bool {
	_, ok := s.selected[strings.TrimSpace(id)]
	return ok
}

func (s *Store) SelectionCount() int {
	return len(s.selected)
}

// Selection returns the selected IDs in ID order.
func (s *Store) Selection() []string {
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	slices.SortFunc(out, filter.CompareIDs)
	return out
}
