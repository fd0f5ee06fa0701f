package store

import (
	"fmt"
	"slices"
	"strings"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"
	"ticketdesk/internal/statusutil"
)

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// takeSnapshot replaces the undo snapshot with copies of the canonical tickets in set.
func (s *Store) takeSnapshot(set map[string]struct{}) {
	snap := []model.Ticket{}
	for _, t := range s.tickets {
		if _, ok := set[t.ID]; ok {
			snap = append(snap, t.Clone())
		}
	}
	s.snapshot = snap
}

// UpdateStatus sets status on every ticket whose ID is in ids and returns how many
// tickets were affected. Empty ids or the None sentinel make it a no-op; the snapshot
// is left untouched in that case.
func (s *Store) UpdateStatus(ids []string, status model.Status) (int, error) {
	set := idSet(ids)
	if len(set) == 0 || status == "" || string(status) == model.None {
		return 0, nil
	}
	if !status.Valid() {
		return 0, fmt.Errorf("update status: %w: %q", statusutil.ErrInvalidStatus, status)
	}

	s.takeSnapshot(set)
	today := s.Today()
	n := 0
	for i := range s.tickets {
		t := &s.tickets[i]
		if _, ok := set[t.ID]; !ok {
			continue
		}
		n++
		if t.Status == status {
			continue
		}
		t.Status = status
		if s.touchUpdatedAt {
			t.UpdatedAt = today
		}
	}
	s.afterBulk()
	s.log.Debug().Str("op", "update_status").Str("status", string(status)).Strs("ids", sortedIDs(set)).Int("count", n).Msg("bulk edit")
	return n, nil
}

// DeleteTickets removes every ticket whose ID is in ids and returns how many were
// removed. Deleted IDs also leave the selection.
func (s *Store) DeleteTickets(ids []string) int {
	set := idSet(ids)
	if len(set) == 0 {
		return 0
	}

	s.takeSnapshot(set)
	kept := make([]model.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		if _, ok := set[t.ID]; ok {
			continue
		}
		kept = append(kept, t)
	}
	n := len(s.tickets) - len(kept)
	s.tickets = kept
	for id := range set {
		delete(s.selected, id)
	}
	s.afterBulk()
	s.log.Debug().Str("op", "delete").Strs("ids", sortedIDs(set)).Int("count", n).Msg("bulk edit")
	return n
}

// Undo restores the tickets captured by the last bulk edit: deleted ones are
// re-inserted, edited ones are overwritten with their previous value. The canonical
// list is then sorted by ID. The snapshot is consumed, so a second Undo returns 0.
func (s *Store) Undo() int {
	snap := s.snapshot
	s.snapshot = nil
	if len(snap) == 0 {
		return 0
	}
	for _, prev := range snap {
		if i := s.indexOf(prev.ID); i >= 0 {
			s.tickets[i] = prev
		} else {
			s.tickets = append(s.tickets, prev)
		}
	}
	slices.SortStableFunc(s.tickets, func(a, b model.Ticket) int {
		return filter.CompareIDs(a.ID, b.ID)
	})
	s.derive()
	s.log.Debug().Str("op", "undo").Int("count", len(snap)).Msg("bulk edit undone")
	return len(snap)
}

func (s *Store) HasSnapshot() bool {
	return len(s.snapshot) > 0
}

// SnapshotIDs lists the IDs an Undo would restore.
func (s *Store) SnapshotIDs() []string {
	out := make([]string, 0, len(s.snapshot))
	for _, t := range s.snapshot {
		out = append(out, t.ID)
	}
	return out
}

func (s *Store) afterBulk() {
	if s.clearSelectionAfterBulk {
		clear(s.selected)
	}
	s.derive()
}

func sortedIDs(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.SortFunc(out, filter.CompareIDs)
	return out
}
