package store

import (
	"fmt"
	"strings"
	"time"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"

	"github.com/rs/zerolog"
)

// Store owns the canonical ticket list and everything derived from it: the displayed
// (filtered) list, the filter criteria, the bulk-edit selection, the one-level undo
// snapshot and the per-ticket chat threads.
//
// Store is not safe for concurrent use. Every mutation re-derives the displayed list
// before returning, so readers never observe a stale view.
type Store struct {
	tickets   []model.Ticket
	displayed []model.Ticket
	criteria  filter.Criteria
	selected  map[string]struct{}

	// snapshot holds the pre-mutation copies of the tickets touched by the last bulk
	// edit. nil means there is nothing to undo.
	snapshot []model.Ticket

	messages map[string][]model.Message

	now                     func() time.Time
	log                     zerolog.Logger
	touchUpdatedAt          bool
	clearSelectionAfterBulk bool
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithTouchUpdatedAt refreshes UpdatedAt on tickets whose status changes.
func WithTouchUpdatedAt(on bool) Option {
	return func(s *Store) { s.touchUpdatedAt = on }
}

// WithClearSelectionAfterBulk empties the selection after a bulk status change or delete.
func WithClearSelectionAfterBulk(on bool) Option {
	return func(s *Store) { s.clearSelectionAfterBulk = on }
}

// WithMessages seeds chat threads. Messages for unknown tickets are kept; they show up
// if a ticket with that ID appears later.
func WithMessages(msgs []model.Message) Option {
	return func(s *Store) {
		for _, m := range msgs {
			id := strings.TrimSpace(m.TicketID)
			if id == "" {
				continue
			}
			s.messages[id] = append(s.messages[id], m)
		}
	}
}

func New(tickets []model.Ticket, opts ...Option) *Store {
	s := &Store{
		tickets:  model.CloneTickets(tickets),
		criteria: filter.NewCriteria(),
		selected: map[string]struct{}{},
		messages: map[string][]model.Message{},
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	if s.tickets == nil {
		s.tickets = []model.Ticket{}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.derive()
	return s
}

// derive recomputes the displayed list. Called by every mutation before it returns.
func (s *Store) derive() {
	s.displayed = filter.Apply(s.tickets, s.criteria)
}

func (s *Store) Now() time.Time {
	return s.now()
}

// Today is the current date in the YYYY-MM-DD form tickets use.
func (s *Store) Today() string {
	return s.now().Format("2006-01-02")
}

func (s *Store) Len() int {
	return len(s.tickets)
}

// Tickets returns a copy of the canonical list.
func (s *Store) Tickets() []model.Ticket {
	return model.CloneTickets(s.tickets)
}

// Displayed returns a copy of the filtered list, in canonical order.
func (s *Store) Displayed() []model.Ticket {
	return model.CloneTickets(s.displayed)
}

func (s *Store) Find(id string) (model.Ticket, bool) {
	if i := s.indexOf(strings.TrimSpace(id)); i >= 0 {
		return s.tickets[i].Clone(), true
	}
	return model.Ticket{}, false
}

func (s *Store) indexOf(id string) int {
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTicket appends t to the canonical list. Field validation is the caller's job
// (see mutate.CreateTicket); the store only guarantees ID uniqueness.
func (s *Store) AddTicket(t model.Ticket) error {
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		return fmt.Errorf("add ticket: %w", ErrMissingID)
	}
	if s.indexOf(t.ID) >= 0 {
		return fmt.Errorf("add ticket %s: %w", t.ID, ErrDuplicateID)
	}
	s.tickets = append(s.tickets, t.Clone())
	s.derive()
	s.log.Debug().Str("op", "add").Str("id", t.ID).Msg("ticket added")
	return nil
}

// Summary counts canonical tickets per status, one entry per status in display order.
func (s *Store) Summary() []model.StatusCount {
	counts := map[model.Status]int{}
	for _, t := range s.tickets {
		counts[t.Status]++
	}
	out := make([]model.StatusCount, 0, len(model.Statuses))
	for _, st := range model.Statuses {
		out = append(out, model.StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

func (s *Store) Criteria() filter.Criteria {
	return s.criteria
}

func (s *Store) SetFilter(axis filter.Axis, value string) error {
	if err := s.criteria.Set(axis, value); err != nil {
		return err
	}
	s.derive()
	return nil
}

// ResetFilters clears every axis; the displayed list reverts to the canonical list.
func (s *Store) ResetFilters() {
	s.criteria.Reset()
	s.derive()
}
