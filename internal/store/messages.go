package store

import (
	"strings"
	"time"

	"ticketdesk/internal/model"

	"github.com/google/uuid"
)

// Messages returns the chat thread of a ticket, oldest first.
func (s *Store) Messages(ticketID string) []model.Message {
	msgs := s.messages[strings.TrimSpace(ticketID)]
	return append([]model.Message(nil), msgs...)
}

// PostMessage appends a message to a ticket's chat thread.
func (s *Store) PostMessage(ticketID string, source model.MessageSource, body string) (model.Message, error) {
	ticketID = strings.TrimSpace(ticketID)
	body = strings.TrimSpace(body)
	if body == "" {
		return model.Message{}, ErrEmptyMessage
	}
	if s.indexOf(ticketID) < 0 {
		return model.Message{}, NotFoundError{Kind: "ticket", ID: ticketID}
	}
	if source == "" {
		source = model.SourceYou
	}
	msg := model.Message{
		ID:       uuid.NewString(),
		TicketID: ticketID,
		Source:   source,
		Date:     s.now().UTC().Format(time.RFC3339),
		Body:     body,
	}
	s.messages[ticketID] = append(s.messages[ticketID], msg)
	s.log.Debug().Str("op", "message").Str("id", ticketID).Str("source", string(source)).Msg("chat message posted")
	return msg, nil
}
