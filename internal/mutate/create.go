package mutate

import (
	"strings"

	"ticketdesk/internal/model"
	"ticketdesk/internal/statusutil"
	"ticketdesk/internal/store"
)

// Draft is the content of the new-ticket form.
type Draft struct {
	Title       string
	Category    string
	Description string
	Files       []model.Attachment
}

// ValidateDraft checks title, category and description in that order and reports the
// first one missing.
func ValidateDraft(d Draft) (model.Category, error) {
	if strings.TrimSpace(d.Title) == "" {
		return "", ValidationError{Field: "title", Message: "Please enter a title"}
	}
	cat, err := statusutil.NormalizeCategory(d.Category)
	if err != nil || cat == model.CategoryNone {
		return "", ValidationError{Field: "category", Message: "Please choose a category"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return "", ValidationError{Field: "description", Message: "Please write a short description"}
	}
	return cat, nil
}

// CreateTicket validates d and appends a new Open, unassigned ticket dated today.
// Nothing is added when validation fails.
func CreateTicket(st *store.Store, d Draft) (model.Ticket, error) {
	cat, err := ValidateDraft(d)
	if err != nil {
		return model.Ticket{}, err
	}
	today := st.Today()
	t := model.Ticket{
		ID:          st.NextTicketID(),
		Title:       strings.TrimSpace(d.Title),
		Status:      model.StatusOpen,
		Category:    cat,
		Description: strings.TrimSpace(d.Description),
		Files:       append([]model.Attachment{}, d.Files...),
		CreatedAt:   today,
		UpdatedAt:   today,
	}
	if err := st.AddTicket(t); err != nil {
		return model.Ticket{}, err
	}
	return t, nil
}
