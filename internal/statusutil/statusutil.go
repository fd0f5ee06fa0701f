package statusutil

import (
	"errors"
	"fmt"
	"strings"

	"ticketdesk/internal/model"
)

var ErrInvalidStatus = errors.New("invalid status")
var ErrInvalidCategory = errors.New("invalid category")

// Normalize maps user input onto a ticket status. Matching is case-insensitive and
// accepts the snake/kebab spellings used by the API ("in_progress", "in-progress").
// "none" (and empty) normalizes to "" so callers can treat it as "no status".
func Normalize(s string) (model.Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	switch key {
	case "", "none":
		return "", nil
	case "open":
		return model.StatusOpen, nil
	case "in progress", "inprogress":
		return model.StatusInProgress, nil
	case "resolved":
		return model.StatusResolved, nil
	case "closed":
		return model.StatusClosed, nil
	default:
		return "", fmt.Errorf("%w: %q (expected open|in progress|resolved|closed)", ErrInvalidStatus, strings.TrimSpace(s))
	}
}

func NormalizeCategory(s string) (model.Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" || key == "none" {
		return model.CategoryNone, nil
	}
	for _, c := range model.Categories {
		if strings.ToLower(string(c)) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, strings.TrimSpace(s))
}

// IsEndState reports whether no further work is expected on a ticket in this status.
func IsEndState(s model.Status) bool {
	return s == model.StatusResolved || s == model.StatusClosed
}
