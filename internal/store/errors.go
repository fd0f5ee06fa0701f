package store

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID  = errors.New("duplicate ticket id")
	ErrMissingID    = errors.New("missing ticket id")
	ErrEmptyMessage = errors.New("message is empty")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
