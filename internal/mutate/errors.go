package mutate

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAction = errors.New("invalid quick edit action")

// ValidationError reports the first missing field of a ticket draft. Message is the
// text shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// DuplicateAttachmentsError lists every file of a batch whose name was already attached.
// The rest of the batch is still accepted.
type DuplicateAttachmentsError struct {
	Names []string
}

func (e *DuplicateAttachmentsError) Error() string {
	var b strings.Builder
	b.WriteString("The following files are already uploaded:")
	for _, n := range e.Names {
		fmt.Fprintf(&b, "\n-\t%s", n)
	}
	return b.String()
}
