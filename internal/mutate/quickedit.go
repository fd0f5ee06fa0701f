package mutate

import (
	"fmt"
	"strings"

	"ticketdesk/internal/model"
	"ticketdesk/internal/store"
)

// QuickEditAction is one of the status transitions offered to the selection.
type QuickEditAction string

const (
	ActionNone   QuickEditAction = model.None
	ActionReopen QuickEditAction = "Re-open"
	ActionClose  QuickEditAction = "Close"
)

// Actions lists the selectable actions in menu order.
var Actions = []QuickEditAction{ActionNone, ActionReopen, ActionClose}

func ParseAction(s string) (QuickEditAction, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "", "_", "", " ", "").Replace(v)
	switch v {
	case "", "none":
		return ActionNone, nil
	case "reopen", "open":
		return ActionReopen, nil
	case "close", "closed":
		return ActionClose, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Status is the target status of the action; ok is false for None.
func (a QuickEditAction) Status() (model.Status, bool) {
	switch a {
	case ActionReopen:
		return model.StatusOpen, true
	case ActionClose:
		return model.StatusClosed, true
	}
	return "", false
}

type BulkResult struct {
	Action  string
	IDs     []string
	Changed int
}

// ApplyStatus applies action to every selected ticket. An empty selection or the None
// action is a no-op and keeps the previous undo snapshot.
func ApplyStatus(st *store.Store, action QuickEditAction) (BulkResult, error) {
	res := BulkResult{Action: string(action)}
	if st == nil {
		return res, nil
	}
	status, ok := action.Status()
	if !ok {
		if action != ActionNone && action != "" {
			return res, fmt.Errorf("%w: %q", ErrInvalidAction, action)
		}
		return res, nil
	}
	ids := st.Selection()
	if len(ids) == 0 {
		return res, nil
	}
	n, err := st.UpdateStatus(ids, status)
	if err != nil {
		return res, err
	}
	res.IDs = ids
	res.Changed = n
	return res, nil
}

// DeleteSelected removes every selected ticket.
func DeleteSelected(st *store.Store) (BulkResult, error) {
	res := BulkResult{Action: "delete"}
	if st == nil {
		return res, nil
	}
	ids := st.Selection()
	if len(ids) == 0 {
		return res, nil
	}
	res.IDs = ids
	res.Changed = st.DeleteTickets(ids)
	return res, nil
}

// Undo restores the tickets touched by the last bulk action. With nothing to undo it
// reports zero changes; that is not an error.
func Undo(st *store.Store) (BulkResult, error) {
	res := BulkResult{Action: "undo"}
	if st == nil {
		return res, nil
	}
	res.IDs = st.SnapshotIDs()
	res.Changed = st.Undo()
	if res.Changed == 0 {
		res.IDs = nil
	}
	return res, nil
}
