package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, 12, 3, 9, 30, 0, 0, time.UTC) }
}

func sampleTickets() []model.Ticket {
	return []model.Ticket{
		{ID: "TKT-001", Title: "Printer jam", Status: model.StatusOpen, Category: model.CategoryHardware, CreatedAt: "2024-10-09", UpdatedAt: "2024-10-09",
			Files:      []model.Attachment{{Name: "jam.png", Size: 1024, Type: "image/png"}},
			AssignedTo: &model.Assignee{ID: "u-1", Name: "@bentot", Role: model.RoleSupport}},
		{ID: "TKT-002", Title: "VPN drops", Status: model.StatusInProgress, Category: model.CategoryNetwork, CreatedAt: "2024-11-15", UpdatedAt: "2024-11-15"},
		{ID: "TKT-003", Title: "License key", Status: model.StatusResolved, Category: model.CategorySoftware, CreatedAt: "2023-01-01", UpdatedAt: "2023-01-02"},
		{ID: "TKT-004", Title: "Badge access", Status: model.StatusClosed, Category: model.CategoryAccess, CreatedAt: "2024-10-20", UpdatedAt: "2024-10-21"},
	}
}

// tenTickets returns ten tickets of which exactly four are Open.
func tenTickets() []model.Ticket {
	statuses := []model.Status{
		model.StatusOpen, model.StatusClosed, model.StatusOpen, model.StatusResolved, model.StatusInProgress,
		model.StatusOpen, model.StatusClosed, model.StatusResolved, model.StatusOpen, model.StatusInProgress,
	}
	out := make([]model.Ticket, 0, len(statuses))
	for i, st := range statuses {
		out = append(out, model.Ticket{
			ID:        formatTicketID(i + 1),
			Title:     "ticket",
			Status:    st,
			Category:  model.CategorySupport,
			CreatedAt: "2024-05-01",
			UpdatedAt: "2024-05-01",
		})
	}
	return out
}

func ticketIDs(ts []model.Ticket) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestNew_CopiesInput(t *testing.T) {
	in := sampleTickets()
	s := New(in)
	in[0].Title = "mutated"
	in[0].AssignedTo.Name = "mutated"
	got, ok := s.Find("TKT-001")
	if !ok {
		t.Fatalf("expected TKT-001")
	}
	if got.Title != "Printer jam" || got.AssignedTo.Name != "@bentot" {
		t.Fatalf("store aliases caller slice: %+v", got)
	}
}

func TestUndo_RestoresStatusChange(t *testing.T) {
	before := sampleTickets()
	s := New(before)
	n, err := s.UpdateStatus([]string{"TKT-001", "TKT-002"}, model.StatusClosed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 affected, got %d", n)
	}
	for _, id := range []string{"TKT-001", "TKT-002"} {
		got, _ := s.Find(id)
		if got.Status != model.StatusClosed {
			t.Fatalf("expected %s closed, got %q", id, got.Status)
		}
	}
	untouched, _ := s.Find("TKT-003")
	if untouched.Status != model.StatusResolved {
		t.Fatalf("expected TKT-003 untouched, got %q", untouched.Status)
	}

	if got := s.Undo(); got != 2 {
		t.Fatalf("expected 2 restored, got %d", got)
	}
	if !reflect.DeepEqual(s.Tickets(), before) {
		t.Fatalf("undo did not restore tickets:\n got %+v\nwant %+v", s.Tickets(), before)
	}
}

func TestUndo_RestoresDeletedTicketsInIDOrder(t *testing.T) {
	before := sampleTickets()
	s := New(before)
	if n := s.DeleteTickets([]string{"TKT-003", "TKT-001"}); n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	if got := ticketIDs(s.Tickets()); !reflect.DeepEqual(got, []string{"TKT-002", "TKT-004"}) {
		t.Fatalf("unexpected canonical after delete: %v", got)
	}
	if got := ticketIDs(s.Displayed()); !reflect.DeepEqual(got, []string{"TKT-002", "TKT-004"}) {
		t.Fatalf("displayed not re-derived after delete: %v", got)
	}

	if got := s.Undo(); got != 2 {
		t.Fatalf("expected 2 restored, got %d", got)
	}
	if !reflect.DeepEqual(s.Tickets(), before) {
		t.Fatalf("undo did not restore tickets:\n got %v\nwant %v", ticketIDs(s.Tickets()), ticketIDs(before))
	}
}

func TestUndo_SecondCallIsNoop(t *testing.T) {
	s := New(sampleTickets())
	if got := s.Undo(); got != 0 {
		t.Fatalf("undo without snapshot: expected 0, got %d", got)
	}
	_, _ = s.UpdateStatus([]string{"TKT-002"}, model.StatusClosed)
	if !s.HasSnapshot() {
		t.Fatalf("expected snapshot after bulk edit")
	}
	if got := s.Undo(); got != 1 {
		t.Fatalf("expected 1 restored, got %d", got)
	}
	_, _ = s.UpdateStatus([]string{"TKT-003"}, model.StatusOpen)
	// Only the latest snapshot (TKT-003) is restored.
	if got := s.Undo(); got != 1 {
		t.Fatalf("expected 1 restored, got %d", got)
	}
	if got := s.Undo(); got != 0 {
		t.Fatalf("second undo: expected 0, got %d", got)
	}
	if s.HasSnapshot() {
		t.Fatalf("snapshot should be consumed")
	}
}

func TestUpdateStatus_NoopCases(t *testing.T) {
	s := New(sampleTickets())
	_, _ = s.UpdateStatus([]string{"TKT-004"}, model.StatusOpen)
	want := s.SnapshotIDs()

	if n, err := s.UpdateStatus(nil, model.StatusClosed); err != nil || n != 0 {
		t.Fatalf("empty ids: expected no-op, got n=%d err=%v", n, err)
	}
	if n, err := s.UpdateStatus([]string{"TKT-001"}, model.Status(model.None)); err != nil || n != 0 {
		t.Fatalf("None status: expected no-op, got n=%d err=%v", n, err)
	}
	if got := s.SnapshotIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("no-op replaced snapshot: got %v want %v", got, want)
	}
	if n := s.DeleteTickets([]string{" "}); n != 0 {
		t.Fatalf("blank ids: expected no-op, got %d", n)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	s := New(sampleTickets())
	_, err := s.UpdateStatus([]string{"TKT-001"}, model.Status("Archived"))
	if err == nil {
		t.Fatalf("expected error")
	}
	got, _ := s.Find("TKT-001")
	if got.Status != model.StatusOpen {
		t.Fatalf("status changed on error: %q", got.Status)
	}
	if s.HasSnapshot() {
		t.Fatalf("snapshot taken on error")
	}
}

func TestUpdateStatus_TouchUpdatedAt(t *testing.T) {
	s := New(sampleTickets(), WithClock(fixedClock()), WithTouchUpdatedAt(true))
	_, _ = s.UpdateStatus([]string{"TKT-001", "TKT-004"}, model.StatusClosed)

	changed, _ := s.Find("TKT-001")
	if changed.UpdatedAt != "2024-12-03" {
		t.Fatalf("expected updatedAt refreshed, got %q", changed.UpdatedAt)
	}
	// Already closed: no transition, no touch.
	same, _ := s.Find("TKT-004")
	if same.UpdatedAt != "2024-10-21" {
		t.Fatalf("expected updatedAt untouched, got %q", same.UpdatedAt)
	}
}

func TestUpdateStatus_LeavesUpdatedAtByDefault(t *testing.T) {
	s := New(sampleTickets(), WithClock(fixedClock()))
	_, _ = s.UpdateStatus([]string{"TKT-001"}, model.StatusClosed)
	got, _ := s.Find("TKT-001")
	if got.UpdatedAt != "2024-10-09" {
		t.Fatalf("expected updatedAt unchanged, got %q", got.UpdatedAt)
	}
}

func TestToggleSelectAll_ScopedToDisplayed(t *testing.T) {
	s := New(tenTickets())
	if err := s.SetFilter(filter.AxisStatus, "Open"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	displayed := ticketIDs(s.Displayed())
	if len(displayed) != 4 {
		t.Fatalf("expected 4 displayed, got %v", displayed)
	}

	s.ToggleSelectAll()
	if got := s.Selection(); !reflect.DeepEqual(got, displayed) {
		t.Fatalf("expected selection %v, got %v", displayed, got)
	}
	if !s.AllDisplayedSelected() {
		t.Fatalf("expected all displayed selected")
	}

	s.ToggleSelectAll()
	if got := s.SelectionCount(); got != 0 {
		t.Fatalf("expected cleared selection, got %v", s.Selection())
	}
}

func TestToggleSelectAll_ReplacesPartialSelection(t *testing.T) {
	s := New(tenTickets())
	s.ToggleSelection("TKT-002") // Closed, hidden below
	s.ToggleSelection("TKT-001")
	if err := s.SetFilter(filter.AxisStatus, "Open"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	s.ToggleSelectAll()
	want := []string{"TKT-001", "TKT-003", "TKT-006", "TKT-009"}
	if got := s.Selection(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected selection %v, got %v", want, got)
	}
}

func TestToggleSelection(t *testing.T) {
	s := New(sampleTickets())
	if !s.ToggleSelection("TKT-002") {
		t.Fatalf("expected selected")
	}
	if !s.IsSelected("TKT-002") {
		t.Fatalf("expected IsSelected")
	}
	if s.ToggleSelection("TKT-002") {
		t.Fatalf("expected deselected")
	}
	if s.ToggleSelection("TKT-404") {
		t.Fatalf("unknown id must not be selectable")
	}
	if s.SelectionCount() != 0 {
		t.Fatalf("expected empty selection, got %v", s.Selection())
	}
}

func TestDeleteTickets_PrunesSelection(t *testing.T) {
	s := New(sampleTickets())
	s.ToggleSelection("TKT-001")
	s.ToggleSelection("TKT-002")
	s.DeleteTickets([]string{"TKT-001"})
	if got := s.Selection(); !reflect.DeepEqual(got, []string{"TKT-002"}) {
		t.Fatalf("expected selection [TKT-002], got %v", got)
	}
}

func TestBulk_SelectionKeptByDefault(t *testing.T) {
	s := New(sampleTickets())
	s.ToggleSelection("TKT-001")
	_, _ = s.UpdateStatus(s.Selection(), model.StatusClosed)
	if !s.IsSelected("TKT-001") {
		t.Fatalf("expected selection kept")
	}
}

func TestBulk_ClearSelectionOption(t *testing.T) {
	s := New(sampleTickets(), WithClearSelectionAfterBulk(true))
	s.ToggleSelection("TKT-001")
	s.ToggleSelection("TKT-002")
	_, _ = s.UpdateStatus(s.Selection(), model.StatusClosed)
	if s.SelectionCount() != 0 {
		t.Fatalf("expected selection cleared, got %v", s.Selection())
	}
}

func TestDisplayed_TracksMutations(t *testing.T) {
	s := New(sampleTickets())
	if err := s.SetFilter(filter.AxisStatus, "Closed"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if got := ticketIDs(s.Displayed()); !reflect.DeepEqual(got, []string{"TKT-004"}) {
		t.Fatalf("expected [TKT-004], got %v", got)
	}
	_, _ = s.UpdateStatus([]string{"TKT-001"}, model.StatusClosed)
	if got := ticketIDs(s.Displayed()); !reflect.DeepEqual(got, []string{"TKT-001", "TKT-004"}) {
		t.Fatalf("expected [TKT-001 TKT-004], got %v", got)
	}
	s.Undo()
	if got := ticketIDs(s.Displayed()); !reflect.DeepEqual(got, []string{"TKT-004"}) {
		t.Fatalf("expected [TKT-004] after undo, got %v", got)
	}
	s.ResetFilters()
	if !reflect.DeepEqual(s.Displayed(), s.Tickets()) {
		t.Fatalf("reset should display the canonical list")
	}
}

func TestAddTicket(t *testing.T) {
	s := New(sampleTickets())
	if err := s.SetFilter(filter.AxisStatus, "Open"); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	nt := model.Ticket{ID: s.NextTicketID(), Title: "New", Status: model.StatusOpen, Category: model.CategorySupport, CreatedAt: "2024-12-03", UpdatedAt: "2024-12-03"}
	if err := s.AddTicket(nt); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}
	if got := ticketIDs(s.Displayed()); !reflect.DeepEqual(got, []string{"TKT-001", "TKT-005"}) {
		t.Fatalf("expected new ticket displayed, got %v", got)
	}

	if err := s.AddTicket(nt); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := s.AddTicket(model.Ticket{Title: "no id"}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("expected 5 tickets, got %d", s.Len())
	}
}

func TestSummary(t *testing.T) {
	tickets := append(sampleTickets(), model.Ticket{ID: "TKT-005", Status: model.StatusOpen})
	s := New(tickets)
	want := []model.StatusCount{
		{Status: model.StatusOpen, Count: 2},
		{Status: model.StatusInProgress, Count: 1},
		{Status: model.StatusResolved, Count: 1},
		{Status: model.StatusClosed, Count: 1},
	}
	if got := s.Summary(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := New(nil).Summary(); len(got) != 4 || got[0].Count != 0 {
		t.Fatalf("expected zero counts for every status, got %v", got)
	}
}

func TestPostMessage(t *testing.T) {
	s := New(sampleTickets(), WithClock(fixedClock()), WithMessages([]model.Message{
		{ID: "m-1", TicketID: "TKT-001", Source: model.SourceOther, Date: "2024-10-09T10:00:00Z", Body: "Hi"},
	}))
	msg, err := s.PostMessage("TKT-001", "", "  Still jammed  ")
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if msg.Body != "Still jammed" || msg.Source != model.SourceYou || msg.Date != "2024-12-03T09:30:00Z" || msg.ID == "" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	thread := s.Messages("TKT-001")
	if len(thread) != 2 || thread[0].ID != "m-1" || thread[1].ID != msg.ID {
		t.Fatalf("unexpected thread: %+v", thread)
	}

	if _, err := s.PostMessage("TKT-001", model.SourceYou, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	var nf NotFoundError
	if _, err := s.PostMessage("TKT-404", model.SourceYou, "hello"); !errors.As(err, &nf) || nf.ID != "TKT-404" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
