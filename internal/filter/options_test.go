package filter

import (
	"reflect"
	"testing"
	"time"

	"ticketdesk/internal/model"
)

func TestMonthIndex(t *testing.T) {
	cases := map[string]string{
		"Jan":      "01",
		"nov":      "11",
		"December": "12",
		"3":        "03",
		"09":       "09",
	}
	for in, want := range cases {
		got, ok := MonthIndex(in)
		if !ok || got != want {
			t.Fatalf("MonthIndex(%q): expected %q, got %q (ok=%v)", in, want, got, ok)
		}
	}
	for _, bad := range []string{"", "Ja", "13", "0", "Janx"} {
		if _, ok := MonthIndex(bad); ok {
			t.Fatalf("MonthIndex(%q): expected miss", bad)
		}
	}
	if MonthName("11") != "Nov" {
		t.Fatalf("MonthName(11): expected Nov, got %q", MonthName("11"))
	}
}

func TestYearOptions(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	got := YearOptions(now, 3)
	if !reflect.DeepEqual(got, []string{"2026", "2025", "2024"}) {
		t.Fatalf("unexpected years: %v", got)
	}
	if YearOptions(now, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestAssignmentOptions(t *testing.T) {
	got := AssignmentOptions(scenarioTickets())
	if !reflect.DeepEqual(got, []string{"@bentot", "@juantot", Unassigned}) {
		t.Fatalf("unexpected assignment options: %v", got)
	}
}

func TestSort(t *testing.T) {
	ts := []model.Ticket{
		{ID: "T-10", Title: "b", Status: model.StatusClosed, CreatedAt: "2024-01-02"},
		{ID: "T-9", Title: "a", Status: model.StatusOpen, CreatedAt: "2024-01-03"},
		{ID: "T-2", Title: "c", Status: model.StatusOpen, CreatedAt: "2023-05-01"},
	}
	Sort(ts, SortByID, false)
	if !reflect.DeepEqual(ids(ts), []string{"T-2", "T-9", "T-10"}) {
		t.Fatalf("id sort: %v", ids(ts))
	}
	Sort(ts, SortByStatus, false)
	if !reflect.DeepEqual(ids(ts), []string{"T-2", "T-9", "T-10"}) {
		t.Fatalf("status sort: %v", ids(ts))
	}
	Sort(ts, SortByCreated, true)
	if !reflect.DeepEqual(ids(ts), []string{"T-9", "T-10", "T-2"}) {
		t.Fatalf("created desc sort: %v", ids(ts))
	}
	Sort(ts, SortByTitle, false)
	if !reflect.DeepEqual(ids(ts), []string{"T-9", "T-10", "T-2"}) {
		t.Fatalf("title sort: %v", ids(ts))
	}
}

func TestCompareIDs(t *testing.T) {
	if CompareIDs("TKT-007", "TKT-008") >= 0 {
		t.Fatalf("expected TKT-007 < TKT-008")
	}
	if CompareIDs("T-9", "T-10") >= 0 {
		t.Fatalf("expected T-9 < T-10")
	}
	if CompareIDs("T-1", "TKT-001") >= 0 {
		t.Fatalf("expected prefix T < TKT")
	}
	if p, n, ok := SplitID("TKT-007"); !ok || p != "TKT" || n != 7 {
		t.Fatalf("SplitID: got %q %d %v", p, n, ok)
	}
	if _, _, ok := SplitID("nodash"); ok {
		t.Fatalf("SplitID(nodash): expected !ok")
	}
}

func TestSortKeyNextCycles(t *testing.T) {
	k := SortByID
	for range SortKeys {
		k = k.Next()
	}
	if k != SortByID {
		t.Fatalf("expected full cycle back to id, got %q", k)
	}
	if _, err := ParseSortKey("priority"); err == nil {
		t.Fatalf("expected error for unknown sort key")
	}
}
