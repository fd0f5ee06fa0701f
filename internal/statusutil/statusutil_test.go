package statusutil

import (
	"errors"
	"testing"

	"ticketdesk/internal/model"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in      string
		want    model.Status
		wantErr bool
	}{
		{"open", model.StatusOpen, false},
		{"OPEN", model.StatusOpen, false},
		{"In progress", model.StatusInProgress, false},
		{"in_progress", model.StatusInProgress, false},
		{"in-progress", model.StatusInProgress, false},
		{" resolved ", model.StatusResolved, false},
		{"Closed", model.StatusClosed, false},
		{"none", "", false},
		{"", "", false},
		{"cancelled", "", true},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if tc.wantErr && !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("Normalize(%q): expected ErrInvalidStatus, got %v", tc.in, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("Normalize(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	got, err := NormalizeCategory("network")
	if err != nil || got != model.CategoryNetwork {
		t.Fatalf("expected Network, got %q (err=%v)", got, err)
	}
	got, err = NormalizeCategory("None")
	if err != nil || got != model.CategoryNone {
		t.Fatalf("expected None sentinel, got %q (err=%v)", got, err)
	}
	if _, err := NormalizeCategory("account"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestIsEndState(t *testing.T) {
	if IsEndState(model.StatusOpen) || IsEndState(model.StatusInProgress) {
		t.Fatalf("open/in progress should not be end states")
	}
	if !IsEndState(model.StatusResolved) || !IsEndState(model.StatusClosed) {
		t.Fatalf("resolved/closed should be end states")
	}
}
