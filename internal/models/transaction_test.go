package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusVerified, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusRejected, true},
		{StatusVerified, StatusCompleted, true},
		{StatusVerified, StatusRejected, true},
		{StatusVerified, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusVerified, false},
		{StatusCompleted, StatusRejected, false},
		{StatusRejected, StatusCompleted, false},
		{StatusRejected, StatusPending, false},
		// same-state is not a transition
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
		// unknown statuses never transition
		{"archived", StatusCompleted, false},
		{StatusPending, "archived", false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusVerified, StatusCompleted, StatusRejected} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "done", "PENDING", "archived"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StatusCompleted) || !IsTerminal(StatusRejected) {
		t.Error("completed and rejected must be terminal")
	}
	if IsTerminal(StatusPending) || IsTerminal(StatusVerified) {
		t.Error("pending and verified must not be terminal")
	}
}

func TestCanTransitionProcess(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{ProcessReceived, ProcessProcessing, true},
		{ProcessReceived, ProcessProcessed, true},
		{ProcessProcessing, ProcessProcessed, true},
		{ProcessProcessing, ProcessReceived, false},
		{ProcessProcessed, ProcessReceived, false},
		{ProcessProcessed, ProcessProcessing, false},
	}

	for _, c := range cases {
		if got := CanTransitionProcess(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionProcess(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
