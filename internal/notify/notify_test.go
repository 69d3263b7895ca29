package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type captureSink struct {
	events []Event
	err    error
}

func (s *captureSink) Publish(_ context.Context, e Event) error {
	s.events = append(s.events, e)
	return s.err
}

func TestNotifierSingleSlot(t *testing.T) {
	n := NewNotifier(Options{Section: "Stage"})
	ctx := context.Background()

	if n.Current() != nil {
		t.Fatal("new notifier should be empty")
	}

	n.Success(ctx, "Stage created")
	n.Error(ctx, "name must be unique")

	got := n.Current()
	if got == nil || got.Message != "name must be unique" || got.Severity != SeverityError {
		t.Fatalf("Current() = %+v", got)
	}

	n.Dismiss()
	if n.Current() != nil {
		t.Error("Dismiss() should clear the message")
	}
}

func TestNotifierManualDismissKeepsMessage(t *testing.T) {
	c := &clock{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	n := NewNotifier(Options{Section: "Stagiaire", Now: c.Now})

	n.Success(context.Background(), "saved")
	c.now = c.now.Add(time.Hour)
	if n.Current() == nil {
		t.Error("message without auto-dismiss should stay")
	}
}

func TestNotifierAutoDismiss(t *testing.T) {
	c := &clock{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	n := NewNotifier(Options{Section: "Users", AutoDismiss: 4000 * time.Millisecond, Now: c.Now})

	n.Success(context.Background(), "user created")
	c.now = c.now.Add(3999 * time.Millisecond)
	if n.Current() == nil {
		t.Fatal("message dismissed too early")
	}
	c.now = c.now.Add(time.Millisecond)
	if n.Current() != nil {
		t.Error("message should be dismissed after 4000ms")
	}
}

func TestNotifierPublishes(t *testing.T) {
	sink := &captureSink{err: errors.New("broker down")}
	n := NewNotifier(Options{Section: "Remarque", UserID: "7", Sink: sink})

	n.Error(context.Background(), "failed")

	if len(sink.events) != 1 {
		t.Fatalf("events = %v", sink.events)
	}
	e := sink.events[0]
	if e.Section != "Remarque" || e.UserID != "7" || e.Severity != SeverityError {
		t.Errorf("event = %+v", e)
	}
	if n.Current() == nil {
		t.Error("publish failure must not hide the message")
	}
}

func TestConfirmationAlwaysClears(t *testing.T) {
	tests := []struct {
		name    string
		result  error
		wantErr bool
	}{
		{name: "success", result: nil},
		{name: "failure", result: errors.New("status 200"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Confirmation[string]
			c.Request("doc-1")

			var seen string
			ok, err := c.Confirm(context.Background(), func(_ context.Context, id string) error {
				seen = id
				if _, still := c.Pending(); !still {
					t.Error("target cleared before the action ran")
				}
				return tt.result
			})
			if !ok || (err != nil) != tt.wantErr {
				t.Fatalf("Confirm() = %v, %v", ok, err)
			}
			if seen != "doc-1" {
				t.Errorf("action got %q", seen)
			}
			if _, pending := c.Pending(); pending {
				t.Error("target should be cleared after the attempt")
			}
		})
	}
}

func TestConfirmationNothingPending(t *testing.T) {
	var c Confirmation[int]
	called := false
	ok, err := c.Confirm(context.Background(), func(context.Context, int) error {
		called = true
		return nil
	})
	if ok || err != nil || called {
		t.Errorf("Confirm() = %v, %v, called=%v", ok, err, called)
	}
}

func TestConfirmationCancel(t *testing.T) {
	var c Confirmation[string]
	c.Request("a")
	c.Request("b")
	if got, _ := c.Pending(); got != "b" {
		t.Errorf("Pending() = %q, want latest request", got)
	}
	c.Cancel()
	if _, ok := c.Pending(); ok {
		t.Error("Cancel() should clear the target")
	}
}
