// Package notify holds the transient message of a page and the two-step delete dialog.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

const (
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Event is a message as fanned out to other consumers.
type Event struct {
	Section  string    `json:"section"`
	UserID   string    `json:"user_id,omitempty"`
	Message  string    `json:"message"`
	Severity string    `json:"severity"`
	At       time.Time `json:"at"`
}

// Sink receives every message a notifier shows.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// Options configures a Notifier
type Options struct {
	Section string
	UserID  string
	// AutoDismiss hides the message after this long. Zero keeps it until dismissed.
	AutoDismiss time.Duration
	Sink        Sink
	Logger      *slog.Logger
	Now         func() time.Time
}

// Notifier holds at most one message; a new message replaces the previous one.
type Notifier struct {
	mu      sync.Mutex
	current *models.Flash
	opts    Options
}

func NewNotifier(opts Options) *Notifier {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Notifier{opts: opts}
}

func (n *Notifier) Success(ctx context.Context, message string) {
	n.show(ctx, message, SeveritySuccess)
}

func (n *Notifier) Error(ctx context.Context, message string) {
	n.show(ctx, message, SeverityError)
}

func (n *Notifier) show(ctx context.Context, message, severity string) {
	flash := &models.Flash{Message: message, Severity: severity, At: n.opts.Now()}

	n.mu.Lock()
	n.current = flash
	n.mu.Unlock()

	if n.opts.Sink == nil {
		return
	}
	err := n.opts.Sink.Publish(ctx, Event{
		Section:  n.opts.Section,
		UserID:   n.opts.UserID,
		Message:  message,
		Severity: severity,
		At:       flash.At,
	})
	if err != nil {
		n.opts.Logger.WarnContext(ctx, "Failed to publish notification",
			"section", n.opts.Section,
			"error", err)
	}
}

// Current returns the visible message, or nil.
func (n *Notifier) Current() *models.Flash {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}
	if ttl := n.opts.AutoDismiss; ttl > 0 && n.opts.Now().Sub(n.current.At) >= ttl {
		n.current = nil
		return nil
	}
	flash := *n.current
	return &flash
}

// Dismiss clears the message.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	n.current = nil
	n.mu.Unlock()
}
