package notify

import (
	"context"
	"sync"
)

// Confirmation gates a destructive action behind an explicit second step.
type Confirmation[T any] struct {
	mu     sync.Mutex
	target *T
}

// Request opens the dialog for target, replacing any earlier target.
func (c *Confirmation[T]) Request(target T) {
	c.mu.Lock()
	c.target = &target
	c.mu.Unlock()
}

// Pending returns the target awaiting confirmation.
func (c *Confirmation[T]) Pending() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target == nil {
		var zero T
		return zero, false
	}
	return *c.target, true
}

// Cancel closes the dialog without acting.
func (c *Confirmation[T]) Cancel() {
	c.mu.Lock()
	c.target = nil
	c.mu.Unlock()
}

// Confirm runs action on the pending target and closes the dialog whatever the
// outcome. ok is false when nothing was pending.
func (c *Confirmation[T]) Confirm(ctx context.Context, action func(context.Context, T) error) (ok bool, err error) {
	c.mu.Lock()
	target := c.target
	c.mu.Unlock()
	if target == nil {
		return false, nil
	}

	defer c.clear(target)
	return true, action(ctx, *target)
}

// clear drops the target unless a newer request replaced it meanwhile.
func (c *Confirmation[T]) clear(target *T) {
	c.mu.Lock()
	if c.target == target {
		c.target = nil
	}
	c.mu.Unlock()
}
