// Package toast collects short notifications for the user.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is the severity of a toast.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Toast is one notification.
type Toast struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Center holds pending toasts. Front ends own one Center each and drain
// it when they render.
type Center struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	subs   map[int]func([]Toast)
	now    func() time.Time
}

// NewCenter returns an empty Center.
func NewCenter() *Center {
	return &Center{subs: make(map[int]func([]Toast)), now: time.Now}
}

// Add queues a toast and returns it.
func (c *Center) Add(kind Kind, message string) Toast {
	t := Toast{ID: uuid.NewString(), Kind: kind, Message: message, CreatedAt: c.now()}

	c.mu.Lock()
	c.toasts = append(c.toasts, t)
	snap, subs := c.snapshot(), c.subscribers()
	c.mu.Unlock()

	notify(subs, snap)
	return t
}

func (c *Center) Success(message string) Toast { return c.Add(Success, message) }
func (c *Center) Error(message string) Toast   { return c.Add(Error, message) }
func (c *Center) Info(message string) Toast    { return c.Add(Info, message) }

// Remove dismisses the toast with id. Unknown ids are ignored.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	idx := -1
	for i, t := range c.toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.toasts = append(c.toasts[:idx], c.toasts[idx+1:]...)
	snap, subs := c.snapshot(), c.subscribers()
	c.mu.Unlock()

	notify(subs, snap)
}

// List returns the pending toasts, oldest first.
func (c *Center) List() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Drain returns the pending toasts and empties the Center.
func (c *Center) Drain() []Toast {
	c.mu.Lock()
	out := c.toasts
	c.toasts = nil
	subs := c.subscribers()
	c.mu.Unlock()

	if len(out) > 0 {
		notify(subs, nil)
	}
	return out
}

// Last returns the most recent toast.
func (c *Center) Last() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.toasts) == 0 {
		return Toast{}, false
	}
	return c.toasts[len(c.toasts)-1], true
}

// Subscribe registers fn for every change and returns a function that
// removes it.
func (c *Center) Subscribe(fn func([]Toast)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Center) snapshot() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

func (c *Center) subscribers() []func([]Toast) {
	subs := make([]func([]Toast), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func([]Toast), toasts []Toast) {
	for _, fn := range subs {
		fn(toasts)
	}
}
