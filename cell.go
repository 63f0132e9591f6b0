package storex

import "sync"

// Cell is a replaceable state slot.
//
// The value is never mutated in place: Replace swaps it and bumps Version,
// then notifies subscribers outside the lock. A Cell is owned by a Host,
// which keeps it alive across renders.
type Cell struct {
	mu        sync.RWMutex
	label     string
	value     any
	version   uint64
	listeners map[int]func()
	nextID    int
}

// NewCell creates a cell holding initial.
func NewCell(label string, initial any) *Cell {
	return &Cell{
		label:     label,
		value:     initial,
		listeners: make(map[int]func()),
	}
}

// Label returns the name given at creation, usually the store namespace.
func (c *Cell) Label() string {
	return c.label
}

// Get returns the current value.
func (c *Cell) Get() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Version returns the number of replacements so far.
func (c *Cell) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Replace swaps the value and notifies subscribers.
func (c *Cell) Replace(value any) {
	_ = c.apply(func(any) (any, error) { return value, nil })
}

// Update applies transform to the current value and replaces it with the
// result. Concurrent updates are serialized; transform must not call back
// into the cell.
func (c *Cell) Update(transform func(any) any) {
	_ = c.apply(func(v any) (any, error) { return transform(v), nil })
}

// apply runs transform and swaps in its result under the write lock, then
// notifies subscribers after unlocking. On error the value is kept.
func (c *Cell) apply(transform func(any) (any, error)) error {
	c.mu.Lock()
	next, err := transform(c.value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.value = next
	c.version++
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return nil
}

// Subscribe registers fn to run after every Replace.
// Returns an unsubscribe function.
func (c *Cell) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}
