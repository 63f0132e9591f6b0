package storex

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/comalice/storex/internal/logging"
)

// maxActPasses bounds the number of re-renders Act performs while cells
// keep changing during render.
const maxActPasses = 16

type slotKind int

const (
	slotReducer slotKind = iota + 1
	slotMemo
)

func (k slotKind) String() string {
	switch k {
	case slotReducer:
		return "reducer"
	case slotMemo:
		return "memo"
	default:
		return "unknown"
	}
}

type slot struct {
	kind     slotKind
	cell     *Cell
	reducer  Reducer
	dispatch DispatchFunc
	deps     []any
	value    any
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger used for state replacements.
func WithHostLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// Host keeps state across renders.
//
// Hooks (UseReducer, UseMemo) are matched to slots by call order, so a
// render function must call the same hooks in the same order every time.
// Cells created through UseReducer notify the host when replaced; the owning
// UI layer learns about it through OnChange and re-renders with Rerender or Act.
type Host struct {
	mu        sync.Mutex
	slots     []*slot
	cursor    int
	renders   int
	dirty     bool
	render    func(*Host) error
	listeners map[int]func(*Cell)
	nextID    int
	disposers []func()
	disposed  bool
	logger    *slog.Logger
}

// NewHost creates an empty host.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		listeners: make(map[int]func(*Cell)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Render runs fn as one render pass and remembers it for Rerender.
func (h *Host) Render(fn func(*Host) error) error {
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		return ErrHostDisposed
	}
	h.render = fn
	h.cursor = 0
	h.dirty = false
	h.renders++
	h.mu.Unlock()

	if err := fn(h); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor != len(h.slots) {
		return fmt.Errorf("%w: used %d hooks, expected %d", ErrHookOrder, h.cursor, len(h.slots))
	}
	return nil
}

// Rerender repeats the last render function.
func (h *Host) Rerender() error {
	h.mu.Lock()
	fn := h.render
	h.mu.Unlock()
	if fn == nil {
		return ErrNotRendered
	}
	return h.Render(fn)
}

// Act runs fn and then re-renders until no cell changed during the last pass.
// If fn fails after dispatching, the host still settles before the error
// is returned.
func (h *Host) Act(fn func() error) error {
	if err := fn(); err != nil {
		if h.Dirty() {
			if serr := h.settle(); serr != nil {
				return errors.Join(err, serr)
			}
		}
		return err
	}
	return h.settle()
}

func (h *Host) settle() error {
	for pass := 0; h.Dirty(); pass++ {
		if pass >= maxActPasses {
			return ErrRenderLoop
		}
		if err := h.Rerender(); err != nil {
			return err
		}
	}
	return nil
}

// Dirty reports whether a cell changed since the last render started.
func (h *Host) Dirty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dirty
}

// Renders returns how many render passes have started.
func (h *Host) Renders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renders
}

// UseReducer returns the cell for the current slot, creating it with initial
// on the first render. The reducer is refreshed on every render so dispatch
// always runs the latest one.
func (h *Host) UseReducer(label string, initial any, reducer Reducer) (*Cell, DispatchFunc, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.next(slotReducer)
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		s = &slot{kind: slotReducer, cell: NewCell(label, initial)}
		cell := s.cell
		cell.Subscribe(func() { h.markDirty(cell) })
		s.dispatch = h.dispatcher(s)
		h.slots = append(h.slots, s)
		h.cursor++
	}
	s.reducer = reducer
	return s.cell, s.dispatch, nil
}

// UseMemo returns the value computed for deps, recomputing only when deps
// differ from the previous render. Comparable deps are compared with ==,
// maps, slices and pointers by identity; funcs never match.
func (h *Host) UseMemo(deps []any, compute func() any) (any, error) {
	h.mu.Lock()
	s, err := h.next(slotMemo)
	if err != nil {
		h.mu.Unlock()
		return nil, err
	}
	if s != nil && depsEqual(s.deps, deps) {
		v := s.value
		h.mu.Unlock()
		return v, nil
	}
	if s == nil {
		s = &slot{kind: slotMemo}
		h.slots = append(h.slots, s)
		h.cursor++
	}
	h.mu.Unlock()

	// compute may call back into the host, so it runs unlocked.
	v := compute()

	h.mu.Lock()
	s.deps = deps
	s.value = v
	h.mu.Unlock()
	return v, nil
}

// OnChange registers fn to run whenever one of the host's cells is replaced.
// Returns an unsubscribe function.
func (h *Host) OnChange(fn func(*Cell)) func() {
	if fn == nil {
		return func() {}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// OnDispose registers a cleanup function to run when the host is disposed.
// If the host is already disposed, cleanup runs immediately.
func (h *Host) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		cleanup()
		return func() {}
	}
	index := len(h.disposers)
	h.disposers = append(h.disposers, cleanup)
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if index < len(h.disposers) {
			h.disposers[index] = nil
		}
	}
}

// Dispose runs disposers in reverse order and drops all slots.
// Dispatching to a disposed host's cells is a no-op.
func (h *Host) Dispose() {
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		return
	}
	h.disposed = true
	disposers := h.disposers
	h.disposers = nil
	h.slots = nil
	h.listeners = map[int]func(*Cell){}
	h.render = nil
	h.mu.Unlock()

	for i := len(disposers) - 1; i >= 0; i-- {
		if disposers[i] != nil {
			disposers[i]()
		}
	}
}

// Disposed reports whether Dispose has been called.
func (h *Host) Disposed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disposed
}

// next returns the slot at the cursor and advances it, or nil when a new
// slot may be appended (first render only). Callers hold h.mu.
func (h *Host) next(kind slotKind) (*slot, error) {
	if h.cursor < len(h.slots) {
		s := h.slots[h.cursor]
		if s.kind != kind {
			return nil, fmt.Errorf("%w: slot %d is %s, got %s", ErrHookOrder, h.cursor, s.kind, kind)
		}
		h.cursor++
		return s, nil
	}
	if h.renders > 1 {
		return nil, fmt.Errorf("%w: extra %s hook at slot %d", ErrHookOrder, kind, h.cursor)
	}
	return nil, nil
}

func (h *Host) dispatcher(s *slot) DispatchFunc {
	return func(action Action) error {
		h.mu.Lock()
		if h.disposed {
			h.mu.Unlock()
			return nil
		}
		reducer := s.reducer
		h.mu.Unlock()

		// Reduce and swap are atomic per cell.
		err := s.cell.apply(func(state any) (any, error) {
			return reducer(state, action)
		})
		if err != nil {
			return err
		}
		h.logger.Debug("state replaced", "cell", s.cell.Label(), "action", action.Type)
		return nil
	}
}

func (h *Host) markDirty(c *Cell) {
	h.mu.Lock()
	h.dirty = true
	fns := make([]func(*Cell), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

func depsEqual(a, b []any) bool {
	if a == nil || len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameDep(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameDep(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if vx.Type() != vy.Type() {
		return false
	}
	switch vx.Kind() {
	case reflect.Func:
		return false
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return vx.Pointer() == vy.Pointer()
	case reflect.Slice:
		return vx.Pointer() == vy.Pointer() && vx.Len() == vy.Len()
	}
	if vx.Comparable() && vy.Comparable() {
		return x == y
	}
	return false
}
