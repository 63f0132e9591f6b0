package storetest

import (
	"testing"

	"github.com/comalice/storex"
)

// Invocation produces a store during a render pass.
type Invocation func(h *storex.Host) (*storex.Store, error)

// Invoke adapts a Factory into an Invocation with no initial-state override
// and no parent.
func Invoke(f storex.Factory) Invocation {
	return func(h *storex.Host) (*storex.Store, error) {
		return f(h, nil, nil)
	}
}

// Mount is a disposable host whose only render effect is running one
// Invocation and handing its store to a callback.
type Mount struct {
	host  *storex.Host
	store *storex.Store
}

// Materialize mounts invoke on a fresh host and performs exactly one render.
// onReady receives the store synchronously inside that render, and again on
// every later render the caller drives through Rerender or Act.
func Materialize(invoke Invocation, onReady func(*storex.Store)) (*Mount, error) {
	m := &Mount{host: storex.NewHost()}
	err := m.host.Render(func(h *storex.Host) error {
		s, err := invoke(h)
		if err != nil {
			return err
		}
		m.store = s
		if onReady != nil {
			onReady(s)
		}
		return nil
	})
	if err != nil {
		m.host.Dispose()
		return nil, err
	}
	return m, nil
}

// MaterializeT is Materialize that fails t on error and unmounts on cleanup.
func MaterializeT(t testing.TB, invoke Invocation, onReady func(*storex.Store)) *Mount {
	t.Helper()
	m, err := Materialize(invoke, onReady)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	t.Cleanup(m.Unmount)
	return m
}

// Store returns the store from the latest render.
func (m *Mount) Store() *storex.Store {
	return m.store
}

// Host returns the underlying host.
func (m *Mount) Host() *storex.Host {
	return m.host
}

// Rerender performs one more render pass.
func (m *Mount) Rerender() error {
	return m.host.Rerender()
}

// Act runs fn and re-renders until the host settles.
func (m *Mount) Act(fn func() error) error {
	return m.host.Act(fn)
}

// Unmount disposes the host.
func (m *Mount) Unmount() {
	m.host.Dispose()
}
