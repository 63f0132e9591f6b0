package storetest

import (
	"maps"

	"github.com/comalice/storex"
)

// MockBuilder fabricates fake stores for code that consumes stores, without
// running any reducer. Every Mock* call returns a new builder; the receiver
// is never modified. The zero value is ready to use.
//
// Example:
//
//	store := storetest.NewMockBuilder().
//		MockState("user", map[string]any{"detail": user}).
//		MockActions("user", storex.Actions{"getUser": getUser}).
//		Build()
type MockBuilder struct {
	store *storex.Store
}

// NewMockBuilder returns an empty builder.
func NewMockBuilder() MockBuilder {
	return MockBuilder{store: storex.NewStore()}
}

// MockState sets the state of moduleName ("" for the root).
func (b MockBuilder) MockState(moduleName string, state any) MockBuilder {
	return b.with(moduleName, func(m *storex.Module) { m.State = state })
}

// MockGetters sets the getters of moduleName.
func (b MockBuilder) MockGetters(moduleName string, getters storex.Getters) MockBuilder {
	return b.with(moduleName, func(m *storex.Module) { m.Getters = getters })
}

// MockActions sets the action table of moduleName.
func (b MockBuilder) MockActions(moduleName string, actions storex.Actions) MockBuilder {
	return b.with(moduleName, func(m *storex.Module) { m.SetActions(actions) })
}

// MockDispatch sets the dispatch function of moduleName.
func (b MockBuilder) MockDispatch(moduleName string, dispatch storex.DispatchFunc) MockBuilder {
	return b.with(moduleName, func(m *storex.Module) { m.Dispatch = dispatch })
}

// Build returns the accumulated store. Each call returns fresh modules, so
// changing a built store does not affect the builder or other builds.
func (b MockBuilder) Build() *storex.Store {
	out := storex.NewStore()
	b.store.Each(func(namespace string, m *storex.Module) {
		cp := m.Clone()
		cp.Getters = maps.Clone(m.Getters)
		out.SetModule(namespace, cp)
	})
	return out
}

func (b MockBuilder) with(moduleName string, set func(*storex.Module)) MockBuilder {
	next := b.store.Clone()
	current, _ := next.Module(moduleName)
	m := current.Clone()
	m.Namespace = moduleName
	set(m)
	next.SetModule(moduleName, m)
	return MockBuilder{store: next}
}
