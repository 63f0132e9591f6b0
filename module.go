package storex

import (
	"maps"
	"slices"
	"sort"
)

// Getters holds derived read-only values, keyed by name.
type Getters map[string]any

// Get returns the getter value and whether it exists.
func (g Getters) Get(name string) (any, bool) {
	v, ok := g[name]
	return v, ok
}

// ActionName names an entry in an action table.
type ActionName string

// ActionFunc is one callable action. It receives an opaque payload and may
// return a result.
type ActionFunc func(payload any) (any, error)

// Actions is a module's action table.
type Actions map[ActionName]ActionFunc

// Names returns the action names in sorted order.
func (a Actions) Names() []ActionName {
	names := make([]ActionName, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Call invokes the named action.
func (a Actions) Call(name ActionName, payload any) (any, error) {
	fn, ok := a[name]
	if !ok || fn == nil {
		return nil, unknownAction(name, "")
	}
	return fn(payload)
}

// DispatchActionFunc invokes a sibling action by name.
type DispatchActionFunc func(name ActionName, payload any) (any, error)

// Module is one instantiated container: state, getters, actions and dispatch.
//
// A Module is a render-time view. State and Getters are the values seen by
// the render that produced it; after a dispatch the next render yields a new
// Module with the replaced state.
type Module struct {
	Namespace      string
	State          any
	Getters        Getters
	Dispatch       DispatchFunc
	DispatchAction DispatchActionFunc
	// Parent is the container this module was instantiated under, or nil.
	Parent *Module

	actions func() Actions
}

// Actions returns the module's action table. Never nil.
func (m *Module) Actions() Actions {
	if m == nil || m.actions == nil {
		return Actions{}
	}
	if a := m.actions(); a != nil {
		return a
	}
	return Actions{}
}

// SetActions replaces the action table with a fixed one.
func (m *Module) SetActions(actions Actions) {
	m.actions = func() Actions { return actions }
}

// Clone returns a shallow copy of m.
func (m *Module) Clone() *Module {
	if m == nil {
		return &Module{}
	}
	cp := *m
	return &cp
}

// Store is the merged object exposed by a Factory: an optional flat root
// module plus any number of namespaced modules.
//
// Root fields and namespaces live in separate key spaces, so a namespace can
// never shadow a root field.
type Store struct {
	root    *Module
	modules map[string]*Module
}

// NewStore returns an empty store. Factories build stores; NewStore,
// SetRoot and SetModule exist for hand-made fakes.
func NewStore() *Store {
	return &Store{modules: make(map[string]*Module)}
}

// Root returns the unnamespaced module, or nil.
func (s *Store) Root() *Module {
	if s == nil {
		return nil
	}
	return s.root
}

// Module returns the module under namespace. The empty namespace is the root.
func (s *Store) Module(namespace string) (*Module, bool) {
	if s == nil {
		return nil, false
	}
	if namespace == "" {
		return s.root, s.root != nil
	}
	m, ok := s.modules[namespace]
	return m, ok
}

// Namespaces returns the namespaced keys in sorted order.
func (s *Store) Namespaces() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.modules))
	for k := range s.modules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of modules, root included.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	n := len(s.modules)
	if s.root != nil {
		n++
	}
	return n
}

// Each calls fn for the root (with namespace "") and then every namespaced
// module in sorted order.
func (s *Store) Each(fn func(namespace string, m *Module)) {
	if s == nil {
		return
	}
	if s.root != nil {
		fn("", s.root)
	}
	for _, ns := range s.Namespaces() {
		fn(ns, s.modules[ns])
	}
}

// SetRoot sets the unnamespaced module.
func (s *Store) SetRoot(m *Module) {
	s.root = m
}

// SetModule sets the module under namespace. The empty namespace sets the root.
func (s *Store) SetModule(namespace string, m *Module) {
	if namespace == "" {
		s.root = m
		return
	}
	if s.modules == nil {
		s.modules = make(map[string]*Module)
	}
	s.modules[namespace] = m
}

// Clone returns a copy of the key space; modules are shared.
func (s *Store) Clone() *Store {
	if s == nil {
		return NewStore()
	}
	cp := &Store{root: s.root, modules: maps.Clone(s.modules)}
	if cp.modules == nil {
		cp.modules = make(map[string]*Module)
	}
	return cp
}

// merge copies other's keys on top of s. Under CollisionOverwrite later keys
// win; under CollisionError any key already present fails.
func (s *Store) merge(other *Store, policy CollisionPolicy) error {
	if other == nil {
		return nil
	}
	if other.root != nil {
		if s.root != nil && policy == CollisionError {
			return collision("root")
		}
		s.root = other.root
	}
	for _, ns := range other.Namespaces() {
		if _, exists := s.modules[ns]; exists && policy == CollisionError {
			return collision(ns)
		}
		s.modules[ns] = other.modules[ns]
	}
	return nil
}
