package storex

import (
	"fmt"
	"math"
	"reflect"
	"slices"
)

// rootLabel names unnamespaced stores in logs and errors.
const rootLabel = "root"

// Factory instantiates a store on h. A nil or falsy initial falls back to the
// builder's initial state. parent is the container the store is nested under.
type Factory func(h *Host, initial any, parent *Module) (*Store, error)

// StoreBuilder provides a fluent API for describing a store.
//
// Configuration methods accept their argument as-is and return the builder
// for chaining. Nothing is validated until the factory runs.
type StoreBuilder struct {
	state      any
	reducer    Reducer
	namespace  string
	getters    GettersFunc
	actions    ActionsFunc
	submodules []Factory
	opts       options
}

// NewStoreBuilder creates a builder. An empty namespace merges the store's
// fields at the top level of its parent.
func NewStoreBuilder(initial any, reducer Reducer, namespace string, opts ...Option) *StoreBuilder {
	b := &StoreBuilder{
		state:     initial,
		reducer:   reducer,
		namespace: namespace,
		getters:   func(any) Getters { return Getters{} },
		actions:   func(ActionContext) Actions { return Actions{} },
		opts:      defaultOptions(),
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// WithActions sets the function that builds the action table.
func (b *StoreBuilder) WithActions(fn ActionsFunc) *StoreBuilder {
	b.actions = fn
	return b
}

// WithGetters sets the function that derives getters from state.
func (b *StoreBuilder) WithGetters(fn GettersFunc) *StoreBuilder {
	b.getters = fn
	return b
}

// WithSubmodule appends a child factory. Registration order is merge order:
// later submodules win on key collisions.
func (b *StoreBuilder) WithSubmodule(f Factory) *StoreBuilder {
	b.submodules = append(b.submodules, f)
	return b
}

// Namespace returns the configured namespace.
func (b *StoreBuilder) Namespace() string {
	return b.namespace
}

// Build snapshots the current configuration into a Factory. Later changes
// to the builder do not affect factories already built.
func (b *StoreBuilder) Build() Factory {
	d := &descriptor{
		state:      b.state,
		reducer:    b.reducer,
		namespace:  b.namespace,
		getters:    b.getters,
		actions:    b.actions,
		submodules: slices.Clone(b.submodules),
		opts:       b.opts,
	}
	return d.instantiate
}

type descriptor struct {
	state      any
	reducer    Reducer
	namespace  string
	getters    GettersFunc
	actions    ActionsFunc
	submodules []Factory
	opts       options
}

type memoizedActions struct {
	actions Actions
	err     error
}

func (d *descriptor) label() string {
	if d.namespace == "" {
		return rootLabel
	}
	return d.namespace
}

func (d *descriptor) instantiate(h *Host, initial any, parent *Module) (*Store, error) {
	switch {
	case d.reducer == nil:
		return nil, shapeMismatch(d.label(), "reducer")
	case d.getters == nil:
		return nil, shapeMismatch(d.label(), "getters func")
	case d.actions == nil:
		return nil, shapeMismatch(d.label(), "actions func")
	}

	seed := d.state
	if !isFalsy(initial) {
		seed = initial
	}

	cell, dispatch, err := h.UseReducer(d.label(), seed, d.reducer)
	if err != nil {
		return nil, err
	}
	state := cell.Get()
	getters := d.getters(state)

	var table Actions
	dispatchAction := func(name ActionName, payload any) (any, error) {
		fn, ok := table[name]
		if !ok || fn == nil {
			return nil, unknownAction(name, d.label())
		}
		return fn(payload)
	}

	memo, err := h.UseMemo([]any{cell.Version(), parent}, func() any {
		var refs []ActionName
		built := d.actions(ActionContext{
			State:          state,
			Getters:        getters,
			Dispatch:       dispatch,
			Parent:         parent,
			DispatchAction: dispatchAction,
			refs:           &refs,
		})
		if built == nil {
			built = Actions{}
		}
		for _, name := range refs {
			if _, ok := built[name]; !ok {
				return memoizedActions{err: unknownAction(name, d.label())}
			}
		}
		return memoizedActions{actions: built}
	})
	if err != nil {
		return nil, err
	}
	m := memo.(memoizedActions)
	if m.err != nil {
		return nil, m.err
	}
	table = m.actions

	base := &Module{
		Namespace:      d.namespace,
		State:          state,
		Getters:        getters,
		Dispatch:       dispatch,
		DispatchAction: dispatchAction,
		Parent:         parent,
		actions:        func() Actions { return table },
	}

	store := NewStore()
	store.SetModule(d.namespace, base)

	for i, sub := range d.submodules {
		if sub == nil {
			return nil, shapeMismatch(d.label(), fmt.Sprintf("submodule %d", i))
		}
		child, err := sub(h, nil, base)
		if err != nil {
			return nil, err
		}
		if err := store.merge(child, d.opts.collisions); err != nil {
			return nil, fmt.Errorf("merge submodule %d into %s: %w", i, d.label(), err)
		}
	}

	d.opts.logger.Debug("store built",
		"store", d.label(),
		"modules", store.Len(),
		"version", cell.Version(),
		"render", h.Renders(),
	)
	d.opts.onBuilt(store)
	return store, nil
}

// isFalsy reports whether an initial-state override counts as absent:
// nil, nil pointers, false, numeric zero, NaN and the empty string.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Complex64, reflect.Complex128:
		return rv.IsZero()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
