package inspect_test

import (
	"testing"

	"github.com/comalice/storex"
	"github.com/comalice/storex/storetest"
)

func counterReducer(state any, a storex.Action) (any, error) {
	n := state.(int)
	switch a.Type {
	case "INC":
		return n + 1, nil
	case "ADD":
		return n + a.Payload.(int), nil
	}
	return n, nil
}

func counterActions(ctx storex.ActionContext) storex.Actions {
	return storex.Actions{
		"increment": func(any) (any, error) {
			return nil, ctx.Dispatch(storex.NewAction("INC", nil))
		},
	}
}

func counterGetters(state any) storex.Getters {
	return storex.Getters{"double": state.(int) * 2}
}

// counterFactory builds a root counter with a "child" counter nested under it.
func counterFactory(opts ...storex.Option) storex.Factory {
	child := storex.NewStoreBuilder(10, counterReducer, "child", opts...).
		WithActions(counterActions).
		Build()
	return storex.NewStoreBuilder(1, counterReducer, "", opts...).
		WithGetters(counterGetters).
		WithActions(counterActions).
		WithSubmodule(child).
		Build()
}

func mountCounter(t *testing.T, opts ...storex.Option) (*storetest.Mount, **storex.Store) {
	t.Helper()
	store := new(*storex.Store)
	m := storetest.MaterializeT(t, storetest.Invoke(counterFactory(opts...)), func(s *storex.Store) { *store = s })
	return m, store
}
