package storex_test

import (
	"fmt"

	"github.com/comalice/storex"
)

func ExampleStoreBuilder() {
	reduce := func(state any, a storex.Action) (any, error) {
		switch a.Type {
		case "INC":
			return state.(int) + 1, nil
		default:
			return nil, storex.ErrUnknownAction
		}
	}

	counter := storex.NewStoreBuilder(0, reduce, "counter").
		WithGetters(func(state any) storex.Getters {
			return storex.Getters{"double": state.(int) * 2}
		}).
		WithActions(func(ctx storex.ActionContext) storex.Actions {
			return storex.Actions{
				"inc": func(any) (any, error) {
					return nil, ctx.Dispatch(storex.NewAction("INC", nil))
				},
			}
		}).
		Build()

	host := storex.NewHost()
	defer host.Dispose()

	var store *storex.Store
	_ = host.Render(func(h *storex.Host) (err error) {
		store, err = counter(h, nil, nil)
		return err
	})

	_ = host.Act(func() error {
		actions, err := storex.MapActions(store, "counter")
		if err != nil {
			return err
		}
		_, err = actions.Call("inc", nil)
		return err
	})

	state, _ := storex.MapState(store, "counter")
	getters, _ := storex.MapGetters(store, "counter")
	fmt.Println(state, getters["double"])
	// Output: 1 2
}

func ExampleStoreBuilder_WithSubmodule() {
	noop := func(state any, _ storex.Action) (any, error) { return state, nil }

	auth := storex.NewStoreBuilder("anonymous", noop, "auth").Build()
	cart := storex.NewStoreBuilder([]string{}, noop, "cart").Build()

	app := storex.NewStoreBuilder("ready", noop, "").
		WithSubmodule(auth).
		WithSubmodule(cart).
		Build()

	host := storex.NewHost()
	var store *storex.Store
	_ = host.Render(func(h *storex.Host) (err error) {
		store, err = app(h, nil, nil)
		return err
	})

	root, _ := storex.MapState(store, "")
	user, _ := storex.MapState(store, "auth")
	fmt.Println(root, user, store.Namespaces())
	// Output: ready anonymous [auth cart]
}
