// Package storex composes modular, namespaced state stores.
//
// A store is declared with a StoreBuilder: an initial state, a pure Reducer,
// getters derived from state and a table of named actions. Builders compile
// into a Factory; invoking the factory on a Host instantiates the store,
// instantiates its submodules and merges everything into one Store.
//
// # Example
//
//	counter := storex.NewStoreBuilder(0, reduce, "counter").
//		WithGetters(func(state any) storex.Getters {
//			return storex.Getters{"double": state.(int) * 2}
//		}).
//		WithActions(func(ctx storex.ActionContext) storex.Actions {
//			return storex.Actions{
//				"inc": func(any) (any, error) {
//					return nil, ctx.Dispatch(storex.NewAction("INC", nil))
//				},
//			}
//		}).
//		Build()
//
//	host := storex.NewHost()
//	var store *storex.Store
//	_ = host.Render(func(h *storex.Host) (err error) {
//		store, err = counter(h, nil, nil)
//		return err
//	})
//
//	_ = host.Act(func() error {
//		actions, err := storex.MapActions(store, "counter")
//		if err != nil {
//			return err
//		}
//		_, err = actions.Call("inc", nil)
//		return err
//	})
//
// # Hosts and cells
//
// A Host replaces a UI framework's state hook. It keeps one Cell per
// UseReducer call, matched by call order across renders. Dispatching replaces
// the cell value and marks the host dirty; Rerender or Act produces a fresh
// Store that sees the new state.
//
// # Namespaces
//
// A store built with a namespace exposes its module only under that key
// (Store.Module("ns")). Without one, its module is the Store's root. Submodules
// are merged after the parent's own module in registration order; by default
// the later key wins, WithCollisionPolicy(CollisionError) makes collisions fail.
//
// # Actions
//
// Actions receive an ActionContext with the render's state, getters, dispatch,
// the parent module, and DispatchAction for calling siblings by name.
// ActionContext.Ref gives a handle to a sibling whose existence is checked when
// the table is built.
package storex
