package storex

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned when an action name or action type has no handler.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNamespaceNotFound is returned by the Map helpers when a store has no
	// module under the requested namespace (or no root module).
	ErrNamespaceNotFound = errors.New("namespace not found")

	// ErrShapeMismatch is returned when a store is configured with a nil
	// reducer, getters func, actions func or submodule factory.
	ErrShapeMismatch = errors.New("store shape mismatch")

	// ErrNamespaceCollision is returned under CollisionError when two modules
	// claim the same key while merging.
	ErrNamespaceCollision = errors.New("namespace collision")

	// ErrHookOrder is returned when a Host sees a different hook sequence
	// than it did on the previous render.
	ErrHookOrder = errors.New("hook order changed between renders")

	// ErrRenderLoop is returned when Act keeps finding dirty cells after
	// maxActPasses re-renders.
	ErrRenderLoop = errors.New("render loop did not settle")

	// ErrNotRendered is returned when re-rendering a Host that never rendered.
	ErrNotRendered = errors.New("host has not rendered")

	// ErrHostDisposed is returned when rendering a disposed Host.
	ErrHostDisposed = errors.New("host disposed")
)

func unknownAction(name ActionName, store string) error {
	if store == "" {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return fmt.Errorf("%w: %q in %s", ErrUnknownAction, name, store)
}

func collision(key string) error {
	return fmt.Errorf("%w: %q", ErrNamespaceCollision, key)
}

func shapeMismatch(store, what string) error {
	return fmt.Errorf("%w: %s has nil %s", ErrShapeMismatch, store, what)
}
