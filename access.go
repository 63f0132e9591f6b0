package storex

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// MapState returns the state of the module under namespace ("" for the root).
func MapState(s *Store, namespace string) (any, error) {
	m, err := lookup(s, namespace)
	if err != nil {
		return nil, err
	}
	return m.State, nil
}

// MapGetters returns the getters of the module under namespace.
func MapGetters(s *Store, namespace string) (Getters, error) {
	m, err := lookup(s, namespace)
	if err != nil {
		return nil, err
	}
	return m.Getters, nil
}

// MapActions returns the action table of the module under namespace.
func MapActions(s *Store, namespace string) (Actions, error) {
	m, err := lookup(s, namespace)
	if err != nil {
		return nil, err
	}
	return m.Actions(), nil
}

// MapDispatch returns the dispatch function of the module under namespace.
func MapDispatch(s *Store, namespace string) (DispatchFunc, error) {
	m, err := lookup(s, namespace)
	if err != nil {
		return nil, err
	}
	return m.Dispatch, nil
}

// StateAs returns the state under namespace as T. Values already of type T
// are returned directly; anything else (typically map[string]any) is decoded
// with mapstructure.
func StateAs[T any](s *Store, namespace string) (T, error) {
	var out T
	state, err := MapState(s, namespace)
	if err != nil {
		return out, err
	}
	if v, ok := state.(T); ok {
		return v, nil
	}
	if err := mapstructure.Decode(state, &out); err != nil {
		return out, fmt.Errorf("decode state of %q: %w", namespace, err)
	}
	return out, nil
}

func lookup(s *Store, namespace string) (*Module, error) {
	m, ok := s.Module(namespace)
	if ok && m != nil {
		return m, nil
	}
	if namespace == "" {
		return nil, fmt.Errorf("%w: store has no root module", ErrNamespaceNotFound)
	}
	return nil, fmt.Errorf("%w: %q", ErrNamespaceNotFound, namespace)
}
