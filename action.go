package storex

// Action is the input to a Reducer.
//
// Actions are value types. Once created they should not be mutated; build
// them with NewAction.
//
// Example:
//
//	store.Root().Dispatch(storex.NewAction("SET_LOADING", true))
type Action struct {
	Type    string
	Payload any
}

// NewAction creates an Action with the given type and payload.
func NewAction(actionType string, payload any) Action {
	return Action{
		Type:    actionType,
		Payload: payload,
	}
}

// Reducer computes the next state from the current state and an action.
// It must be pure. Unrecognised actions are the reducer's business; the
// conventional failure is an error wrapping ErrUnknownAction.
type Reducer func(state any, action Action) (any, error)

// DispatchFunc requests a state replacement by running the reducer.
// Reducer errors are returned unchanged.
type DispatchFunc func(action Action) error
