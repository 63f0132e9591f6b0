package storex

// GettersFunc derives getters from the current state.
type GettersFunc func(state any) Getters

// ActionsFunc builds a module's action table from its context.
type ActionsFunc func(ctx ActionContext) Actions

// ActionContext is what an ActionsFunc sees when building the action table.
type ActionContext struct {
	State    any
	Getters  Getters
	Dispatch DispatchFunc
	// Parent is the container the module was instantiated under, or nil.
	Parent *Module
	// DispatchAction calls a sibling action by name. Lookup happens at call
	// time, so it may target actions defined later in the same table.
	DispatchAction DispatchActionFunc

	refs *[]ActionName
}

// Ref returns a handle to a sibling action. Every name passed to Ref while
// the table is being built must exist in the finished table, otherwise the
// factory fails with ErrUnknownAction.
func (c ActionContext) Ref(name ActionName) ActionRef {
	if c.refs != nil {
		*c.refs = append(*c.refs, name)
	}
	return ActionRef{name: name, dispatch: c.DispatchAction}
}

// ActionRef is a checked reference to a sibling action.
type ActionRef struct {
	name     ActionName
	dispatch DispatchActionFunc
}

// Name returns the referenced action name.
func (r ActionRef) Name() ActionName {
	return r.name
}

// Call invokes the referenced action with payload.
func (r ActionRef) Call(payload any) (any, error) {
	if r.dispatch == nil {
		return nil, unknownAction(r.name, "")
	}
	return r.dispatch(r.name, payload)
}
