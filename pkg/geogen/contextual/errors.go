package contextual

import "errors"

var (
	// ErrDuplicateSymbol is returned when a configuration object resolves
	// to a geometrical object that already represents another one.
	ErrDuplicateSymbol  = errors.New("geometrical object already has a configuration object")
	ErrNothingToRemove  = errors.New("no incrementally added object to remove")
	ErrUnknownContainer = errors.New("container does not belong to the manager")
)
