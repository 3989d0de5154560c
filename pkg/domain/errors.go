package domain

import "errors"

// ErrMachineNotFound is returned when a machine ID cannot be found in a store.
var ErrMachineNotFound = errors.New("machine not found")

// ErrInvalidDefinition is returned when a persisted machine cannot be turned into a runtime graph.
var ErrInvalidDefinition = errors.New("invalid machine definition")
