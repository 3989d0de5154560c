// Package middleware decorates machine stores with cross-cutting behavior.
package middleware

import "github.com/aretw0/absm/pkg/ports"

// Middleware allows wrapping a MachineStore to add behavior.
type Middleware func(ports.MachineStore) ports.MachineStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.MachineStore, mws ...Middleware) ports.MachineStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
