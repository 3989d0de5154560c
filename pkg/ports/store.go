package ports

import (
	"context"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/google/uuid"
)

// MachineStore persists machine definitions.
// Only configuration is stored; per-frame state is rebuilt on load.
type MachineStore interface {
	// Save persists the definition under machineID, replacing any previous version.
	Save(ctx context.Context, machineID string, def *definition.Definition) error

	// Load retrieves the definition stored under machineID.
	// Returns domain.ErrMachineNotFound if it does not exist.
	Load(ctx context.Context, machineID string) (*definition.Definition, error)

	// Delete removes the definition. Deleting a missing ID is not an error.
	Delete(ctx context.Context, machineID string) error

	// List returns the stored machine IDs.
	List(ctx context.Context) ([]string, error)
}

// NewMachineID returns a fresh random machine ID.
func NewMachineID() string {
	return uuid.NewString()
}
