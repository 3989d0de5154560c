package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/ports"
)

type validationMiddleware struct {
	next ports.MachineStore
}

// NewValidationMiddleware rejects invalid definitions before they reach the store and
// after they are read back from it.
func NewValidationMiddleware() Middleware {
	return func(next ports.MachineStore) ports.MachineStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, machineID string, def *definition.Definition) error {
	if err := definition.Validate(def); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
	}
	return m.next.Save(ctx, machineID, def)
}

func (m *validationMiddleware) Load(ctx context.Context, machineID string) (*definition.Definition, error) {
	def, err := m.next.Load(ctx, machineID)
	if err != nil {
		return nil, err
	}
	if err := definition.Validate(def); err != nil {
		return nil, fmt.Errorf("stored machine %s: %w: %w", machineID, domain.ErrInvalidDefinition, err)
	}
	return def, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, machineID string) error {
	return m.next.Delete(ctx, machineID)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
