package ports

import (
	"context"
	"testing"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDefinition() *definition.Definition {
	weight := float32(0.5)
	rule := false
	return &definition.Definition{
		Version: definition.CurrentVersion,
		Parameters: map[string]definition.ParameterSpec{
			"Go": {Rule: &rule},
		},
		Layers: []definition.LayerSpec{{
			Name:   "base",
			Weight: &weight,
			Mask:   []string{"arm"},
			Nodes: []definition.NodeSpec{
				{ID: "idle", Play: &definition.PlaySpec{Clip: "idle"}},
				{ID: "walk", Play: &definition.PlaySpec{Clip: "walk"}},
			},
			States: []definition.StateSpec{
				{Name: "Idle", Root: "idle"},
				{Name: "Walk", Root: "walk"},
			},
			Transitions: []definition.TransitionSpec{
				{Name: "Idle->Walk", From: "Idle", To: "Walk", Duration: 0.25, Rule: "Go"},
			},
		}},
	}
}

// RunMachineStoreContract runs a suite of tests to verify that a MachineStore
// implementation adheres to the defined interface contract.
func RunMachineStoreContract(t *testing.T, store MachineStore) {
	ctx := context.Background()
	machineID := "contract-" + NewMachineID()

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Save
		def := contractDefinition()
		err := store.Save(ctx, machineID, def)
		require.NoError(t, err, "Save should not return error")

		// 2. Load
		loaded, err := store.Load(ctx, machineID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, def, loaded)

		// 3. Loaded definitions must still build
		_, err = definition.Build(loaded)
		assert.NoError(t, err)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		def := contractDefinition()
		def.Layers[0].Name = "renamed"
		require.NoError(t, store.Save(ctx, machineID, def))

		loaded, err := store.Load(ctx, machineID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", loaded.Layers[0].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+machineID)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, machineID, contractDefinition()))

		err := store.Delete(ctx, machineID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, machineID)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound, "Load after Delete should return ErrMachineNotFound")

		assert.NoError(t, store.Delete(ctx, machineID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := machineID + "-1"
		id2 := machineID + "-2"
		require.NoError(t, store.Save(ctx, id1, contractDefinition()))
		require.NoError(t, store.Save(ctx, id2, contractDefinition()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
