package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/ports"
)

// SaveMachine validates the definition at path and stores it. An empty id is replaced
// by a fresh one; the stored id is returned.
func SaveMachine(ctx context.Context, store ports.MachineStore, path, id string) (string, error) {
	def, err := definition.LoadFile(path)
	if err != nil {
		return "", err
	}
	if err := definition.Validate(def); err != nil {
		return "", err
	}
	if id == "" {
		id = ports.NewMachineID()
	}
	if err := store.Save(ctx, id, def); err != nil {
		return "", fmt.Errorf("save machine %s: %w", id, err)
	}
	return id, nil
}

// LoadMachine writes the stored definition to w in format.
func LoadMachine(ctx context.Context, store ports.MachineStore, id string, format definition.Format, w io.Writer) error {
	def, err := store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load machine %s: %w", id, err)
	}
	data, err := definition.Marshal(def, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ListMachines writes the stored ids to w, one per line, sorted.
func ListMachines(ctx context.Context, store ports.MachineStore, w io.Writer) error {
	ids, err := store.List(ctx)
	if err != nil {
		return err
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
