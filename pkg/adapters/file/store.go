// Package file provides a ports.MachineStore backed by JSON files on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
)

const (
	ext    = ".json"
	tmpExt = ".tmp"
)

// Store implements ports.MachineStore using the local filesystem.
// It stores one JSON file per machine in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".absm/machines".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".absm", "machines")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(machineID string) (string, error) {
	if machineID == "" {
		return "", fmt.Errorf("machineID cannot be empty")
	}
	if strings.ContainsAny(machineID, `/\`) || machineID == "." || machineID == ".." {
		return "", fmt.Errorf("invalid machineID %q", machineID)
	}
	return filepath.Join(s.BasePath, machineID+ext), nil
}

// Save persists the definition to a JSON file atomically.
// It writes to a temporary file first, syncs it and then renames it to the destination.
func (s *Store) Save(ctx context.Context, machineID string, def *definition.Definition) error {
	destPath, err := s.path(machineID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure machine directory: %w", err)
	}

	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	// 1. Create temp file in the same directory (rename must not cross filesystems).
	// The extension keeps it out of List whatever the machine ID.
	tmpFile, err := os.CreateTemp(s.BasePath, "."+machineID+"-*"+tmpExt)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	// 2. Write and fsync
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 3. Close before rename (Windows cannot rename open files)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 4. Replace. Windows refuses to rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing machine file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads the definition file of machineID.
func (s *Store) Load(ctx context.Context, machineID string) (*definition.Definition, error) {
	filePath, err := s.path(machineID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrMachineNotFound
		}
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}

	var def definition.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definition: %w", err)
	}
	return &def, nil
}

// Delete removes the machine file.
func (s *Store) Delete(ctx context.Context, machineID string) error {
	filePath, err := s.path(machineID)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete machine file: %w", err)
	}
	return nil
}

// List returns the stored machine IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	sort.Strings(ids)
	return ids, nil
}
