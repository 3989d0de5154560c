package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for definitions.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension. Anything but .json is YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a YAML or JSON document. Unknown keys are errors.
// The result is not validated; see Validate.
func Parse(data []byte) (*Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	return Decode(raw)
}

// Decode converts a generic document (as produced by YAML or JSON decoders) into a
// Definition.
func Decode(raw map[string]any) (*Definition, error) {
	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &def,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	if def.Version == 0 {
		def.Version = CurrentVersion
	}
	return &def, nil
}

// LoadFile reads and parses a definition file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Marshal encodes def in the requested format.
func Marshal(def *Definition, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(def, "", "  ")
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown definition format %q", format)
	}
}

// WriteFile encodes def with the format implied by path and writes it.
func WriteFile(path string, def *Definition) error {
	data, err := Marshal(def, FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
