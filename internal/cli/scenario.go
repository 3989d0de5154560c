package cli

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
)

// Step runs Frames frames of DT seconds after applying Set.
type Step struct {
	DT     float32        `mapstructure:"dt"`
	Frames int            `mapstructure:"frames"`
	Set    map[string]any `mapstructure:"set"`
}

// Scenario is a scripted simulation.
type Scenario struct {
	Steps []Step `mapstructure:"steps"`
}

// ParseScenario decodes a YAML (or JSON) scenario document. Steps without dt use
// defaultDT; steps without frames run one frame.
func ParseScenario(data []byte, defaultDT float32) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	var sc Scenario
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &sc,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	for i := range sc.Steps {
		s := &sc.Steps[i]
		if s.DT == 0 {
			s.DT = defaultDT
		}
		if s.DT < 0 {
			return nil, fmt.Errorf("steps[%d]: dt must not be negative", i)
		}
		if s.Frames == 0 {
			s.Frames = 1
		}
		if s.Frames < 0 {
			return nil, fmt.Errorf("steps[%d]: frames must not be negative", i)
		}
	}
	return &sc, nil
}

// LoadScenario reads a scenario file.
func LoadScenario(path string, defaultDT float32) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return ParseScenario(data, defaultDT)
}

// parameters converts the assignments of a step.
func (s Step) parameters() (map[string]domain.Parameter, error) {
	out := make(map[string]domain.Parameter, len(s.Set))
	for name, v := range s.Set {
		p, err := definition.ParameterFromValue(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		out[name] = p
	}
	return out, nil
}
