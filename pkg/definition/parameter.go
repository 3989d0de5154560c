package definition

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/absm/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Parameter converts s into a domain parameter. Exactly one field must be set.
func (s ParameterSpec) Parameter() (domain.Parameter, error) {
	set := 0
	var p domain.Parameter
	if s.Rule != nil {
		set++
		p = domain.Rule(*s.Rule)
	}
	if s.Weight != nil {
		set++
		p = domain.Weight(*s.Weight)
	}
	if s.Index != nil {
		set++
		p = domain.Index(*s.Index)
	}
	if set != 1 {
		return domain.Parameter{}, fmt.Errorf("exactly one of rule, weight or index must be set (got %d)", set)
	}
	return p, nil
}

// SpecFromParameter converts a domain parameter into its serializable form.
func SpecFromParameter(p domain.Parameter) ParameterSpec {
	switch p.Kind() {
	case domain.KindRule:
		v, _ := p.AsRule()
		return ParameterSpec{Rule: &v}
	case domain.KindWeight:
		v, _ := p.AsWeight()
		return ParameterSpec{Weight: &v}
	default:
		v, _ := p.AsIndex()
		return ParameterSpec{Index: &v}
	}
}

// ParameterFromValue infers a parameter from a loosely typed value, as found in
// scenario files and command-line flags: booleans become rules, integers become
// indices and other numbers become weights. Maps are decoded as a ParameterSpec.
// Strings are parsed with the same rules.
func ParameterFromValue(v any) (domain.Parameter, error) {
	switch x := v.(type) {
	case domain.Parameter:
		return x, nil
	case bool:
		return domain.Rule(x), nil
	case int:
		return indexFromInt(int64(x))
	case int32:
		return domain.Index(x), nil
	case int64:
		return indexFromInt(x)
	case uint64:
		if x > math.MaxInt32 {
			return domain.Parameter{}, fmt.Errorf("index %d out of range", x)
		}
		return domain.Index(int32(x)), nil
	case float32:
		return domain.Weight(x), nil
	case float64:
		return domain.Weight(float32(x)), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return indexFromInt(i)
		}
		f, err := x.Float64()
		if err != nil {
			return domain.Parameter{}, fmt.Errorf("invalid number %q", x.String())
		}
		return domain.Weight(float32(f)), nil
	case string:
		return parameterFromString(x)
	case map[string]any, map[any]any:
		var spec ParameterSpec
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &spec,
			ErrorUnused: true,
		})
		if err != nil {
			return domain.Parameter{}, err
		}
		if err := dec.Decode(x); err != nil {
			return domain.Parameter{}, fmt.Errorf("failed to decode parameter: %w", err)
		}
		return spec.Parameter()
	default:
		return domain.Parameter{}, fmt.Errorf("unsupported parameter value type %T", v)
	}
}

func indexFromInt(v int64) (domain.Parameter, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return domain.Parameter{}, fmt.Errorf("index %d out of range", v)
	}
	return domain.Index(int32(v)), nil
}

func parameterFromString(s string) (domain.Parameter, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true", "on", "yes":
		return domain.Rule(true), nil
	case "false", "off", "no":
		return domain.Rule(false), nil
	}
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return domain.Index(int32(i)), nil
	}
	if f, err := strconv.ParseFloat(s, 32); err == nil {
		return domain.Weight(float32(f)), nil
	}
	return domain.Parameter{}, fmt.Errorf("cannot infer parameter type of %q", s)
}

// ParseAssignment parses "name=value" as used by --set flags.
func ParseAssignment(s string) (string, domain.Parameter, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", domain.Parameter{}, fmt.Errorf("invalid assignment %q, expected name=value", s)
	}
	p, err := parameterFromString(value)
	if err != nil {
		return "", domain.Parameter{}, fmt.Errorf("parameter %q: %w", name, err)
	}
	return name, p, nil
}
