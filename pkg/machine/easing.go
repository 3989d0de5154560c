package machine

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// Easing names the curve applied to a blend factor in [0, 1].
// The empty Easing is linear.
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseInQuad     Easing = "in_quad"
	EaseOutQuad    Easing = "out_quad"
	EaseInOutQuad  Easing = "in_out_quad"
	EaseInCubic    Easing = "in_cubic"
	EaseOutCubic   Easing = "out_cubic"
	EaseInOutCubic Easing = "in_out_cubic"
	EaseInSine     Easing = "in_sine"
	EaseOutSine    Easing = "out_sine"
	EaseInOutSine  Easing = "in_out_sine"
)

var easings = map[Easing]ease.TweenFunc{
	EaseLinear:     ease.Linear,
	EaseInQuad:     ease.InQuad,
	EaseOutQuad:    ease.OutQuad,
	EaseInOutQuad:  ease.InOutQuad,
	EaseInCubic:    ease.InCubic,
	EaseOutCubic:   ease.OutCubic,
	EaseInOutCubic: ease.InOutCubic,
	EaseInSine:     ease.InSine,
	EaseOutSine:    ease.OutSine,
	EaseInOutSine:  ease.InOutSine,
}

// ParseEasing validates an easing name. The empty string maps to EaseLinear.
func ParseEasing(name string) (Easing, error) {
	if name == "" {
		return EaseLinear, nil
	}
	e := Easing(name)
	if _, ok := easings[e]; !ok {
		return "", fmt.Errorf("unknown easing %q (known: %v)", name, EasingNames())
	}
	return e, nil
}

// EasingNames lists the supported easing names in ascending order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for e := range easings {
		names = append(names, string(e))
	}
	sort.Strings(names)
	return names
}

// TweenFunc returns the gween easing function of e. Unknown names fall back to linear.
func (e Easing) TweenFunc() ease.TweenFunc {
	if fn, ok := easings[e]; ok {
		return fn
	}
	return ease.Linear
}

// Apply maps a linear factor t in [0, 1] through the curve.
func (e Easing) Apply(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return e.TweenFunc()(t, 0, 1, 1)
}
