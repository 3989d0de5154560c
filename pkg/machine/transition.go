package machine

// Transition is a timed, rule-gated edge between two states of a layer.
type Transition struct {
	name       string
	source     StateHandle
	dest       StateHandle
	duration   float32
	elapsed    float32
	rule       string
	invertRule bool
	easing     Easing
}

// NewTransition creates a transition from source to dest that lasts duration seconds
// and fires while the Rule parameter called rule is true.
func NewTransition(name string, source, dest StateHandle, duration float32, rule string) Transition {
	return Transition{
		name:     name,
		source:   source,
		dest:     dest,
		duration: duration,
		rule:     rule,
		easing:   EaseLinear,
	}
}

func (t *Transition) Name() string { return t.name }
func (t *Transition) Source() StateHandle { return t.source }
func (t *Transition) Dest() StateHandle { return t.dest }
func (t *Transition) Duration() float32 { return t.duration }
func (t *Transition) Elapsed() float32 { return t.elapsed }
func (t *Transition) Rule() string { return t.rule }
func (t *Transition) InvertRule() bool { return t.invertRule }
func (t *Transition) Easing() Easing { return t.easing }

// SetDuration changes the transition length in seconds.
func (t *Transition) SetDuration(d float32) { t.duration = d }

// SetRule changes the Rule parameter that gates the transition.
func (t *Transition) SetRule(rule string) { t.rule = rule }

// SetInvertRule makes the transition fire while its rule is false.
func (t *Transition) SetInvertRule(invert bool) { t.invertRule = invert }

// SetEasing sets the curve applied to the blend factor. Empty means linear.
func (t *Transition) SetEasing(e Easing) {
	if e == "" {
		e = EaseLinear
	}
	t.easing = e
}

// Progress returns elapsed/duration clamped to [0, 1].
// A transition with no duration is always complete.
func (t *Transition) Progress() float32 {
	if t.duration <= 0 {
		return 1
	}
	p := t.elapsed / t.duration
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// BlendFactor returns the weight of the destination pose: Progress passed through the
// transition's easing.
func (t *Transition) BlendFactor() float32 {
	return t.easing.Apply(t.Progress())
}

// IsDone reports whether the transition has reached its destination.
func (t *Transition) IsDone() bool {
	return t.Progress() >= 1
}

// Reset rewinds the transition.
func (t *Transition) Reset() {
	t.elapsed = 0
}

func (t *Transition) update(dt float32) {
	t.elapsed += dt
}
