package machine

import (
	"github.com/aretw0/absm/pkg/domain"
	"github.com/tanema/gween"
)

// PoseWeight is the weight of one blend input: either a constant or the value of a
// Weight parameter.
type PoseWeight struct {
	constant  float32
	parameter string
}

// ConstantWeight returns a fixed weight.
func ConstantWeight(v float32) PoseWeight {
	return PoseWeight{constant: v}
}

// ParameterWeight returns a weight read from the Weight parameter called name.
func ParameterWeight(name string) PoseWeight {
	return PoseWeight{parameter: name}
}

// IsParameter reports whether the weight is read from a parameter.
func (w PoseWeight) IsParameter() bool { return w.parameter != "" }

// Parameter returns the parameter name, or "" for constant weights.
func (w PoseWeight) Parameter() string { return w.parameter }

// Constant returns the constant value; it is meaningless for parameter weights.
func (w PoseWeight) Constant() float32 { return w.constant }

// Resolve returns the effective weight. An absent or mistyped parameter weighs 0.
func (w PoseWeight) Resolve(params *domain.ParameterContainer) float32 {
	if w.parameter == "" {
		return w.constant
	}
	if params == nil {
		return 0
	}
	v, ok := params.Weight(w.parameter)
	if !ok {
		return 0
	}
	return v
}

// BlendInput is one weighted input of a BlendAnimations node.
type BlendInput struct {
	Weight PoseWeight
	Node   NodeHandle
}

// BlendAnimations mixes its inputs into a per-bone weighted average.
type BlendAnimations struct {
	Inputs []BlendInput

	output domain.Pose
}

// NewBlendAnimations creates a weighted blend of inputs.
func NewBlendAnimations(inputs ...BlendInput) *BlendAnimations {
	return &BlendAnimations{Inputs: inputs}
}

func (n *BlendAnimations) Kind() NodeKind { return KindBlendAnimations }

func (n *BlendAnimations) Children() []NodeHandle {
	out := make([]NodeHandle, len(n.Inputs))
	for i, in := range n.Inputs {
		out[i] = in.Node
	}
	return out
}

func (n *BlendAnimations) evaluate(ctx *evalContext) *domain.Pose {
	n.output.Reset()

	var total float32
	for _, in := range n.Inputs {
		// Inputs are evaluated even at zero weight so their clips keep advancing.
		pose := ctx.eval(in.Node)
		w := in.Weight.Resolve(ctx.params)
		n.output.BlendWith(pose, w)
		total += w
	}

	switch {
	case total <= 0:
		n.output.Reset()
	case total != 1:
		n.output.Scale(1 / total)
	}
	return &n.output
}

// IndexedBlendInput is one selectable input of a BlendAnimationsByIndex node.
// BlendTime is the cross-fade duration in seconds used when this input becomes the
// selected one; zero means an instant cut.
type IndexedBlendInput struct {
	Node      NodeHandle
	BlendTime float32
}

// BlendAnimationsByIndex forwards the pose of the input selected by an Index parameter.
// The index is clamped to the valid range and an absent parameter selects input 0.
// When the selection changes and the new input has a positive BlendTime, the node
// cross-fades from the previously selected input using Easing.
type BlendAnimationsByIndex struct {
	IndexParameter string
	Inputs         []IndexedBlendInput
	Easing         Easing

	current  int
	previous int
	fade     *gween.Tween
	output   domain.Pose
}

// NewBlendAnimationsByIndex creates an indexed selector driven by the Index parameter name.
func NewBlendAnimationsByIndex(name string, inputs ...IndexedBlendInput) *BlendAnimationsByIndex {
	return &BlendAnimationsByIndex{
		IndexParameter: name,
		Inputs:         inputs,
		current:        -1,
		previous:       -1,
	}
}

func (n *BlendAnimationsByIndex) Kind() NodeKind { return KindBlendAnimationsByIndex }

func (n *BlendAnimationsByIndex) Children() []NodeHandle {
	out := make([]NodeHandle, len(n.Inputs))
	for i, in := range n.Inputs {
		out[i] = in.Node
	}
	return out
}

// Selected returns the currently selected input, or -1 before the first evaluation.
func (n *BlendAnimationsByIndex) Selected() int { return n.current }

// IsFading reports whether a cross-fade between two inputs is in progress.
func (n *BlendAnimationsByIndex) IsFading() bool { return n.fade != nil }

// Reset forgets the selection and drops any cross-fade. The next evaluation selects
// its input without fading.
func (n *BlendAnimationsByIndex) Reset() {
	n.current = -1
	n.previous = -1
	n.fade = nil
}

func (n *BlendAnimationsByIndex) selectIndex(ctx *evalContext) int {
	var idx int
	if ctx.params != nil {
		if v, ok := ctx.params.Index(n.IndexParameter); ok {
			idx = int(v)
		}
	}
	if idx < 0 {
		idx = 0
	}
	if last := len(n.Inputs) - 1; idx > last {
		idx = last
	}
	return idx
}

func (n *BlendAnimationsByIndex) evaluate(ctx *evalContext) *domain.Pose {
	n.output.Reset()
	if len(n.Inputs) == 0 {
		return &n.output
	}

	idx := n.selectIndex(ctx)
	switch {
	case n.current < 0 || n.current >= len(n.Inputs):
		n.current = idx
		n.fade = nil
	case idx != n.current:
		n.previous = n.current
		n.current = idx
		n.fade = nil
		if bt := n.Inputs[idx].BlendTime; bt > 0 {
			n.fade = gween.New(0, 1, bt, n.Easing.TweenFunc())
		}
	}

	if n.fade == nil {
		n.output.CopyFrom(ctx.eval(n.Inputs[n.current].Node))
		return &n.output
	}

	f, done := n.fade.Update(ctx.dt)
	if f > 1 {
		f = 1
	}
	n.output.BlendWith(ctx.eval(n.Inputs[n.previous].Node), 1-f)
	n.output.BlendWith(ctx.eval(n.Inputs[n.current].Node), f)
	if done {
		n.fade = nil
	}
	return &n.output
}
