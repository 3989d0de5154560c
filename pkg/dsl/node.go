package dsl

import "github.com/aretw0/absm/pkg/definition"

// BlendBuilder configures the inputs of a weighted blend node.
type BlendBuilder struct {
	index  int
	inputs []definition.BlendInputSpec
}

// Input adds node with a constant weight.
func (b *BlendBuilder) Input(node string, weight float32) *BlendBuilder {
	b.inputs = append(b.inputs, definition.BlendInputSpec{Node: node, Weight: &weight})
	return b
}

// InputBy adds node weighted by the Weight parameter called param.
func (b *BlendBuilder) InputBy(node, param string) *BlendBuilder {
	b.inputs = append(b.inputs, definition.BlendInputSpec{Node: node, Parameter: param})
	return b
}

// IndexBuilder configures the inputs of an indexed selector node.
type IndexBuilder struct {
	index  int
	easing string
	inputs []definition.IndexedInputSpec
}

// Input appends node as the next selectable input. blendTime is the cross-fade
// duration used when the selector switches to it.
func (b *IndexBuilder) Input(node string, blendTime float32) *IndexBuilder {
	b.inputs = append(b.inputs, definition.IndexedInputSpec{Node: node, BlendTime: blendTime})
	return b
}

// Ease sets the curve of the cross-fades.
func (b *IndexBuilder) Ease(name string) *IndexBuilder {
	b.easing = name
	return b
}

// TransitionBuilder provides a fluent API for configuring a transition.
type TransitionBuilder struct {
	spec definition.TransitionSpec
}

// Named overrides the generated transition name.
func (t *TransitionBuilder) Named(name string) *TransitionBuilder {
	t.spec.Name = name
	return t
}

// Duration sets the transition length in seconds.
func (t *TransitionBuilder) Duration(seconds float32) *TransitionBuilder {
	t.spec.Duration = seconds
	return t
}

// When gates the transition on the Rule parameter called rule.
func (t *TransitionBuilder) When(rule string) *TransitionBuilder {
	t.spec.Rule = rule
	t.spec.Invert = false
	return t
}

// Unless gates the transition on the Rule parameter called rule being false.
func (t *TransitionBuilder) Unless(rule string) *TransitionBuilder {
	t.spec.Rule = rule
	t.spec.Invert = true
	return t
}

// Ease sets the curve applied to the blend factor.
func (t *TransitionBuilder) Ease(name string) *TransitionBuilder {
	t.spec.Easing = name
	return t
}
