package dsl

import (
	"fmt"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/machine"
)

// Builder manages the machine construction.
type Builder struct {
	params map[string]domain.Parameter
	layers []*LayerBuilder
}

// New creates a new machine builder.
func New() *Builder {
	return &Builder{
		params: make(map[string]domain.Parameter),
	}
}

// Parameter declares a parameter with its initial value.
func (b *Builder) Parameter(name string, p domain.Parameter) *Builder {
	b.params[name] = p
	return b
}

// Layer returns the builder of the layer called name, creating it if needed.
func (b *Builder) Layer(name string) *LayerBuilder {
	for _, lb := range b.layers {
		if lb.spec.Name == name {
			return lb
		}
	}
	lb := &LayerBuilder{spec: definition.LayerSpec{Name: name}}
	b.layers = append(b.layers, lb)
	return lb
}

// Definition returns the definition described so far.
func (b *Builder) Definition() *definition.Definition {
	def := &definition.Definition{Version: definition.CurrentVersion}
	if len(b.params) > 0 {
		def.Parameters = make(map[string]definition.ParameterSpec, len(b.params))
		for name, p := range b.params {
			def.Parameters[name] = definition.SpecFromParameter(p)
		}
	}
	for _, lb := range b.layers {
		def.Layers = append(def.Layers, lb.build())
	}
	return def
}

// Build compiles the description into a machine.
func (b *Builder) Build(opts ...machine.LayerOption) (*machine.Machine, error) {
	m, err := definition.Build(b.Definition(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build machine: %w", err)
	}
	return m, nil
}

// LayerBuilder provides a fluent API for configuring a layer.
type LayerBuilder struct {
	spec        definition.LayerSpec
	blends      []*BlendBuilder
	indexed     []*IndexBuilder
	transitions []*TransitionBuilder
}

// Weight sets the layer weight.
func (l *LayerBuilder) Weight(w float32) *LayerBuilder {
	l.spec.Weight = &w
	return l
}

// Mask excludes bones from the layer output.
func (l *LayerBuilder) Mask(bones ...domain.BoneID) *LayerBuilder {
	for _, b := range bones {
		l.spec.Mask = append(l.spec.Mask, string(b))
	}
	return l
}

// Entry selects the state the layer starts in and returns to on reset.
func (l *LayerBuilder) Entry(state string) *LayerBuilder {
	l.spec.Entry = state
	return l
}

// Debug enables Info logging of state changes.
func (l *LayerBuilder) Debug() *LayerBuilder {
	l.spec.Debug = true
	return l
}

// Events sets the event queue capacity.
func (l *LayerBuilder) Events(capacity int) *LayerBuilder {
	l.spec.EventCapacity = capacity
	return l
}

// Play adds a node that plays clip.
func (l *LayerBuilder) Play(id string, clip domain.ClipID) *LayerBuilder {
	l.spec.Nodes = append(l.spec.Nodes, definition.NodeSpec{
		ID:   id,
		Play: &definition.PlaySpec{Clip: string(clip)},
	})
	return l
}

// Blend adds a weighted blend node.
func (l *LayerBuilder) Blend(id string) *BlendBuilder {
	bb := &BlendBuilder{index: len(l.spec.Nodes)}
	l.spec.Nodes = append(l.spec.Nodes, definition.NodeSpec{ID: id, Blend: &definition.BlendSpec{}})
	l.blends = append(l.blends, bb)
	return bb
}

// ByIndex adds a node that selects one input with the Index parameter called param.
func (l *LayerBuilder) ByIndex(id, param string) *IndexBuilder {
	ib := &IndexBuilder{index: len(l.spec.Nodes)}
	l.spec.Nodes = append(l.spec.Nodes, definition.NodeSpec{
		ID:           id,
		BlendByIndex: &definition.BlendByIndexSpec{Parameter: param},
	})
	l.indexed = append(l.indexed, ib)
	return ib
}

// State adds a state rendered by the node root. An empty root yields an empty pose.
func (l *LayerBuilder) State(name, root string) *LayerBuilder {
	l.spec.States = append(l.spec.States, definition.StateSpec{Name: name, Root: root})
	return l
}

// Transition adds a transition between two states. It is named "from->to" unless
// renamed.
func (l *LayerBuilder) Transition(from, to string) *TransitionBuilder {
	tb := &TransitionBuilder{spec: definition.TransitionSpec{
		Name: from + "->" + to,
		From: from,
		To:   to,
	}}
	l.transitions = append(l.transitions, tb)
	return tb
}

func (l *LayerBuilder) build() definition.LayerSpec {
	spec := l.spec
	spec.Nodes = append([]definition.NodeSpec(nil), l.spec.Nodes...)
	for _, bb := range l.blends {
		blend := &definition.BlendSpec{Inputs: bb.inputs}
		spec.Nodes[bb.index].Blend = blend
	}
	for _, ib := range l.indexed {
		n := &spec.Nodes[ib.index]
		idx := *n.BlendByIndex
		idx.Easing = ib.easing
		idx.Inputs = ib.inputs
		n.BlendByIndex = &idx
	}
	spec.Transitions = nil
	for _, tb := range l.transitions {
		spec.Transitions = append(spec.Transitions, tb.spec)
	}
	return spec
}
