package dsl

import (
	"errors"
	"testing"

	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/machine"
)

func TestBuilder_SimpleMachine(t *testing.T) {
	// 1. Describe the machine
	b := New()
	b.Parameter("Go", domain.Rule(false)).
		Parameter("Speed", domain.Weight(0.5))

	base := b.Layer("base")
	base.Play("idle", "idle").
		Play("walk", "walk").
		Play("run", "run")
	base.Blend("move").
		Input("walk", 1).
		InputBy("run", "Speed")
	base.State("Idle", "idle").
		State("Move", "move")
	base.Transition("Idle", "Move").Duration(0.3).When("Go").Ease("out_quad")
	base.Transition("Move", "Idle").Duration(0.3).Unless("Go")

	// 2. Compile
	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	// 3. Verify the layer
	if m.LayerCount() != 1 {
		t.Fatalf("Expected 1 layer, got %d", m.LayerCount())
	}
	l := m.Layer(0)
	if l.Name() != "base" {
		t.Errorf("Expected layer 'base', got '%s'", l.Name())
	}
	if len(l.Nodes()) != 4 {
		t.Errorf("Expected 4 nodes, got %d", len(l.Nodes()))
	}

	idle, ok := l.FindState("Idle")
	if !ok || l.EntryState() != idle {
		t.Errorf("Expected 'Idle' to be the entry state")
	}

	h, ok := l.FindTransition("Idle->Move")
	if !ok {
		t.Fatalf("Expected transition 'Idle->Move'")
	}
	if got := l.Transition(h).Easing(); got != machine.EaseOutQuad {
		t.Errorf("Expected easing out_quad, got %s", got)
	}
	h, _ = l.FindTransition("Move->Idle")
	if !l.Transition(h).InvertRule() {
		t.Errorf("Expected 'Move->Idle' to be inverted")
	}

	root := l.State(idle).Root()
	if _, ok := l.Node(root).(*machine.PlayAnimation); !ok {
		t.Errorf("Expected Idle root to be a PlayAnimation, got %T", l.Node(root))
	}
}

func TestBuilder_IndexedLayer(t *testing.T) {
	b := New()
	upper := b.Layer("upper").Weight(0.5).Mask("hip").Events(8).Debug()
	upper.ByIndex("gestures", "Gesture").
		Ease("in_sine").
		Input("wave", 0).
		Input("point", 0.2)
	upper.Play("wave", "wave").Play("point", "point")
	upper.State("Gesture", "gestures")

	if b.Layer("upper") != upper {
		t.Fatalf("Layer() should return the existing builder")
	}

	def := b.Definition()
	spec := def.Layers[0].Nodes[0].BlendByIndex
	if spec == nil || len(spec.Inputs) != 2 || spec.Easing != "in_sine" {
		t.Fatalf("unexpected blend_by_index spec: %+v", spec)
	}

	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	l := m.Layer(0)
	if l.Weight() != 0.5 || !l.Debug() || l.EventCapacity() != 8 {
		t.Errorf("layer settings not applied: weight=%v debug=%v capacity=%d", l.Weight(), l.Debug(), l.EventCapacity())
	}
	if l.Mask().ShouldAnimate("hip") {
		t.Errorf("Expected 'hip' to be masked")
	}
}

func TestBuilder_InvalidReferences(t *testing.T) {
	b := New()
	l := b.Layer("broken")
	l.State("A", "missing")
	l.Transition("A", "B").When("Go")

	_, err := b.Build()
	if err == nil {
		t.Fatal("Expected Build() to fail")
	}
	if !errors.Is(err, domain.ErrInvalidDefinition) {
		t.Errorf("Expected ErrInvalidDefinition, got %v", err)
	}
}
