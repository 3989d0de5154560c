package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/absm/internal/presentation/graph"
	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/dsl"
)

func locomotion() *dsl.Builder {
	b := dsl.New()
	l := b.Layer("base")
	l.Play("idle", "idle").Play("walk", "walk")
	l.State("Idle", "idle").State("Walk.Fast", "walk")
	l.Transition("Idle", "Walk.Fast").Duration(0.5).When("Go")
	l.Transition("Walk.Fast", "Idle").Duration(0.25).Unless("Go")

	upper := b.Layer("upper").Weight(0.5)
	upper.Play("wave", "wave")
	upper.State("Wave", "wave")
	return b
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		def      *definition.Definition
		contains []string
	}{
		{
			name: "Layers As Subgraphs",
			def:  locomotion().Definition(),
			contains: []string{
				"graph LR",
				"subgraph L0[\"base\"]",
				"subgraph L1[\"upper (weight 0.5)\"]",
			},
		},
		{
			name: "Entry State Shape",
			def:  locomotion().Definition(),
			contains: []string{
				"L0_Idle([\"Idle\"])",
				"L0_Walk_Fast[\"Walk.Fast\"]",
				"L1_Wave([\"Wave\"])",
			},
		},
		{
			name: "Transition Labels",
			def:  locomotion().Definition(),
			contains: []string{
				"L0_Idle -- \"Go 0.5s\" --> L0_Walk_Fast",
				"L0_Walk_Fast -- \"!Go 0.25s\" --> L0_Idle",
			},
		},
		{
			name: "Unnamed Layer",
			def: &definition.Definition{Layers: []definition.LayerSpec{{
				States: []definition.StateSpec{{Name: "S"}},
			}}},
			contains: []string{"subgraph L0[\"layer 0\"]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.def, nil)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\ngot:\n%s", want, got)
				}
			}
			if strings.Contains(got, "classDef") {
				t.Errorf("overlay styles rendered without an overlay")
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	b := locomotion()
	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	m.SetParameter("Go", domain.Rule(true))
	m.EvaluatePose(nil, 0.1)

	overlay := graph.OverlayFromMachine(m)
	if overlay.Layers[0].ActiveTransition != "Idle->Walk.Fast" {
		t.Fatalf("unexpected overlay: %+v", overlay.Layers[0])
	}

	got := graph.GenerateMermaid(b.Definition(), overlay)
	for _, want := range []string{
		"class L1_Wave current;",
		"linkStyle 0 stroke:#fbc02d",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q\ngot:\n%s", want, got)
		}
	}
	if strings.Contains(got, "class L0_Idle current;") {
		t.Errorf("a transitioning layer has no current state")
	}
}
