package absm_test

import (
	"fmt"

	"github.com/aretw0/absm"
	"github.com/aretw0/absm/pkg/clip"
	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/dsl"
)

// ExampleNew builds a two state machine with the fluent builder and runs it until the
// cross-fade completes.
func ExampleNew() {
	b := dsl.New().Parameter("Moving", domain.Rule(false))
	l := b.Layer("locomotion")
	l.Play("idle", "idle").Play("walk", "walk")
	l.State("Idle", "idle").State("Walk", "walk")
	l.Transition("Idle", "Walk").Duration(0.75).When("Moving")

	m, err := b.Build()
	if err != nil {
		panic(err)
	}

	engine := absm.New(m, absm.WithClipSource(clip.Placeholder("idle", "walk")))
	engine.SetParameter("Moving", domain.Rule(true))

	for range 4 {
		pose := engine.Tick(0.25)
		root, _ := pose.Bone("root")
		s := engine.Snapshot().Layers[0]
		fmt.Printf("x=%.2f state=%q transition=%q\n", root.Position[0], s.ActiveState, s.ActiveTransition)
	}
	// Output:
	// x=0.00 state="" transition="Idle->Walk"
	// x=0.33 state="" transition="Idle->Walk"
	// x=1.00 state="Walk" transition=""
	// x=1.00 state="Walk" transition=""
}
