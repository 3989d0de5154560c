/*
Package absm is an animation blending state machine for skeletal poses.

A machine is a stack of layers. Each layer owns a graph of pose nodes (clip
playback, weighted blends, index selection), a set of named states rooted in that
graph, and timed transitions gated by boolean rule parameters. Every frame the
active state (or the running transition's cross-fade) produces a pose; layer
poses are masked and summed by layer weight into the final pose.

# Concept

The core lives in pkg/machine and never performs I/O. The host supplies clip
sampling through machine.ClipSource, sets parameters, and calls Tick once per
frame. This package wraps a machine with the ambient pieces a host usually wants:
a logger, lifecycle hooks, Prometheus metrics and a snapshot of the runtime state.

# Usage

Build a machine from a definition file, or with the fluent builder in pkg/dsl.

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/absm"
		"github.com/aretw0/absm/pkg/clip"
		"github.com/aretw0/absm/pkg/domain"
	)

	func main() {
		engine, err := absm.Open("locomotion.yaml",
			absm.WithClipSource(clip.Placeholder("idle", "walk")),
		)
		if err != nil {
			log.Fatal(err)
		}

		engine.SetParameter("Moving", domain.Rule(true))
		for range 60 {
			pose := engine.Tick(1.0 / 60)
			_ = pose // hand the pose to the renderer
		}
		fmt.Println(engine.Snapshot().Layers[0].ActiveState)
	}

# Definitions

Definitions are YAML or JSON documents (pkg/definition) listing parameters and
layers. They are validated as a whole and rejected with every problem reported at
once; a machine can be converted back to a definition for persistence through the
stores in pkg/adapters.
*/
package absm
