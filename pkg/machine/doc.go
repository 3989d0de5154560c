/*
Package machine implements the animation blending state machine (ABSM).

A Machine owns a set of shared parameters and an ordered list of layers. Every Layer is
an independent state graph backed by its own pose-node sub-graph:

  - PoseNode: produces a pose. PlayAnimation samples a clip, BlendAnimations mixes inputs by
    weight, BlendAnimationsByIndex selects one input by an Index parameter.
  - State: a named output node of the pose graph, e.g. Idle, Walk, Run.
  - Transition: a timed edge between two states that starts when its Rule parameter is true.
  - LayerMask: bones excluded from a layer's contribution.

Nodes, states and transitions live in generational pools owned by their layer and refer to
each other only through pool handles. Accessing a removed or foreign handle panics.

# Frame Evaluation

	m := machine.New()
	layer := m.Layer(0)

	idle := layer.AddNode(machine.NewPlayAnimation("idle"))
	walk := layer.AddNode(machine.NewPlayAnimation("walk"))
	idleState := layer.AddState(machine.NewState("Idle", idle))
	walkState := layer.AddState(machine.NewState("Walk", walk))
	layer.AddTransition(machine.NewTransition("Idle->Walk", idleState, walkState, 0.3, "Go"))

	m.SetParameter("Go", domain.Rule(true))
	pose := m.EvaluatePose(clips, dt)

The machine is single-threaded: EvaluatePose performs no I/O, never blocks and must not be
called concurrently with any other method. Hosts that share a machine across goroutines must
hold a lock for the whole call.
*/
package machine
