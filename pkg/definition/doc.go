/*
Package definition converts blending state machines to and from a declarative,
serializable form.

A Definition describes the full configuration of a machine: parameters, layers with
their weights, masks and entry states, the pose-node graph of every layer, states and
transitions. Per-frame data (cached poses, queued events, elapsed transition time) is
never part of a definition; building a machine always starts from rewound transitions.

Definitions are usually written in YAML:

	parameters:
	  Go: {rule: false}
	layers:
	  - name: base
	    nodes:
	      - {id: idle, play: {clip: idle}}
	      - {id: walk, play: {clip: walk}}
	    states:
	      - {name: Idle, root: idle}
	      - {name: Walk, root: walk}
	    transitions:
	      - {name: Idle->Walk, from: Idle, to: Walk, duration: 0.3, rule: Go}

Parse decodes YAML or JSON through a generic map and mapstructure, so unknown keys are
reported instead of silently dropped. Build validates the whole document first and
returns every problem at once; nothing is built from an invalid definition.
*/
package definition
