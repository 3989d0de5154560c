/*
Package dsl provides a fluent Go DSL for programmatically constructing blending state
machines.

It lets developers describe layers, pose nodes, states and transitions by name, with a
type-safe builder instead of YAML or JSON files. This is useful for procedurally
generated machines, unit tests and IDE autocompletion.

Example usage:

	b := dsl.New()
	b.Parameter("Go", domain.Rule(false))

	base := b.Layer("base")
	base.Play("idle", "idle").Play("walk", "walk")
	base.State("Idle", "idle").State("Walk", "walk")
	base.Transition("Idle", "Walk").Duration(0.3).When("Go")

	m, err := b.Build()

Builder produces a definition.Definition, so every machine built by the DSL goes through
the same validation as one loaded from disk.
*/
package dsl
