package definition

import (
	"fmt"
	"math"
	"sort"

	"github.com/aretw0/absm/pkg/machine"
)

// Validate checks def for structural problems and returns an *AggregateError listing
// all of them, or nil.
func Validate(def *Definition) error {
	var c collector
	if def == nil {
		c.addf("definition", "is empty")
		return c.err()
	}
	if def.Version < 0 || def.Version > CurrentVersion {
		c.addf("version", "unsupported version %d (max %d)", def.Version, CurrentVersion)
	}

	names := make([]string, 0, len(def.Parameters))
	for name := range def.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := fmt.Sprintf("parameters.%s", name)
		if name == "" {
			c.addf(path, "parameter name is empty")
		}
		if _, err := def.Parameters[name].Parameter(); err != nil {
			c.addf(path, "%v", err)
		}
	}

	for i := range def.Layers {
		validateLayer(&c, fmt.Sprintf("layers[%d]", i), &def.Layers[i])
	}
	return c.err()
}

func validateLayer(c *collector, path string, l *LayerSpec) {
	if l.Weight != nil && !finite(*l.Weight) {
		c.addf(path+".weight", "must be a finite number")
	}
	if l.EventCapacity < 0 {
		c.addf(path+".event_capacity", "must not be negative")
	}
	for j, bone := range l.Mask {
		if bone == "" {
			c.addf(fmt.Sprintf("%s.mask[%d]", path, j), "bone name is empty")
		}
	}

	nodes := make(map[string]*NodeSpec, len(l.Nodes))
	for j := range l.Nodes {
		n := &l.Nodes[j]
		np := fmt.Sprintf("%s.nodes[%d]", path, j)
		switch {
		case n.ID == "":
			c.addf(np+".id", "node id is empty")
		case nodes[n.ID] != nil:
			c.addf(np+".id", "duplicate node id %q", n.ID)
		default:
			nodes[n.ID] = n
		}
	}
	for j := range l.Nodes {
		validateNode(c, fmt.Sprintf("%s.nodes[%d]", path, j), &l.Nodes[j], nodes)
	}
	if cycle := findCycle(l.Nodes, nodes); cycle != "" {
		c.addf(path+".nodes", "node graph contains a cycle through %q", cycle)
	}

	states := make(map[string]bool, len(l.States))
	for j, s := range l.States {
		sp := fmt.Sprintf("%s.states[%d]", path, j)
		switch {
		case s.Name == "":
			c.addf(sp+".name", "state name is empty")
		case states[s.Name]:
			c.addf(sp+".name", "duplicate state name %q", s.Name)
		default:
			states[s.Name] = true
		}
		if s.Root != "" && nodes[s.Root] == nil {
			c.addf(sp+".root", "unknown node %q", s.Root)
		}
	}
	if l.Entry != "" && !states[l.Entry] {
		c.addf(path+".entry", "unknown state %q", l.Entry)
	}

	for j, t := range l.Transitions {
		tp := fmt.Sprintf("%s.transitions[%d]", path, j)
		if !states[t.From] {
			c.addf(tp+".from", "unknown state %q", t.From)
		}
		if !states[t.To] {
			c.addf(tp+".to", "unknown state %q", t.To)
		}
		if t.Rule == "" {
			c.addf(tp+".rule", "rule parameter name is empty")
		}
		if !finite(t.Duration) || t.Duration < 0 {
			c.addf(tp+".duration", "must be a non-negative number")
		}
		if _, err := machine.ParseEasing(t.Easing); err != nil {
			c.addf(tp+".easing", "%v", err)
		}
	}
}

func validateNode(c *collector, path string, n *NodeSpec, nodes map[string]*NodeSpec) {
	variants := 0
	if n.Play != nil {
		variants++
	}
	if n.Blend != nil {
		variants++
	}
	if n.BlendByIndex != nil {
		variants++
	}
	if variants != 1 {
		c.addf(path, "exactly one of play, blend or blend_by_index must be set (got %d)", variants)
		return
	}

	ref := func(p, id string) {
		if nodes[id] == nil {
			c.addf(p, "unknown node %q", id)
		}
	}

	switch {
	case n.Play != nil:
		if n.Play.Clip == "" {
			c.addf(path+".play.clip", "clip is empty")
		}
	case n.Blend != nil:
		for k, in := range n.Blend.Inputs {
			ip := fmt.Sprintf("%s.blend.inputs[%d]", path, k)
			ref(ip+".node", in.Node)
			switch {
			case in.Weight != nil && in.Parameter != "":
				c.addf(ip, "weight and parameter are mutually exclusive")
			case in.Weight == nil && in.Parameter == "":
				c.addf(ip, "one of weight or parameter must be set")
			case in.Weight != nil && !finite(*in.Weight):
				c.addf(ip+".weight", "must be a finite number")
			}
		}
	case n.BlendByIndex != nil:
		b := n.BlendByIndex
		if b.Parameter == "" {
			c.addf(path+".blend_by_index.parameter", "index parameter name is empty")
		}
		if _, err := machine.ParseEasing(b.Easing); err != nil {
			c.addf(path+".blend_by_index.easing", "%v", err)
		}
		for k, in := range b.Inputs {
			ip := fmt.Sprintf("%s.blend_by_index.inputs[%d]", path, k)
			ref(ip+".node", in.Node)
			if !finite(in.BlendTime) || in.BlendTime < 0 {
				c.addf(ip+".blend_time", "must be a non-negative number")
			}
		}
	}
}

// children lists the node ids n reads from.
func (n *NodeSpec) children() []string {
	var out []string
	switch {
	case n.Blend != nil:
		for _, in := range n.Blend.Inputs {
			out = append(out, in.Node)
		}
	case n.BlendByIndex != nil:
		for _, in := range n.BlendByIndex.Inputs {
			out = append(out, in.Node)
		}
	}
	return out
}

// findCycle returns the id of a node on a cycle, or "".
func findCycle(order []NodeSpec, nodes map[string]*NodeSpec) string {
	const (
		unvisited = iota
		visiting
		done
	)
	color := make(map[string]int, len(nodes))

	var visit func(id string) string
	visit = func(id string) string {
		n := nodes[id]
		if n == nil {
			return ""
		}
		switch color[id] {
		case visiting:
			return id
		case done:
			return ""
		}
		color[id] = visiting
		for _, child := range n.children() {
			if hit := visit(child); hit != "" {
				return hit
			}
		}
		color[id] = done
		return ""
	}

	for _, n := range order {
		if hit := visit(n.ID); hit != "" {
			return hit
		}
	}
	return ""
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
