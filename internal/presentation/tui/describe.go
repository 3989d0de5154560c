package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/absm/pkg/definition"
)

// Describe renders a definition as a markdown document for glamour.
func Describe(title string, def *definition.Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Format version %d, %d layer(s).\n\n", def.Version, len(def.Layers))

	if len(def.Parameters) > 0 {
		sb.WriteString("## Parameters\n\n| Name | Kind | Value |\n|---|---|---|\n")
		names := make([]string, 0, len(def.Parameters))
		for name := range def.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p, err := def.Parameters[name].Parameter()
			if err != nil {
				fmt.Fprintf(&sb, "| `%s` | invalid | %v |\n", name, err)
				continue
			}
			fmt.Fprintf(&sb, "| `%s` | %s | %v |\n", name, p.Kind(), p.Value())
		}
		sb.WriteString("\n")
	}

	for i, l := range def.Layers {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("layer %d", i)
		}
		fmt.Fprintf(&sb, "## Layer %d: %s\n\n", i, name)

		weight := float32(1)
		if l.Weight != nil {
			weight = *l.Weight
		}
		entry := l.Entry
		if entry == "" && len(l.States) > 0 {
			entry = l.States[0].Name
		}
		fmt.Fprintf(&sb, "- **Weight:** %g\n- **Entry:** %s\n", weight, entry)
		if len(l.Mask) > 0 {
			fmt.Fprintf(&sb, "- **Masked bones:** %s\n", strings.Join(l.Mask, ", "))
		}
		sb.WriteString("\n")

		if len(l.States) > 0 {
			sb.WriteString("| State | Root | Node |\n|---|---|---|\n")
			nodes := make(map[string]definition.NodeSpec, len(l.Nodes))
			for _, n := range l.Nodes {
				nodes[n.ID] = n
			}
			for _, s := range l.States {
				fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", s.Name, s.Root, nodeSummary(nodes[s.Root]))
			}
			sb.WriteString("\n")
		}

		if len(l.Transitions) > 0 {
			sb.WriteString("| Transition | From | To | Rule | Duration | Easing |\n|---|---|---|---|---|---|\n")
			for _, t := range l.Transitions {
				rule := t.Rule
				if t.Invert {
					rule = "not " + rule
				}
				easing := t.Easing
				if easing == "" {
					easing = "linear"
				}
				fmt.Fprintf(&sb, "| %s | %s | %s | `%s` | %gs | %s |\n", t.Name, t.From, t.To, rule, t.Duration, easing)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func nodeSummary(n definition.NodeSpec) string {
	switch {
	case n.Play != nil:
		return fmt.Sprintf("play `%s`", n.Play.Clip)
	case n.Blend != nil:
		parts := make([]string, 0, len(n.Blend.Inputs))
		for _, in := range n.Blend.Inputs {
			switch {
			case in.Parameter != "":
				parts = append(parts, fmt.Sprintf("%s×%s", in.Node, in.Parameter))
			case in.Weight != nil:
				parts = append(parts, fmt.Sprintf("%s×%g", in.Node, *in.Weight))
			default:
				parts = append(parts, in.Node)
			}
		}
		return "blend " + strings.Join(parts, " + ")
	case n.BlendByIndex != nil:
		parts := make([]string, 0, len(n.BlendByIndex.Inputs))
		for _, in := range n.BlendByIndex.Inputs {
			parts = append(parts, in.Node)
		}
		return fmt.Sprintf("select by `%s` from %s", n.BlendByIndex.Parameter, strings.Join(parts, ", "))
	default:
		return "empty"
	}
}
