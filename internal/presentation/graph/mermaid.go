package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/machine"
)

// LayerOverlay is the runtime state of one layer to highlight on the graph.
type LayerOverlay struct {
	ActiveState      string
	ActiveTransition string
}

// GraphOverlay contains dynamic state data to visualize on the graph, indexed like
// the definition's layers.
type GraphOverlay struct {
	Layers []LayerOverlay
}

// OverlayFromMachine captures the active state and transition of every layer.
func OverlayFromMachine(m *machine.Machine) *GraphOverlay {
	o := &GraphOverlay{}
	for _, l := range m.Layers() {
		var lo LayerOverlay
		if h := l.ActiveState(); h.IsSome() {
			lo.ActiveState = l.State(h).Name()
		}
		if h := l.ActiveTransition(); h.IsSome() {
			lo.ActiveTransition = l.Transition(h).Name()
		}
		o.Layers = append(o.Layers, lo)
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart with one subgraph per layer.
// It applies semantic styling:
// - Entry state: ([Stadium])
// - Default: [Rectangle]
// - Inverted rules are labelled "!rule"
// It also applies overlay styles (current state, running transition) if provided.
func GenerateMermaid(def *definition.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var currentStates, activeLinks []string
	link := 0

	for i, layer := range def.Layers {
		title := layer.Name
		if title == "" {
			title = fmt.Sprintf("layer %d", i)
		}
		if layer.Weight != nil && *layer.Weight != 1 {
			title = fmt.Sprintf("%s (weight %g)", title, *layer.Weight)
		}
		fmt.Fprintf(&sb, "    subgraph L%d[\"%s\"]\n", i, escape(title))

		entry := layer.Entry
		if entry == "" && len(layer.States) > 0 {
			entry = layer.States[0].Name
		}
		for _, s := range layer.States {
			opener, closer := "[", "]"
			if s.Name == entry {
				opener, closer = "([", "])"
			}
			fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", stateID(i, s.Name), opener, escape(s.Name), closer)
		}
		sb.WriteString("    end\n")

		var lo LayerOverlay
		if overlay != nil && i < len(overlay.Layers) {
			lo = overlay.Layers[i]
		}
		if lo.ActiveState != "" {
			currentStates = append(currentStates, stateID(i, lo.ActiveState))
		}

		for _, t := range layer.Transitions {
			rule := t.Rule
			if t.Invert {
				rule = "!" + rule
			}
			label := fmt.Sprintf("%s %gs", rule, t.Duration)
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", stateID(i, t.From), escape(label), stateID(i, t.To))
			if lo.ActiveTransition != "" && t.Name == lo.ActiveTransition {
				activeLinks = append(activeLinks, fmt.Sprint(link))
			}
			link++
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, id := range currentStates {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
		if len(activeLinks) > 0 {
			fmt.Fprintf(&sb, "    linkStyle %s stroke:#fbc02d,stroke-width:4px;\n", strings.Join(activeLinks, ","))
		}
	}

	return sb.String()
}

func stateID(layer int, name string) string {
	return fmt.Sprintf("L%d_%s", layer, sanitizeMermaidID(name))
}

// escape keeps labels inside their double quotes.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
