package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/dsl"
)

func TestDescribe(t *testing.T) {
	b := dsl.New().Parameter("Go", domain.Rule(false))
	l := b.Layer("base").Mask("tail")
	l.Play("idle", "idle").Play("walk", "walk")
	l.Blend("mix").Input("idle", 1).InputBy("walk", "Speed")
	l.ByIndex("pick", "Gait").Input("idle", 0).Input("walk", 0.2)
	l.State("Idle", "idle").State("Mix", "mix").State("Pick", "pick")
	l.Transition("Idle", "Mix").Duration(0.5).When("Go")
	l.Transition("Mix", "Idle").Duration(0.5).Unless("Go").Ease("in_out_sine")

	md := Describe("locomotion", b.Definition())

	for _, want := range []string{
		"# locomotion",
		"| `Go` | rule | false |",
		"## Layer 0: base",
		"- **Entry:** Idle",
		"- **Masked bones:** tail",
		"| Idle | `idle` | play `idle` |",
		"blend idle×1 + walk×Speed",
		"select by `Gait` from idle, walk",
		"| Idle->Mix | Idle | Mix | `Go` | 0.5s | linear |",
		"`not Go`",
		"in_out_sine",
	} {
		assert.Contains(t, md, want)
	}
}

func TestStyler_PlainOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewStyler(&buf)

	assert.Equal(t, "Idle", s.State("Idle"))
	assert.Equal(t, "Idle->Walk", s.Transition("Idle->Walk"))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.NotContains(t, buf.String(), "\x1b[")
}
