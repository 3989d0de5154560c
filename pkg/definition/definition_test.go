package definition

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Definition {
	t.Helper()
	def, err := LoadFile(filepath.Join("testdata", "locomotion.yaml"))
	require.NoError(t, err)
	return def
}

func TestParse_Fixture(t *testing.T) {
	def := loadFixture(t)

	assert.Equal(t, 1, def.Version)
	require.Len(t, def.Layers, 2)
	assert.Len(t, def.Parameters, 3)

	loco := def.Layers[0]
	assert.Equal(t, "locomotion", loco.Name)
	require.NotNil(t, loco.Nodes[3].Blend)
	assert.Equal(t, "Speed", loco.Nodes[3].Blend.Inputs[1].Parameter)
	assert.Equal(t, float32(0.25), loco.Transitions[0].Duration)
	assert.True(t, loco.Transitions[1].Invert)

	upper := def.Layers[1]
	require.NotNil(t, upper.Weight)
	assert.Equal(t, float32(0.75), *upper.Weight)
	assert.Equal(t, []string{"hip", "left_leg", "right_leg"}, upper.Mask)
	assert.Equal(t, float32(0.2), upper.Nodes[0].BlendByIndex.Inputs[1].BlendTime)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("layers:\n  - name: a\n    colour: red\n"))
	assert.ErrorContains(t, err, "colour")
}

func TestParse_JSON(t *testing.T) {
	def, err := Parse([]byte(`{"layers":[{"name":"a","states":[{"name":"S"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, def.Version)
	assert.Equal(t, "S", def.Layers[0].States[0].Name)
}

func TestBuild_Fixture(t *testing.T) {
	m, err := Build(loadFixture(t))
	require.NoError(t, err)
	require.Equal(t, 2, m.LayerCount())

	loco := m.Layer(0)
	idle, ok := loco.FindState("Idle")
	require.True(t, ok)
	assert.Equal(t, idle, loco.EntryState())
	assert.Equal(t, idle, loco.ActiveState())

	h, ok := loco.FindTransition("Idle->Move")
	require.True(t, ok)
	assert.Equal(t, machine.EaseInOutSine, loco.Transition(h).Easing())

	upper := m.Layer(1)
	assert.Equal(t, float32(0.75), upper.Weight())
	assert.False(t, upper.Mask().ShouldAnimate("hip"))
	assert.Equal(t, 16, upper.EventCapacity())

	speed, ok := m.Parameters().Weight("Speed")
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), speed)
}

func TestBuild_DrivesTransitions(t *testing.T) {
	m, err := Build(loadFixture(t))
	require.NoError(t, err)
	loco := m.Layer(0)

	m.SetParameter("Run", domain.Rule(true))
	for range 3 {
		m.EvaluatePose(nil, 0.1)
	}
	move, _ := loco.FindState("Move")
	assert.Equal(t, move, loco.ActiveState())

	m.SetParameter("Run", domain.Rule(false))
	m.EvaluatePose(nil, 0.1)
	back, _ := loco.FindTransition("Move->Idle")
	assert.Equal(t, back, loco.ActiveTransition(), "inverted rule fires when Run is false")
}

func TestBuild_InvalidDefinition(t *testing.T) {
	data := []byte(`
parameters:
  Broken: {rule: true, weight: 1}
layers:
  - entry: Nowhere
    nodes:
      - {id: a, play: {clip: a}}
      - {id: a, play: {clip: b}}
      - {id: loop, blend: {inputs: [{node: loop, weight: 1}]}}
      - {id: both, play: {clip: x}, blend: {inputs: []}}
      - {id: idx, blend_by_index: {parameter: i, easing: wobble, inputs: [{node: ghost, blend_time: -1}]}}
    states:
      - {name: S, root: missing}
    transitions:
      - {from: S, to: T, duration: -1}
`)
	def, err := Parse(data)
	require.NoError(t, err)

	m, err := Build(def)
	assert.Nil(t, m)
	require.ErrorIs(t, err, domain.ErrInvalidDefinition)

	problems := ValidationErrors(err)
	paths := make([]string, 0, len(problems))
	for _, p := range problems {
		var ve *ValidationError
		require.ErrorAs(t, p, &ve)
		paths = append(paths, ve.Path)
	}
	for _, want := range []string{
		"parameters.Broken",
		"layers[0].entry",
		"layers[0].nodes[1].id",
		"layers[0].nodes[3]",
		"layers[0].nodes[4].blend_by_index.easing",
		"layers[0].nodes[4].blend_by_index.inputs[0].node",
		"layers[0].nodes[4].blend_by_index.inputs[0].blend_time",
		"layers[0].nodes",
		"layers[0].states[0].root",
		"layers[0].transitions[0].to",
		"layers[0].transitions[0].rule",
		"layers[0].transitions[0].duration",
	} {
		assert.Contains(t, paths, want)
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			original, err := Build(loadFixture(t))
			require.NoError(t, err)

			// Advance so transient state exists and must not survive.
			original.SetParameter("Run", domain.Rule(true))
			original.EvaluatePose(nil, 0.1)

			def := FromMachine(original)
			data, err := Marshal(def, format)
			require.NoError(t, err)

			decoded, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, def, decoded)

			rebuilt, err := Build(decoded)
			require.NoError(t, err)
			assert.Equal(t, def, FromMachine(rebuilt))

			loco := rebuilt.Layer(0)
			assert.Empty(t, loco.Events())
			assert.True(t, loco.ActiveTransition().IsNone())
			for _, h := range loco.Transitions() {
				assert.Zero(t, loco.Transition(h).Elapsed())
			}
			assert.Zero(t, rebuilt.Pose().Len())
		})
	}
}

func TestWriteFile(t *testing.T) {
	def := loadFixture(t)
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteFile(path, def))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"blend_by_index"`)

	back, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, def.Layers[1].Mask, back.Layers[1].Mask)
}

func TestParameterFromValue(t *testing.T) {
	tests := []struct {
		in   any
		want domain.Parameter
	}{
		{true, domain.Rule(true)},
		{3, domain.Index(3)},
		{int64(-2), domain.Index(-2)},
		{0.5, domain.Weight(0.5)},
		{"false", domain.Rule(false)},
		{"1", domain.Index(1)},
		{"0.25", domain.Weight(0.25)},
		{map[string]any{"weight": 2}, domain.Weight(2)},
		{json.Number("4"), domain.Index(4)},
		{json.Number("0.75"), domain.Weight(0.75)},
	}
	for _, tt := range tests {
		got, err := ParameterFromValue(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}

	_, err := ParameterFromValue("fast")
	assert.Error(t, err)
	_, err = ParameterFromValue(map[string]any{"rule": true, "index": 1})
	assert.Error(t, err)
	_, err = ParameterFromValue([]int{1})
	assert.Error(t, err)
}

func TestParseAssignment(t *testing.T) {
	name, p, err := ParseAssignment("Go=true")
	require.NoError(t, err)
	assert.Equal(t, "Go", name)
	assert.Equal(t, domain.Rule(true), p)

	_, _, err = ParseAssignment("=1")
	assert.Error(t, err)
	_, _, err = ParseAssignment("Go")
	assert.Error(t, err)
}

func TestOpen_Example(t *testing.T) {
	m, err := Open(filepath.Join("..", "..", "examples", "locomotion", "machine.yaml"))
	require.NoError(t, err)
	require.Equal(t, 2, m.LayerCount())
	assert.Equal(t, "gestures", m.Layer(1).Name())
	assert.True(t, m.Layer(1).Mask().ShouldAnimate("hand"))
	assert.False(t, m.Layer(1).Mask().ShouldAnimate("hip"))
}

func TestFromMachine_RemovedNodePanics(t *testing.T) {
	t.Run("state root", func(t *testing.T) {
		m := machine.New()
		l := m.Layer(0)
		n := l.AddNode(machine.NewPlayAnimation("idle"))
		l.AddState(machine.NewState("A", n))
		l.RemoveNode(n)

		assert.PanicsWithValue(t,
			`definition: layer "" references removed node `+n.String(),
			func() { FromMachine(m) })
	})

	t.Run("blend input", func(t *testing.T) {
		m := machine.New()
		l := m.Layer(0)
		idle := l.AddNode(machine.NewPlayAnimation("idle"))
		mix := l.AddNode(machine.NewBlendAnimations(machine.BlendInput{
			Weight: machine.ConstantWeight(1),
			Node:   idle,
		}))
		l.AddState(machine.NewState("A", mix))
		l.RemoveNode(idle)

		assert.Panics(t, func() { FromMachine(m) })
	})

	t.Run("state without root", func(t *testing.T) {
		m := machine.New()
		m.Layer(0).AddState(machine.NewState("A", machine.NodeHandle{}))

		def := FromMachine(m)
		assert.Empty(t, def.Layers[0].States[0].Root)
	})
}
