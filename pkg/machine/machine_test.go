package machine

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/absm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleStateLayer(name string, clip domain.ClipID) *Layer {
	l := NewLayer(WithLayerName(name))
	l.AddState(NewState(name, l.AddNode(NewPlayAnimation(clip))))
	return l
}

func TestMachine_NewHasOneLayer(t *testing.T) {
	m := New()
	assert.Equal(t, 1, m.LayerCount())
	assert.Equal(t, float32(1), m.Layer(0).Weight())
	assert.Zero(t, NewEmpty().LayerCount())
}

func TestMachine_LayerWeights(t *testing.T) {
	clips := newFixedClips().with("a", 2).with("b", 10)
	m := NewEmpty()
	m.AddLayer(singleStateLayer("base", "a"))
	top := singleStateLayer("top", "b")
	top.SetWeight(0.5)
	m.AddLayer(top)

	// Layers are additive: 2*1 + 10*0.5.
	assert.InDelta(t, 7, hipX(m.EvaluatePose(clips, 0.1)), 1e-5)

	top.SetWeight(0)
	assert.InDelta(t, 2, hipX(m.EvaluatePose(clips, 0.1)), 1e-5)
}

func TestMachine_StructuralOps(t *testing.T) {
	m := NewEmpty()
	a := singleStateLayer("a", "a")
	b := singleStateLayer("b", "b")
	c := singleStateLayer("c", "c")

	m.AddLayer(a)
	m.AddLayer(c)
	m.InsertLayer(1, b)
	assert.Equal(t, []*Layer{a, b, c}, m.Layers())

	i, ok := m.FindLayer("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	assert.Same(t, b, m.RemoveLayer(1))
	popped, ok := m.PopLayer()
	require.True(t, ok)
	assert.Same(t, c, popped)
	assert.Equal(t, []*Layer{a}, m.Layers())

	m.PopLayer()
	_, ok = m.PopLayer()
	assert.False(t, ok)

	assert.Panics(t, func() { m.Layer(0) })
	assert.Panics(t, func() { m.InsertLayer(2, a) })
}

func TestMachine_SetParameterChains(t *testing.T) {
	m := New().
		SetParameter("Go", domain.Rule(true)).
		SetParameter("Speed", domain.Weight(0.5))

	v, ok := m.Parameters().Weight("Speed")
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), v)
	assert.Equal(t, 2, m.Parameters().Len())
}

func TestMachine_HooksReachNewLayers(t *testing.T) {
	m := NewEmpty()
	entered := 0
	m.SetLifecycleHooks(domain.LifecycleHooks{
		OnStateEnter: func(*domain.StateEvent) { entered++ },
	})

	l := NewLayer()
	idle := l.AddState(NewState("Idle", l.AddNode(NewPlayAnimation("idle"))))
	walk := l.AddState(NewState("Walk", l.AddNode(NewPlayAnimation("walk"))))
	l.AddTransition(NewTransition("go", idle, walk, 1, "Go"))
	m.AddLayer(l)
	m.SetParameter("Go", domain.Rule(true))

	m.EvaluatePose(nil, 0.1)
	assert.Equal(t, 1, entered)
}

func TestMachine_PoseIsReused(t *testing.T) {
	m := New()
	m.Layer(0).AddState(NewState("Idle", m.Layer(0).AddNode(NewPlayAnimation("a"))))
	clips := newFixedClips().with("a", 1)

	first := m.EvaluatePose(clips, 0.1)
	second := m.EvaluatePose(clips, 0.1)
	assert.Same(t, first, second)
	assert.Same(t, second, m.Pose())
	assert.InDelta(t, 1, hipX(second), 1e-6)
}

func TestMachine_LoggerAndDebugReachNewLayers(t *testing.T) {
	var buf bytes.Buffer
	m := NewEmpty()
	m.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	m.SetDebug(true)

	l := NewLayer(WithLayerName("upper"))
	idle := l.AddState(NewState("Idle", l.AddNode(NewPlayAnimation("idle"))))
	wave := l.AddState(NewState("Wave", l.AddNode(NewPlayAnimation("wave"))))
	l.AddTransition(NewTransition("wave", idle, wave, 1, "Wave"))
	m.AddLayer(l)
	m.SetParameter("Wave", domain.Rule(true))

	assert.True(t, l.Debug())
	m.EvaluatePose(nil, 0.1)
	assert.Contains(t, buf.String(), `msg="leaving state" layer=upper state=Idle`)

	m.SetDebug(false)
	assert.False(t, l.Debug())
	m.InsertLayer(0, NewLayer())
	assert.False(t, m.Layer(0).Debug())
}
