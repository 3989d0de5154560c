package observability_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/machine"
	"github.com/aretw0/absm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine() *machine.Machine {
	m := machine.New(machine.WithLayerName("base"))
	l := m.Layer(0)
	idle := l.AddState(machine.NewState("Idle", l.AddNode(machine.NewPlayAnimation("idle"))))
	walk := l.AddState(machine.NewState("Walk", l.AddNode(machine.NewPlayAnimation("walk"))))
	l.AddTransition(machine.NewTransition("Idle->Walk", idle, walk, 0.2, "Go"))
	return m
}

func TestCollector_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := observability.NewCollector(reg)
	require.NoError(t, err)

	m := newMachine()
	m.SetLifecycleHooks(c.Hooks())
	m.SetParameter("Go", domain.Rule(true))

	m.EvaluatePose(nil, 0.1)
	c.ObserveFrame(time.Millisecond)

	expected := `
# HELP absm_transition_active Whether a layer is currently transitioning (1) or settled (0)
# TYPE absm_transition_active gauge
absm_transition_active{layer="base"} 1
# HELP absm_transitions_started_total Total number of transitions started
# TYPE absm_transitions_started_total counter
absm_transitions_started_total{layer="base",transition="Idle->Walk"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"absm_transition_active", "absm_transitions_started_total"))

	m.EvaluatePose(nil, 0.1)
	c.ObserveFrame(time.Millisecond)

	expected = `
# HELP absm_frames_total Total number of evaluated frames
# TYPE absm_frames_total counter
absm_frames_total 2
# HELP absm_state_changes_total Total number of completed transitions, by destination state
# TYPE absm_state_changes_total counter
absm_state_changes_total{layer="base",state="Walk"} 1
# HELP absm_transition_active Whether a layer is currently transitioning (1) or settled (0)
# TYPE absm_transition_active gauge
absm_transition_active{layer="base"} 0
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"absm_frames_total", "absm_state_changes_total", "absm_transition_active"))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewCollector(reg)
	require.NoError(t, err)
	_, err = observability.NewCollector(reg)
	assert.Error(t, err)
}

func TestCollector_Unregistered(t *testing.T) {
	c, err := observability.NewCollector(nil)
	require.NoError(t, err)
	c.ObserveFrame(time.Microsecond)
	// Empty vectors export nothing: only the frame counter and histogram remain.
	assert.Equal(t, 2, testutil.CollectAndCount(c))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m := newMachine()
	m.SetLifecycleHooks(observability.LogHooks(logger))
	m.SetParameter("Go", domain.Rule(true))
	m.EvaluatePose(nil, 0.3)

	out := buf.String()
	assert.Contains(t, out, "msg=state_leave layer=base state=Idle")
	assert.Contains(t, out, `transition=Idle->Walk from=Idle to=Walk`)
	assert.Contains(t, out, "msg=active_state_changed layer=base state=Walk")
}
