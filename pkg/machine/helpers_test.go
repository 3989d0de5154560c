package machine

import (
	"github.com/aretw0/absm/pkg/domain"
)

// fixedClips returns one constant pose per clip and records every advance.
type fixedClips struct {
	poses    map[domain.ClipID]*domain.Pose
	advanced map[domain.ClipID]float32
}

func newFixedClips() *fixedClips {
	return &fixedClips{
		poses:    make(map[domain.ClipID]*domain.Pose),
		advanced: make(map[domain.ClipID]float32),
	}
}

// with registers clip with bone "hip" at (x, 0, 0).
func (c *fixedClips) with(clip domain.ClipID, x float32) *fixedClips {
	p := domain.NewPose()
	t := domain.IdentityTransform()
	t.Position = domain.Vec3{x, 0, 0}
	p.Set("hip", t)
	c.poses[clip] = p
	return c
}

func (c *fixedClips) Advance(clip domain.ClipID, dt float32) *domain.Pose {
	c.advanced[clip] += dt
	return c.poses[clip]
}

func hipX(p *domain.Pose) float32 {
	t, ok := p.Bone("hip")
	if !ok {
		return -1
	}
	return t.Position[0]
}

// idleWalk builds the two-state layer used throughout the tests.
func idleWalk(duration float32) (*Machine, StateHandle, StateHandle, TransitionHandle) {
	m := New(WithLayerName("base"))
	l := m.Layer(0)
	idle := l.AddState(NewState("Idle", l.AddNode(NewPlayAnimation("idle"))))
	walk := l.AddState(NewState("Walk", l.AddNode(NewPlayAnimation("walk"))))
	tr := l.AddTransition(NewTransition("Idle->Walk", idle, walk, duration, "Go"))
	return m, idle, walk, tr
}
