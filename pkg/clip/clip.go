package clip

import (
	"math"
	"sort"

	"github.com/aretw0/absm/pkg/domain"
)

// VectorKey is a 3D vector value at a point in time (seconds).
type VectorKey struct {
	Time  float32     `json:"time" yaml:"time"`
	Value domain.Vec3 `json:"value" yaml:"value"`
}

// QuatKey is a rotation value at a point in time (seconds).
type QuatKey struct {
	Time  float32     `json:"time" yaml:"time"`
	Value domain.Quat `json:"value" yaml:"value"`
}

// Channel holds the keyframes of one bone. Empty tracks leave the matching component
// at its identity value.
type Channel struct {
	Bone     domain.BoneID `json:"bone" yaml:"bone"`
	Position []VectorKey   `json:"position,omitempty" yaml:"position,omitempty"`
	Rotation []QuatKey     `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Scale    []VectorKey   `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Clip is a named animation (walk, run, wave...).
type Clip struct {
	Name     domain.ClipID `json:"name" yaml:"name"`
	Duration float32       `json:"duration" yaml:"duration"`
	Loop     bool          `json:"loop,omitempty" yaml:"loop,omitempty"`
	Channels []Channel     `json:"channels" yaml:"channels"`
}

// normalize sorts every track by time and derives a missing duration from the keys.
func (c *Clip) normalize() {
	var last float32
	for i := range c.Channels {
		ch := &c.Channels[i]
		sort.SliceStable(ch.Position, func(a, b int) bool { return ch.Position[a].Time < ch.Position[b].Time })
		sort.SliceStable(ch.Rotation, func(a, b int) bool { return ch.Rotation[a].Time < ch.Rotation[b].Time })
		sort.SliceStable(ch.Scale, func(a, b int) bool { return ch.Scale[a].Time < ch.Scale[b].Time })
		if n := len(ch.Position); n > 0 {
			last = max(last, ch.Position[n-1].Time)
		}
		if n := len(ch.Rotation); n > 0 {
			last = max(last, ch.Rotation[n-1].Time)
		}
		if n := len(ch.Scale); n > 0 {
			last = max(last, ch.Scale[n-1].Time)
		}
	}
	if c.Duration <= 0 {
		c.Duration = last
	}
}

// LocalTime maps a playback time to a time inside the clip, wrapping looping clips and
// clamping the others.
func (c *Clip) LocalTime(t float32) float32 {
	if c.Duration <= 0 {
		return 0
	}
	if c.Loop {
		t = float32(math.Mod(float64(t), float64(c.Duration)))
		if t < 0 {
			t += c.Duration
		}
		return t
	}
	return min(max(t, 0), c.Duration)
}

// SampleInto writes the pose at playback time t into dst, replacing its content.
func (c *Clip) SampleInto(dst *domain.Pose, t float32) {
	dst.Reset()
	t = c.LocalTime(t)
	for i := range c.Channels {
		ch := &c.Channels[i]
		tr := domain.IdentityTransform()
		if len(ch.Position) > 0 {
			tr.Position = sampleVec(ch.Position, t)
		}
		if len(ch.Rotation) > 0 {
			tr.Rotation = sampleQuat(ch.Rotation, t)
		}
		if len(ch.Scale) > 0 {
			tr.Scale = sampleVec(ch.Scale, t)
		}
		dst.Set(ch.Bone, tr)
	}
}

// Sample returns the pose at playback time t.
func (c *Clip) Sample(t float32) *domain.Pose {
	p := domain.NewPose()
	c.SampleInto(p, t)
	return p
}

// span returns the keys surrounding t and the interpolation factor between them.
func span(n int, at func(int) float32, t float32) (int, int, float32) {
	if t <= at(0) {
		return 0, 0, 0
	}
	if t >= at(n-1) {
		return n - 1, n - 1, 0
	}
	hi := sort.Search(n, func(i int) bool { return at(i) > t })
	lo := hi - 1
	d := at(hi) - at(lo)
	if d <= 0 {
		return hi, hi, 0
	}
	return lo, hi, (t - at(lo)) / d
}

func sampleVec(keys []VectorKey, t float32) domain.Vec3 {
	lo, hi, f := span(len(keys), func(i int) float32 { return keys[i].Time }, t)
	return keys[lo].Value.Lerp(keys[hi].Value, f)
}

func sampleQuat(keys []QuatKey, t float32) domain.Quat {
	lo, hi, f := span(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if lo == hi {
		return keys[lo].Value.Normalize()
	}
	return keys[lo].Value.Normalize().Slerp(keys[hi].Value.Normalize(), f)
}
