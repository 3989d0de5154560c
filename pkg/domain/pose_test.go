package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transform(x, y, z float32) LocalTransform {
	t := IdentityTransform()
	t.Position = Vec3{x, y, z}
	return t
}

func assertTransform(t *testing.T, want, got LocalTransform) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want.Position[i], got.Position[i], 1e-5, "position[%d]", i)
		assert.InDelta(t, want.Scale[i], got.Scale[i], 1e-5, "scale[%d]", i)
	}
	// q and -q are the same rotation.
	dot := want.Rotation.Dot(got.Rotation)
	if dot < 0 {
		dot = -dot
	}
	assert.InDelta(t, 1, dot, 1e-5, "rotation")
}

func TestPose_BalancedBlendIsIdempotent(t *testing.T) {
	src := NewPose()
	src.Set("hip", LocalTransform{
		Position: Vec3{1, 2, 3},
		Rotation: Quat{0, 0.7071068, 0, 0.7071068},
		Scale:    Vec3{2, 2, 2},
	})

	out := NewPose()
	out.BlendWith(src, 0.5)
	out.BlendWith(src, 0.5)

	want, _ := src.Bone("hip")
	got, ok := out.Bone("hip")
	require.True(t, ok)
	assertTransform(t, want, got)
}

func TestPose_BlendMissingBonesContributeNothing(t *testing.T) {
	a := NewPose()
	a.Set("hip", transform(2, 0, 0))
	a.Set("arm", transform(4, 0, 0))

	b := NewPose()
	b.Set("hip", transform(0, 2, 0))

	out := NewPose()
	out.BlendWith(a, 0.5)
	out.BlendWith(b, 0.5)

	hip, _ := out.Bone("hip")
	assert.InDelta(t, 1, hip.Position[0], 1e-6)
	assert.InDelta(t, 1, hip.Position[1], 1e-6)

	arm, ok := out.Bone("arm")
	require.True(t, ok)
	assert.InDelta(t, 2, arm.Position[0], 1e-6)
	assert.InDelta(t, 0.5, arm.Scale[0], 1e-6)
}

func TestPose_ZeroWeightIsNoop(t *testing.T) {
	a := NewPose()
	a.Set("hip", transform(1, 1, 1))

	out := NewPose()
	out.BlendWith(a, 0)
	out.BlendWith(nil, 1)
	assert.Equal(t, 0, out.Len())
}

func TestPose_RotationHemisphereAlignment(t *testing.T) {
	q := Quat{0, 0, 0.3826834, 0.9238795}
	a := NewPose()
	a.Set("hip", LocalTransform{Rotation: q, Scale: Vec3{1, 1, 1}})
	b := NewPose()
	b.Set("hip", LocalTransform{Rotation: q.Scale(-1), Scale: Vec3{1, 1, 1}})

	out := NewPose()
	out.BlendWith(a, 0.5)
	out.BlendWith(b, 0.5)

	got, _ := out.Bone("hip")
	assert.InDelta(t, 1, absf(got.Rotation.Dot(q)), 1e-5)
}

func TestPose_ScaleNormalizesWeightedSum(t *testing.T) {
	a := NewPose()
	a.Set("hip", transform(3, 0, 0))

	out := NewPose()
	out.BlendWith(a, 2)
	out.Scale(0.5)

	got, _ := out.Bone("hip")
	assertTransform(t, transform(3, 0, 0), got)
}

func TestPose_CopyResetRetain(t *testing.T) {
	a := NewPose()
	a.Set("hip", transform(1, 0, 0))
	a.Set("arm", transform(2, 0, 0))

	var b Pose
	b.CopyFrom(a)
	assert.Equal(t, []BoneID{"arm", "hip"}, b.Bones())

	b.Retain(func(id BoneID) bool { return id != "arm" })
	assert.Equal(t, []BoneID{"hip"}, b.Bones())
	assert.True(t, a.Has("arm"), "source must not be affected")

	c := a.Clone()
	a.Reset()
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 2, c.Len())

	b.CopyFrom(nil)
	assert.Equal(t, 0, b.Len())
}

func TestQuat_Slerp(t *testing.T) {
	from := IdentityQuat()
	to := Quat{0, 0, 1, 0} // 180 degrees around Z

	half := from.Slerp(to, 0.5)
	assert.InDelta(t, 0.7071068, half[2], 1e-5)
	assert.InDelta(t, 0.7071068, half[3], 1e-5)
	assert.InDelta(t, 1, from.Slerp(from, 0.3)[3], 1e-6)
}

func TestQuat_NormalizeDegenerate(t *testing.T) {
	assert.Equal(t, IdentityQuat(), Quat{}.Normalize())
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
