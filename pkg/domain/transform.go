package domain

import "math"

// Vec3 is a three component vector (x, y, z).
type Vec3 [3]float32

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Lerp linearly interpolates between v and o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		v[0] + (o[0]-v[0])*t,
		v[1] + (o[1]-v[1])*t,
		v[2] + (o[2]-v[2])*t,
	}
}

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat [4]float32

// IdentityQuat returns the rotation that leaves vectors unchanged.
func IdentityQuat() Quat {
	return Quat{0, 0, 0, 1}
}

// Dot returns the four dimensional dot product of q and o.
func (q Quat) Dot(o Quat) float32 {
	return q[0]*o[0] + q[1]*o[1] + q[2]*o[2] + q[3]*o[3]
}

// Add returns the component-wise sum q + o.
func (q Quat) Add(o Quat) Quat {
	return Quat{q[0] + o[0], q[1] + o[1], q[2] + o[2], q[3] + o[3]}
}

// Scale returns the component-wise product q * s.
func (q Quat) Scale(s float32) Quat {
	return Quat{q[0] * s, q[1] * s, q[2] * s, q[3] * s}
}

// Len returns the magnitude of q.
func (q Quat) Len() float32 {
	return float32(math.Sqrt(float64(q.Dot(q))))
}

// Normalize returns q scaled to unit length.
// A degenerate (near zero) quaternion normalizes to identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l < 1e-8 {
		return IdentityQuat()
	}
	return q.Scale(1 / l)
}

// Slerp spherically interpolates between q and o by t along the shortest arc.
func (q Quat) Slerp(o Quat, t float32) Quat {
	cos := q.Dot(o)
	if cos < 0 {
		o = o.Scale(-1)
		cos = -cos
	}

	// Nearly parallel: fall back to normalized lerp.
	if cos > 0.9995 {
		return q.Scale(1 - t).Add(o.Scale(t)).Normalize()
	}

	theta := math.Acos(float64(cos))
	sin := math.Sin(theta)
	a := float32(math.Sin((1-float64(t))*theta) / sin)
	b := float32(math.Sin(float64(t)*theta) / sin)
	return q.Scale(a).Add(o.Scale(b)).Normalize()
}

// LocalTransform is the local-space transform of one bone for one frame.
type LocalTransform struct {
	Position Vec3 `json:"position" yaml:"position"`
	Rotation Quat `json:"rotation" yaml:"rotation"`
	Scale    Vec3 `json:"scale" yaml:"scale"`
}

// IdentityTransform returns a transform with no translation, no rotation and unit scale.
func IdentityTransform() LocalTransform {
	return LocalTransform{
		Rotation: IdentityQuat(),
		Scale:    Vec3{1, 1, 1},
	}
}
