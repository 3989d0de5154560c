package machine

import "github.com/aretw0/absm/pkg/domain"

// ClipSource is the host collaborator that owns animation clips.
//
// Advance moves the playback of clip forward by dt seconds and returns its sampled pose.
// A nil pose means the clip is unknown and contributes nothing. The returned pose is only
// read until the next call.
type ClipSource interface {
	Advance(clip domain.ClipID, dt float32) *domain.Pose
}

// ClipSourceFunc adapts a function to the ClipSource interface.
type ClipSourceFunc func(clip domain.ClipID, dt float32) *domain.Pose

// Advance calls f(clip, dt).
func (f ClipSourceFunc) Advance(clip domain.ClipID, dt float32) *domain.Pose {
	return f(clip, dt)
}
