// Package clip is a small keyframe clip source for hosts, tests and the absm CLI.
//
// A Clip stores per-bone translation, rotation and scale keyframes. A Library owns a
// set of clips together with their playback cursors and implements
// machine.ClipSource, so it can be handed straight to Machine.EvaluatePose.
// Rotations are sampled with spherical interpolation, everything else linearly.
package clip
