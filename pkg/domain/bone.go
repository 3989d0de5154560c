package domain

// BoneID identifies a bone (or scene node) animated by a pose.
// The machine never interprets it beyond equality and hashing.
type BoneID string

// ClipID identifies an animation clip owned by the host's clip source.
type ClipID string
