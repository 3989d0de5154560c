package clip

import (
	"fmt"
	"os"
	"sort"

	"github.com/aretw0/absm/pkg/domain"
	"gopkg.in/yaml.v3"
)

type playback struct {
	clip  *Clip
	time  float32
	speed float32
	pose  domain.Pose
}

// Library owns clips and their playback cursors. It implements machine.ClipSource.
// A Library is not safe for concurrent use.
type Library struct {
	clips map[domain.ClipID]*playback
}

// NewLibrary creates a library holding clips.
func NewLibrary(clips ...Clip) *Library {
	l := &Library{clips: make(map[domain.ClipID]*playback)}
	for _, c := range clips {
		l.Add(c)
	}
	return l
}

// Add registers c, replacing any clip with the same name and rewinding it.
func (l *Library) Add(c Clip) {
	c.normalize()
	l.clips[c.Name] = &playback{clip: &c, speed: 1}
}

// Clip returns the clip called id.
func (l *Library) Clip(id domain.ClipID) (*Clip, bool) {
	pb, ok := l.clips[id]
	if !ok {
		return nil, false
	}
	return pb.clip, true
}

// Names returns the clip names in ascending order.
func (l *Library) Names() []domain.ClipID {
	out := make([]domain.ClipID, 0, len(l.clips))
	for id := range l.clips {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetSpeed scales the playback rate of id. Negative speeds play backwards.
func (l *Library) SetSpeed(id domain.ClipID, speed float32) {
	if pb, ok := l.clips[id]; ok {
		pb.speed = speed
	}
}

// Time returns the playback cursor of id in seconds.
func (l *Library) Time(id domain.ClipID) float32 {
	if pb, ok := l.clips[id]; ok {
		return pb.time
	}
	return 0
}

// Rewind moves every cursor back to zero.
func (l *Library) Rewind() {
	for _, pb := range l.clips {
		pb.time = 0
	}
}

// Advance moves the cursor of id forward by dt and samples the clip.
// Unknown clips return nil.
func (l *Library) Advance(id domain.ClipID, dt float32) *domain.Pose {
	pb, ok := l.clips[id]
	if !ok {
		return nil
	}
	pb.time += dt * pb.speed
	pb.clip.SampleInto(&pb.pose, pb.time)
	return &pb.pose
}

type libraryFile struct {
	Clips []Clip `yaml:"clips"`
}

// ParseLibrary decodes a YAML (or JSON) document with a top-level "clips" list.
func ParseLibrary(data []byte) (*Library, error) {
	var f libraryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse clip library: %w", err)
	}
	seen := make(map[domain.ClipID]bool, len(f.Clips))
	for i, c := range f.Clips {
		if c.Name == "" {
			return nil, fmt.Errorf("clips[%d]: name is empty", i)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("clips[%d]: duplicate clip %q", i, c.Name)
		}
		seen[c.Name] = true
	}
	return NewLibrary(f.Clips...), nil
}

// LoadLibrary reads a clip library file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip library %s: %w", path, err)
	}
	return ParseLibrary(data)
}

// Placeholder creates one static clip per id so a machine can be exercised without
// real animation data. Clip i puts bone "root" at (i, 0, 0).
func Placeholder(ids ...domain.ClipID) *Library {
	l := NewLibrary()
	for i, id := range ids {
		tr := domain.IdentityTransform()
		l.Add(Clip{
			Name: id,
			Channels: []Channel{{
				Bone:     "root",
				Position: []VectorKey{{Value: domain.Vec3{float32(i), 0, 0}}},
				Rotation: []QuatKey{{Value: tr.Rotation}},
			}},
		})
	}
	return l
}
