package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/absm"
	"github.com/aretw0/absm/internal/presentation/tui"
	"github.com/aretw0/absm/pkg/clip"
	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/machine"
)

// SimulateOptions configures a simulation run.
type SimulateOptions struct {
	Path     string
	Clips    string
	Scenario string
	DT       float32
	Frames   int
	Set      []string
	Every    int
	JSON     bool
	Debug    bool
}

// Simulate runs a definition headless and writes one line per reported frame to w.
func Simulate(opts SimulateOptions, w io.Writer, logger *slog.Logger) error {
	def, err := definition.LoadFile(opts.Path)
	if err != nil {
		return err
	}

	clips, err := clipSource(opts.Clips, def)
	if err != nil {
		return err
	}

	engine, err := absm.FromDefinition(def,
		absm.WithClipSource(clips),
		absm.WithLogger(logger),
		absm.WithDebug(opts.Debug),
	)
	if err != nil {
		return err
	}

	sc, err := buildScenario(opts)
	if err != nil {
		return err
	}

	every := opts.Every
	if every <= 0 {
		every = 1
	}
	report := newReporter(w, opts.JSON)

	for _, step := range sc.Steps {
		params, err := step.parameters()
		if err != nil {
			return err
		}
		for name, p := range params {
			engine.SetParameter(name, p)
		}
		for range step.Frames {
			engine.Tick(step.DT)
			snap := engine.Snapshot()
			if snap.Frame%uint64(every) != 0 {
				continue
			}
			if err := report(snap); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildScenario(opts SimulateOptions) (*Scenario, error) {
	dt := opts.DT
	if dt <= 0 {
		dt = 1.0 / 60
	}

	if opts.Scenario != "" {
		sc, err := LoadScenario(opts.Scenario, dt)
		if err != nil {
			return nil, err
		}
		if len(opts.Set) > 0 && len(sc.Steps) > 0 {
			set, err := parseAssignments(opts.Set)
			if err != nil {
				return nil, err
			}
			for k, v := range set {
				if _, ok := sc.Steps[0].Set[k]; !ok {
					if sc.Steps[0].Set == nil {
						sc.Steps[0].Set = make(map[string]any)
					}
					sc.Steps[0].Set[k] = v
				}
			}
		}
		return sc, nil
	}

	frames := opts.Frames
	if frames <= 0 {
		frames = 60
	}
	set, err := parseAssignments(opts.Set)
	if err != nil {
		return nil, err
	}
	return &Scenario{Steps: []Step{{DT: dt, Frames: frames, Set: set}}}, nil
}

func parseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, p, err := definition.ParseAssignment(pair)
		if err != nil {
			return nil, err
		}
		out[name] = p
	}
	return out, nil
}

// clipSource loads the clip library at path, or stands in placeholder clips for
// every clip the definition plays.
func clipSource(path string, def *definition.Definition) (machine.ClipSource, error) {
	if path != "" {
		return clip.LoadLibrary(path)
	}
	var ids []domain.ClipID
	seen := make(map[string]bool)
	for _, l := range def.Layers {
		for _, n := range l.Nodes {
			if n.Play != nil && !seen[n.Play.Clip] {
				seen[n.Play.Clip] = true
				ids = append(ids, domain.ClipID(n.Play.Clip))
			}
		}
	}
	return clip.Placeholder(ids...), nil
}

func newReporter(w io.Writer, jsonMode bool) func(absm.Snapshot) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		return func(s absm.Snapshot) error { return enc.Encode(s) }
	}

	style := tui.NewStyler(w)
	return func(s absm.Snapshot) error {
		parts := make([]string, 0, len(s.Layers))
		for i, l := range s.Layers {
			name := l.Name
			if name == "" {
				name = fmt.Sprintf("layer%d", i)
			}
			switch {
			case l.ActiveTransition != "" && l.Progress != nil:
				parts = append(parts, fmt.Sprintf("%s=%s %s", name,
					style.Transition(l.ActiveTransition),
					style.Muted(fmt.Sprintf("%3.0f%%", *l.Progress*100))))
			case l.ActiveState != "":
				parts = append(parts, fmt.Sprintf("%s=%s", name, style.State(l.ActiveState)))
			default:
				parts = append(parts, fmt.Sprintf("%s=%s", name, style.Muted("-")))
			}
		}
		_, err := fmt.Fprintf(w, "%5d %8.3fs  %s\n", s.Frame, s.Time, strings.Join(parts, "  "))
		return err
	}
}
