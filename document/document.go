package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/darianrosebrook/animate-sub001/timeline"
)

// A Document is the persisted shape of a timeline: its plain data
// fields only. History and selection are session-scoped and never
// saved; opaque keyframe values have no wire form and are dropped.
type Document struct {
	Name      string   `yaml:"name"`
	Duration  float64  `yaml:"duration"`
	FrameRate float64  `yaml:"frameRate"`
	Playback  Playback `yaml:"playback"`
	Tracks    []Track  `yaml:"tracks"`
	Markers   []Marker `yaml:"markers,omitempty"`
}

type Playback struct {
	StartTime float64 `yaml:"startTime"`
	EndTime   float64 `yaml:"endTime"`
	Loop      bool    `yaml:"loop"`
	Speed     float64 `yaml:"speed"`
	FrameStep float64 `yaml:"frameStep,omitempty"`
}

type Track struct {
	Name      string     `yaml:"name"`
	Kind      string     `yaml:"kind"`
	Node      string     `yaml:"node,omitempty"`
	Property  string     `yaml:"property,omitempty"`
	Enabled   bool       `yaml:"enabled"`
	Locked    bool       `yaml:"locked"`
	Muted     bool       `yaml:"muted"`
	Color     string     `yaml:"color,omitempty"`
	Height    int        `yaml:"height,omitempty"`
	Keyframes []Keyframe `yaml:"keyframes"`
}

type Keyframe struct {
	Time          float64 `yaml:"time"`
	Interpolation string  `yaml:"interpolation"`
	Value         Value   `yaml:"value"`
	Easing        *Easing `yaml:"easing,omitempty"`
}

type Easing struct {
	P1X float64 `yaml:"p1x"`
	P1Y float64 `yaml:"p1y"`
	P2X float64 `yaml:"p2x"`
	P2Y float64 `yaml:"p2y"`
}

// Value persists one keyframe payload. Exactly one field is set.
type Value struct {
	Scalar *float64 `yaml:"scalar,omitempty"`
	Point  *Point   `yaml:"point,omitempty"`
	Color  *Color   `yaml:"color,omitempty"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Color persists an RGBA colour. A missing alpha defaults to 1.
type Color struct {
	R float64  `yaml:"r"`
	G float64  `yaml:"g"`
	B float64  `yaml:"b"`
	A *float64 `yaml:"a,omitempty"`
}

type Marker struct {
	Time  float64 `yaml:"time"`
	Name  string  `yaml:"name"`
	Color string  `yaml:"color,omitempty"`
}

// FromTimeline captures a timeline's persistable state.
func FromTimeline(tl *timeline.Timeline) *Document {
	cfg := tl.Config()
	d := &Document{
		Name:      tl.Name(),
		Duration:  tl.Duration(),
		FrameRate: tl.FrameRate(),
		Playback: Playback{
			StartTime: cfg.StartTime,
			EndTime:   cfg.EndTime,
			Loop:      cfg.Loop,
			Speed:     cfg.Speed,
			FrameStep: cfg.FrameStep,
		},
	}

	for _, track := range tl.Tracks() {
		td := Track{
			Name:    track.Name,
			Kind:    track.Kind.String(),
			Enabled: track.Enabled,
			Locked:  track.Locked,
			Muted:   track.Muted,
			Color:   track.Color,
			Height:  track.Height,
		}
		if track.Target != nil {
			td.Node = track.Target.NodeID
			td.Property = track.Target.PropertyPath
		}
		for _, k := range track.Keyframes {
			kd, ok := fromKeyframe(k)
			if !ok {
				continue
			}
			td.Keyframes = append(td.Keyframes, kd)
		}
		d.Tracks = append(d.Tracks, td)
	}

	for _, m := range tl.Markers() {
		d.Markers = append(d.Markers, Marker{Time: m.Time, Name: m.Name, Color: m.Color})
	}

	return d
}

func fromKeyframe(k *timeline.Keyframe) (Keyframe, bool) {
	kd := Keyframe{Time: k.Time, Interpolation: k.Interpolation.String()}
	switch k.Value.Kind {
	case timeline.KindScalar:
		v := k.Value.Scalar
		kd.Value.Scalar = &v
	case timeline.KindPoint:
		kd.Value.Point = &Point{X: k.Value.Point.X, Y: k.Value.Point.Y}
	case timeline.KindColor:
		a := k.Value.Color.A
		kd.Value.Color = &Color{R: k.Value.Color.R, G: k.Value.Color.G, B: k.Value.Color.B, A: &a}
	default:
		return Keyframe{}, false
	}
	if k.Easing != nil {
		kd.Easing = &Easing{P1X: k.Easing.P1X, P1Y: k.Easing.P1Y, P2X: k.Easing.P2X, P2Y: k.Easing.P2Y}
	}
	return kd, true
}

// Build constructs a fresh timeline from the document. Track and
// keyframe ids are regenerated; they are session-scoped, not
// persisted identity.
func (d *Document) Build() (*timeline.Timeline, error) {
	tl := timeline.New(d.Name, d.Duration, d.FrameRate)

	tl.SetPlaybackConfig(timeline.PlaybackConfigUpdate{
		StartTime: &d.Playback.StartTime,
		EndTime:   &d.Playback.EndTime,
		Loop:      &d.Playback.Loop,
		Speed:     &d.Playback.Speed,
		FrameStep: &d.Playback.FrameStep,
	})

	for _, td := range d.Tracks {
		spec := timeline.TrackSpec{
			Name:   td.Name,
			Kind:   timeline.TrackKindFromString(td.Kind),
			Muted:  td.Muted,
			Color:  td.Color,
			Height: td.Height,
		}
		if td.Node != "" || td.Property != "" {
			spec.Target = &timeline.TargetRef{NodeID: td.Node, PropertyPath: td.Property}
		}
		track := tl.AddTrack(spec)
		track.Enabled = td.Enabled
		track.Locked = td.Locked

		for _, kd := range td.Keyframes {
			kspec := timeline.KeyframeSpec{
				Time:          kd.Time,
				Value:         kd.Value.toValue(),
				Interpolation: timeline.InterpolationModeFromString(kd.Interpolation),
			}
			if kd.Easing != nil {
				kspec.Easing = &timeline.BezierControlPoints{
					P1X: kd.Easing.P1X, P1Y: kd.Easing.P1Y,
					P2X: kd.Easing.P2X, P2Y: kd.Easing.P2Y,
				}
			}
			if _, err := tl.AddKeyframe(track.ID, kspec); err != nil {
				return nil, fmt.Errorf("track %q: %w", td.Name, err)
			}
		}
	}

	for _, md := range d.Markers {
		tl.AddMarker(timeline.MarkerSpec{Time: md.Time, Name: md.Name, Color: md.Color})
	}

	return tl, nil
}

func (v Value) toValue() timeline.Value {
	switch {
	case v.Scalar != nil:
		return timeline.ScalarValue(*v.Scalar)
	case v.Point != nil:
		return timeline.PointValue(v.Point.X, v.Point.Y)
	case v.Color != nil:
		a := 1.0
		if v.Color.A != nil {
			a = *v.Color.A
		}
		return timeline.ColorValue(v.Color.R, v.Color.G, v.Color.B, a)
	}
	return timeline.ScalarValue(0)
}

// Load reads a document from a YAML file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var d Document
	if err := yaml.NewDecoder(f).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &d, nil
}

// Save writes the document as YAML.
func Save(path string, d *Document) error {
	out, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
