package document

import (
	"path/filepath"
	"testing"

	"github.com/darianrosebrook/animate-sub001/timeline"
)

func buildSample() *timeline.Timeline {
	tl := timeline.New("intro", 12, 30)

	loop := true
	speed := 1.5
	tl.SetPlaybackConfig(timeline.PlaybackConfigUpdate{Loop: &loop, Speed: &speed})

	opacity := tl.AddTrack(timeline.TrackSpec{
		Name:   "opacity",
		Kind:   timeline.PropertyTrack,
		Target: &timeline.TargetRef{NodeID: "node1", PropertyPath: "opacity"},
	})
	tl.AddKeyframe(opacity.ID, timeline.KeyframeSpec{
		Time: 0, Value: timeline.ScalarValue(0), Interpolation: timeline.Smooth,
	})
	tl.AddKeyframe(opacity.ID, timeline.KeyframeSpec{
		Time:          2,
		Value:         timeline.ScalarValue(1),
		Interpolation: timeline.Bezier,
		Easing:        &timeline.BezierControlPoints{P1X: 0.4, P1Y: 0.2, P2X: 0.6, P2Y: 0.8},
	})

	tint := tl.AddTrack(timeline.TrackSpec{
		Name:   "tint",
		Kind:   timeline.EffectTrack,
		Target: &timeline.TargetRef{NodeID: "fx1", PropertyPath: "tint"},
	})
	tl.AddKeyframe(tint.ID, timeline.KeyframeSpec{
		Time: 1, Value: timeline.ColorValue(1, 0.5, 0, 0.75),
	})

	pos := tl.AddTrack(timeline.TrackSpec{Name: "position"})
	tl.AddKeyframe(pos.ID, timeline.KeyframeSpec{
		Time: 0.5, Value: timeline.PointValue(320, 240), Interpolation: timeline.Stepped,
	})

	tl.AddMarker(timeline.MarkerSpec{Time: 4, Name: "beat", Color: "#ff0000"})
	return tl
}

func TestRoundTrip(t *testing.T) {
	original := buildSample()

	doc := FromTimeline(original)
	rebuilt, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if rebuilt.Name() != "intro" || rebuilt.Duration() != 12 || rebuilt.FrameRate() != 30 {
		t.Errorf("timeline header = %s/%v/%v", rebuilt.Name(), rebuilt.Duration(), rebuilt.FrameRate())
	}

	cfg := rebuilt.Config()
	if !cfg.Loop || cfg.Speed != 1.5 {
		t.Errorf("config = %+v, want loop=true speed=1.5", cfg)
	}

	tracks := rebuilt.Tracks()
	if len(tracks) != 3 {
		t.Fatalf("tracks = %d, want 3", len(tracks))
	}

	opacity := tracks[0]
	if opacity.Name != "opacity" || opacity.Target == nil || opacity.Target.NodeID != "node1" {
		t.Errorf("opacity track = %+v", opacity)
	}
	if len(opacity.Keyframes) != 2 {
		t.Fatalf("opacity keyframes = %d, want 2", len(opacity.Keyframes))
	}
	second := opacity.Keyframes[1]
	if second.Interpolation != timeline.Bezier || second.Easing == nil || second.Easing.P2Y != 0.8 {
		t.Errorf("bezier keyframe = %+v", second)
	}

	tintKf := tracks[1].Keyframes[0]
	if tintKf.Value.Kind != timeline.KindColor || tintKf.Value.Color.A != 0.75 {
		t.Errorf("tint value = %+v, want color with alpha 0.75", tintKf.Value)
	}

	posKf := tracks[2].Keyframes[0]
	if posKf.Value.Kind != timeline.KindPoint || posKf.Value.Point.X != 320 {
		t.Errorf("position value = %+v", posKf.Value)
	}
	if posKf.Interpolation != timeline.Stepped {
		t.Errorf("position interpolation = %v, want stepped", posKf.Interpolation)
	}

	markers := rebuilt.Markers()
	if len(markers) != 1 || markers[0].Name != "beat" {
		t.Errorf("markers = %+v", markers)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")

	doc := FromTimeline(buildSample())
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != doc.Name || len(loaded.Tracks) != len(doc.Tracks) {
		t.Errorf("loaded = %s/%d tracks, want %s/%d", loaded.Name, len(loaded.Tracks), doc.Name, len(doc.Tracks))
	}

	rebuilt, err := loaded.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rebuilt.Tracks()) != 3 {
		t.Errorf("tracks = %d, want 3", len(rebuilt.Tracks()))
	}
}

func TestMissingAlphaDefaultsToOne(t *testing.T) {
	v := Value{Color: &Color{R: 0.1, G: 0.2, B: 0.3}}
	got := v.toValue()
	if got.Color.A != 1 {
		t.Errorf("alpha = %v, want default 1", got.Color.A)
	}
}

func TestOpaqueValuesDropped(t *testing.T) {
	tl := timeline.New("test", 10, 30)
	track := tl.AddTrack(timeline.TrackSpec{Name: "meta"})
	tl.AddKeyframe(track.ID, timeline.KeyframeSpec{Time: 1, Value: timeline.OpaqueValue(struct{}{})})
	tl.AddKeyframe(track.ID, timeline.KeyframeSpec{Time: 2, Value: timeline.ScalarValue(3)})

	doc := FromTimeline(tl)
	if len(doc.Tracks[0].Keyframes) != 1 {
		t.Errorf("keyframes = %d, want 1 (opaque dropped)", len(doc.Tracks[0].Keyframes))
	}
}
