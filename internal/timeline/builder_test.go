package timeline

import (
	"errors"
	"testing"

	"github.com/mivori/sub2bdnxml/internal/decode"
	"github.com/mivori/sub2bdnxml/internal/logging"
)

// show builds a show frame with a single opaque 2x2 rect and no usable
// display window.
func show(timestamp float64) decode.Frame {
	pix := make([]byte, 2*2*4)
	for i := range pix {
		pix[i] = 255
	}
	return decode.Frame{
		Rects:     []decode.Rect{{X: 4, Y: 8, W: 2, H: 2, Pix: pix, Stride: 8}},
		Timestamp: timestamp,
	}
}

// showWindowed builds a show frame that carries its own display window.
func showWindowed(timestamp, start, end float64) decode.Frame {
	f := show(timestamp)
	f.WindowStart = start
	f.WindowEnd = end
	return f
}

func clear(timestamp float64) decode.Frame {
	return decode.Frame{Timestamp: timestamp}
}

func build(t *testing.T, frames []decode.Frame, streamStart float64, rng ClipRange) []Event {
	t.Helper()
	events, err := NewBuilder(
		decode.NewSliceSource(frames), streamStart, rng, logging.NewNop(),
	).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return events
}

func assertInterval(t *testing.T, event Event, start, end float64) {
	t.Helper()
	if event.Start != start || event.End != end {
		t.Errorf(
			"event interval = [%v, %v), want [%v, %v)",
			event.Start, event.End, start, end,
		)
	}
}

func TestBuildExplicitWindow(t *testing.T) {
	// the frame's own window wins regardless of what follows
	events := build(t, []decode.Frame{
		showWindowed(10, 10.5, 12),
		show(20),
	}, 0, ClipRange{})

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	assertInterval(t, events[0], 10.5, 12)
}

func TestBuildEndFromNextFrame(t *testing.T) {
	tests := []struct {
		name    string
		frames  []decode.Frame
		wantEnd float64
	}{
		{
			"next show with window bounds at its window start",
			[]decode.Frame{show(1), showWindowed(3, 3.25, 5)},
			3.25,
		},
		{
			"next show without window bounds at its timestamp",
			[]decode.Frame{show(1), show(4)},
			4,
		},
		{
			"next clear bounds at the clear timestamp",
			[]decode.Frame{show(1), clear(6)},
			6,
		},
		{
			"no next frame falls back to one second",
			[]decode.Frame{show(1)},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := build(t, tt.frames, 0, ClipRange{})
			if len(events) == 0 {
				t.Fatal("expected at least one event")
			}
			assertInterval(t, events[0], 1, tt.wantEnd)
		})
	}
}

func TestBuildClearClosesLastEvent(t *testing.T) {
	events := build(t, []decode.Frame{
		showWindowed(2, 2, 30),
		clear(5),
	}, 0, ClipRange{})

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	assertInterval(t, events[0], 2, 5)
}

func TestBuildClearWithNoOpenEvent(t *testing.T) {
	events := build(t, []decode.Frame{
		clear(3),
		clear(4),
	}, 0, ClipRange{})

	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestBuildSkipsDegenerateFrames(t *testing.T) {
	frames := []decode.Frame{
		{Rects: []decode.Rect{{X: 1, Y: 1, W: 0, H: 0}}, Timestamp: 1}, // zero area
		show(5), show(5), // second frame resolves to zero duration
		show(9),
	}

	events := build(t, frames, 0, ClipRange{})
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	assertInterval(t, events[0], 5, 9)
	assertInterval(t, events[1], 9, 9+defaultDuration)
}

func TestBuildStreamStartAdjustment(t *testing.T) {
	events := build(t, []decode.Frame{
		showWindowed(11.5, 11.5, 13),
	}, 1.5, ClipRange{})

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	assertInterval(t, events[0], 10, 11.5)
}

func TestBuildOrderAndPositiveDuration(t *testing.T) {
	events := build(t, []decode.Frame{
		showWindowed(2, 2, 4),
		show(6),
		showWindowed(9, 9.1, 11),
		clear(13),
	}, 0, ClipRange{})

	previous := -1.0
	for i, event := range events {
		if event.Start >= event.End {
			t.Errorf("event %d has non-positive duration [%v, %v)", i, event.Start, event.End)
		}
		if event.Start < previous {
			t.Errorf("event %d starts before its predecessor", i)
		}
		previous = event.Start
	}
}

func TestBuildEmptySource(t *testing.T) {
	events := build(t, nil, 0, ClipRange{})
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

type failingSource struct{}

func (failingSource) Next() (*decode.Frame, error) {
	return nil, errors.New("decode failed")
}

func TestBuildSourceError(t *testing.T) {
	_, err := NewBuilder(failingSource{}, 0, ClipRange{}, logging.NewNop()).Build()
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestBuildWithClipRange(t *testing.T) {
	start, end := 1.0, 4.0
	rng := ClipRange{Start: &start, End: &end}

	events := build(t, []decode.Frame{
		showWindowed(2, 2, 3.5),
		showWindowed(5, 5, 6.5),
	}, 0, rng)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	assertInterval(t, events[0], 1.0, 2.5)
}

func TestBuildClearRespectsClipRange(t *testing.T) {
	start, end := 1.0, 4.0
	rng := ClipRange{Start: &start, End: &end}

	// the clear lands past the window end, so the synthesized end time
	// clamps to it before re-basing
	events := build(t, []decode.Frame{
		showWindowed(2, 2, 30),
		clear(9),
	}, 0, rng)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	assertInterval(t, events[0], 1.0, 3.0)
}
