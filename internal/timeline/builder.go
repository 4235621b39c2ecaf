package timeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/mivori/sub2bdnxml/internal/compose"
	"github.com/mivori/sub2bdnxml/internal/decode"
	"github.com/mivori/sub2bdnxml/internal/logging"
)

// fallback duration when a show frame has no window, no successor and no
// clear to bound it
const defaultDuration = 1.0

// Event is one entry of the output timeline: a composited bitmap shown over
// [Start, End) seconds, both relative to the usable start of the stream
// (and to the clip range start when one is set).
type Event struct {
	Start  float64
	End    float64
	Bitmap *compose.Bitmap
}

// Builder turns the decoded frame stream into a list of timed events.
// It reads with one frame of lookahead: when a show frame carries no usable
// display window, the only reliable end-of-display signal is the next
// frame's appearance or an explicit clear.
type Builder struct {
	src         decode.Source
	streamStart float64
	rng         ClipRange
	log         *logging.Logger
}

// NewBuilder wires a builder over src. streamStart is the container's
// reported start offset; it is subtracted from every timestamp so time zero
// means the start of the usable stream.
func NewBuilder(src decode.Source, streamStart float64, rng ClipRange, log *logging.Logger) *Builder {
	return &Builder{
		src:         src,
		streamStart: streamStart,
		rng:         rng,
		log:         log,
	}
}

// Build drains the source and returns the completed timeline. Events come
// out in decode order, which is non-decreasing start order; every event has
// a strictly positive duration.
func (b *Builder) Build() ([]Event, error) {
	current, err := b.next()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	lookahead, err := b.next()
	if err != nil {
		return nil, err
	}

	var events []Event
	for current != nil {
		if current.Clear() {
			if current.Timestamp > 0 && len(events) > 0 {
				last := &events[len(events)-1]
				last.End = b.rng.ApplyInstant(b.adjust(current.Timestamp))
				b.log.Debugw("clear command closed event",
					"timestamp", current.Timestamp,
					"end", last.End,
				)
			}
			if current, lookahead, err = b.advance(lookahead); err != nil {
				return nil, err
			}
			continue
		}

		bitmap := compose.Composite(current.Rects, b.log)
		if bitmap == nil || bitmap.W == 0 || bitmap.H == 0 {
			b.log.Debugw("show frame without renderable content, skipping",
				"timestamp", current.Timestamp,
			)
			if current, lookahead, err = b.advance(lookahead); err != nil {
				return nil, err
			}
			continue
		}

		start, end := b.resolveInterval(current, lookahead)
		start, end, kept := b.rng.Apply(start, end)
		if !kept || start >= end {
			if current, lookahead, err = b.advance(lookahead); err != nil {
				return nil, err
			}
			continue
		}

		events = append(events, Event{Start: start, End: end, Bitmap: bitmap})
		if current, lookahead, err = b.advance(lookahead); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// resolveInterval picks the [start, end) of a show frame in adjusted
// seconds. The frame's own display window wins when usable; otherwise the
// lookahead frame bounds the display.
func (b *Builder) resolveInterval(current, lookahead *decode.Frame) (float64, float64) {
	if current.HasWindow() {
		return b.adjust(current.WindowStart), b.adjust(current.WindowEnd)
	}

	start := b.adjust(current.Timestamp)
	if lookahead == nil {
		return start, start + defaultDuration
	}
	if !lookahead.Clear() && lookahead.HasWindow() {
		return start, b.adjust(lookahead.WindowStart)
	}
	return start, b.adjust(lookahead.Timestamp)
}

func (b *Builder) adjust(timestamp float64) float64 {
	return timestamp - b.streamStart
}

// advance shifts the lookahead window forward by one frame.
func (b *Builder) advance(lookahead *decode.Frame) (*decode.Frame, *decode.Frame, error) {
	if lookahead == nil {
		return nil, nil, nil
	}
	next, err := b.next()
	if err != nil {
		return nil, nil, err
	}
	return lookahead, next, nil
}

// next reads one frame, mapping end-of-stream to nil.
func (b *Builder) next() (*decode.Frame, error) {
	frame, err := b.src.Next()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("frame source failed: %w", err)
	}
	return frame, nil
}
