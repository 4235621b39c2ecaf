package decode

import (
	"fmt"
	"io"
)

// Source yields decoded subtitle frames in stream order.
// Next returns io.EOF once the stream is exhausted.
type Source interface {
	Next() (*Frame, error)
}

// Frame is one decoder result: a show frame carrying positioned rects, or a
// clear command carrying no rects. Timestamp is the primary presentation
// time in seconds. WindowStart/WindowEnd are the decoder's own display
// window in absolute seconds; they are only trusted when the window is
// positive and well ordered (see HasWindow).
type Frame struct {
	Rects       []Rect
	Timestamp   float64
	WindowStart float64
	WindowEnd   float64
}

// Clear reports whether this frame removes the current subtitle.
func (f *Frame) Clear() bool {
	return len(f.Rects) == 0
}

// HasWindow reports whether the explicit display window is usable.
func (f *Frame) HasWindow() bool {
	return f.WindowStart > 0 && f.WindowEnd > f.WindowStart
}

// Rect is one positioned bitmap inside a show frame. Pixels come in one of
// two representations: direct RGBA rows, or a per-pixel index buffer with an
// ARGB color table. Exactly one of the two should be populated.
type Rect struct {
	X, Y int
	W, H int

	// direct: packed RGBA, Stride bytes per row
	Pix    []byte
	Stride int

	// indexed: one byte per pixel, IndexStride bytes per row
	Indexes     []byte
	IndexStride int
	Palette     []uint32 // ARGB
}

// ResolveRow writes row y of the rect as packed RGBA into dst, which must
// hold at least 4*W bytes. Palette indexes outside the color table resolve
// to transparent.
func (r *Rect) ResolveRow(y int, dst []byte) error {
	if y < 0 || y >= r.H {
		return fmt.Errorf("row %d out of range (height %d)", y, r.H)
	}
	if len(dst) < r.W*4 {
		return fmt.Errorf("row buffer too small: %d < %d", len(dst), r.W*4)
	}

	if r.Pix != nil {
		offset := y * r.Stride
		if offset+r.W*4 > len(r.Pix) {
			return fmt.Errorf("rect pixel data truncated at row %d", y)
		}
		copy(dst[:r.W*4], r.Pix[offset:])
		return nil
	}

	if r.Indexes == nil || r.Palette == nil {
		return fmt.Errorf("rect has no pixel representation")
	}
	offset := y * r.IndexStride
	if offset+r.W > len(r.Indexes) {
		return fmt.Errorf("rect index data truncated at row %d", y)
	}
	for x := 0; x < r.W; x++ {
		idx := int(r.Indexes[offset+x])
		var argb uint32
		if idx < len(r.Palette) {
			argb = r.Palette[idx]
		}
		dst[x*4+0] = byte(argb >> 16)
		dst[x*4+1] = byte(argb >> 8)
		dst[x*4+2] = byte(argb)
		dst[x*4+3] = byte(argb >> 24)
	}
	return nil
}

// SliceSource serves a fixed frame list, one frame per call.
type SliceSource struct {
	frames []Frame
	pos    int
}

func NewSliceSource(frames []Frame) *SliceSource {
	return &SliceSource{frames: frames}
}

func (s *SliceSource) Next() (*Frame, error) {
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	f := &s.frames[s.pos]
	s.pos++
	return f, nil
}
