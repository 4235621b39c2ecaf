package compose

import (
	"math"

	"github.com/mivori/sub2bdnxml/internal/decode"
	"github.com/mivori/sub2bdnxml/internal/logging"
)

// Bitmap is the single RGBA image formed by layering all rects of one show
// frame. X and Y place its top-left corner on the output canvas.
type Bitmap struct {
	Pix    []byte
	W, H   int
	Stride int
	X, Y   int
}

// Composite merges the rects of one show frame into one bitmap sized to
// their union bounding box. Rects paint in input order; later rects go over
// earlier ones. Returns nil when no rect has positive area. Rects whose
// pixel data cannot be resolved are skipped with a warning.
func Composite(rects []decode.Rect, log *logging.Logger) *Bitmap {
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	renderable := false
	for i := range rects {
		r := &rects[i]
		if r.W <= 0 || r.H <= 0 {
			continue
		}
		renderable = true
		if r.X < minX {
			minX = r.X
		}
		if r.Y < minY {
			minY = r.Y
		}
		if r.X+r.W > maxX {
			maxX = r.X + r.W
		}
		if r.Y+r.H > maxY {
			maxY = r.Y + r.H
		}
	}
	if !renderable {
		return nil
	}

	out := &Bitmap{
		W:      maxX - minX,
		H:      maxY - minY,
		X:      minX,
		Y:      minY,
		Stride: (maxX - minX) * 4,
	}
	out.Pix = make([]byte, out.Stride*out.H)

	for i := range rects {
		r := &rects[i]
		if r.W <= 0 || r.H <= 0 {
			continue
		}

		resolved, err := resolveRect(r)
		if err != nil {
			log.Warnw("skipping rect with unresolvable pixels",
				"rect", i,
				"error", err,
			)
			continue
		}

		destX := r.X - minX
		destY := r.Y - minY
		for y := 0; y < r.H; y++ {
			row := resolved[y*r.W*4 : (y+1)*r.W*4]
			for x := 0; x < r.W; x++ {
				blendPixel(out, destX+x, destY+y, row[x*4:x*4+4])
			}
		}
	}

	return out
}

// resolveRect materializes the whole rect as packed RGBA, so incomplete
// source data is detected before any pixel lands in the output.
func resolveRect(r *decode.Rect) ([]byte, error) {
	buf := make([]byte, r.W*4*r.H)
	for y := 0; y < r.H; y++ {
		if err := r.ResolveRow(y, buf[y*r.W*4:(y+1)*r.W*4]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// blendPixel paints one straight-alpha source pixel over the destination.
// Fully opaque sources, and any source over a fully transparent
// destination, copy through exactly so the common case picks up no rounding.
func blendPixel(dst *Bitmap, x, y int, src []byte) {
	a := src[3]
	if a == 0 {
		return
	}
	offset := y*dst.Stride + x*4
	if a == 255 || dst.Pix[offset+3] == 0 {
		copy(dst.Pix[offset:offset+4], src)
		return
	}

	alpha := float32(a) / 255.0
	inv := 1.0 - alpha
	dst.Pix[offset+0] = byte(float32(src[0])*alpha + float32(dst.Pix[offset+0])*inv)
	dst.Pix[offset+1] = byte(float32(src[1])*alpha + float32(dst.Pix[offset+1])*inv)
	dst.Pix[offset+2] = byte(float32(src[2])*alpha + float32(dst.Pix[offset+2])*inv)
	dst.Pix[offset+3] = byte(float32(a) + float32(dst.Pix[offset+3])*inv)
}
