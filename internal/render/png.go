package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/mivori/sub2bdnxml/internal/compose"
)

// Filename builds the deterministic image name for an event:
// base name plus a 5-digit zero-padded sequence number.
func Filename(base string, index int) string {
	return fmt.Sprintf("%s%05d.png", base, index)
}

// SavePNG writes a composited bitmap to path as an RGBA PNG.
// The compositor accumulates blended pixels in premultiplied form, so each
// pixel is converted back to straight alpha before encoding: transparent
// pixels zero their color channels, everything else un-premultiplies with
// round-to-nearest and clamps to 255.
func SavePNG(bitmap *compose.Bitmap, path string) error {
	if bitmap == nil || bitmap.W <= 0 || bitmap.H <= 0 || len(bitmap.Pix) == 0 {
		return fmt.Errorf("invalid bitmap for %s", path)
	}

	// NRGBA so the encoder takes the straight-alpha bytes verbatim
	img := image.NewNRGBA(image.Rect(0, 0, bitmap.W, bitmap.H))
	rowBytes := bitmap.W * 4
	for y := 0; y < bitmap.H; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes],
			bitmap.Pix[y*bitmap.Stride:y*bitmap.Stride+rowBytes])
	}

	for i := 0; i < len(img.Pix); i += 4 {
		a := uint16(img.Pix[i+3])
		if a == 0 {
			img.Pix[i+0] = 0
			img.Pix[i+1] = 0
			img.Pix[i+2] = 0
			continue
		}
		img.Pix[i+0] = unpremultiply(img.Pix[i+0], a)
		img.Pix[i+1] = unpremultiply(img.Pix[i+1], a)
		img.Pix[i+2] = unpremultiply(img.Pix[i+2], a)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func unpremultiply(c byte, a uint16) byte {
	v := (uint16(c)*255 + a/2) / a
	if v > 255 {
		v = 255
	}
	return byte(v)
}
