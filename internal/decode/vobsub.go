package decode

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"path/filepath"
	"sort"
	"strings"

	vobsub "github.com/hekmon/go-vobsub"

	"github.com/mivori/sub2bdnxml/internal/logging"
)

// VobSubSource adapts a decoded VobSub (.idx/.sub) track to the frame
// stream. Every VobSub cue carries its own display window, so events
// resolve without lookahead.
type VobSubSource struct {
	subs []vobsub.Subtitle
	pos  int
	log  *logging.Logger
}

// NewVobSubSource decodes the whole track up front. idxPath must point at
// the .idx file; the matching .sub must sit next to it.
func NewVobSubSource(idxPath string, log *logging.Logger) (*VobSubSource, error) {
	// go-vobsub takes the .sub path and reads the matching .idx itself.
	subPath := strings.TrimSuffix(idxPath, filepath.Ext(idxPath)) + ".sub"
	streams, _, err := vobsub.Decode(subPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to decode vobsub %s: %w", idxPath, err)
	}
	ids := make([]int, 0, len(streams))
	for id := range streams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var subs []vobsub.Subtitle
	for _, id := range ids {
		subs = append(subs, streams[id]...)
	}
	log.Debugw("decoded vobsub track", "path", idxPath, "cues", len(subs))
	return &VobSubSource{subs: subs, log: log}, nil
}

func (s *VobSubSource) Next() (*Frame, error) {
	for s.pos < len(s.subs) {
		sub := s.subs[s.pos]
		s.pos++
		if sub.Image == nil {
			s.log.Warnw("vobsub cue without image, skipping",
				"index", s.pos-1,
				"start", sub.Start,
			)
			continue
		}
		return frameFromCue(sub), nil
	}
	return nil, io.EOF
}

func frameFromCue(sub vobsub.Subtitle) *Frame {
	bounds := sub.Image.Bounds()

	rgba, ok := sub.Image.(*image.RGBA)
	if !ok || rgba.Bounds().Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), sub.Image, bounds.Min, draw.Src)
	}

	start := sub.Start.Seconds()
	return &Frame{
		Rects: []Rect{{
			X:      bounds.Min.X,
			Y:      bounds.Min.Y,
			W:      bounds.Dx(),
			H:      bounds.Dy(),
			Pix:    rgba.Pix,
			Stride: rgba.Stride,
		}},
		Timestamp:   start,
		WindowStart: start,
		WindowEnd:   sub.Stop.Seconds(),
	}
}
