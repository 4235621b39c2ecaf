package probe

import (
	"fmt"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mivori/sub2bdnxml/internal/ffmpeg"
	"github.com/mivori/sub2bdnxml/internal/timecode"
)

// Info summarizes the streams of a media file as far as the authoring
// output cares: canvas resolution, frame rate, scan mode, and the
// container's start offset that all subtitle timestamps are rebased by.
type Info struct {
	Width        int
	Height       int
	Rate         timecode.Rate
	StartTime    float64
	Interlaced   bool
	HasVideo     bool
	HasSubtitles bool
}

// File probes a media file with ffprobe.
func File(path string) (*Info, error) {
	if _, err := ffmpegbin.EnsureFFprobe(); err != nil {
		return nil, err
	}

	out, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}
	return parse(out), nil
}

func parse(probeJSON string) *Info {
	info := &Info{
		StartTime: gjson.Get(probeJSON, "format.start_time").Float(),
	}

	for _, stream := range gjson.Get(probeJSON, "streams").Array() {
		switch stream.Get("codec_type").String() {
		case "video":
			if info.HasVideo {
				continue
			}
			info.HasVideo = true
			info.Width = int(stream.Get("width").Int())
			info.Height = int(stream.Get("height").Int())
			info.Rate = streamRate(stream)
			switch stream.Get("field_order").String() {
			case "", "progressive", "unknown":
			default:
				info.Interlaced = true
			}
		case "subtitle":
			info.HasSubtitles = true
		}
	}

	return info
}

// streamRate prefers the average frame rate and falls back to the raw one;
// ffprobe reports "0/0" on streams it cannot measure.
func streamRate(stream gjson.Result) timecode.Rate {
	if rate, err := timecode.ParseRate(stream.Get("avg_frame_rate").String()); err == nil {
		return rate
	}
	if rate, err := timecode.ParseRate(stream.Get("r_frame_rate").String()); err == nil {
		return rate
	}
	return timecode.Rate{}
}
