package probe

import (
	"testing"

	"github.com/mivori/sub2bdnxml/internal/timecode"
)

const sampleProbe = `{
  "streams": [
    {
      "index": 0,
      "codec_type": "video",
      "width": 1440,
      "height": 1080,
      "field_order": "tt",
      "avg_frame_rate": "30000/1001",
      "r_frame_rate": "30000/1001"
    },
    {
      "index": 1,
      "codec_type": "audio"
    },
    {
      "index": 2,
      "codec_type": "subtitle",
      "codec_name": "arib_caption"
    }
  ],
  "format": {
    "start_time": "1.433422",
    "duration": "1803.336089"
  }
}`

func TestParse(t *testing.T) {
	info := parse(sampleProbe)

	if !info.HasVideo {
		t.Fatal("expected a video stream")
	}
	if info.Width != 1440 || info.Height != 1080 {
		t.Errorf("resolution = %dx%d, want 1440x1080", info.Width, info.Height)
	}
	if info.Rate != timecode.Rate2997 {
		t.Errorf("rate = %v, want 30000/1001", info.Rate)
	}
	if !info.Interlaced {
		t.Error("field_order tt should mark the stream interlaced")
	}
	if info.StartTime != 1.433422 {
		t.Errorf("start time = %v, want 1.433422", info.StartTime)
	}
	if !info.HasSubtitles {
		t.Error("expected a subtitle stream")
	}
}

func TestParseNoVideo(t *testing.T) {
	info := parse(`{"streams":[{"codec_type":"subtitle"}],"format":{}}`)

	if info.HasVideo {
		t.Error("expected no video stream")
	}
	if !info.Rate.IsZero() {
		t.Errorf("rate = %v, want zero", info.Rate)
	}
	if info.StartTime != 0 {
		t.Errorf("start time = %v, want 0", info.StartTime)
	}
}

func TestParseUnmeasurableRate(t *testing.T) {
	info := parse(`{
	  "streams": [{
	    "codec_type": "video",
	    "width": 1280, "height": 720,
	    "field_order": "progressive",
	    "avg_frame_rate": "0/0",
	    "r_frame_rate": "50/1"
	  }],
	  "format": {"start_time": "0.000000"}
	}`)

	if info.Rate != (timecode.Rate{Num: 50, Den: 1}) {
		t.Errorf("rate = %v, want fallback 50/1", info.Rate)
	}
	if info.Interlaced {
		t.Error("progressive stream marked interlaced")
	}
}
