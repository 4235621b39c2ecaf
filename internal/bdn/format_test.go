package bdn

import (
	"testing"

	"github.com/mivori/sub2bdnxml/internal/timecode"
)

func TestVideoFormat(t *testing.T) {
	tests := []struct {
		height     int
		interlaced bool
		want       string
	}{
		{1080, false, "1080p"},
		{1080, true, "1080i"},
		{720, false, "720p"},
		{720, true, "720p"}, // 720i does not exist in the authoring spec
		{480, false, "480p"},
		{480, true, "480i"},
		{576, false, "1080p"}, // unrecognized heights fall back
		{576, true, "1080i"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := VideoFormat(tt.height, tt.interlaced); got != tt.want {
				t.Errorf(
					"VideoFormat(%d, %v) = %q, want %q",
					tt.height, tt.interlaced, got, tt.want,
				)
			}
		})
	}
}

func TestRateLabel(t *testing.T) {
	tests := []struct {
		rate timecode.Rate
		want string
	}{
		{timecode.Rate2997, "29.97"},
		{timecode.Rate24, "24"},
		{timecode.Rate23976, "23.976"},
		{timecode.Rate25, "25.000"},
		{timecode.Rate5994, "59.940"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := RateLabel(tt.rate); got != tt.want {
				t.Errorf("RateLabel(%s) = %q, want %q", tt.rate.String(), got, tt.want)
			}
		})
	}
}

func TestDetermineCanvas(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		anamorphic bool
		want       string
		wantErr    bool
	}{
		{"no video defaults to full HD", 0, 0, false, "1920x1080", false},
		{"full HD", 1920, 1080, false, "1920x1080", false},
		{"HD ready", 1280, 720, false, "1280x720", false},
		{"anamorphic HDV stays native", 1440, 1080, true, "1440x1080", false},
		{"HDV without flag upscales", 1440, 1080, false, "1920x1080", false},
		{"NTSC SD", 720, 480, false, "720x480", false},
		{"unsupported resolution", 640, 360, false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetermineCanvas(tt.width, tt.height, tt.anamorphic)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetermineCanvas = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCanvas(t *testing.T) {
	width, height, err := ParseCanvas("1280x720")
	if err != nil {
		t.Fatalf("ParseCanvas failed: %v", err)
	}
	if width != 1280 || height != 720 {
		t.Errorf("ParseCanvas = %dx%d, want 1280x720", width, height)
	}

	for _, invalid := range []string{"1280", "axb", "1280x", "x720"} {
		if _, _, err := ParseCanvas(invalid); err == nil {
			t.Errorf("ParseCanvas(%q) expected an error", invalid)
		}
	}
}

func TestValidateCanvas(t *testing.T) {
	if err := ValidateCanvas("1920x1080"); err != nil {
		t.Errorf("ValidateCanvas(1920x1080) = %v", err)
	}
	if err := ValidateCanvas("640x480"); err == nil {
		t.Error("ValidateCanvas(640x480) expected an error")
	}
}
