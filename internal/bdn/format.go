package bdn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mivori/sub2bdnxml/internal/timecode"
)

const defaultCanvas = "1920x1080"

// canvas tokens the authoring spec accepts
var supportedCanvases = []string{"1920x1080", "1440x1080", "1280x720", "720x480"}

// VideoFormat maps the canvas height and scan mode to the Description's
// VideoFormat label. 720-line interlaced does not exist in the authoring
// spec, so that height always gets the progressive label. Unrecognized
// heights fall back to the 1080-line labels.
func VideoFormat(height int, interlaced bool) string {
	switch height {
	case 720:
		return "720p"
	case 480:
		if interlaced {
			return "480i"
		}
		return "480p"
	default:
		if interlaced {
			return "1080i"
		}
		return "1080p"
	}
}

// RateLabel formats the frame rate for the Description block. The authoring
// spec writes "29.97" and "24" rather than their three-decimal forms; other
// rates keep three decimals.
func RateLabel(rate timecode.Rate) string {
	s := fmt.Sprintf("%.3f", rate.Float64())
	switch s {
	case "29.970":
		return "29.97"
	case "24.000":
		return "24"
	}
	return s
}

// DetermineCanvas picks the output canvas token from the source video
// resolution. 1440x1080 sources stay at their native width only when the
// anamorphic flag is set; unknown or absent resolutions default to full HD.
func DetermineCanvas(videoWidth, videoHeight int, anamorphic bool) (string, error) {
	switch {
	case videoWidth == 0 && videoHeight == 0:
		return defaultCanvas, nil
	case videoWidth == 1920 && videoHeight == 1080:
		return defaultCanvas, nil
	case videoWidth == 1280 && videoHeight == 720:
		return "1280x720", nil
	case videoWidth == 1440 && videoHeight == 1080:
		if anamorphic {
			return "1440x1080", nil
		}
		return defaultCanvas, nil
	case videoWidth == 720 && videoHeight == 480:
		return "720x480", nil
	default:
		return "", fmt.Errorf(
			"unsupported video resolution %dx%d (supported: %s)",
			videoWidth, videoHeight, strings.Join(supportedCanvases, ", "),
		)
	}
}

// ValidateCanvas checks a user supplied canvas token.
func ValidateCanvas(canvas string) error {
	for _, supported := range supportedCanvases {
		if canvas == supported {
			return nil
		}
	}
	return fmt.Errorf(
		"unsupported resolution %q (supported: %s)",
		canvas, strings.Join(supportedCanvases, ", "),
	)
}

// ParseCanvas splits a "WxH" token into its dimensions.
func ParseCanvas(canvas string) (int, int, error) {
	w, h, ok := strings.Cut(canvas, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid canvas size %q", canvas)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid canvas width in %q", canvas)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid canvas height in %q", canvas)
	}
	return width, height, nil
}
