package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rate is a frame rate as an exact fraction, e.g. 30000/1001 for 29.97.
type Rate struct {
	Num int
	Den int
}

// common broadcast rates
var (
	Rate23976 = Rate{Num: 24000, Den: 1001}
	Rate24    = Rate{Num: 24, Den: 1}
	Rate25    = Rate{Num: 25, Den: 1}
	Rate2997  = Rate{Num: 30000, Den: 1001}
	Rate30    = Rate{Num: 30, Den: 1}
	Rate5994  = Rate{Num: 60000, Den: 1001}
	Rate60    = Rate{Num: 60, Den: 1}
)

func (r Rate) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Nominal is the integer frame count per timecode second (30 for 29.97).
func (r Rate) Nominal() int {
	return int(math.Round(r.Float64()))
}

func (r Rate) IsZero() bool {
	return r.Num == 0
}

func (r Rate) String() string {
	if r.Den == 1 {
		return strconv.Itoa(r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// ParseRate accepts "30000/1001", integer rates like "25", and the usual
// NTSC decimals (23.976, 29.97, 59.94). Other decimals are kept with
// millihertz precision.
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rate{}, fmt.Errorf("empty frame rate")
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return Rate{}, fmt.Errorf("invalid frame rate %q: %w", s, err)
		}
		d, err := strconv.Atoi(strings.TrimSpace(den))
		if err != nil {
			return Rate{}, fmt.Errorf("invalid frame rate %q: %w", s, err)
		}
		if n <= 0 || d <= 0 {
			return Rate{}, fmt.Errorf("invalid frame rate %q", s)
		}
		return Rate{Num: n, Den: d}, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return Rate{}, fmt.Errorf("invalid frame rate %q", s)
	}

	switch {
	case math.Abs(f-23.976) < 0.001:
		return Rate23976, nil
	case math.Abs(f-29.97) < 0.001:
		return Rate2997, nil
	case math.Abs(f-59.94) < 0.001:
		return Rate5994, nil
	}
	if f == math.Trunc(f) {
		return Rate{Num: int(f), Den: 1}, nil
	}
	return Rate{Num: int(math.Round(f * 1000)), Den: 1000}, nil
}

// ToTimecode converts a timestamp in seconds to HH:MM:SS:FF at the given
// rate. The frame field is a plain frame number, not drop-frame coded.
//
// All four fields derive from one rounded total-frame count. Splitting the
// seconds value stage by stage with the fractional rate would round at every
// stage and drift over long timelines.
func ToTimecode(seconds float64, rate Rate) string {
	if seconds < 0 {
		seconds = 0
	}

	totalFrames := int(math.Round(seconds * rate.Float64()))
	fpsInt := rate.Nominal()
	if fpsInt <= 0 {
		fpsInt = 1
	}
	framesPerHour := fpsInt * 3600
	framesPerMinute := fpsInt * 60

	hours := totalFrames / framesPerHour
	remaining := totalFrames % framesPerHour
	minutes := remaining / framesPerMinute
	remaining %= framesPerMinute
	secs := remaining / fpsInt
	frames := remaining % fpsInt

	if secs >= 60 {
		minutes += secs / 60
		secs %= 60
	}
	if minutes >= 60 {
		hours += minutes / 60
		minutes %= 60
	}

	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, secs, frames)
}
