package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTime parses a clip-range time value into seconds.
// Accepted forms: plain seconds (123.456), MM:SS, MM:SS.mmm,
// HH:MM:SS and HH:MM:SS.mmm.
func ParseTime(s string) (float64, error) {
	s = strings.TrimSpace(s)

	var fraction float64
	if dot := strings.IndexByte(s, '.'); dot >= 0 && strings.Contains(s, ":") {
		f, err := strconv.ParseFloat("0"+s[dot:], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid fractional seconds in %q", s)
		}
		fraction = f
		s = s[:dot]
	}

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf(
				"invalid time %q: use seconds (123.456) or HH:MM:SS.mmm",
				s,
			)
		}
		return v + fraction, nil
	case 2:
		minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in %q", s)
		}
		seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in %q", s)
		}
		return float64(minutes)*60 + float64(seconds) + fraction, nil
	case 3:
		hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, fmt.Errorf("invalid hours in %q", s)
		}
		minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in %q", s)
		}
		seconds, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in %q", s)
		}
		return float64(hours)*3600 + float64(minutes)*60 +
			float64(seconds) + fraction, nil
	default:
		return 0, fmt.Errorf("invalid time %q", s)
	}
}
