package timeline

// ClipRange is an optional [start, end) trim window in stream-relative
// seconds, mirroring an upstream video trim. Either end may be unset.
// When Start is set all kept timecodes re-base to zero at Start.
type ClipRange struct {
	Start *float64
	End   *float64
}

// Apply filters and shifts one adjusted [start, end) interval.
// Events starting before Start or at/after End are dropped; ends running
// past End are clamped; kept times shift down by Start.
func (r ClipRange) Apply(start, end float64) (float64, float64, bool) {
	if r.Start != nil && start < *r.Start {
		return 0, 0, false
	}
	if r.End != nil {
		if start >= *r.End {
			return 0, 0, false
		}
		if end > *r.End {
			end = *r.End
		}
	}
	if r.Start != nil {
		start -= *r.Start
		end -= *r.Start
	}
	return start, end, true
}

// ApplyInstant clamps and shifts a single point in time, used for the end
// time synthesized by a clear command.
func (r ClipRange) ApplyInstant(ts float64) float64 {
	if r.End != nil && ts > *r.End {
		ts = *r.End
	}
	if r.Start != nil {
		ts -= *r.Start
	}
	return ts
}
