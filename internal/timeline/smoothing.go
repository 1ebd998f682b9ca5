package timeline

import "time"

// Sample is one timestamped reading. Valid is false for a missing reading,
// in which case Value is meaningless.
type Sample struct {
	Time  time.Time
	Value float64
	Valid bool
}

// Reading returns a present sample.
func Reading(t time.Time, v float64) Sample {
	return Sample{Time: t, Value: v, Valid: true}
}

// Gap returns a missing sample at t.
func Gap(t time.Time) Sample {
	return Sample{Time: t}
}

// Smooth applies a centered moving average of the given window size.
//
// Output entry i keeps samples[i].Time and holds the mean of the valid
// values with index in [i-window/2, i+ceil(window/2)), clamped to the
// sequence. For even windows the range reaches one sample further back than
// forward. A window holding no valid values yields a gap. A window of 1 or
// less returns a copy of the input.
func Smooth(samples []Sample, window int) []Sample {
	out := make([]Sample, len(samples))
	if window <= 1 {
		copy(out, samples)
		return out
	}

	left := window / 2
	right := (window + 1) / 2
	n := len(samples)

	for i := range samples {
		start := max(0, i-left)
		end := min(n, i+right)

		var sum float64
		var count int
		for _, s := range samples[start:end] {
			if !s.Valid {
				continue
			}
			sum += s.Value
			count++
		}

		if count == 0 {
			out[i] = Gap(samples[i].Time)
			continue
		}
		out[i] = Reading(samples[i].Time, sum/float64(count))
	}
	return out
}
