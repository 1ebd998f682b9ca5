package timeline

import "time"

// TickInterval is the spacing of the time axis grid.
const TickInterval = 15 * time.Minute

// FallbackDomain is returned by HeartRateDomain when there is nothing to
// measure, so renderers never see an empty or NaN range.
var FallbackDomain = Domain{Min: 45, Max: 100, Fallback: true}

// Domain is a closed numeric axis range.
type Domain struct {
	Min float64
	Max float64
	// Fallback is set when the range was not derived from data.
	Fallback bool
}

// Pad widens d by below and above.
func (d Domain) Pad(below, above float64) Domain {
	d.Min -= below
	d.Max += above
	return d
}

// HeartRateDomain returns the min and max of the valid sample values, or
// FallbackDomain when there are none.
func HeartRateDomain(samples []Sample) Domain {
	d := Domain{}
	found := false
	for _, s := range samples {
		if !s.Valid {
			continue
		}
		if !found {
			d.Min, d.Max = s.Value, s.Value
			found = true
			continue
		}
		d.Min = min(d.Min, s.Value)
		d.Max = max(d.Max, s.Value)
	}
	if !found {
		return FallbackDomain
	}
	return d
}

// Ticks returns grid instants between first and last inclusive.
//
// The grid is anchored at the top of the hour in loc and spaced by step.
// step should divide an hour; otherwise the grid depends on first.
// The first tick is the earliest grid instant not before first; ticks
// continue while they are not after last. With step of 15 minutes, 23:47 to
// 01:12 yields 00:00, 00:15, 00:30, 00:45 and 01:00.
func Ticks(first, last time.Time, step time.Duration, loc *time.Location) []time.Time {
	if step <= 0 || first.After(last) {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	local := first.In(loc)
	tick := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
	for tick.Before(first) {
		tick = tick.Add(step)
	}

	var ticks []time.Time
	for !tick.After(last) {
		ticks = append(ticks, tick)
		tick = tick.Add(step)
	}
	return ticks
}

// SeriesTicks returns the Ticks spanning a combined series, or nil for an
// empty one.
func SeriesTicks(points []CombinedPoint, step time.Duration, loc *time.Location) []time.Time {
	if len(points) == 0 {
		return nil
	}
	return Ticks(points[0].Time, points[len(points)-1].Time, step, loc)
}
