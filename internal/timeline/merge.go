package timeline

import (
	"sort"
	"time"
)

// CombinedPoint is one instant of the merged timeline.
type CombinedPoint struct {
	Time time.Time

	HeartRate    float64
	HasHeartRate bool

	RestingHeartRate    float64
	HasRestingHeartRate bool

	// Stage is StageNone when no interval covers Time.
	Stage Stage
}

// Level returns the stage plot level, if any.
func (p CombinedPoint) Level() (int, bool) {
	if !p.Stage.Known() {
		return 0, false
	}
	return p.Stage.Info().Level, true
}

// Color returns the stage display color, if any. It is present exactly when
// Level is.
func (p CombinedPoint) Color() (string, bool) {
	if !p.Stage.Known() {
		return "", false
	}
	return p.Stage.Info().Color, true
}

// Merge joins a smoothed heart-rate series with sleep-stage intervals.
//
// The heart-rate series is the spine: the result has exactly one point per
// input sample, in input order. Every point carries the resting heart rate
// when resting is non-nil. A point takes the stage of each interval whose
// [Start, End) covers it, so where intervals overlap the one that comes last
// in intervals wins. Intervals with an unknown stage are ignored.
func Merge(heartRate []Sample, intervals []SleepInterval, resting *float64) []CombinedPoint {
	points := make([]CombinedPoint, len(heartRate))
	for i, s := range heartRate {
		points[i] = CombinedPoint{
			Time:         s.Time,
			HeartRate:    s.Value,
			HasHeartRate: s.Valid,
		}
		if !s.Valid {
			points[i].HeartRate = 0
		}
		if resting != nil {
			points[i].RestingHeartRate = *resting
			points[i].HasRestingHeartRate = true
		}
	}

	sorted := IsSorted(heartRate)
	for _, iv := range intervals {
		if !iv.Stage.Known() {
			continue
		}
		if !sorted {
			for i := range points {
				if iv.Covers(points[i].Time) {
					points[i].Stage = iv.Stage
				}
			}
			continue
		}
		// Covered points on a sorted spine are contiguous.
		first := sort.Search(len(points), func(i int) bool {
			return !points[i].Time.Before(iv.Start)
		})
		for i := first; i < len(points) && points[i].Time.Before(iv.End); i++ {
			points[i].Stage = iv.Stage
		}
	}
	return points
}
