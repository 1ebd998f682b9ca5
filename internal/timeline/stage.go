// Package timeline aligns heart-rate samples with sleep-stage intervals.
//
// The package is pure: every function takes its inputs by value, allocates
// its own output and never logs, blocks or fails. Callers own the order of
// samples (see SortSamples); interval order decides overlaps in Merge.
//
// Typical use:
//
//	smoothed := timeline.Smooth(samples, 9)
//	points := timeline.Merge(smoothed, intervals, &resting)
//	domain := timeline.HeartRateDomain(smoothed)
//	ticks := timeline.SeriesTicks(points, timeline.TickInterval, time.Local)
package timeline

import "time"

// Stage is a sleep stage. The numeric value is the plot level, so deeper
// sleep sits lower on the stage axis.
type Stage uint8

const (
	StageNone Stage = iota
	StageDeep
	StageREM
	StageLight
	StageWake
)

// StageInfo is the fixed plot level and display color of a stage.
type StageInfo struct {
	Level int
	Color string
}

var stageInfo = [...]StageInfo{
	StageNone:  {},
	StageDeep:  {Level: 1, Color: "#5b21b6"},
	StageREM:   {Level: 2, Color: "#7c3aed"},
	StageLight: {Level: 3, Color: "#a855f7"},
	StageWake:  {Level: 4, Color: "#c084fc"},
}

var stageNames = [...]string{
	StageNone:  "",
	StageDeep:  "deep",
	StageREM:   "rem",
	StageLight: "light",
	StageWake:  "wake",
}

// Stages lists the known stages from deepest to lightest.
var Stages = []Stage{StageDeep, StageREM, StageLight, StageWake}

// ParseStage maps an upstream stage label to a Stage. Unknown labels map to
// StageNone and ok is false.
func ParseStage(label string) (stage Stage, ok bool) {
	switch label {
	case "wake":
		return StageWake, true
	case "light":
		return StageLight, true
	case "rem":
		return StageREM, true
	case "deep":
		return StageDeep, true
	default:
		return StageNone, false
	}
}

// Info returns the level and color of s. StageNone and out-of-range values
// return the zero StageInfo.
func (s Stage) Info() StageInfo {
	if int(s) >= len(stageInfo) {
		return StageInfo{}
	}
	return stageInfo[s]
}

// Known reports whether s is one of the four sleep stages.
func (s Stage) Known() bool {
	return s != StageNone && int(s) < len(stageInfo)
}

func (s Stage) String() string {
	if int(s) >= len(stageNames) {
		return ""
	}
	return stageNames[s]
}

// SleepInterval is a stage over the half-open range [Start, End).
type SleepInterval struct {
	Stage Stage
	Start time.Time
	End   time.Time
}

// Covers reports whether t falls in [Start, End).
func (iv SleepInterval) Covers(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}
