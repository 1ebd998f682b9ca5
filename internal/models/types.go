package models

import "time"

// SleepMetadata describes the sleep session returned by the health API.
type SleepMetadata struct {
	StartTime             time.Time `json:"startTime"`
	EndTime               time.Time `json:"endTime"`
	TotalAwakeTimeMinutes int       `json:"totalAwakeTimeMinutes"`
}

// HeartRatePoint is a stored heart-rate reading. A nil Value is a missing
// reading.
type HeartRatePoint struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

// SleepStage is a stored stage interval. Level is the upstream label and is
// kept verbatim, including labels the chart does not know about.
type SleepStage struct {
	Level           string    `json:"level"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationSeconds int       `json:"durationSeconds"`
}

// SleepData is everything needed to draw one night.
type SleepData struct {
	Metadata         SleepMetadata    `json:"metadata"`
	SleepStages      []SleepStage     `json:"sleepStages"`
	HeartRate        []HeartRatePoint `json:"heartRate"`
	RestingHeartRate *float64         `json:"restingHeartRate,omitempty"`
}

// RestingHeartRate is the resting heart rate of one day.
type RestingHeartRate struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"restingHeartRate"`
}

// ChartPoint is one renderer-ready point of the combined timeline.
type ChartPoint struct {
	Time             int64    `json:"time"`
	HeartRate        *float64 `json:"heartRate,omitempty"`
	RestingHeartRate *float64 `json:"restingHeartRate,omitempty"`
	SleepStage       *int     `json:"sleepStage,omitempty"`
	SleepColor       *string  `json:"sleepColor,omitempty"`
}

// AxisDomain is a numeric axis range.
type AxisDomain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// StageLegend labels one level of the stage axis.
type StageLegend struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Color string `json:"color"`
}

// SleepChart is the combined series plus axis helpers for one night.
type SleepChart struct {
	Points           []ChartPoint  `json:"points"`
	HeartRateDomain  AxisDomain    `json:"heartRateDomain"`
	Ticks            []int64       `json:"ticks"`
	Stages           []StageLegend `json:"stages"`
	RestingHeartRate *float64      `json:"restingHeartRate,omitempty"`
	Metadata         SleepMetadata `json:"metadata"`
}

// RestingPoint is one day of the resting heart-rate history chart.
type RestingPoint struct {
	Date             int64   `json:"date"`
	RestingHeartRate float64 `json:"restingHeartRate"`
}

// RestingHistory is the resting heart-rate history chart.
type RestingHistory struct {
	Points []RestingPoint `json:"points"`
	Domain AxisDomain     `json:"domain"`
}
