package proto

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type SleepChartRequest struct {
	Start *timestamppb.Timestamp `json:"start,omitempty"`
	End   *timestamppb.Timestamp `json:"end,omitempty"`
	// SmoothingWindow overrides the server default when positive.
	SmoothingWindow int32 `json:"smoothingWindow,omitempty"`
}

type ChartPoint struct {
	// Time is milliseconds since the Unix epoch.
	Time             int64    `json:"time"`
	HeartRate        *float64 `json:"heartRate,omitempty"`
	RestingHeartRate *float64 `json:"restingHeartRate,omitempty"`
	SleepStage       *int32   `json:"sleepStage,omitempty"`
	SleepColor       *string  `json:"sleepColor,omitempty"`
}

type AxisDomain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type StageLegend struct {
	Name  string `json:"name"`
	Level int32  `json:"level"`
	Color string `json:"color"`
}

type SleepMetadata struct {
	Start                 *timestamppb.Timestamp `json:"start,omitempty"`
	End                   *timestamppb.Timestamp `json:"end,omitempty"`
	TotalAwakeTimeMinutes int32                  `json:"totalAwakeTimeMinutes"`
}

type SleepChartResponse struct {
	Points           []*ChartPoint  `json:"points"`
	HeartRateDomain  *AxisDomain    `json:"heartRateDomain"`
	Ticks            []int64        `json:"ticks"`
	Stages           []*StageLegend `json:"stages"`
	RestingHeartRate *float64       `json:"restingHeartRate,omitempty"`
	Metadata         *SleepMetadata `json:"metadata,omitempty"`
}

type RestingHeartRateRequest struct {
	Start *timestamppb.Timestamp `json:"start,omitempty"`
	End   *timestamppb.Timestamp `json:"end,omitempty"`
}

type RestingPoint struct {
	Date             int64   `json:"date"`
	RestingHeartRate float64 `json:"restingHeartRate"`
}

type RestingHeartRateResponse struct {
	Points []*RestingPoint `json:"points"`
	Domain *AxisDomain     `json:"domain"`
}
