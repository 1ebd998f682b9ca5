// Package chart turns stored sleep data into renderer-ready series.
package chart

import (
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/sleepchart/internal/models"
	"github.com/tejusbharadwaj/sleepchart/internal/timeline"
)

// Options tunes the charts produced by a Builder.
type Options struct {
	SmoothingWindow   int
	TickInterval      time.Duration
	HeartRateFloor    float64
	HeartRateHeadroom float64
	RestingPadding    float64
	Location          *time.Location
}

// DefaultOptions returns the stock dashboard settings.
func DefaultOptions() Options {
	return Options{
		SmoothingWindow:   9,
		TickInterval:      timeline.TickInterval,
		HeartRateFloor:    45,
		HeartRateHeadroom: 5,
		RestingPadding:    2,
		Location:          time.Local,
	}
}

// Builder converts stored data into charts. It is safe for concurrent use.
type Builder struct {
	opts   Options
	logger *logrus.Logger
}

// NewBuilder returns a Builder. A TickInterval that does not divide an hour
// falls back to timeline.TickInterval, since ticks are anchored at the top of
// each hour.
func NewBuilder(opts Options, logger *logrus.Logger) *Builder {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.TickInterval <= 0 || time.Hour%opts.TickInterval != 0 {
		if opts.TickInterval != 0 {
			logger.WithField("tick_interval", opts.TickInterval).Warn("Tick interval does not divide an hour, using default")
		}
		opts.TickInterval = timeline.TickInterval
	}
	return &Builder{opts: opts, logger: logger}
}

// Build produces the combined sleep chart. window overrides the configured
// smoothing window when positive.
func (b *Builder) Build(data *models.SleepData, window int) *models.SleepChart {
	if window <= 0 {
		window = b.opts.SmoothingWindow
	}

	samples := toSamples(data.HeartRate)
	if !timeline.IsSorted(samples) {
		b.logger.WithField("samples", len(samples)).Warn("Heart rate samples out of order, sorting")
		samples = timeline.SortSamples(samples)
	}

	intervals, unknown := toIntervals(data.SleepStages)
	if unknown > 0 {
		b.logger.WithField("intervals", unknown).Debug("Ignoring sleep stages with unknown level")
	}

	smoothed := timeline.Smooth(samples, window)
	points := timeline.Merge(smoothed, intervals, data.RestingHeartRate)

	// The floor stays fixed; only the top follows the data.
	domain := timeline.HeartRateDomain(smoothed)
	axis := models.AxisDomain{Min: b.opts.HeartRateFloor, Max: domain.Max + b.opts.HeartRateHeadroom}

	chart := &models.SleepChart{
		Points:           make([]models.ChartPoint, len(points)),
		HeartRateDomain:  axis,
		Ticks:            toEpochMillis(timeline.SeriesTicks(points, b.opts.TickInterval, b.opts.Location)),
		Stages:           Legend(),
		RestingHeartRate: data.RestingHeartRate,
		Metadata:         data.Metadata,
	}
	for i, p := range points {
		chart.Points[i] = toChartPoint(p)
	}
	return chart
}

// BuildRestingHistory produces the resting heart-rate history chart, ordered
// by day, with the axis padded around the observed range.
func (b *Builder) BuildRestingHistory(days []models.RestingHeartRate) *models.RestingHistory {
	sorted := slices.Clone(days)
	slices.SortStableFunc(sorted, func(x, y models.RestingHeartRate) int {
		return x.Date.Compare(y.Date)
	})

	history := &models.RestingHistory{Points: make([]models.RestingPoint, len(sorted))}
	samples := make([]timeline.Sample, len(sorted))
	for i, d := range sorted {
		history.Points[i] = models.RestingPoint{Date: d.Date.UnixMilli(), RestingHeartRate: d.Value}
		samples[i] = timeline.Reading(d.Date, d.Value)
	}

	domain := timeline.HeartRateDomain(samples)
	if !domain.Fallback {
		domain = domain.Pad(b.opts.RestingPadding, b.opts.RestingPadding)
	}
	history.Domain = models.AxisDomain{Min: domain.Min, Max: domain.Max}
	return history
}

// Legend describes the stage axis from deepest to lightest.
func Legend() []models.StageLegend {
	legend := make([]models.StageLegend, len(timeline.Stages))
	for i, s := range timeline.Stages {
		info := s.Info()
		legend[i] = models.StageLegend{Name: s.String(), Level: info.Level, Color: info.Color}
	}
	return legend
}

func toSamples(points []models.HeartRatePoint) []timeline.Sample {
	samples := make([]timeline.Sample, len(points))
	for i, p := range points {
		if p.Value == nil {
			samples[i] = timeline.Gap(p.Time)
			continue
		}
		samples[i] = timeline.Reading(p.Time, *p.Value)
	}
	return samples
}

func toIntervals(stages []models.SleepStage) ([]timeline.SleepInterval, int) {
	intervals := make([]timeline.SleepInterval, len(stages))
	unknown := 0
	for i, st := range stages {
		stage, ok := timeline.ParseStage(st.Level)
		if !ok {
			unknown++
		}
		intervals[i] = timeline.SleepInterval{Stage: stage, Start: st.StartTime, End: st.EndTime}
	}
	return intervals, unknown
}

func toChartPoint(p timeline.CombinedPoint) models.ChartPoint {
	cp := models.ChartPoint{Time: p.Time.UnixMilli()}
	if p.HasHeartRate {
		hr := p.HeartRate
		cp.HeartRate = &hr
	}
	if p.HasRestingHeartRate {
		resting := p.RestingHeartRate
		cp.RestingHeartRate = &resting
	}
	if level, ok := p.Level(); ok {
		color, _ := p.Color()
		cp.SleepStage = &level
		cp.SleepColor = &color
	}
	return cp
}

func toEpochMillis(ticks []time.Time) []int64 {
	out := make([]int64, len(ticks))
	for i, t := range ticks {
		out[i] = t.UnixMilli()
	}
	return out
}
