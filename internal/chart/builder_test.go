package chart

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/sleepchart/internal/models"
)

var night = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestBuilder() *Builder {
	opts := DefaultOptions()
	opts.Location = time.UTC
	return NewBuilder(opts, quietLogger())
}

func f(v float64) *float64 { return &v }

func heartRate(values ...*float64) []models.HeartRatePoint {
	out := make([]models.HeartRatePoint, len(values))
	for i, v := range values {
		out[i] = models.HeartRatePoint{Time: night.Add(time.Duration(i) * 5 * time.Minute), Value: v}
	}
	return out
}

func TestBuild(t *testing.T) {
	data := &models.SleepData{
		HeartRate: heartRate(f(60), f(62), nil, f(58), f(61)),
		SleepStages: []models.SleepStage{
			{Level: "light", StartTime: night, EndTime: night.Add(10 * time.Minute)},
			{Level: "deep", StartTime: night.Add(10 * time.Minute), EndTime: night.Add(20 * time.Minute)},
		},
		RestingHeartRate: f(52),
	}

	chart := newTestBuilder().Build(data, 3)

	require.Len(t, chart.Points, 5)
	want := []float64{61, 61, 60, 59.5, 59.5}
	for i, p := range chart.Points {
		assert.Equal(t, night.Add(time.Duration(i)*5*time.Minute).UnixMilli(), p.Time)
		require.NotNil(t, p.HeartRate, "point %d", i)
		assert.Equal(t, want[i], *p.HeartRate, "point %d", i)
		require.NotNil(t, p.RestingHeartRate)
		assert.Equal(t, 52.0, *p.RestingHeartRate)
	}

	require.NotNil(t, chart.Points[0].SleepStage)
	assert.Equal(t, 3, *chart.Points[0].SleepStage)
	assert.Equal(t, "#a855f7", *chart.Points[0].SleepColor)
	assert.Equal(t, 1, *chart.Points[2].SleepStage)
	assert.Equal(t, "#5b21b6", *chart.Points[3].SleepColor)
	assert.Nil(t, chart.Points[4].SleepStage, "interval ends are exclusive")
	assert.Nil(t, chart.Points[4].SleepColor)

	assert.Equal(t, models.AxisDomain{Min: 45, Max: 66}, chart.HeartRateDomain)
	assert.Equal(t, []int64{night.UnixMilli(), night.Add(15 * time.Minute).UnixMilli()}, chart.Ticks)
	assert.Len(t, chart.Stages, 4)
}

func TestBuildDefaultWindow(t *testing.T) {
	data := &models.SleepData{HeartRate: heartRate(f(50), f(60), f(70))}

	chart := newTestBuilder().Build(data, 0)

	// The default window of 9 covers the whole series.
	for _, p := range chart.Points {
		require.NotNil(t, p.HeartRate)
		assert.Equal(t, 60.0, *p.HeartRate)
	}
}

func TestBuildEmpty(t *testing.T) {
	chart := newTestBuilder().Build(&models.SleepData{}, 0)

	assert.Empty(t, chart.Points)
	assert.Empty(t, chart.Ticks)
	assert.Equal(t, models.AxisDomain{Min: 45, Max: 105}, chart.HeartRateDomain)
	assert.Nil(t, chart.RestingHeartRate)
}

func TestBuildSortsHeartRate(t *testing.T) {
	hr := heartRate(f(60), f(70), f(80))
	hr[0], hr[2] = hr[2], hr[0]

	chart := newTestBuilder().Build(&models.SleepData{HeartRate: hr}, 1)

	require.Len(t, chart.Points, 3)
	assert.Equal(t, 60.0, *chart.Points[0].HeartRate)
	assert.Equal(t, 80.0, *chart.Points[2].HeartRate)
	assert.Less(t, chart.Points[0].Time, chart.Points[1].Time)
}

func TestBuildUnknownStage(t *testing.T) {
	data := &models.SleepData{
		HeartRate: heartRate(f(60)),
		SleepStages: []models.SleepStage{
			{Level: "asleep", StartTime: night, EndTime: night.Add(time.Hour)},
		},
	}

	chart := newTestBuilder().Build(data, 1)

	require.Len(t, chart.Points, 1)
	assert.Nil(t, chart.Points[0].SleepStage)
	assert.Nil(t, chart.Points[0].SleepColor)
}

func TestBuildRestingHistory(t *testing.T) {
	days := []models.RestingHeartRate{
		{Date: night.AddDate(0, 0, 2), Value: 55},
		{Date: night, Value: 52},
		{Date: night.AddDate(0, 0, 1), Value: 58},
	}

	history := newTestBuilder().BuildRestingHistory(days)

	require.Len(t, history.Points, 3)
	assert.Equal(t, night.UnixMilli(), history.Points[0].Date)
	assert.Equal(t, 52.0, history.Points[0].RestingHeartRate)
	assert.Equal(t, 55.0, history.Points[2].RestingHeartRate)
	assert.Equal(t, models.AxisDomain{Min: 50, Max: 60}, history.Domain)
	assert.Equal(t, night.AddDate(0, 0, 2), days[0].Date, "input left untouched")
}

func TestBuildRestingHistoryEmpty(t *testing.T) {
	history := newTestBuilder().BuildRestingHistory(nil)

	assert.Empty(t, history.Points)
	assert.Equal(t, models.AxisDomain{Min: 45, Max: 100}, history.Domain)
}

func TestLegend(t *testing.T) {
	legend := Legend()

	require.Len(t, legend, 4)
	assert.Equal(t, models.StageLegend{Name: "deep", Level: 1, Color: "#5b21b6"}, legend[0])
	assert.Equal(t, models.StageLegend{Name: "wake", Level: 4, Color: "#c084fc"}, legend[3])
}

func TestNewBuilderRejectsUnevenTickInterval(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	opts := DefaultOptions()
	opts.Location = time.UTC
	opts.TickInterval = 7 * time.Minute

	data := &models.SleepData{HeartRate: []models.HeartRatePoint{
		{Time: night.Add(50 * time.Minute), Value: f(60)},
		{Time: night.Add(80 * time.Minute), Value: f(62)},
	}}
	chart := NewBuilder(opts, logger).Build(data, 1)

	want := []int64{night.Add(time.Hour).UnixMilli(), night.Add(75 * time.Minute).UnixMilli()}
	assert.Equal(t, want, chart.Ticks, "falls back to quarter hours")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
