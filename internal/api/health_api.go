package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/sleepchart/internal/config"
	"github.com/tejusbharadwaj/sleepchart/internal/database"
	"github.com/tejusbharadwaj/sleepchart/internal/models"
)

const (
	authStatusPath       = "/api/v1/auth-status"
	sleepDataPath        = "/api/v1/sleep-data"
	restingHeartRatePath = "/api/v1/resting-heart-rate"
)

var (
	ErrHealthAPIRequest = errors.New("error making health API request")
	ErrHealthAPIStatus  = errors.New("error status from health API")
	ErrUnauthorized     = errors.New("health API rejected credentials")
)

type authStatusResponse struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

type sleepDataResponse struct {
	Metadata struct {
		StartTime             string `json:"startTime"`
		EndTime               string `json:"endTime"`
		TotalAwakeTimeMinutes int    `json:"totalAwakeTimeMinutes"`
	} `json:"metadata"`
	SleepStages []struct {
		Level           string `json:"level"`
		StartTime       string `json:"startTime"`
		EndTime         string `json:"endTime"`
		DurationSeconds int    `json:"durationSeconds"`
	} `json:"sleepStages"`
	HeartRate []struct {
		Time  string   `json:"time"`
		Value *float64 `json:"value"`
	} `json:"heartRate"`
	RestingHeartRate *float64 `json:"restingHeartRate"`
}

type restingHeartRateEntry struct {
	Date             string  `json:"date"`
	RestingHeartRate float64 `json:"restingHeartRate"`
}

// HealthFetcher pulls sleep and heart-rate history from the upstream health
// API and stores it.
type HealthFetcher struct {
	client *resty.Client
	repo   database.HealthRepository
	loc    *time.Location
	logger *logrus.Logger
}

// NewHealthFetcher builds a fetcher. loc is applied to upstream timestamps
// without an offset.
func NewHealthFetcher(cfg config.HealthAPIConfig, repo database.HealthRepository, loc *time.Location, logger *logrus.Logger) *HealthFetcher {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	if loc == nil {
		loc = time.Local
	}

	return &HealthFetcher{
		client: client,
		repo:   repo,
		loc:    loc,
		logger: logger,
	}
}

// CheckAuth verifies the configured credentials are still accepted.
func (f *HealthFetcher) CheckAuth(ctx context.Context) error {
	var status authStatusResponse
	if err := f.get(ctx, authStatusPath, nil, &status); err != nil {
		return err
	}
	if !status.IsAuthenticated {
		return ErrUnauthorized
	}
	return nil
}

// FetchSleepData fetches the sleep session and heart rate between start and
// end and stores them.
func (f *HealthFetcher) FetchSleepData(ctx context.Context, start, end time.Time) error {
	var resp sleepDataResponse
	params := map[string]string{
		"start_datetime": start.UTC().Format(time.RFC3339),
		"end_datetime":   end.UTC().Format(time.RFC3339),
	}
	if err := f.get(ctx, sleepDataPath, params, &resp); err != nil {
		return err
	}

	data := f.toSleepData(&resp)
	if len(data.HeartRate) == 0 && len(data.SleepStages) == 0 {
		f.logger.WithFields(logrus.Fields{
			"start": start,
			"end":   end,
		}).Debug("No sleep data returned")
		return nil
	}

	if err := f.repo.StoreSleepData(ctx, data); err != nil {
		return fmt.Errorf("failed to store sleep data: %w", err)
	}

	f.logger.WithFields(logrus.Fields{
		"start":        start,
		"end":          end,
		"heart_rate":   len(data.HeartRate),
		"sleep_stages": len(data.SleepStages),
	}).Info("Stored sleep data")
	return nil
}

// FetchRestingHeartRate fetches the daily resting heart rate for the days
// spanned by start and end and stores it.
func (f *HealthFetcher) FetchRestingHeartRate(ctx context.Context, start, end time.Time) error {
	var resp []restingHeartRateEntry
	params := map[string]string{
		"start_date": start.In(f.loc).Format(time.DateOnly),
		"end_date":   end.In(f.loc).Format(time.DateOnly),
	}
	if err := f.get(ctx, restingHeartRatePath, params, &resp); err != nil {
		return err
	}

	days := make([]models.RestingHeartRate, 0, len(resp))
	for _, entry := range resp {
		date, err := ParseTimestamp(entry.Date, f.loc)
		if err != nil {
			f.logger.WithError(err).Warn("Dropping resting heart rate entry")
			continue
		}
		days = append(days, models.RestingHeartRate{Date: date, Value: entry.RestingHeartRate})
	}

	if err := f.repo.StoreRestingHeartRate(ctx, days); err != nil {
		return fmt.Errorf("failed to store resting heart rate: %w", err)
	}
	return nil
}

// BootstrapHistoricalData fetches the last days of sleep data one day at a
// time, then the resting heart rate over the whole range. Failed days are
// logged and reported together; an authorization failure stops the run.
func (f *HealthFetcher) BootstrapHistoricalData(ctx context.Context, days int) error {
	endTime := time.Now()
	startTime := endTime.AddDate(0, 0, -days)

	var errs []error
	for dayStart := startTime; dayStart.Before(endTime); dayStart = dayStart.AddDate(0, 0, 1) {
		dayEnd := dayStart.AddDate(0, 0, 1)
		if dayEnd.After(endTime) {
			dayEnd = endTime
		}

		err := f.FetchSleepData(ctx, dayStart, dayEnd)
		if errors.Is(err, ErrUnauthorized) || ctx.Err() != nil {
			return errors.Join(err, ctx.Err())
		}
		if err != nil {
			f.logger.WithError(err).WithField("day", dayStart.Format(time.DateOnly)).Warn("Bootstrap fetch failed")
			errs = append(errs, err)
		}
	}

	if err := f.FetchRestingHeartRate(ctx, startTime, endTime); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (f *HealthFetcher) get(ctx context.Context, path string, params map[string]string, result interface{}) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		ForceContentType("application/json").
		Get(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHealthAPIRequest, err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.IsError():
		return fmt.Errorf("%w: got %d", ErrHealthAPIStatus, resp.StatusCode())
	}
	return nil
}

// toSleepData converts the wire shape, dropping entries whose timestamps
// cannot be parsed.
func (f *HealthFetcher) toSleepData(resp *sleepDataResponse) *models.SleepData {
	data := &models.SleepData{
		HeartRate:        make([]models.HeartRatePoint, 0, len(resp.HeartRate)),
		SleepStages:      make([]models.SleepStage, 0, len(resp.SleepStages)),
		RestingHeartRate: resp.RestingHeartRate,
	}
	data.Metadata.TotalAwakeTimeMinutes = resp.Metadata.TotalAwakeTimeMinutes
	if t, err := ParseTimestamp(resp.Metadata.StartTime, f.loc); err == nil {
		data.Metadata.StartTime = t
	}
	if t, err := ParseTimestamp(resp.Metadata.EndTime, f.loc); err == nil {
		data.Metadata.EndTime = t
	}

	dropped := 0
	for _, hr := range resp.HeartRate {
		t, err := ParseTimestamp(hr.Time, f.loc)
		if err != nil {
			dropped++
			continue
		}
		data.HeartRate = append(data.HeartRate, models.HeartRatePoint{Time: t, Value: hr.Value})
	}

	for _, st := range resp.SleepStages {
		start, err := ParseTimestamp(st.StartTime, f.loc)
		if err != nil {
			dropped++
			continue
		}
		end, err := ParseTimestamp(st.EndTime, f.loc)
		if err != nil {
			dropped++
			continue
		}
		data.SleepStages = append(data.SleepStages, models.SleepStage{
			Level:           st.Level,
			StartTime:       start,
			EndTime:         end,
			DurationSeconds: st.DurationSeconds,
		})
	}

	if dropped > 0 {
		f.logger.WithField("dropped", dropped).Warn("Dropped entries with unparseable timestamps")
	}
	return data
}
