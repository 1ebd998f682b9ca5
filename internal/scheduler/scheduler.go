package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSpec     = "*/15 * * * *"
	DefaultLookback = 12 * time.Hour

	restingDays  = 7
	fetchTimeout = 2 * time.Minute
)

// Fetcher pulls upstream data into the store.
type Fetcher interface {
	FetchSleepData(ctx context.Context, start, end time.Time) error
	FetchRestingHeartRate(ctx context.Context, start, end time.Time) error
}

type Scheduler struct {
	ctx      context.Context
	fetcher  Fetcher
	logger   *logrus.Logger
	cron     *cron.Cron
	spec     string
	lookback time.Duration
	now      func() time.Time
}

// NewScheduler creates a scheduler running on spec, a standard five field
// cron expression. Each run refreshes the last lookback of sleep data and
// the last week of resting heart rate.
func NewScheduler(ctx context.Context, fetcher Fetcher, spec string, lookback time.Duration, logger *logrus.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Scheduler{
		ctx:      ctx,
		fetcher:  fetcher,
		logger:   logger,
		cron:     cron.New(),
		spec:     spec,
		lookback: lookback,
		now:      time.Now,
	}
}

// Start the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.collectData); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.WithField("spec", s.spec).Info("Scheduler started")
	return nil
}

// collectData fetches recent data from the API and stores it in the database
func (s *Scheduler) collectData() {
	ctx, cancel := context.WithTimeout(s.ctx, fetchTimeout)
	defer cancel()

	endTime := s.now()
	startTime := endTime.Add(-s.lookback)

	if err := s.fetcher.FetchSleepData(ctx, startTime, endTime); err != nil {
		s.logger.WithError(err).Error("Failed to fetch sleep data")
	}
	if err := s.fetcher.FetchRestingHeartRate(ctx, endTime.AddDate(0, 0, -restingDays), endTime); err != nil {
		s.logger.WithError(err).Error("Failed to fetch resting heart rate")
	}
}

// Stop the scheduler and wait for a running fetch to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
