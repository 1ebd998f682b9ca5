package chart

import (
	"context"
	"fmt"
	"time"

	"github.com/tejusbharadwaj/sleepchart/internal/models"
)

// Repository is the read side of the health store.
type Repository interface {
	QuerySleepData(ctx context.Context, start, end time.Time) (*models.SleepData, error)
	QueryRestingHeartRate(ctx context.Context, start, end time.Time) ([]models.RestingHeartRate, error)
}

// Service validates chart queries, loads the data and builds the charts.
type Service struct {
	repo      Repository
	builder   *Builder
	validator *RequestValidator
}

func NewService(repo Repository, builder *Builder) *Service {
	return &Service{
		repo:      repo,
		builder:   builder,
		validator: NewRequestValidator(),
	}
}

// SleepChart builds the combined chart for the night between start and end.
func (s *Service) SleepChart(ctx context.Context, start, end time.Time, window int) (*models.SleepChart, error) {
	if err := s.validator.ValidateSleepChart(start, end, window); err != nil {
		return nil, err
	}

	data, err := s.repo.QuerySleepData(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("query sleep data: %w", err)
	}
	if data == nil {
		data = &models.SleepData{}
	}
	return s.builder.Build(data, window), nil
}

// RestingHeartRate builds the daily resting heart-rate history.
func (s *Service) RestingHeartRate(ctx context.Context, start, end time.Time) (*models.RestingHistory, error) {
	if err := s.validator.ValidateRestingHistory(start, end); err != nil {
		return nil, err
	}

	days, err := s.repo.QueryRestingHeartRate(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("query resting heart rate: %w", err)
	}
	return s.builder.BuildRestingHistory(days), nil
}
