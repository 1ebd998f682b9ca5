package chart

import (
	"errors"
	"fmt"
	"time"
)

const (
	maxSleepChartRange = 48 * time.Hour
	maxRestingRange    = 2 * 365 * 24 * time.Hour

	// MaxSmoothingWindow bounds the per-request smoothing override.
	MaxSmoothingWindow = 61
)

// ErrInvalidRequest wraps every validation failure so callers can map it to
// a client error.
var ErrInvalidRequest = errors.New("invalid request")

type RequestValidator struct {
	maxSleepRange   time.Duration
	maxRestingRange time.Duration
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		maxSleepRange:   maxSleepChartRange,
		maxRestingRange: maxRestingRange,
	}
}

// ValidateSleepChart checks a sleep chart query. A zero window selects the
// configured default.
func (v *RequestValidator) ValidateSleepChart(start, end time.Time, window int) error {
	if err := v.validateRange(start, end, v.maxSleepRange); err != nil {
		return err
	}
	if window < 0 || window > MaxSmoothingWindow {
		return fmt.Errorf("%w: invalid window: %d", ErrInvalidRequest, window)
	}
	return nil
}

func (v *RequestValidator) ValidateRestingHistory(start, end time.Time) error {
	return v.validateRange(start, end, v.maxRestingRange)
}

func (v *RequestValidator) validateRange(start, end time.Time, limit time.Duration) error {
	if start.IsZero() || end.IsZero() || start.Equal(time.Unix(0, 0)) || end.Equal(time.Unix(0, 0)) {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidRequest)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidRequest)
	}
	if end.Sub(start) > limit {
		return fmt.Errorf("%w: time range exceeds maximum allowed", ErrInvalidRequest)
	}
	return nil
}
