package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/sleepchart/internal/config"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.LoggingConfig{Level: "debug", Format: "text"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger, err = newLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, err = newLogger(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

type blockingBootstrapper struct {
	started  chan struct{}
	finished atomic.Bool
}

func (b *blockingBootstrapper) BootstrapHistoricalData(ctx context.Context, days int) error {
	close(b.started)
	<-ctx.Done()
	// Stands in for a store call still in flight after cancellation.
	time.Sleep(20 * time.Millisecond)
	b.finished.Store(true)
	return ctx.Err()
}

func TestStartBootstrapWaitsForCompletion(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	b := &blockingBootstrapper{started: make(chan struct{})}

	var wg sync.WaitGroup
	startBootstrap(ctx, &wg, b, 30, logger)
	<-b.started

	cancel()
	wg.Wait()

	assert.True(t, b.finished.Load(), "Wait returns only after the backfill")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.True(t, errors.Is(hook.LastEntry().Data[logrus.ErrorKey].(error), context.Canceled))
}
