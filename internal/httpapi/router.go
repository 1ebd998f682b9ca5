// Package httpapi serves the charts as JSON for browser renderers, next to
// the liveness and Prometheus endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/sleepchart/internal/chart"
	"github.com/tejusbharadwaj/sleepchart/internal/models"
)

// ChartService builds charts from stored data.
type ChartService interface {
	SleepChart(ctx context.Context, start, end time.Time, window int) (*models.SleepChart, error)
	RestingHeartRate(ctx context.Context, start, end time.Time) (*models.RestingHistory, error)
}

// HealthReporter reports whether a service is serving. The empty name is the
// process as a whole.
type HealthReporter interface {
	Serving(service string) bool
}

type Server struct {
	charts ChartService
	health HealthReporter
	logger *logrus.Logger
}

// NewRouter wires the HTTP routes. gatherer backs /metrics.
func NewRouter(charts ChartService, health HealthReporter, gatherer prometheus.Gatherer, logger *logrus.Logger) http.Handler {
	srv := &Server{charts: charts, health: health, logger: logger}

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.StripSlashes)
	router.Use(chiMiddleware.Recoverer)
	router.Use(srv.logRequests)

	router.Get("/api/v1/sleep-chart", srv.SleepChartHandler)
	router.Get("/api/v1/resting-heart-rate", srv.RestingHeartRateHandler)
	router.Get("/healthz", srv.HealthHandler)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return router
}

func (srv *Server) SleepChartHandler(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	window := 0
	if raw := r.URL.Query().Get("window"); raw != "" {
		window, err = strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid window: "+raw, http.StatusBadRequest)
			return
		}
	}

	c, err := srv.charts.SleepChart(r.Context(), start, end, window)
	if err != nil {
		srv.writeError(w, r, err)
		return
	}
	srv.writeJSON(w, c)
}

func (srv *Server) RestingHeartRateHandler(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	history, err := srv.charts.RestingHeartRate(r.Context(), start, end)
	if err != nil {
		srv.writeError(w, r, err)
		return
	}
	srv.writeJSON(w, history)
}

func (srv *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !srv.health.Serving("") {
		http.Error(w, "not serving", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	start, err := parseTime(q.Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseTime(q.Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// parseTime accepts RFC 3339 or milliseconds since the epoch. An empty value
// yields the zero time, which the chart service rejects.
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.New("invalid timestamp: " + raw)
	}
	return t, nil
}

func (srv *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, chart.ErrInvalidRequest) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	srv.logger.WithError(err).
		WithField("request_id", chiMiddleware.GetReqID(r.Context())).
		Error("Failed to build chart")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (srv *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		srv.logger.WithError(err).Warn("Failed to write response JSON")
	}
}

func (srv *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		srv.logger.WithFields(logrus.Fields{
			"request_id": chiMiddleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
		}).Debug("HTTP request")
	})
}
