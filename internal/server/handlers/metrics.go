package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/trip-planner-app/internal/planner"
	"github.com/vzahanych/trip-planner-app/internal/server/middlewares"
	"go.uber.org/zap"
)

// HTTPMetricsSource exposes the request metrics gathered by the middleware.
type HTTPMetricsSource interface {
	Snapshot() middlewares.HTTPSnapshot
}

// AppMetrics holds application-level metrics (cache, providers, runs)
type AppMetrics struct {
	mutex           sync.RWMutex
	cacheHits       map[string]int64
	cacheMisses     map[string]int64
	providerCalls   map[string]int64
	providerErrors  map[string]int64
	runs            map[planner.State]int64
	runDurationSum  float64
	runDurationObsv int64
}

// MetricsHandler records application metrics and serves them, together with
// the HTTP metrics, in the Prometheus text format.
type MetricsHandler struct {
	logger     *zap.Logger
	appMetrics *AppMetrics
	http       HTTPMetricsSource
}

func NewMetricsHandler(logger *zap.Logger, httpSource HTTPMetricsSource) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
		http:   httpSource,
		appMetrics: &AppMetrics{
			cacheHits:      make(map[string]int64),
			cacheMisses:    make(map[string]int64),
			providerCalls:  make(map[string]int64),
			providerErrors: make(map[string]int64),
			runs:           make(map[planner.State]int64),
		},
	}
}

func (h *MetricsHandler) RecordCacheHit(ctx context.Context, cacheType string) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.cacheHits[cacheType]++
	h.appMetrics.mutex.Unlock()
}

func (h *MetricsHandler) RecordCacheMiss(ctx context.Context, cacheType string) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.cacheMisses[cacheType]++
	h.appMetrics.mutex.Unlock()
}

// RecordProviderCall records one weather or geocoding provider call.
func (h *MetricsHandler) RecordProviderCall(ctx context.Context, provider string, success bool) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.providerCalls[provider]++
	if !success {
		h.appMetrics.providerErrors[provider]++
	}
	h.appMetrics.mutex.Unlock()
}

// RecordRun records the terminal state of a planning run.
func (h *MetricsHandler) RecordRun(ctx context.Context, state planner.State, duration time.Duration) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.runs[state]++
	h.appMetrics.runDurationSum += duration.Seconds()
	h.appMetrics.runDurationObsv++
	h.appMetrics.mutex.Unlock()
}

func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	var b strings.Builder

	if h.http != nil {
		snap := h.http.Snapshot()

		writeHeader(&b, "http_requests_total", "Total number of HTTP requests", "counter")
		for _, key := range sortedKeys(snap.RequestsTotal) {
			b.WriteString("http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(snap.RequestsTotal[key], 10) + "\n")
		}

		writeHeader(&b, "http_request_duration_seconds_avg", "Average duration of HTTP requests", "gauge")
		b.WriteString("http_request_duration_seconds_avg " + strconv.FormatFloat(snap.AvgDurationSeconds, 'f', 6, 64) + "\n")

		writeHeader(&b, "http_active_requests", "Number of active HTTP requests", "gauge")
		b.WriteString("http_active_requests " + strconv.FormatInt(snap.ActiveRequests, 10) + "\n")
	}

	h.appMetrics.mutex.RLock()
	defer h.appMetrics.mutex.RUnlock()

	writeLabeled(&b, "cache_hits_total", "Total memo cache hits", "cache", h.appMetrics.cacheHits)
	writeLabeled(&b, "cache_misses_total", "Total memo cache misses", "cache", h.appMetrics.cacheMisses)
	writeLabeled(&b, "provider_calls_total", "Total weather and geocoding provider calls", "provider", h.appMetrics.providerCalls)
	writeLabeled(&b, "provider_errors_total", "Total weather and geocoding provider errors", "provider", h.appMetrics.providerErrors)

	runs := make(map[string]int64, len(h.appMetrics.runs))
	for state, n := range h.appMetrics.runs {
		runs[string(state)] = n
	}
	writeLabeled(&b, "planner_runs_total", "Planning runs by terminal state", "state", runs)

	var avg float64
	if h.appMetrics.runDurationObsv > 0 {
		avg = h.appMetrics.runDurationSum / float64(h.appMetrics.runDurationObsv)
	}
	writeHeader(&b, "planner_run_duration_seconds_avg", "Average duration of planning runs", "gauge")
	b.WriteString("planner_run_duration_seconds_avg " + strconv.FormatFloat(avg, 'f', 6, 64) + "\n")

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

func writeHeader(b *strings.Builder, name, help, kind string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString("# HELP " + name + " " + help + "\n")
	b.WriteString("# TYPE " + name + " " + kind + "\n")
}

func writeLabeled(b *strings.Builder, name, help, label string, values map[string]int64) {
	writeHeader(b, name, help, "counter")
	for _, key := range sortedKeys(values) {
		b.WriteString(name + "{" + label + "=\"" + key + "\"} " + strconv.FormatInt(values[key], 10) + "\n")
	}
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
