package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Endpoint labels used by the counters below.
const (
	EndpointRecommendation = "recommendation"
	EndpointTestGeneration = "test_generation"
)

var (
	recommendationStartedTotal   atomic.Uint64
	testGenerationStartedTotal   atomic.Uint64
	recommendationCompletedTotal atomic.Uint64
	recommendationFailedTotal    atomic.Uint64
	testGenerationCompletedTotal atomic.Uint64
	testGenerationFailedTotal    atomic.Uint64

	recommendationDuration = newHistogram(defaultBuckets())
	testGenerationDuration = newHistogram(defaultBuckets())
)

func defaultBuckets() []float64 {
	return []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000}
}

// IncStarted increments the started counter for an endpoint.
func IncStarted(endpoint string) {
	switch endpoint {
	case EndpointRecommendation:
		recommendationStartedTotal.Add(1)
	case EndpointTestGeneration:
		testGenerationStartedTotal.Add(1)
	}
}

// IncCompleted increments the completed counter for an endpoint.
func IncCompleted(endpoint string) {
	switch endpoint {
	case EndpointRecommendation:
		recommendationCompletedTotal.Add(1)
	case EndpointTestGeneration:
		testGenerationCompletedTotal.Add(1)
	}
}

// IncFailed increments the failed counter for an endpoint.
func IncFailed(endpoint string) {
	switch endpoint {
	case EndpointRecommendation:
		recommendationFailedTotal.Add(1)
	case EndpointTestGeneration:
		testGenerationFailedTotal.Add(1)
	}
}

// ObserveDurationMs records an end-to-end request duration in milliseconds.
func ObserveDurationMs(endpoint string, value float64) {
	if value < 0 {
		value = 0
	}
	switch endpoint {
	case EndpointRecommendation:
		recommendationDuration.Observe(value)
	case EndpointTestGeneration:
		testGenerationDuration.Observe(value)
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "recommendation_started_total", "Total recommendation calls started", recommendationStartedTotal.Load())
	writeCounter(&buf, "test_generation_started_total", "Total test generation calls started", testGenerationStartedTotal.Load())
	writeCounter(&buf, "recommendation_completed_total", "Total recommendation calls completed", recommendationCompletedTotal.Load())
	writeCounter(&buf, "recommendation_failed_total", "Total recommendation calls failed", recommendationFailedTotal.Load())
	writeCounter(&buf, "test_generation_completed_total", "Total test generation calls completed", testGenerationCompletedTotal.Load())
	writeCounter(&buf, "test_generation_failed_total", "Total test generation calls failed", testGenerationFailedTotal.Load())
	writeHistogram(&buf, "recommendation_duration_ms", "Recommendation duration in milliseconds", recommendationDuration.Snapshot())
	writeHistogram(&buf, "test_generation_duration_ms", "Test generation duration in milliseconds", testGenerationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
