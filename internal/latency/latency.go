// Package latency samples the response time of one endpoint by sending
// requests back to back and summarizing them with an HDR histogram.
package latency

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/diaries/internal/http"
)

// Histogram range in microseconds: 1µs to 1 hour, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// SendFunc sends one fresh request. Requests are single use, so the
// function has to build a new one on every call.
type SendFunc func(ctx context.Context) (*http.Response, error)

// Report summarizes a sampling run.
type Report struct {
	Requests     int64         `json:"requests" yaml:"requests"`
	Failures     int64         `json:"failures" yaml:"failures"`
	StatusCounts map[int]int64 `json:"statusCounts" yaml:"statusCounts"`
	Min          time.Duration `json:"min" yaml:"min"`
	Max          time.Duration `json:"max" yaml:"max"`
	Mean         time.Duration `json:"mean" yaml:"mean"`
	P50          time.Duration `json:"p50" yaml:"p50"`
	P90          time.Duration `json:"p90" yaml:"p90"`
	P95          time.Duration `json:"p95" yaml:"p95"`
	P99          time.Duration `json:"p99" yaml:"p99"`
	Elapsed      time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Statuses returns the observed status codes in ascending order.
func (r *Report) Statuses() []int {
	codes := make([]int, 0, len(r.StatusCounts))
	for code := range r.StatusCounts {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// Recorder accumulates samples. It is safe for concurrent use.
type Recorder struct {
	mu           sync.Mutex
	hist         *hdrhistogram.Histogram
	failures     int64
	statusCounts map[int]int64
	start        time.Time
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist:         hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
		statusCounts: make(map[int]int64),
		start:        time.Now(),
	}
}

// Record adds one sample. A non-nil err marks a transport failure; its
// duration is still recorded.
func (r *Recorder) Record(status int, duration time.Duration, err error) {
	micros := duration.Microseconds()

	// Clamp to valid range
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_ = r.hist.RecordValue(micros)
	if err != nil {
		r.failures++
		return
	}
	r.statusCounts[status]++
}

// Report returns a snapshot of what has been recorded so far.
func (r *Recorder) Report() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[int]int64, len(r.statusCounts))
	for code, n := range r.statusCounts {
		counts[code] = n
	}

	return &Report{
		Requests:     r.hist.TotalCount(),
		Failures:     r.failures,
		StatusCounts: counts,
		Min:          micros(r.hist.Min()),
		Max:          micros(r.hist.Max()),
		Mean:         micros(int64(r.hist.Mean())),
		P50:          micros(r.hist.ValueAtQuantile(50)),
		P90:          micros(r.hist.ValueAtQuantile(90)),
		P95:          micros(r.hist.ValueAtQuantile(95)),
		P99:          micros(r.hist.ValueAtQuantile(99)),
		Elapsed:      time.Since(r.start),
	}
}

// Run calls send count times, one after the other, and reports the
// latencies. Transport failures are counted and do not stop the run.
// Cancelling ctx stops the run; the partial report is returned with the
// context's error.
func Run(ctx context.Context, count int, send SendFunc) (*Report, error) {
	if count < 1 {
		return nil, fmt.Errorf("latency: count must be at least 1, got %d", count)
	}

	recorder := NewRecorder()
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return recorder.Report(), err
		}

		started := time.Now()
		resp, err := send(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return recorder.Report(), ctxErr
			}
			recorder.Record(0, time.Since(started), err)
			continue
		}

		duration := resp.Timing.TotalTime
		if duration <= 0 {
			duration = time.Since(started)
		}
		recorder.Record(resp.StatusCode, duration, nil)
	}

	return recorder.Report(), nil
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}
