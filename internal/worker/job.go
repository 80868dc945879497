package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/movewise/movewise/internal/analysis"
)

// AnalysisRunner runs one relocation comparison. The analysis service
// implements it.
type AnalysisRunner interface {
	Create(ctx context.Context, userID string, req *analysis.Request) (*analysis.Result, error)
}

// AnalysisJob processes batches of queued analysis requests.
type AnalysisJob struct {
	config JobConfig
	runner AnalysisRunner
	logger zerolog.Logger

	metrics *JobMetrics
}

// JobMetrics tracks analysis job statistics.
type JobMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalBatches       int64
	SuccessfulAnalyses int64
	FailedAnalyses     int64
	GeocodeFailures    int64

	// Timings
	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// AnalysisJobConfig holds configuration for creating an AnalysisJob.
type AnalysisJobConfig struct {
	Config JobConfig
	Runner AnalysisRunner
	Logger zerolog.Logger
}

// NewAnalysisJob creates a new analysis job processor.
func NewAnalysisJob(cfg AnalysisJobConfig) *AnalysisJob {
	config := cfg.Config
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultJobConfig().Concurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultJobConfig().Timeout
	}

	return &AnalysisJob{
		config:  config,
		runner:  cfg.Runner,
		logger:  cfg.Logger,
		metrics: &JobMetrics{},
	}
}

// BatchResult contains the result of a batch run.
type BatchResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Total      int
	Successful int
	Failed     int
	Errors     []JobError
}

// JobError records one failed analysis in a batch.
type JobError struct {
	UserID             string
	CurrentAddress     string
	DestinationAddress string
	Error              string
}

// Run executes all queued requests with a bounded worker pool.
func (j *AnalysisJob) Run(ctx context.Context, requests []QueuedRequest) *BatchResult {
	startTime := time.Now()
	result := &BatchResult{
		StartTime: startTime,
		Total:     len(requests),
	}

	j.logger.Info().
		Int("total", result.Total).
		Int("concurrency", j.config.Concurrency).
		Msg("starting analysis batch")

	requestsChan := make(chan QueuedRequest, len(requests))
	resultsChan := make(chan requestResult, len(requests))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.analysisWorker(ctx, requestsChan, resultsChan)
		}()
	}

	for _, req := range requests {
		requestsChan <- req
	}
	close(requestsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for rr := range resultsChan {
		if rr.err == nil {
			result.Successful++
			continue
		}
		result.Failed++
		result.Errors = append(result.Errors, JobError{
			UserID:             rr.request.UserID,
			CurrentAddress:     rr.request.CurrentAddress,
			DestinationAddress: rr.request.DestinationAddress,
			Error:              rr.err.Error(),
		})
		if errors.Is(rr.err, analysis.ErrGeocoding) {
			atomic.AddInt64(&j.metrics.GeocodeFailures, 1)
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("analysis batch completed")

	return result
}

type requestResult struct {
	request QueuedRequest
	err     error
}

func (j *AnalysisJob) analysisWorker(ctx context.Context, requests <-chan QueuedRequest, results chan<- requestResult) {
	for req := range requests {
		select {
		case <-ctx.Done():
			return
		default:
			results <- requestResult{request: req, err: j.runOne(ctx, req)}
		}
	}
}

func (j *AnalysisJob) runOne(ctx context.Context, req QueuedRequest) error {
	runCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	result, err := j.runner.Create(runCtx, req.UserID, &analysis.Request{
		CurrentAddress:     req.CurrentAddress,
		DestinationAddress: req.DestinationAddress,
	})
	if err != nil {
		j.logger.Warn().
			Err(err).
			Str("user_id", req.UserID).
			Str("destination", req.DestinationAddress).
			Msg("queued analysis failed")
		return err
	}

	j.logger.Debug().
		Str("analysis_id", result.ID).
		Str("user_id", req.UserID).
		Msg("queued analysis completed")
	return nil
}

func (j *AnalysisJob) updateMetrics(result *BatchResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalBatches++
	j.metrics.SuccessfulAnalyses += int64(result.Successful)
	j.metrics.FailedAnalyses += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *AnalysisJob) GetMetrics() JobMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return JobMetrics{
		TotalBatches:       j.metrics.TotalBatches,
		SuccessfulAnalyses: j.metrics.SuccessfulAnalyses,
		FailedAnalyses:     j.metrics.FailedAnalyses,
		GeocodeFailures:    atomic.LoadInt64(&j.metrics.GeocodeFailures),
		LastRunAt:          j.metrics.LastRunAt,
		LastRunDuration:    j.metrics.LastRunDuration,
		TotalDuration:      j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *AnalysisJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_batches":       m.TotalBatches,
		"successful_analyses": m.SuccessfulAnalyses,
		"failed_analyses":     m.FailedAnalyses,
		"geocode_failures":    m.GeocodeFailures,
		"last_run_at":         m.LastRunAt,
		"last_run_duration":   m.LastRunDuration.String(),
		"total_duration":      m.TotalDuration.String(),
	}
}
