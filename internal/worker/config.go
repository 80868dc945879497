// Package worker provides background job processing for MoveWise.
package worker

import (
	"time"
)

// QueuedRequest is one analysis waiting to be run on behalf of a user.
type QueuedRequest struct {
	UserID             string `json:"user_id"`
	CurrentAddress     string `json:"current_address"`
	DestinationAddress string `json:"destination_address"`
}

// JobConfig holds configuration for the analysis job processor.
type JobConfig struct {
	// Concurrency is the number of analyses run in parallel.
	// Default: 3
	Concurrency int

	// Timeout bounds a single analysis, covering every upstream call
	// it fans out to.
	// Default: 60 seconds
	Timeout time.Duration
}

// DefaultJobConfig returns the default job configuration.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		Concurrency: 3,
		Timeout:     60 * time.Second,
	}
}
