package worker

import "errors"

// Log messages
const (
	LogMsgWorkerJobFailed    = "Worker job failed"
	LogMsgWorkerJobPanicked  = "Worker job panicked"
	LogMsgWorkerJobCancelled = "Worker job cancelled by shutdown"
	LogMsgPoolStopped        = "Worker pool stopped"
	LogMsgPoolStopTimeout    = "Worker pool stop timed out"
)

var (
	// ErrQueueFull is returned by Submit when the job queue has no room
	ErrQueueFull = errors.New("worker queue full")
	// ErrPoolStopped is returned by Submit after Stop
	ErrPoolStopped = errors.New("worker pool stopped")
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount = 2
	TestQueueSize   = 10
)
