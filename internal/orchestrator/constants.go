package orchestrator

import "time"

const (
	// DefaultRunTimeout bounds one end-to-end release run.
	DefaultRunTimeout = 10 * time.Minute
	// RunLockFile guards a checkout against two concurrent runs on the
	// same machine. This is a local courtesy, not distributed
	// coordination: runs from different machines still race and must be
	// serialized by external scheduling.
	RunLockFile = ".release.lock"
	// LockRetryCount and LockRetryInterval control the lock polling loop.
	LockRetryCount    = 50
	LockRetryInterval = 100 * time.Millisecond
)
