package orchestrator

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/sethvargo/go-retry"
)

var errLockHeld = errors.New("release lock is held by another run")

// acquireRunLock takes the per-checkout run lock, polling with constant
// backoff until the lock is free or ctx expires.
func acquireRunLock(ctx context.Context, dir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dir, RunLockFile))
	err := retry.Do(
		ctx,
		retry.WithMaxRetries(LockRetryCount, retry.NewConstant(LockRetryInterval)),
		func(_ context.Context) error {
			locked, err := lock.TryLock()
			if err != nil {
				return err
			}
			if !locked {
				return retry.RetryableError(errLockHeld)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return lock, nil
}
