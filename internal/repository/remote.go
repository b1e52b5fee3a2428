package repository

import "context"

// RemotePublisher pushes and deletes branch references over the network.
// Failures are RemoteError: fatal for the run, never retried automatically.

type RemotePublisher interface {
	PushBranches(ctx context.Context, names ...string) error
	DeleteRemoteBranch(ctx context.Context, name string) error
}
