package repository

import (
	"context"

	"github.com/rpggio/soundxcape/internal/domain/activity"
)

// Entry is a single key/value pair held by a KeyValueRepository.
type Entry struct {
	Key   string
	Value []byte
}

// KeyValueRepository is the durable string-keyed storage medium the notebook
// cells mirror their values into.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// SetBatch writes every entry or none of them.
	SetBatch(ctx context.Context, entries []Entry) error
	Keys(ctx context.Context) ([]string, error)
	// Usage reports the bytes currently stored and the quota (0 means unlimited).
	Usage(ctx context.Context) (used, quota int64, err error)
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}
