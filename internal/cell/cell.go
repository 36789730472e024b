// Package cell binds a single in-memory value to a key in a persistent
// key-value medium. Cells load once, serve reads from memory, and write
// through on every change. A rejected write never rolls back the in-memory
// value; the failure is reported through a Status and, for capacity
// failures, a user-facing notice.
package cell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/soundxcape/internal/notice"
	"github.com/rpggio/soundxcape/internal/repository"
)

// Storage is the part of the key-value medium a cell needs.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetBatch(ctx context.Context, entries []repository.Entry) error
}

// Notifier delivers blocking notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n notice.Notice)
}

// Migration upgrades a stored payload by one schema version.
type Migration func(data json.RawMessage) (json.RawMessage, error)

// Status reports the outcome of a write.
type Status int

const (
	StatusPersisted Status = iota
	StatusQuotaExceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPersisted:
		return "persisted"
	case StatusQuotaExceeded:
		return "quota_exceeded"
	default:
		return "failed"
	}
}

// Persisted reports whether the write reached the medium.
func (s Status) Persisted() bool { return s == StatusPersisted }

var errMixedBindings = errors.New("changes belong to different bindings")

// Binding is the shared context of a group of cells: where they persist,
// whom they notify, and where they log. Changes from cells on the same
// binding can be committed together.
type Binding struct {
	storage  Storage
	notifier Notifier
	logger   *slog.Logger
}

// Bind creates a binding. notifier and logger may be nil.
func Bind(storage Storage, notifier Notifier, logger *slog.Logger) *Binding {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Binding{storage: storage, notifier: notifier, logger: logger}
}

// Option configures a cell.
type Option func(*settings)

type settings struct {
	version    int
	migrations map[int]Migration
}

// WithSchema sets the schema version written by the cell and the migrations
// used to upgrade older payloads. migrations is keyed by the version each
// one upgrades from. Legacy payloads without an envelope are version 0.
func WithSchema(version int, migrations map[int]Migration) Option {
	return func(s *settings) {
		s.version = version
		s.migrations = migrations
	}
}

// Cell holds one value of type T bound to a storage key.
// A Cell is not safe for concurrent use; callers serialize access.
type Cell[T any] struct {
	key     string
	value   T
	binding *Binding
	missing bool
	settings
}

type envelope struct {
	Version *int            `json:"_v"`
	Data    json.RawMessage `json:"data"`
}

type stored[T any] struct {
	Version int `json:"_v"`
	Data    T   `json:"data"`
}

// Load reads key from the binding's storage. A missing, unreadable,
// undecodable, or newer-than-supported payload yields def.
func Load[T any](ctx context.Context, b *Binding, key string, def T, opts ...Option) *Cell[T] {
	c := &Cell[T]{key: key, value: def, binding: b, settings: settings{version: 1}}
	for _, opt := range opts {
		opt(&c.settings)
	}

	raw, err := b.storage.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		c.missing = true
		return c
	}
	if err != nil {
		b.logger.Warn("reading stored value failed, using default", "key", key, "error", err)
		return c
	}

	v, err := c.decode(raw)
	if err != nil {
		b.logger.Warn("stored value unusable, using default", "key", key, "error", err)
		return c
	}
	c.value = v
	return c
}

func (c *Cell[T]) decode(raw []byte) (T, error) {
	var zero T
	version, data := 0, json.RawMessage(raw)

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Version != nil && env.Data != nil {
		version, data = *env.Version, env.Data
	}
	if version > c.version {
		return zero, fmt.Errorf("stored schema version %d is newer than supported version %d", version, c.version)
	}

	for v := version; v < c.version; v++ {
		m, ok := c.migrations[v]
		if !ok {
			continue
		}
		next, err := m(data)
		if err != nil {
			return zero, fmt.Errorf("migrate from version %d: %w", v, err)
		}
		data = next
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// Key returns the storage key.
func (c *Cell[T]) Key() string { return c.key }

// Missing reports whether the key was absent from storage at load time.
func (c *Cell[T]) Missing() bool { return c.missing }

// Get returns the current in-memory value. Reference types are shared with
// the cell; callers must not mutate them.
func (c *Cell[T]) Get() T { return c.value }

// Set replaces the value and writes it through.
func (c *Cell[T]) Set(ctx context.Context, v T) Status {
	return Commit(ctx, c.Stage(v))
}

// Update replaces the value with fn applied to the current one.
func (c *Cell[T]) Update(ctx context.Context, fn func(T) T) Status {
	return c.Set(ctx, fn(c.value))
}

// Change is a staged replacement of a cell's value. Nothing happens until it
// is passed to Commit.
type Change struct {
	binding *Binding
	entry   repository.Entry
	err     error
	apply   func()
}

// Stage prepares a replacement of the cell's value with v.
func (c *Cell[T]) Stage(v T) *Change {
	data, err := json.Marshal(stored[T]{Version: c.version, Data: v})
	if err != nil {
		err = fmt.Errorf("encode %s: %w", c.key, err)
	}
	return &Change{
		binding: c.binding,
		entry:   repository.Entry{Key: c.key, Value: data},
		err:     err,
		apply:   func() { c.value = v },
	}
}

// Commit applies every change in memory and then writes them to storage as
// one all-or-nothing batch. In-memory values are never rolled back. When the
// medium rejects the batch for capacity, one notice naming every key in the
// batch is sent to the binding's notifier.
func Commit(ctx context.Context, changes ...*Change) Status {
	if len(changes) == 0 {
		return StatusPersisted
	}
	b := changes[0].binding

	entries := make([]repository.Entry, 0, len(changes))
	keys := make([]string, 0, len(changes))
	var failure error
	for _, ch := range changes {
		ch.apply()
		if ch.binding != b && failure == nil {
			failure = errMixedBindings
		}
		if ch.err != nil && failure == nil {
			failure = ch.err
		}
		entries = append(entries, ch.entry)
		keys = append(keys, ch.entry.Key)
	}
	if failure != nil {
		b.logger.Error("persisting values failed", "keys", keys, "error", failure)
		return StatusFailed
	}

	err := b.storage.SetBatch(ctx, entries)
	switch {
	case err == nil:
		return StatusPersisted
	case errors.Is(err, repository.ErrQuotaExceeded):
		b.logger.Warn("storage quota exceeded", "keys", keys)
		if b.notifier != nil {
			b.notifier.Notify(ctx, notice.StorageFull(keys...))
		}
		return StatusQuotaExceeded
	default:
		b.logger.Error("persisting values failed", "keys", keys, "error", err)
		return StatusFailed
	}
}
