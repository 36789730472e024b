package memory

import (
	"context"
	"testing"

	"github.com/rpggio/soundxcape/internal/repository"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, s *Store, key, value string) error {
	t.Helper()
	return s.SetBatch(context.Background(), []repository.Entry{{Key: key, Value: []byte(value)}})
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, put(t, s, "k", "v1"))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), got)

	got[0] = 'x'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), again, "returned slices must be copies")
}

func TestStore_QuotaRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	s := New(WithQuota(10))

	require.NoError(t, put(t, s, "a", "1234")) // 5 bytes
	err := s.SetBatch(ctx, []repository.Entry{
		{Key: "b", Value: []byte("12")},
		{Key: "c", Value: []byte("123456")},
	})
	require.ErrorIs(t, err, repository.ErrQuotaExceeded)

	_, err = s.Get(ctx, "b")
	require.ErrorIs(t, err, repository.ErrNotFound, "no entry of a rejected batch is written")

	used, quota, err := s.Usage(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), used)
	require.Equal(t, int64(10), quota)
}

func TestStore_OverwriteCountsReplacedBytes(t *testing.T) {
	s := New(WithQuota(10))

	require.NoError(t, put(t, s, "a", "12345678")) // 9 bytes
	require.NoError(t, put(t, s, "a", "123456789"))
	require.ErrorIs(t, put(t, s, "a", "1234567890"), repository.ErrQuotaExceeded)
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	s := New()

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)

	require.NoError(t, put(t, s, "b", ""))
	require.NoError(t, put(t, s, "a", ""))

	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, keys)
}
