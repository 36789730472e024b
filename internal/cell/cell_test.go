package cell

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rpggio/soundxcape/internal/memory"
	"github.com/rpggio/soundxcape/internal/notice"
	"github.com/rpggio/soundxcape/internal/repository"
	"github.com/stretchr/testify/require"
)

type brokenStorage struct{}

func (brokenStorage) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("medium unavailable")
}

func (brokenStorage) SetBatch(context.Context, []repository.Entry) error {
	return errors.New("medium unavailable")
}

func seed(t *testing.T, store *memory.Store, key string, value []byte) {
	t.Helper()
	require.NoError(t, store.SetBatch(context.Background(), []repository.Entry{{Key: key, Value: value}}))
}

func TestLoad_MissingKeyYieldsDefault(t *testing.T) {
	ctx := context.Background()
	b := Bind(memory.New(), nil, nil)

	c := Load(ctx, b, "flag", true)
	require.True(t, c.Get())
	require.Equal(t, "flag", c.Key())
	require.True(t, c.Missing())
}

func TestLoad_CorruptPayloadYieldsDefault(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, "items", []byte("{not json"))

	c := Load(ctx, Bind(store, nil, nil), "items", []string{"default"})
	require.Equal(t, []string{"default"}, c.Get())
	require.False(t, c.Missing(), "a corrupt payload is present, not missing")
}

func TestLoad_ReadErrorYieldsDefault(t *testing.T) {
	c := Load(context.Background(), Bind(brokenStorage{}, nil, nil), "items", 7)
	require.Equal(t, 7, c.Get())
	require.False(t, c.Missing())
}

func TestLoad_LegacyBarePayload(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, "items", []byte(`["a","b"]`))

	c := Load(ctx, Bind(store, nil, nil), "items", []string(nil))
	require.Equal(t, []string{"a", "b"}, c.Get())
}

func TestLoad_NewerSchemaYieldsDefault(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, "n", []byte(`{"_v":9,"data":42}`))

	c := Load(ctx, Bind(store, nil, nil), "n", 1)
	require.Equal(t, 1, c.Get())
}

func TestLoad_RunsMigrations(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, "names", []byte(`{"_v":1,"data":"solo"}`))

	toList := func(data json.RawMessage) (json.RawMessage, error) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return json.Marshal([]string{s})
	}

	c := Load(ctx, Bind(store, nil, nil), "names", []string(nil),
		WithSchema(2, map[int]Migration{1: toList}))
	require.Equal(t, []string{"solo"}, c.Get())
}

func TestSet_RoundTripsThroughEnvelope(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	b := Bind(store, nil, nil)

	c := Load(ctx, b, "names", []string(nil))
	require.Equal(t, StatusPersisted, c.Set(ctx, []string{"x"}))

	raw, err := store.Get(ctx, "names")
	require.NoError(t, err)
	require.JSONEq(t, `{"_v":1,"data":["x"]}`, string(raw))

	reloaded := Load(ctx, b, "names", []string(nil))
	require.Equal(t, []string{"x"}, reloaded.Get())
}

func TestSet_QuotaExceededKeepsMemoryAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithQuota(64))
	inbox := notice.NewInbox(0)
	b := Bind(store, inbox, nil)

	c := Load(ctx, b, "blob", "")
	big := string(make([]byte, 200))

	status := c.Set(ctx, big)
	require.Equal(t, StatusQuotaExceeded, status)
	require.False(t, status.Persisted())
	require.Equal(t, big, c.Get())

	_, err := store.Get(ctx, "blob")
	require.ErrorIs(t, err, repository.ErrNotFound)

	notices := inbox.Drain()
	require.Len(t, notices, 1)
	require.Equal(t, notice.KindStorageFull, notices[0].Kind)
	require.Equal(t, []string{"blob"}, notices[0].Keys)
}

func TestSet_OtherFailureDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	inbox := notice.NewInbox(0)
	c := Load(ctx, Bind(brokenStorage{}, inbox, nil), "k", 0)

	require.Equal(t, StatusFailed, c.Set(ctx, 5))
	require.Equal(t, 5, c.Get())
	require.Zero(t, inbox.Len())
}

func TestCommit_BatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithQuota(120))
	inbox := notice.NewInbox(0)
	b := Bind(store, inbox, nil)

	small := Load(ctx, b, "small", "")
	large := Load(ctx, b, "large", "")

	status := Commit(ctx, small.Stage("ok"), large.Stage(string(make([]byte, 200))))
	require.Equal(t, StatusQuotaExceeded, status)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)

	notices := inbox.Drain()
	require.Len(t, notices, 1)
	require.Equal(t, []string{"small", "large"}, notices[0].Keys)
}

func TestCommit_MixedBindingsFail(t *testing.T) {
	ctx := context.Background()
	a := Load(ctx, Bind(memory.New(), nil, nil), "a", 0)
	b := Load(ctx, Bind(memory.New(), nil, nil), "b", 0)

	require.Equal(t, StatusFailed, Commit(ctx, a.Stage(1), b.Stage(2)))
	require.Equal(t, 1, a.Get())
	require.Equal(t, 2, b.Get())
}

func TestCommit_Empty(t *testing.T) {
	require.Equal(t, StatusPersisted, Commit(context.Background()))
}
