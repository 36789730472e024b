package notice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorageFull_NamesKeysAndRemediation(t *testing.T) {
	n := StorageFull("soundscape_recordings")

	require.Equal(t, KindStorageFull, n.Kind)
	require.Equal(t, []string{"soundscape_recordings"}, n.Keys)
	require.Contains(t, n.Title, `"soundscape_recordings"`)
	require.Contains(t, n.Message, `"soundscape_recordings"`)
	require.Contains(t, n.Message, "photos")
	require.Contains(t, n.Message, "Deleting older projects or recordings")
	require.Contains(t, n.Message, "try your last action again")
}

func TestInbox_DrainAndOverflow(t *testing.T) {
	ctx := context.Background()
	inbox := NewInbox(2)

	inbox.Notify(ctx, Notice{Title: "a"})
	inbox.Notify(ctx, Notice{Title: "b"})
	inbox.Notify(ctx, Notice{Title: "c"})
	require.Equal(t, 2, inbox.Len())

	drained := inbox.Drain()
	require.Len(t, drained, 2)
	require.Equal(t, "b", drained[0].Title)
	require.Equal(t, "c", drained[1].Title)
	require.Empty(t, inbox.Drain())
}

func TestInbox_CollectorKeepsNoticesWithTheirRequest(t *testing.T) {
	inbox := NewInbox(0)
	first, collector := WithCollector(context.Background())
	second, _ := WithCollector(context.Background())

	inbox.Notify(first, Notice{Title: "mine"})
	inbox.Notify(context.Background(), Notice{Title: "unattributed"})

	require.Empty(t, Collected(second))
	got := Collected(first)
	require.Len(t, got, 1)
	require.Equal(t, "mine", got[0].Title)
	require.Empty(t, collector.Drain(), "Collected drains")

	require.Equal(t, 1, inbox.Len())
	require.Equal(t, "unattributed", inbox.Drain()[0].Title)
	require.Nil(t, Collected(context.Background()))
}
