// Package testserver runs a full notebook MCP server over in-memory
// transports for tests.
package testserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/soundxcape/internal/ai"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/geocode"
	"github.com/rpggio/soundxcape/internal/mcp"
	"github.com/rpggio/soundxcape/internal/memory"
	"github.com/rpggio/soundxcape/internal/notebook"
	"github.com/rpggio/soundxcape/internal/notice"
	"github.com/rpggio/soundxcape/internal/repository"
	"github.com/rpggio/soundxcape/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// Options configures New. The zero value serves an unlimited in-memory
// notebook with no geocoder and no assistant.
type Options struct {
	// Quota caps the storage medium in bytes. Zero means unlimited.
	Quota int64
	// SQLiteStorage stores the notebook in the sqlite database instead of memory.
	SQLiteStorage bool
	Geocoder      mcp.Geocoder
	Assistant     mcp.Assistant
}

type TestServer struct {
	DB      *sqlite.DB
	Storage repository.KeyValueRepository
	Store   *notebook.Store
	Inbox   *notice.Inbox
	Session *sdkmcp.ClientSession

	server *sdkmcp.Server
}

func New(t *testing.T, opts Options) *TestServer {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	var storage repository.KeyValueRepository
	if opts.SQLiteStorage {
		storage = sqlite.NewKVRepository(db, opts.Quota)
	} else {
		storage = memory.New(memory.WithQuota(opts.Quota))
	}
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)

	inbox := notice.NewInbox(0)
	store := notebook.Open(ctx, storage, notebook.Options{
		Notifier: inbox,
		Activity: activitySvc,
	})

	server := mcp.NewServer(mcp.Config{
		Notebook:  store,
		Activity:  activitySvc,
		Geocoder:  opts.Geocoder,
		Assistant: opts.Assistant,
		Notices:   inbox,
	})

	ts := &TestServer{
		DB:      db,
		Storage: storage,
		Store:   store,
		Inbox:   inbox,
		server:  server,
	}
	ts.Session = ts.connect(t)
	return ts
}

// NewSession connects another client to the same server. The returned
// TestServer shares everything with ts except Session.
func (ts *TestServer) NewSession(t *testing.T) *TestServer {
	t.Helper()
	other := *ts
	other.Session = ts.connect(t)
	return &other
}

func (ts *TestServer) connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := ts.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "testclient", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session
}

// Envelope mirrors the JSON body of a tool result.
type Envelope struct {
	Result  json.RawMessage `json:"result"`
	Notices []notice.Notice `json:"notices"`
}

// Call invokes a tool, requires success, decodes its result into out (when
// non-nil) and returns the notices attached to the result.
func (ts *TestServer) Call(t *testing.T, name string, args any, out any) []notice.Notice {
	t.Helper()

	res, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s failed: %s", name, text(res))

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(text(res)), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Result, out))
	}
	return env.Notices
}

// Invoke calls a tool and decodes its envelope without a *testing.T, for use
// from goroutines.
func (ts *TestServer) Invoke(ctx context.Context, name string, args any) (Envelope, error) {
	res, err := ts.Session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return Envelope{}, err
	}
	if res.IsError {
		return Envelope{}, fmt.Errorf("tool %s failed: %s", name, text(res))
	}
	var env Envelope
	if err := json.Unmarshal([]byte(text(res)), &env); err != nil {
		return Envelope{}, fmt.Errorf("decode %s result: %w", name, err)
	}
	return env, nil
}

// CallError invokes a tool, requires it to fail and returns the error text.
func (ts *TestServer) CallError(t *testing.T, name string, args any) string {
	t.Helper()

	res, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return err.Error()
	}
	require.True(t, res.IsError, "tool %s unexpectedly succeeded: %s", name, text(res))
	return text(res)
}

// ToolNames lists the registered tools.
func (ts *TestServer) ToolNames(t *testing.T) []string {
	t.Helper()

	res, err := ts.Session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func text(res *sdkmcp.CallToolResult) string {
	if res == nil || len(res.Content) == 0 {
		return ""
	}
	if tc, ok := res.Content[0].(*sdkmcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

// Geocoder is a canned mcp.Geocoder.
type Geocoder struct {
	Places map[string]geocode.Coordinates
	Calls  []string
}

func (g *Geocoder) Lookup(_ context.Context, place string) (geocode.Coordinates, error) {
	g.Calls = append(g.Calls, place)
	if strings.TrimSpace(place) == "" {
		return geocode.Coordinates{}, geocode.ErrEmptyQuery
	}
	c, ok := g.Places[place]
	if !ok {
		return geocode.Coordinates{}, geocode.ErrNotFound
	}
	return c, nil
}

// Assistant is a canned mcp.Assistant.
type Assistant struct {
	Disabled    bool
	Tags        []string
	Summary     string
	Ideas       []string
	Suggestions []string
	Err         error
}

func (a *Assistant) Available() bool { return !a.Disabled }

func (a *Assistant) SuggestTags(context.Context, string, string) ([]string, error) {
	return a.Tags, a.Err
}

func (a *Assistant) SummarizeVoiceNote(context.Context, string, float64) (string, error) {
	return a.Summary, a.Err
}

func (a *Assistant) RecordingIdeas(context.Context, project.Project) ([]string, error) {
	return a.Ideas, a.Err
}

func (a *Assistant) SearchSuggestions(_ context.Context, _ string, _ ai.SearchScope) ([]string, error) {
	return a.Suggestions, a.Err
}
