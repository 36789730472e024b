package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}

func startHTTP(t *testing.T) (*app, *httptest.Server) {
	t.Helper()
	t.Setenv("SOUNDXCAPE_CONFIG_PATH", "")
	t.Setenv("SOUNDXCAPE_TRANSPORT", "http")
	t.Setenv("SOUNDXCAPE_AUTH_TOKEN", "secret")
	t.Setenv("SOUNDXCAPE_DB_PATH", filepath.Join(t.TempDir(), "notebook.db"))
	t.Setenv("SOUNDXCAPE_LOG_LEVEL", "error")
	t.Setenv("SOUNDXCAPE_AI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	a, err := openApp(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	server := httptest.NewServer(newHTTPHandler(a, a.mcpServer()))
	t.Cleanup(server.Close)
	return a, server
}

func TestHTTP_RequiresToken(t *testing.T) {
	_, server := startHTTP(t)

	resp, err := http.Post(server.URL+"/mcp", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTP_StreamableSession(t *testing.T) {
	a, server := startHTTP(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: &bearerTransport{token: "secret", base: http.DefaultTransport}},
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.Equal(t, "soundxcape", initResult.ServerInfo.Name)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		names := map[string]bool{}
		for _, tool := range tools.Tools {
			names[tool.Name] = true
		}
		for _, name := range []string{"create_project", "create_recording", "delete_project", "geocode_project", "list_notices"} {
			require.True(t, names[name], "missing tool %s", name)
		}
	})

	t.Run("CreateProjectPersists", func(t *testing.T) {
		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "create_project",
			Arguments: map[string]any{"name": "Harbour at night"},
		})
		require.NoError(t, err)
		require.False(t, res.IsError)

		var body struct {
			Result struct {
				Persisted bool `json:"persisted"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*sdkmcp.TextContent).Text), &body))
		require.True(t, body.Result.Persisted)

		keys, err := a.db.QueryContext(ctx, `SELECT key FROM kv_entries`)
		require.NoError(t, err)
		defer keys.Close()
		var stored []string
		for keys.Next() {
			var k string
			require.NoError(t, keys.Scan(&k))
			stored = append(stored, k)
		}
		require.Contains(t, stored, "soundscape_projects")
	})

	t.Run("AIUnavailable", func(t *testing.T) {
		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "search_suggestions",
			Arguments: map[string]any{"term": "harbour"},
		})
		require.NoError(t, err)
		require.True(t, res.IsError)
		require.Contains(t, res.Content[0].(*sdkmcp.TextContent).Text, "AI_UNAVAILABLE")
	})

	t.Run("ReadDocs", func(t *testing.T) {
		res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "soundxcape://docs/storage"})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		require.Contains(t, res.Contents[0].Text, "Storage full")
	})
}
