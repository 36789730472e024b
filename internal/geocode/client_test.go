package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, UserAgent: "test-agent/1.0"}, nil)
}

func TestLookup_Success(t *testing.T) {
	var gotPath, gotAgent string
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"41.3874","lon":"2.1686","display_name":"Barcelona, Catalonia, Spain"}]`))
	})

	coords, err := c.Lookup(context.Background(), "  Barcelona  ")
	require.NoError(t, err)
	require.Equal(t, "/search", gotPath)
	require.Equal(t, "Barcelona", gotQuery.Get("q"))
	require.Equal(t, "json", gotQuery.Get("format"))
	require.Equal(t, "1", gotQuery.Get("limit"))
	require.Equal(t, "0", gotQuery.Get("addressdetails"))
	require.Equal(t, "test-agent/1.0", gotAgent)
	require.InDelta(t, 41.3874, coords.Latitude, 1e-9)
	require.InDelta(t, 2.1686, coords.Longitude, 1e-9)
	require.Equal(t, "Barcelona, Catalonia, Spain", coords.DisplayName)
}

func TestLookup_EmptyQuery(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:0"}, nil)
	_, err := c.Lookup(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestLookup_NoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	_, err := c.Lookup(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_InvalidCoordinates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"north","lon":"2.0"}]`))
	})
	_, err := c.Lookup(context.Background(), "Somewhere")
	require.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestLookup_ServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	_, err := c.Lookup(context.Background(), "Paris")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate limited")
	require.NotErrorIs(t, err, ErrNotFound)
}
