package hostserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStatus struct {
	games   int
	version string
}

func (f fakeStatus) ActiveGames() int { return f.games }
func (f fakeStatus) Version() string  { return f.version }

// exerciseRoutes serves the same mux Serve wraps in middleware, without
// binding a real listener — Serve itself is exercised indirectly via
// the fixed route table it hands to http.Server.
func exerciseRoutes(t *testing.T, status StatusProvider) *httptest.Server {
	t.Helper()
	return httptest.NewServer(NewServer(0, nil, status).routes())
}

func TestHealthzReportsOK(t *testing.T) {
	srv := exerciseRoutes(t, fakeStatus{games: 2, version: "test"})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatusReportsActiveGamesAndVersion(t *testing.T) {
	srv := exerciseRoutes(t, fakeStatus{games: 3, version: "v0.1.0"})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Version     string `json:"version"`
		ActiveGames int    `json:"active_games"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 3, body.ActiveGames)
	require.Equal(t, "v0.1.0", body.Version)
}
