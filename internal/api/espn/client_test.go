package espn

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omarshaarawi/benchwarmer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, cfg config.ESPNAPI, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(cfg)
	client.BaseURL = server.URL
	client.backoff = 0
	return client
}

func TestGet_RepeatedViews(t *testing.T) {
	client := newTestClient(t, config.ESPNAPI{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/seasons/2016", r.URL.Path)
		assert.Equal(t, []string{"mTeam", "mSettings"}, r.URL.Query()["view"])
		assert.Equal(t, "filter", r.Header.Get("x-fantasy-filter"))
		assert.Empty(t, r.Header.Get("Cookie"))
		_, _ = w.Write([]byte(`{"id": 7}`))
	})

	var out struct{ ID int }
	err := client.Get("/seasons/2016", map[string]string{"view": "mTeam, mSettings"}, map[string]string{"x-fantasy-filter": "filter"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 7, out.ID)
}

func TestGet_RetriesThrottling(t *testing.T) {
	calls := 0
	client := newTestClient(t, config.ESPNAPI{}, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id": 1}`))
	})

	var out struct{ ID int }
	require.NoError(t, client.Get("/", nil, nil, &out))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, out.ID)
}

func TestGet_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	client := newTestClient(t, config.ESPNAPI{}, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	var out struct{}
	err := client.Get("/", nil, nil, &out)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, maxAttempts, calls)
}

func TestGet_NoRetryOnClientError(t *testing.T) {
	calls := 0
	client := newTestClient(t, config.ESPNAPI{}, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	})

	var out struct{}
	assert.Error(t, client.Get("/", nil, nil, &out))
	assert.Equal(t, 1, calls)
}

func TestGet_PrivateLeagueCookies(t *testing.T) {
	client := newTestClient(t, config.ESPNAPI{SWID: "{ABC}"}, func(w http.ResponseWriter, r *http.Request) {
		swid, err := r.Cookie("SWID")
		require.NoError(t, err)
		assert.Equal(t, "{ABC}", swid.Value)
		_, err = r.Cookie("espn_s2")
		assert.ErrorIs(t, err, http.ErrNoCookie)
		_, _ = w.Write([]byte(`{}`))
	})

	var out struct{}
	require.NoError(t, client.Get("/", nil, nil, &out))
}
