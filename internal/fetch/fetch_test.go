package fetch

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	timing "github.com/Veerl1br/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>hello</html>")
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/page", http.StatusFound)
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRecord(t *testing.T) {
	srv := newServer(t)

	result := fetch(context.Background(), srv.Client(), srv.URL+"/page")
	require.NoError(t, result.Err)
	require.NotNil(t, result.Snapshot)

	rec := result.Snapshot.Timing()
	order := []string{
		"navigationStart", "fetchStart", "domainLookupStart", "domainLookupEnd",
		"connectStart", "connectEnd", "requestStart", "responseStart", "responseEnd",
	}
	for i := 1; i < len(order); i++ {
		assert.LessOrEqual(t, rec[order[i-1]].(float64), rec[order[i]].(float64), order[i])
	}
	assert.Equal(t, 0.0, rec["redirectStart"])
	assert.Equal(t, 0.0, rec["secureConnectionStart"])
	assert.NotContains(t, rec, "domComplete")

	m, ok := timing.New(result.Host()).All(timing.Options{Simple: true})
	require.True(t, ok)
	assert.Equal(t, 0.0, m[timing.RedirectTime])
	assert.GreaterOrEqual(t, m[timing.RequestTime], 0.0)
	assert.True(t, math.IsNaN(m[timing.LoadTime]))
	assert.True(t, math.IsNaN(m[timing.DomReadyTime]))
}

func TestFetchEntry(t *testing.T) {
	srv := newServer(t)

	result := fetch(context.Background(), srv.Client(), srv.URL+"/page")
	require.NoError(t, result.Err)

	entries := timing.New(result.Host()).ResourcesTime()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, srv.URL+"/page", e["name"])
	assert.Equal(t, "navigation", e["entryType"])
	assert.Equal(t, http.StatusOK, e["responseStatus"])
	assert.Equal(t, int64(len("<html>hello</html>")), e["transferSize"])
	assert.GreaterOrEqual(t, e["duration"].(float64), 0.0)
}

func TestFetchRedirect(t *testing.T) {
	srv := newServer(t)

	result := fetch(context.Background(), srv.Client(), srv.URL+"/moved")
	require.NoError(t, result.Err)

	rec := result.Snapshot.Timing()
	assert.Equal(t, rec["navigationStart"], rec["redirectStart"])
	assert.Greater(t, rec["redirectEnd"].(float64), 0.0)
	assert.LessOrEqual(t, rec["redirectEnd"].(float64), rec["fetchStart"].(float64))

	m, ok := timing.New(result.Host()).All(timing.Options{})
	require.True(t, ok)
	assert.GreaterOrEqual(t, m[timing.RedirectTime], 0.0)
	assert.True(t, strings.HasSuffix(result.Snapshot.Entries()[0]["name"].(string), "/page"))
}

func TestFetchRedirectLimit(t *testing.T) {
	srv := newServer(t)

	result := fetch(context.Background(), srv.Client(), srv.URL+"/loop")
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, errTooManyRedirects)
	assert.Equal(t, srv.URL+"/loop", result.Source)
	assert.Nil(t, result.Snapshot)
}

func TestFetchInvalidURL(t *testing.T) {
	result := Fetch(context.Background(), "://nope")
	assert.Error(t, result.Err)
	assert.Nil(t, result.Snapshot)
}
