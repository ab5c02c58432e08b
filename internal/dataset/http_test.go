package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPSource_FetchesRecords(t *testing.T) {
	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		switch r.URL.Path {
		case "/api/staff":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"records": [{"id": "S-1", "name": "Ana", "shift": 3}]}`))
		case "/api/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/api/garbage":
			_, _ = w.Write([]byte(`<html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	src, err := NewHTTPSource("staff", server.URL+"/api/staff")
	require.NoError(t, err)
	data, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, data, 1)
	require.Equal(t, "Ana", data[0].Field("name"))
	require.Equal(t, "3", data[0].Field("shift"))
	require.Equal(t, defaultUserAgent, gotUserAgent)
	require.Equal(t, "application/json", gotAccept)

	missing, err := NewHTTPSource("x", server.URL+"/api/missing")
	require.NoError(t, err)
	_, err = missing.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	broken, err := NewHTTPSource("x", server.URL+"/api/broken")
	require.NoError(t, err)
	_, err = broken.Load(ctx)
	require.ErrorContains(t, err, "status 500")

	garbage, err := NewHTTPSource("x", server.URL+"/api/garbage")
	require.NoError(t, err)
	_, err = garbage.Load(ctx)
	require.ErrorContains(t, err, "decode response")
}

func TestParseURL(t *testing.T) {
	u, err := parseURL(" https://records.example/api/staff?ward=3#top ")
	require.NoError(t, err)
	require.Equal(t, "https://records.example/api/staff?ward=3", u.String())

	_, err = parseURL("ftp://records.example/x")
	require.ErrorIs(t, err, ErrUnknownScheme)

	_, err = parseURL("http:///nohost")
	require.Error(t, err)
}
