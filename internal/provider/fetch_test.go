package provider_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptodigest/internal/provider"
)

func TestReadBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			http.Error(w, "upstream exploded at https://internal", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/ok", http.NoBody)
	require.NoError(t, err)
	b, err := provider.ReadBody(srv.Client(), req)
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(b))

	req, err = http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/fail?apikey=s3cret", http.NoBody)
	require.NoError(t, err)
	_, err = provider.ReadBody(srv.Client(), req)
	require.ErrorIs(t, err, provider.ErrUpstreamUnavailable)
	require.Contains(t, err.Error(), "503")
	require.NotContains(t, err.Error(), "s3cret")
}

func TestReadBody_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, addr+"/?apikey=s3cret", http.NoBody)
	require.NoError(t, err)
	_, err = provider.ReadBody(http.DefaultClient, req)
	require.ErrorIs(t, err, provider.ErrUpstreamUnavailable)
	require.NotContains(t, err.Error(), "s3cret")
}

func TestRedact(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://newsdata.io/api/1/news?apikey=abc&q=BTC")
	require.NoError(t, err)
	got := provider.Redact(u)
	require.NotContains(t, got, "abc")
	require.Contains(t, got, "q=BTC")
	require.Contains(t, u.RawQuery, "apikey=abc", "Redact must not modify the request URL")

	require.Empty(t, provider.Redact(nil))
}

func TestNormalizeSymbol(t *testing.T) {
	t.Parallel()

	require.Equal(t, "BTC", provider.NormalizeSymbol(" btc "))
	require.Empty(t, provider.NormalizeSymbol("   "))
}

func TestNewsItemKey(t *testing.T) {
	t.Parallel()

	a := provider.NewsItem{Title: "  Bitcoin Hits ATH "}
	b := provider.NewsItem{Title: "bitcoin hits ath"}
	require.Equal(t, a.Key(), b.Key())
}
