package newsdata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cryptodigest/internal/provider"
	"cryptodigest/internal/provider/newsdata"
)

func TestNormalizeNews(t *testing.T) {
	t.Parallel()

	body := `{
	  "status": "success",
	  "totalResults": 3,
	  "results": [
	    {"title": "Bitcoin rallies", "link": "https://a.example/1", "pubDate": "2025-01-02 03:04:05", "source_url": "https://a.example", "creator": ["x"]},
	    {"title": "Ether slips", "link": "https://b.example/2", "pubDate": "2025-01-02 04:00:00"},
	    {"title": "  ", "link": "https://c.example/3"},
	    {"title": "Null source", "link": "https://d.example/4", "source_url": null}
	  ],
	  "nextPage": "abc"
	}`

	items, err := newsdata.NormalizeNews([]byte(body))
	require.NoError(t, err)
	require.Equal(t, []provider.NewsItem{
		{Title: "Bitcoin rallies", Link: "https://a.example/1", PublishedAt: "2025-01-02 03:04:05", SourceLabel: "https://a.example"},
		{Title: "Ether slips", Link: "https://b.example/2", PublishedAt: "2025-01-02 04:00:00", SourceLabel: provider.UnknownSource},
		{Title: "  ", Link: "https://c.example/3", SourceLabel: provider.UnknownSource},
		{Title: "Null source", Link: "https://d.example/4", SourceLabel: provider.UnknownSource},
	}, items)
}

func TestNormalizeNews_EmptyResults(t *testing.T) {
	t.Parallel()

	items, err := newsdata.NormalizeNews([]byte(`{"status":"success","results":[]}`))
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestNormalizeNews_ParseErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":        `<html>`,
		"missing results": `{"status":"success"}`,
		"results object":  `{"status":"success","results":{"a":1}}`,
		"title number":    `{"results":[{"title":1,"link":"x"}]}`,
		"missing title":   `{"results":[{"title":"ok","link":"https://x/0"},{"link":"https://x/1"}]}`,
		"missing link":    `{"results":[{"title":"no link"}]}`,
		"null link":       `{"results":[{"title":"t","link":null}]}`,
	}
	for name, body := range cases {
		_, err := newsdata.NormalizeNews([]byte(body))
		require.ErrorIs(t, err, provider.ErrParse, name)
	}
}

func TestNormalizeNews_ProviderErrorEnvelope(t *testing.T) {
	t.Parallel()

	body := `{"status":"error","results":{"message":"API key invalid","code":"Unauthorized"}}`
	_, err := newsdata.NormalizeNews([]byte(body))
	require.ErrorIs(t, err, provider.ErrUpstreamUnavailable)
}
