package aggregate

import (
	"fmt"
	"testing"

	"cryptodigest/internal/provider"
)

func TestDedupNews_CaseAndWhitespaceInsensitive(t *testing.T) {
	in := []provider.NewsItem{
		{Title: "Bitcoin Hits Record", Link: "https://a/1"},
		{Title: "  bitcoin hits record  ", Link: "https://a/2"},
		{Title: "Ether Slips", Link: "https://a/3"},
		{Title: "BITCOIN HITS RECORD", Link: "https://a/4"},
	}

	out := DedupNews(in, NewsLimit)
	if len(out) != 2 {
		t.Fatalf("want 2, got %d: %+v", len(out), out)
	}
	if out[0].Link != "https://a/1" || out[1].Link != "https://a/3" {
		t.Fatalf("first occurrence must win, in order: %+v", out)
	}
}

func TestDedupNews_StopsAtLimit(t *testing.T) {
	var in []provider.NewsItem
	for i := 0; i < 25; i++ {
		in = append(in, provider.NewsItem{Title: fmt.Sprintf("headline %d", i), Link: "x"})
	}

	out := DedupNews(in, NewsLimit)
	if len(out) != NewsLimit {
		t.Fatalf("want %d, got %d", NewsLimit, len(out))
	}
	if out[9].Title != "headline 9" {
		t.Fatalf("unexpected last item: %+v", out[9])
	}
}

func TestDedupNews_LimitCountsAcceptedItemsOnly(t *testing.T) {
	in := []provider.NewsItem{{Title: "a"}, {Title: "A"}, {Title: " a"}, {Title: "b"}, {Title: "c"}}

	out := DedupNews(in, 2)
	if len(out) != 2 || out[0].Title != "a" || out[1].Title != "b" {
		t.Fatalf("unexpected: %+v", out)
	}
}

func TestDedupNews_DropsBlankTitles(t *testing.T) {
	out := DedupNews([]provider.NewsItem{{Title: "  "}, {Title: ""}, {Title: "x"}}, 0)
	if len(out) != 1 || out[0].Title != "x" {
		t.Fatalf("unexpected: %+v", out)
	}
}

func TestDedupNews_Properties(t *testing.T) {
	titles := []string{"A", "a", "B", " b ", "C", "c", "D", "E", "F", "G", "H", "I", "J", "K", "L", "k", "M"}
	var in []provider.NewsItem
	for _, s := range titles {
		in = append(in, provider.NewsItem{Title: s})
	}
	out := DedupNews(in, NewsLimit)
	if len(out) > NewsLimit {
		t.Fatalf("more than %d items: %d", NewsLimit, len(out))
	}
	seen := map[string]bool{}
	for _, it := range out {
		if seen[it.Key()] {
			t.Fatalf("duplicate normalized title %q", it.Key())
		}
		seen[it.Key()] = true
	}
}

func TestRankQuotes_PositionalIgnoringNamesAndPrices(t *testing.T) {
	in := []provider.PriceQuote{
		{Rank: 7, Name: "Zeta", PriceUSD: 1},
		{Rank: 3, Name: "Alpha", PriceUSD: 500},
		{Rank: 0, Name: "Mid", PriceUSD: 10},
	}
	out := RankQuotes(in)
	for i, q := range out {
		if q.Rank != i+1 {
			t.Fatalf("rank at %d = %d", i, q.Rank)
		}
		if q.Name != in[i].Name {
			t.Fatalf("order changed: %+v", out)
		}
	}
	if in[0].Rank != 7 {
		t.Fatalf("input must not be modified")
	}
}

func TestFirst(t *testing.T) {
	if _, ok := First(nil); ok {
		t.Fatal("want no result for empty input")
	}
	q, ok := First([]provider.PriceQuote{{Symbol: "BTC"}, {Symbol: "ETH"}})
	if !ok || q.Symbol != "BTC" {
		t.Fatalf("unexpected: %+v %v", q, ok)
	}
}
