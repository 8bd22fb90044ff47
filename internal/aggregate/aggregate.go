package aggregate

import (
	"cryptodigest/internal/provider"
)

// NewsLimit is how many headlines a news page shows.
const NewsLimit = 10

// DedupNews keeps the first item of each normalized title, in encounter
// order, and stops once limit items were accepted. limit <= 0 means no cap.
// Rules:
//   - Titles compare after trimming and lower-casing (NewsItem.Key).
//   - Items with an empty normalized title are dropped.
func DedupNews(items []provider.NewsItem, limit int) []provider.NewsItem {
	capHint := len(items)
	if limit > 0 && limit < capHint {
		capHint = limit
	}
	out := make([]provider.NewsItem, 0, capHint)
	seen := make(map[string]struct{}, capHint)

	for _, it := range items {
		if limit > 0 && len(out) >= limit {
			break
		}
		key := it.Key()
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// RankQuotes returns quotes in provider order with Rank reassigned to the
// 1-based position. Names and prices never affect the order.
func RankQuotes(quotes []provider.PriceQuote) []provider.PriceQuote {
	out := make([]provider.PriceQuote, len(quotes))
	for i, q := range quotes {
		q.Rank = i + 1
		out[i] = q
	}
	return out
}

// First returns the first quote, if any. Single-symbol lookups carry at
// most one result.
func First(quotes []provider.PriceQuote) (provider.PriceQuote, bool) {
	if len(quotes) == 0 {
		return provider.PriceQuote{}, false
	}
	return quotes[0], true
}
