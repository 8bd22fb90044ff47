package coinmarketcap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cryptodigest/internal/provider"
)

// envelope is shared by every CoinMarketCap endpoint. data is a mapping
// keyed by symbol for info and quotes/latest, and an array for listings.
type envelope struct {
	Status *status         `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type status struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type coin struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	URLs        struct {
		Website []string `json:"website"`
	} `json:"urls"`
	Quote map[string]struct {
		Price json.RawMessage `json:"price"`
	} `json:"quote"`
}

// usdPrice reads quote.USD.price. A missing, null or non-numeric price
// yields (0, false).
func (c coin) usdPrice() (float64, bool) {
	q, ok := c.Quote["USD"]
	if !ok {
		return 0, false
	}
	raw := strings.TrimSpace(string(q.Price))
	if raw == "" || raw == "null" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NormalizeCoinInfo decodes an info response and returns the entry for
// symbol, or provider.ErrNotFound when the mapping has no such key.
func NormalizeCoinInfo(b []byte, symbol string) (provider.CoinSummary, error) {
	sym := provider.NormalizeSymbol(symbol)
	c, err := lookup(b, sym)
	if err != nil {
		return provider.CoinSummary{}, err
	}
	websites := make([]string, 0, len(c.URLs.Website))
	for _, w := range c.URLs.Website {
		if w = strings.TrimSpace(w); w != "" {
			websites = append(websites, w)
		}
	}
	out := provider.CoinSummary{
		Name:        c.Name,
		Symbol:      c.Symbol,
		Description: c.Description,
		WebsiteURLs: websites,
	}
	if out.Symbol == "" {
		out.Symbol = sym
	}
	return out, nil
}

// NormalizeQuotes decodes a quotes response. With a symbol the body is a
// quotes/latest mapping and at most one quote is returned; without one it
// is a listings array and quotes keep provider order with rank = index+1.
func NormalizeQuotes(b []byte, symbol string) ([]provider.PriceQuote, error) {
	sym := provider.NormalizeSymbol(symbol)
	if sym != "" {
		c, err := lookup(b, sym)
		if err != nil {
			return nil, err
		}
		price, ok := c.usdPrice()
		q := provider.PriceQuote{Rank: 1, Name: c.Name, Symbol: c.Symbol, PriceUSD: price, HasPrice: ok}
		if q.Symbol == "" {
			q.Symbol = sym
		}
		return []provider.PriceQuote{q}, nil
	}

	env, err := decode(b)
	if err != nil {
		return nil, err
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []provider.PriceQuote{}, nil
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("%w: listing data is not an array", provider.ErrParse)
	}
	var coins []coin
	if err := json.Unmarshal(data, &coins); err != nil {
		return nil, fmt.Errorf("%w: decoding listing: %v", provider.ErrParse, err)
	}
	out := make([]provider.PriceQuote, 0, len(coins))
	for i, c := range coins {
		price, ok := c.usdPrice()
		out = append(out, provider.PriceQuote{
			Rank:     i + 1,
			Name:     c.Name,
			Symbol:   c.Symbol,
			PriceUSD: price,
			HasPrice: ok,
		})
	}
	return out, nil
}

func decode(b []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return envelope{}, fmt.Errorf("%w: decoding response: %v", provider.ErrParse, err)
	}
	if env.Status != nil && env.Status.ErrorCode != 0 {
		return envelope{}, fmt.Errorf("%w: coinmarketcap error %d: %s",
			provider.ErrUpstreamUnavailable, env.Status.ErrorCode, env.Status.ErrorMessage)
	}
	return env, nil
}

// lookup finds symbol in a keyed data mapping. The entry may be a single
// object (v1) or an array of objects sharing the symbol (v2); the first
// element of an array wins.
func lookup(b []byte, symbol string) (coin, error) {
	env, err := decode(b)
	if err != nil {
		return coin{}, err
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return coin{}, fmt.Errorf("%w: %s", provider.ErrNotFound, symbol)
	}
	var byKey map[string]json.RawMessage
	if err := json.Unmarshal(data, &byKey); err != nil {
		return coin{}, fmt.Errorf("%w: data is not a mapping: %v", provider.ErrParse, err)
	}

	raw, ok := byKey[symbol]
	if !ok {
		for k, v := range byKey {
			if strings.EqualFold(k, symbol) {
				raw, ok = v, true
				break
			}
		}
	}
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return coin{}, fmt.Errorf("%w: %s", provider.ErrNotFound, symbol)
	}

	if raw[0] == '[' {
		var list []coin
		if err := json.Unmarshal(raw, &list); err != nil {
			return coin{}, fmt.Errorf("%w: decoding %s: %v", provider.ErrParse, symbol, err)
		}
		if len(list) == 0 {
			return coin{}, fmt.Errorf("%w: %s", provider.ErrNotFound, symbol)
		}
		return list[0], nil
	}

	var c coin
	if err := json.Unmarshal(raw, &c); err != nil {
		return coin{}, fmt.Errorf("%w: decoding %s: %v", provider.ErrParse, symbol, err)
	}
	return c, nil
}
