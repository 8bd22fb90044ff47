package provider

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// MaxBodyBytes caps how much of an upstream response is read.
const MaxBodyBytes = 4 << 20

// secretParams are query parameters masked by Redact.
var secretParams = []string{"apikey", "api_key", "key", "token"}

// ReadBody performs req with client and returns the response body.
// Transport failures and non-2xx statuses both wrap ErrUpstreamUnavailable.
// The request URL is redacted in every returned error.
func ReadBody(client HTTPClient, req *http.Request) ([]byte, error) {
	res, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUpstreamUnavailable, req.Method, Redact(req.URL), err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
		return nil, fmt.Errorf("%w: %s %s -> %d", ErrUpstreamUnavailable, req.Method, Redact(req.URL), res.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUpstreamUnavailable, err)
	}
	return b, nil
}

// Redact renders u with credential-like query values masked.
func Redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	c := *u
	q := c.Query()
	changed := false
	for _, k := range secretParams {
		if q.Has(k) {
			q.Set(k, "REDACTED")
			changed = true
		}
	}
	if changed {
		c.RawQuery = q.Encode()
	}
	return c.String()
}
