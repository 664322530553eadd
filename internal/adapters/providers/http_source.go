// Package providers holds the adapters for every external rate source.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/apperrors"
	"github.com/shopspring/decimal"
)

const maxResponseBytes = 1 << 20

// DefaultHTTPClient is shared by adapters that are not given a client.
// The resilience layer enforces the real deadline; this is a backstop.
var DefaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// ValidateBaseURL parses raw and requires an http(s) scheme and a host.
func ValidateBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL %q: %v", apperrors.ErrValidation, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL %q must use http or https", apperrors.ErrValidation, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q has no host", apperrors.ErrValidation, raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

// httpSource performs exactly one GET per fetch and decodes a JSON body.
type httpSource struct {
	name    string
	baseURL *url.URL
	client  *http.Client
}

func newHTTPSource(name, rawURL string, client *http.Client) (httpSource, error) {
	u, err := ValidateBaseURL(rawURL)
	if err != nil {
		return httpSource{}, fmt.Errorf("provider %s: %w", name, err)
	}
	if client == nil {
		client = DefaultHTTPClient
	}
	return httpSource{name: name, baseURL: u, client: client}, nil
}

func (s httpSource) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := *s.baseURL
	u.Path = s.baseURL.Path + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return s.unavailable("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return s.unavailable("request failed", redactURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return s.unavailable(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return s.unavailable("malformed response body", err)
	}
	return nil
}

func (s httpSource) unavailable(reason string, err error) error {
	return apperrors.NewProviderUnavailableError(s.name, reason, err)
}

// redactURLError drops the request URL, which may carry an access key.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// normalizeBaseCode upper-cases a 3-letter currency code.
func normalizeBaseCode(provider, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", apperrors.NewProviderUnavailableError(provider, fmt.Sprintf("invalid base currency %q", code), nil)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", apperrors.NewProviderUnavailableError(provider, fmt.Sprintf("invalid base currency %q", code), nil)
		}
	}
	return code, nil
}

// positiveRates keeps the entries with a non-blank code and a rate above zero.
func positiveRates(in map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for code, rate := range in {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || !rate.IsPositive() {
			continue
		}
		out[code] = rate
	}
	return out
}
