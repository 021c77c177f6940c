package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Default JSONPath expressions for an IEX Cloud /quote response.
const (
	DefaultNamePath   = "$.companyName"
	DefaultPricePath  = "$.latestPrice"
	DefaultSymbolPath = "$.symbol"
)

// HTTPProvider fetches quotes from {BaseURL}/stock/{symbol}/quote?token={Token}
// and reads the fields with JSONPath, so any JSON quote API with that URL
// shape can be plugged in.
type HTTPProvider struct {
	BaseURL    string
	Token      string
	NamePath   string
	PricePath  string
	SymbolPath string
	Client     *http.Client
}

// NewHTTPProvider returns a provider with IEX Cloud field paths
func NewHTTPProvider(baseURL, token string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:    baseURL,
		Token:      token,
		NamePath:   DefaultNamePath,
		PricePath:  DefaultPricePath,
		SymbolPath: DefaultSymbolPath,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup implements Provider
func (p *HTTPProvider) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = Normalize(symbol)
	if symbol == "" {
		return nil, ErrNotFound
	}
	addr := fmt.Sprintf("%s/stock/%s/quote?token=%s", p.BaseURL, url.PathEscape(symbol), url.QueryEscape(p.Token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot http GET quote %q: %w", symbol, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("cannot http GET quote %q: %v", symbol, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading quote %q: %w", symbol, err)
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		// IEX answers "Unknown symbol" as plain text on some endpoints
		return nil, ErrNotFound
	}

	price, ok := p.number(jobj, p.PricePath)
	if !ok || !price.IsPositive() {
		return nil, ErrNotFound
	}
	q := &Quote{Price: price, Symbol: symbol}
	if name, ok := p.text(jobj, p.NamePath); ok && name != "" {
		q.Name = name
	} else {
		q.Name = symbol
	}
	if s, ok := p.text(jobj, p.SymbolPath); ok && s != "" {
		q.Symbol = Normalize(s)
	}
	return q, nil
}

// get evaluates path against jobj, unwrapping single element results
func (p *HTTPProvider) get(jobj any, path string) (any, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, false
	}
	// jsonpath may return a list of one answer instead of the answer itself
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, false
		}
		jval = jlist[0]
	}
	return jval, jval != nil
}

func (p *HTTPProvider) text(jobj any, path string) (string, bool) {
	jval, ok := p.get(jobj, path)
	if !ok {
		return "", false
	}
	s, ok := jval.(string)
	return s, ok
}

func (p *HTTPProvider) number(jobj any, path string) (decimal.Decimal, bool) {
	jval, ok := p.get(jobj, path)
	if !ok {
		return decimal.Zero, false
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		// some APIs return prices as strings
		d, err := decimal.NewFromString(v)
		return d, err == nil
	}
	return decimal.Zero, false
}
