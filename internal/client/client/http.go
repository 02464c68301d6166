package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/logging"
	"golang.org/x/sync/singleflight"
)

const DefaultBaseURL = "https://restcountries.com/v3.1"

// HTTPClient talks to a REST Countries v3.1 compatible service.
// Identical concurrent GETs share one round trip.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	group   singleflight.Group
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) FetchAll(ctx context.Context) ([]models.Country, error) {
	res, err := c.get(ctx, "/all", nil)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return res, err
}

func (c *HTTPClient) FetchByName(ctx context.Context, name string) ([]models.Country, error) {
	return c.list(ctx, "/name/"+url.PathEscape(name), nil)
}

func (c *HTTPClient) FetchByRegion(ctx context.Context, region string) ([]models.Country, error) {
	return c.list(ctx, "/region/"+url.PathEscape(region), nil)
}

// FetchByCode unwraps the one-element collection the service answers with.
// Every failure, including an empty answer, is reported as ErrNotFound.
func (c *HTTPClient) FetchByCode(ctx context.Context, code string) (models.Country, error) {
	res, err := c.get(ctx, "/alpha/"+url.PathEscape(code), nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Country{}, err
		}
		return models.Country{}, fmt.Errorf("%w: %s: %w", ErrNotFound, code, err)
	}
	if len(res) == 0 {
		return models.Country{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return res[0], nil
}

// FetchByCodes resolves many codes in one request. No request is made for
// an empty input.
func (c *HTTPClient) FetchByCodes(ctx context.Context, codes []string) ([]models.Country, error) {
	if len(codes) == 0 {
		return []models.Country{}, nil
	}
	return c.list(ctx, "/alpha", url.Values{"codes": {strings.Join(codes, ",")}})
}

// Search dispatches query by mode. Region, subregion and translation have no
// remote filter: the full list is fetched and matched locally, case-insensitively.
func (c *HTTPClient) Search(ctx context.Context, mode models.SearchMode, query string) ([]models.Country, error) {
	esc := url.PathEscape(query)

	switch mode {
	case models.SearchByFullText:
		return c.list(ctx, "/name/"+esc, url.Values{"fullText": {"true"}})
	case models.SearchByCapital:
		return c.list(ctx, "/capital/"+esc, nil)
	case models.SearchByCurrency:
		return c.list(ctx, "/currency/"+esc, nil)
	case models.SearchByLanguage:
		return c.list(ctx, "/lang/"+esc, nil)
	case models.SearchByCode:
		return c.list(ctx, "/alpha/"+esc, nil)
	case models.SearchByCodes:
		return c.FetchByCodes(ctx, splitCodes(query))
	case models.SearchByRegion:
		return c.filterAll(ctx, func(cn models.Country) bool { return cn.InRegion(query) })
	case models.SearchBySubregion:
		return c.filterAll(ctx, func(cn models.Country) bool { return cn.InSubregion(query) })
	case models.SearchByTranslation:
		return c.filterAll(ctx, func(cn models.Country) bool { return cn.HasTranslation(query) })
	default:
		return c.FetchByName(ctx, query)
	}
}

func (c *HTTPClient) filterAll(ctx context.Context, keep func(models.Country) bool) ([]models.Country, error) {
	all, err := c.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.Filter(all, keep), nil
}

// list applies the empty-on-404 convention of collection lookups.
func (c *HTTPClient) list(ctx context.Context, path string, q url.Values) ([]models.Country, error) {
	res, err := c.get(ctx, path, q)
	if errors.Is(err, ErrNotFound) {
		return []models.Country{}, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, q url.Values) ([]models.Country, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	v, err, shared := c.group.Do(u, func() (any, error) {
		return c.fetch(ctx, u)
	})
	if shared {
		c.log.Debug(ctx, "request shared", "url", u)
	}
	if err != nil {
		return nil, err
	}
	return v.([]models.Country), nil
}

func (c *HTTPClient) fetch(ctx context.Context, u string) ([]models.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrNetwork, u, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "http request", "url", u, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: GET %s", ErrNotFound, u)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrNetwork, u, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}

	res, err := decodeCountries(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrNetwork, u, err)
	}
	return res, nil
}

// decodeCountries accepts either a JSON array or a single bare object.
func decodeCountries(body []byte) ([]models.Country, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var one models.Country
		if err := json.Unmarshal(body, &one); err != nil {
			return nil, err
		}
		return []models.Country{one}, nil
	}

	var many []models.Country
	if err := json.Unmarshal(body, &many); err != nil {
		return nil, err
	}
	if many == nil {
		many = []models.Country{}
	}
	return many, nil
}

func splitCodes(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
