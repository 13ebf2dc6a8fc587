// Package client consumes the harmoni HTTP API and keeps the per-session view
// state of the list, map and calendar pages.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/starford/harmoni/internal/apperr"
	"github.com/starford/harmoni/internal/calendar"
	"github.com/starford/harmoni/internal/explore"
	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
)

// Client is a typed wrapper around the public API. Directory reads are
// retried with backoff; calendar reads go out once.
type Client struct {
	baseURL string
	retry   *retryablehttp.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRetryMax sets the number of retries for directory reads.
func WithRetryMax(n int) Option {
	return func(c *Client) { c.retry.RetryMax = n }
}

// WithRetryWait bounds the backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryWaitMin = minWait
		c.retry.RetryWaitMax = maxWait
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.retry.HTTPClient = hc }
}

// WithLogger sets the logger used for request and retry logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   rc,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	rc.Logger = c.logger
	return c
}

func (c *Client) url(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// getJSON issues a retried GET and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url(path, q), nil)
	if err != nil {
		return fmt.Errorf("client: build request %s: %w", path, err)
	}
	resp, err := c.retry.Do(req)
	if err != nil {
		return fmt.Errorf("client: GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	return decode(resp, path, v)
}

// getOnce issues a single GET without retry and returns the raw body.
func (c *Client) getOnce(ctx context.Context, path string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, q), nil)
	if err != nil {
		return nil, fmt.Errorf("client: build request %s: %w", path, err)
	}
	resp, err := c.retry.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, path); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read %s: %w", path, err)
	}
	return body, nil
}

func checkStatus(resp *http.Response, path string) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("client: GET %s: %w", path, apperr.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("client: GET %s: %w", path, apperr.ErrInvalid)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("client: GET %s: status %d: %w", path, resp.StatusCode, apperr.ErrUnavailable)
	}
	return nil
}

func decode(resp *http.Response, path string, v any) error {
	if err := checkStatus(resp, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}

// Sites returns every site.
func (c *Client) Sites(ctx context.Context) ([]models.Site, error) {
	var out []models.Site
	if err := c.getJSON(ctx, "/api/sites", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Site returns one site. A missing site yields apperr.ErrNotFound.
func (c *Client) Site(ctx context.Context, id string) (*models.SiteDetail, error) {
	var out models.SiteDetail
	if err := c.getJSON(ctx, "/api/site/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SiteView returns the server-rendered detail view of one site.
func (c *Client) SiteView(ctx context.Context, id string) (*format.DetailView, error) {
	var out format.DetailView
	if err := c.getJSON(ctx, "/api/site/"+url.PathEscape(id)+"/view", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Locations returns the distinct region identifiers.
func (c *Client) Locations(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/api/locations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Religions returns the distinct religions present in the directory.
func (c *Client) Religions(ctx context.Context) ([]models.Religion, error) {
	var out []models.Religion
	if err := c.getJSON(ctx, "/api/religions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns the directory totals.
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	err := c.getJSON(ctx, "/api/stats", nil, &out)
	return out, err
}

// CriteriaQuery encodes criteria as explore/map query parameters.
func CriteriaQuery(cr explore.Criteria) url.Values {
	q := url.Values{}
	if cr.Type != "" {
		q.Set("tipe", string(cr.Type))
	}
	if cr.Region != "" {
		q.Set("wilayah", cr.Region)
	}
	if cr.Query != "" {
		q.Set("q", cr.Query)
	}
	if cr.Sort != "" {
		q.Set("sort", string(cr.Sort))
	}
	for _, r := range cr.Religions {
		q.Add("agama", string(r))
	}
	if cr.Heritage {
		q.Set("heritage", "true")
	}
	return q
}

// Explore returns a server-rendered list page.
func (c *Client) Explore(ctx context.Context, cr explore.Criteria, page int) (*explore.ListPage, error) {
	q := CriteriaQuery(cr)
	q.Set("page", strconv.Itoa(page))
	var out explore.ListPage
	if err := c.getJSON(ctx, "/api/explore", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Map returns the server-rendered marker set.
func (c *Client) Map(ctx context.Context, cr explore.Criteria) (*explore.MapView, error) {
	var out explore.MapView
	if err := c.getJSON(ctx, "/api/map", CriteriaQuery(cr), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalendarYear fetches the events of year. The response envelope must report
// success and carry an events array; anything else is an error. The request
// is not retried.
func (c *Client) CalendarYear(ctx context.Context, year int) ([]models.Event, error) {
	path := "/api/calendar/" + strconv.Itoa(year)
	body, err := c.getOnce(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("client: %s: malformed body: %w", path, apperr.ErrUnavailable)
	}
	if !gjson.GetBytes(body, "success").Bool() {
		return nil, fmt.Errorf("client: %s: success=false: %w", path, apperr.ErrUnavailable)
	}
	raw := gjson.GetBytes(body, "events")
	if !raw.IsArray() {
		return nil, fmt.Errorf("client: %s: missing events: %w", path, apperr.ErrUnavailable)
	}
	events := make([]models.Event, 0, len(raw.Array()))
	if err := json.Unmarshal([]byte(raw.Raw), &events); err != nil {
		return nil, fmt.Errorf("client: %s: decode events: %w", path, err)
	}
	return events, nil
}

// CalendarMonth returns the server-rendered grid of month (1-12) in year.
func (c *Client) CalendarMonth(ctx context.Context, year, month int) (*calendar.Grid, error) {
	body, err := c.getOnce(ctx, fmt.Sprintf("/api/calendar/%d/%d", year, month), nil)
	if err != nil {
		return nil, err
	}
	var out calendar.Grid
	if err := json.Unmarshal([]byte(gjson.GetBytes(body, "grid").Raw), &out); err != nil {
		return nil, fmt.Errorf("client: decode month: %w", err)
	}
	return &out, nil
}

// CalendarDay returns every event on date (YYYY-MM-DD).
func (c *Client) CalendarDay(ctx context.Context, date string) (*calendar.DayDetail, error) {
	body, err := c.getOnce(ctx, "/api/calendar/day/"+url.PathEscape(date), nil)
	if err != nil {
		return nil, err
	}
	var out calendar.DayDetail
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("client: decode day: %w", err)
	}
	return &out, nil
}

// Upcoming returns the 0-based page of upcoming events.
func (c *Client) Upcoming(ctx context.Context, page int) (*calendar.UpcomingPage, error) {
	body, err := c.getOnce(ctx, "/api/calendar/upcoming", url.Values{"page": {strconv.Itoa(page)}})
	if err != nil {
		return nil, err
	}
	var out calendar.UpcomingPage
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("client: decode upcoming: %w", err)
	}
	return &out, nil
}
