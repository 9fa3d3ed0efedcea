package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "discogs-explorer/internal/common/errors"
	commonhttp "discogs-explorer/internal/common/http"
	"discogs-explorer/internal/common/metrics"
)

const (
	DefaultBaseURL   = "https://api.discogs.com"
	DefaultUserAgent = "AlexaDiscogsSkill/1.0"

	defaultTimeout = 5 * time.Second

	defaultArtistLimit   = 5
	defaultReleasesLimit = 5
	defaultSearchLimit   = 10

	// MaxRandomID is the upper bound of the id range sampled for random lookups.
	MaxRandomID = 1_000_000

	maxBodyBytes  = 4 << 20
	maxErrorBytes = 512
)

// Operation names used in logs, metrics and spans.
const (
	OpSearchArtists     = "search_artists"
	OpGetArtistReleases = "get_artist_releases"
	OpSearchReleases    = "search_releases"
	OpGetRelease        = "get_release"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// CallRecorder receives one event per catalog call.
type CallRecorder interface {
	RecordCatalogCall(ctx context.Context, operation, outcome string)
}

// BreakerSettings configures the circuit breaker wrapping catalog calls.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

type Config struct {
	BaseURL    string
	UserAgent  string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	// Breaker enables the circuit breaker when non-nil.
	Breaker  *BreakerSettings
	Tracer   trace.Tracer
	Recorder CallRecorder
	// RandomID overrides the id source for GetRandomRelease.
	RandomID func() int64
}

// Client wraps the Discogs REST API. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	userAgent string
	token     string
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
	tracer    trace.Tracer
	recorder  CallRecorder
	randomID  func() int64
	logger    Logger
}

func New(cfg Config, log Logger) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("discogs: parse base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("discogs: base url %q is not absolute", base)
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = commonhttp.NewClient(commonhttp.Options{Timeout: timeout, UserAgent: userAgent})
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer("discogs-explorer/discogs")
	}

	randomID := cfg.RandomID
	if randomID == nil {
		randomID = func() int64 { return rand.Int64N(MaxRandomID) + 1 }
	}

	c := &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		token:     strings.TrimSpace(cfg.Token),
		http:      httpClient,
		tracer:    tracer,
		recorder:  cfg.Recorder,
		randomID:  randomID,
		logger:    log,
	}
	if cfg.Breaker != nil {
		c.breaker = newBreaker(*cfg.Breaker, log)
	}
	return c, nil
}

func newBreaker(s BreakerSettings, log Logger) *gobreaker.CircuitBreaker {
	const name = "discogs"
	minRequests := s.MinRequests
	if minRequests == 0 {
		minRequests = 5
	}
	ratio := s.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	metrics.CatalogBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= ratio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			metrics.CatalogBreakerState.WithLabelValues(name).Set(float64(to))
			if log != nil {
				log.Warn("circuit breaker state changed", map[string]interface{}{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				})
			}
		},
	})
}

// StatusError reports a non-2xx catalog response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

type rawResponse struct {
	status int
	body   []byte
}

// SearchArtists queries the catalog for artists matching name. A limit <= 0
// means 5. The result is never nil.
func (c *Client) SearchArtists(ctx context.Context, name string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultArtistLimit
	}
	params := url.Values{}
	params.Set("q", name)
	params.Set("type", "artist")
	params.Set("per_page", strconv.Itoa(limit))

	var payload searchResponse
	if err := c.getJSON(ctx, OpSearchArtists, c.baseURL.JoinPath("database", "search"), params, &payload); err != nil {
		return nil, err
	}
	return nonNil(payload.Results), nil
}

// GetArtistReleases lists releases for an artist, newest first. A limit <= 0
// means 5.
func (c *Client) GetArtistReleases(ctx context.Context, artistID int64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultReleasesLimit
	}
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("sort", "year")
	params.Set("sort_order", "desc")

	endpoint := c.baseURL.JoinPath("artists", strconv.FormatInt(artistID, 10), "releases")
	var payload artistReleasesResponse
	if err := c.getJSON(ctx, OpGetArtistReleases, endpoint, params, &payload); err != nil {
		return nil, err
	}
	return nonNil(payload.Releases), nil
}

// SearchReleases runs a free-text release search. A limit <= 0 means 10.
func (c *Client) SearchReleases(ctx context.Context, query string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "release")
	params.Set("per_page", strconv.Itoa(limit))

	var payload searchResponse
	if err := c.getJSON(ctx, OpSearchReleases, c.baseURL.JoinPath("database", "search"), params, &payload); err != nil {
		return nil, err
	}
	return nonNil(payload.Results), nil
}

// GetRelease fetches a single release. An id the catalog does not know yields
// (nil, false, nil).
func (c *Client) GetRelease(ctx context.Context, id int64) (*Record, bool, error) {
	endpoint := c.baseURL.JoinPath("releases", strconv.FormatInt(id, 10))

	var rec Record
	err := c.getJSON(ctx, OpGetRelease, endpoint, nil, &rec)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	if rec.IsEmpty() {
		c.logWarn("release lookup returned an empty body", map[string]interface{}{"releaseId": id})
		return nil, false, nil
	}
	return &rec, true, nil
}

// GetRandomRelease fetches a release by a uniformly random id in
// [1, MaxRandomID]. The id space is sparse, so a miss is a normal outcome;
// every failure is logged and reported as absent.
func (c *Client) GetRandomRelease(ctx context.Context) (*Record, bool) {
	id := c.randomID()

	rec, ok, err := c.GetRelease(ctx, id)
	switch {
	case err != nil:
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			c.logInfo("random release lookup returned non-success status", map[string]interface{}{
				"releaseId":  id,
				"statusCode": statusErr.StatusCode,
			})
		} else {
			c.logError("random release lookup failed", map[string]interface{}{
				"releaseId": id,
				"error":     err.Error(),
			})
		}
		return nil, false
	case !ok:
		c.logInfo("random release id not found", map[string]interface{}{"releaseId": id})
		return nil, false
	default:
		return rec, true
	}
}

func (c *Client) getJSON(ctx context.Context, op string, endpoint *url.URL, params url.Values, out interface{}) (err error) {
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}

	ctx, span := c.tracer.Start(ctx, "discogs."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodGet),
			attribute.String("url.path", endpoint.Path),
		),
	)
	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		metrics.CatalogRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		metrics.CatalogRequestsTotal.WithLabelValues(op, outcome).Inc()
		if c.recorder != nil {
			c.recorder.RecordCatalogCall(ctx, op, outcome)
		}
		if err != nil && outcome != metrics.OutcomeAbsent {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	resp, err := c.execute(ctx, endpoint)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = metrics.OutcomeRejected
		} else {
			outcome = metrics.OutcomeError
		}
		return c.wrapTransportError(op, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.status))

	if resp.status < 200 || resp.status > 299 {
		statusErr := &StatusError{StatusCode: resp.status, Body: truncate(string(resp.body), maxErrorBytes)}
		if resp.status == http.StatusNotFound && op == OpGetRelease {
			outcome = metrics.OutcomeAbsent
			return statusErr
		}
		outcome = metrics.OutcomeError
		return apperrors.NewCatalogUnavailableError(op, statusErr)
	}

	if err := json.Unmarshal(resp.body, out); err != nil {
		outcome = metrics.OutcomeError
		return apperrors.NewCatalogUnavailableError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// execute performs the request through the breaker. Only transport errors and
// 5xx responses count as breaker failures.
func (c *Client) execute(ctx context.Context, endpoint *url.URL) (*rawResponse, error) {
	call := func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		c.applyHeaders(req)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		raw := &rawResponse{status: resp.StatusCode, body: body}
		if resp.StatusCode >= 500 {
			return raw, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBytes)}
		}
		return raw, nil
	}

	if c.breaker == nil {
		result, err := call()
		return asRaw(result, err)
	}
	result, err := c.breaker.Execute(call)
	return asRaw(result, err)
}

// asRaw unwraps a breaker result. A 5xx keeps its response so callers can
// report the status instead of a transport failure.
func asRaw(result interface{}, err error) (*rawResponse, error) {
	raw, _ := result.(*rawResponse)
	var statusErr *StatusError
	if err != nil && raw != nil && errors.As(err, &statusErr) {
		return raw, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}
}

func (c *Client) wrapTransportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewCatalogTimeoutError(op, err)
	}
	return apperrors.NewCatalogUnavailableError(op, err)
}

func (c *Client) logInfo(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Client) logWarn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}

func (c *Client) logError(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Error(msg, fields)
	}
}

func nonNil(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	return records
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
