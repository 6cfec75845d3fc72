package understat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
	"github.com/riskibarqy/understat-xg/internal/platform/resilience"
	"github.com/riskibarqy/understat-xg/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL  = "https://understat.com"
	maxPageBytes    = 8 << 20
	datesDataMarker = "datesData"
)

var datesDataRegex = regexp.MustCompile(`datesData\s*=\s*JSON\.parse\('([^']*)'\)`)

var (
	errUnderstatTransient = crerr.New("understat transient failure")
	errDatesDataMissing   = crerr.New("datesData not found in team page")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads team results from Understat team pages. Each call is a single
// GET; failures are returned to the caller without retrying.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	logger = logger.Named("understat")
	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("understat circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		breaker:    breaker,
	}
}

// FetchTeamResults returns the played matches of team in the season starting
// in the given year. Records are returned byte-for-byte as published.
func (c *Client) FetchTeamResults(ctx context.Context, team string, season int) ([]json.RawMessage, error) {
	team = strings.TrimSpace(team)
	if team == "" {
		return nil, fmt.Errorf("%w: team name is required", usecase.ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", usecase.ErrInvalidInput)
	}

	path := teamPath(team, season)
	page, err := c.fetchPage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch team page team=%q season=%d: %w", team, season, err)
	}

	payload, err := extractDatesData(page)
	if err != nil {
		return nil, fmt.Errorf("parse team page team=%q season=%d: %w", team, season, err)
	}

	results, total, err := decodeResults(payload)
	if err != nil {
		return nil, fmt.Errorf("decode team results team=%q season=%d: %w", team, season, err)
	}

	c.logger.DebugContext(ctx, "understat team page parsed",
		"team", team,
		"season", season,
		"fixtures", total,
		"results", len(results),
	)
	return results, nil
}

func teamPath(team string, season int) string {
	slug := strings.Join(strings.Fields(team), "_")
	return "/team/" + url.PathEscape(slug) + "/" + strconv.Itoa(season)
}

func (c *Client) fetchPage(ctx context.Context, path string) ([]byte, error) {
	fullURL := c.baseURL + path

	var page []byte
	call := func() error {
		out, err, _ := c.flight.Do(path, func() ([]byte, error) {
			return c.executeRequest(ctx, fullURL)
		})
		page = out
		return err
	}

	err := c.breaker.Guard(call, isUnderstatCircuitFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "understat circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: understat is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), errUnderstatTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errUnderstatTransient)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: provider status=%d url=%s", usecase.ErrNotFound, resp.StatusCode, fullURL)
	case isTransientStatus(resp.StatusCode):
		return nil, crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errUnderstatTransient)
	default:
		return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
}

func extractDatesData(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", crerr.Wrap(err, "parse html")
	}

	var encoded string
	found := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, datesDataMarker) {
			return true
		}
		if m := datesDataRegex.FindStringSubmatch(text); len(m) == 2 {
			encoded = m[1]
			found = true
			return false
		}
		return true
	})
	if !found {
		return "", errDatesDataMissing
	}

	return decodeJSString(encoded)
}

// decodeResults keeps the fixtures already played, which is what the team
// results view of Understat shows.
func decodeResults(payload string) ([]json.RawMessage, int, error) {
	var fixtures []json.RawMessage
	if err := sonic.UnmarshalString(payload, &fixtures); err != nil {
		return nil, 0, crerr.Wrap(err, "decode datesData")
	}

	out := make([]json.RawMessage, 0, len(fixtures))
	for idx, item := range fixtures {
		var head struct {
			IsResult bool `json:"isResult"`
		}
		if err := sonic.Unmarshal(item, &head); err != nil {
			return nil, 0, crerr.Wrapf(err, "decode fixture #%d", idx)
		}
		if head.IsResult {
			out = append(out, item)
		}
	}
	return out, len(fixtures), nil
}

func isTransientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func isUnderstatCircuitFailure(err error) bool {
	return crerr.Is(err, errUnderstatTransient)
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
