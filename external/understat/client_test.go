package understat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/understat-xg/internal/platform/resilience"
	"github.com/riskibarqy/understat-xg/internal/usecase"
)

const datesDataJSON = `[
{"id":"16389","isResult":true,"side":"h","h":{"id":"117","title":"Bayern Munich","short_title":"BAY"},"a":{"id":"129","title":"Borussia M.Gladbach","short_title":"BMG"},"goals":{"h":"1","a":"1"},"xG":{"h":"2.01","a":"0.55"},"datetime":"2021-08-13 18:30:00","forecast":{"w":"0.72","d":"0.18","l":"0.1"},"result":"d"},
{"id":"16400","isResult":true,"side":"a","h":{"id":"131","title":"FC Cologne","short_title":"FCK"},"a":{"id":"117","title":"Bayern Munich","short_title":"BAY"},"goals":{"h":"2","a":"3"},"xG":{"h":"1.2","a":"2.9"},"datetime":"2021-08-22 15:30:00","forecast":{"w":"0.1","d":"0.2","l":"0.7"},"result":"l"},
{"id":"16500","isResult":false,"side":"h","h":{"id":"117","title":"Bayern Munich","short_title":"BAY"},"a":{"id":"140","title":"VfL Bochum","short_title":"BOC"},"goals":{"h":null,"a":null},"xG":{"h":null,"a":null},"datetime":"2022-05-14 13:30:00"}
]`

// understatEscape mimics how team pages embed JSON: every non alphanumeric
// byte becomes \xHH.
func understatEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, `\x%02X`, c)
	}
	return b.String()
}

func teamPage(payload string) string {
	return `<!DOCTYPE html><html><head><title>Bayern Munich</title></head><body>
<script>var statisticsData = JSON.parse('\x7B\x7D');</script>
<script>
	var datesData	= JSON.parse('` + understatEscape(payload) + `');
</script>
</body></html>`
}

func newTestClient(baseURL string, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		HTTPClient:     &http.Client{Timeout: 5 * time.Second},
		BaseURL:        baseURL,
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchTeamResults_ReturnsPlayedMatchesVerbatim(t *testing.T) {
	t.Parallel()

	var gotPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		_, _ = w.Write([]byte(teamPage(datesDataJSON)))
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{Enabled: true})
	records, err := client.FetchTeamResults(context.Background(), "Bayern Munich", 2021)
	if err != nil {
		t.Fatalf("fetch team results: %v", err)
	}

	if path, _ := gotPath.Load().(string); path != "/team/Bayern_Munich/2021" {
		t.Fatalf("unexpected request path %q", path)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 played matches, got %d", len(records))
	}
	if !strings.Contains(string(records[0]), `"forecast":{"w":"0.72","d":"0.18","l":"0.1"}`) {
		t.Fatalf("record should be kept verbatim, got %s", records[0])
	}
	if !strings.Contains(string(records[1]), `"id":"16400"`) {
		t.Fatalf("unexpected second record %s", records[1])
	}
}

func TestClient_FetchTeamResults_ValidatesInput(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://127.0.0.1:1", resilience.CircuitBreakerConfig{})
	if _, err := client.FetchTeamResults(context.Background(), " ", 2021); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty team, got %v", err)
	}
	if _, err := client.FetchTeamResults(context.Background(), "Bayern Munich", 0); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for season 0, got %v", err)
	}
}

func TestClient_FetchTeamResults_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{Enabled: true})
	_, err := client.FetchTeamResults(context.Background(), "Nowhere FC", 2021)
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchTeamResults_MissingDatesData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>var playersData = JSON.parse('\x5B\x5D');</script></body></html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{})
	_, err := client.FetchTeamResults(context.Background(), "Bayern Munich", 2021)
	if !errors.Is(err, errDatesDataMissing) {
		t.Fatalf("expected errDatesDataMissing, got %v", err)
	}
}

func TestClient_FetchTeamResults_DoesNotRetryAndOpensCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Hour,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		_, err := client.FetchTeamResults(context.Background(), "Bayern Munich", 2021)
		if err == nil || !strings.Contains(err.Error(), "status=502") {
			t.Fatalf("attempt %d: expected provider status error, got %v", i, err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected exactly one request per call, got %d", got)
	}

	_, err := client.FetchTeamResults(context.Background(), "Bayern Munich", 2021)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once open, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("open circuit must not reach the provider, calls=%d", got)
	}
}

func TestDecodeJSString(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`\x5B\x7B\x22id\x22\x3A\x221\x22\x7D\x5D`: `[{"id":"1"}]`,
		`M\xC3\xBCller`:                           "Müller",
		`café \'quoted\' \\ line\nbreak`:     "café 'quoted' \\ line\nbreak",
		`plain`:                                   "plain",
	}
	for in, want := range cases {
		got, err := decodeJSString(in)
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("decode %q: got %q want %q", in, got, want)
		}
	}

	for _, bad := range []string{`\x4`, `\xZZ`, `\u12`, `trailing\`} {
		if _, err := decodeJSString(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestTeamPath(t *testing.T) {
	t.Parallel()

	if got := teamPath("  Paris Saint  Germain ", 2020); got != "/team/Paris_Saint_Germain/2020" {
		t.Fatalf("unexpected path %q", got)
	}
}
