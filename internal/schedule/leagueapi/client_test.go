package leagueapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/schedule"
)

func TestFetchScheduleHitsAPIAndMapsResponse(t *testing.T) {
	fixed := time.Date(2026, 4, 8, 3, 0, 0, 0, time.UTC) // still 2026-04-07 in America/New_York
	var capturedAuth string
	var capturedQueries []string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/schedule" {
			t.Fatalf("expected /schedule path, got %s", req.URL.Path)
		}
		capturedQueries = append(capturedQueries, req.URL.RawQuery)
		capturedAuth = req.Header.Get("Authorization")

		body := `{
			"data": [
				{
					"id": 10,
					"first_pitch": "2026-04-07T23:05:00Z",
					"status": "Scheduled",
					"home_team": { "id": 1, "city": "Harbor", "name": "Cats" },
					"away_team": { "id": 2, "city": "River", "name": "Hawks" },
					"venue": "Harbor Park",
					"season": 2026
				}
			],
			"meta": { "total_pages": 2 }
		}`
		if len(capturedQueries) == 2 {
			body = `{
				"data": [
					{
						"id": 11,
						"first_pitch": "2026-04-08T00:35:00Z",
						"status": "Scheduled",
						"home_team": { "id": 3, "city": "Bay", "name": "Sharks" },
						"away_team": { "id": 4, "city": "Summit", "name": "Elks" },
						"venue": "Bayfront Field",
						"season": 2026
					}
				],
				"meta": { "total_pages": 2 }
			}`
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
		Timezone:   "America/New_York",
		MaxPages:   2,
	})
	client.now = func() time.Time { return fixed }

	slate, err := client.FetchSchedule(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if capturedAuth != "Bearer secret" {
		t.Fatalf("expected authorization header, got %s", capturedAuth)
	}
	if len(capturedQueries) != 2 {
		t.Fatalf("expected 2 requests (pagination), got %d", len(capturedQueries))
	}
	q, err := url.ParseQuery(capturedQueries[0])
	if err != nil {
		t.Fatalf("failed parsing query %s: %v", capturedQueries[0], err)
	}
	if q.Get("per_page") != "100" {
		t.Fatalf("expected per_page=100, got %s", q.Get("per_page"))
	}
	if q.Get("date") != "2026-04-07" {
		t.Fatalf("expected date=2026-04-07 in NY, got %s", q.Get("date"))
	}
	if q.Get("page") != "1" {
		t.Fatalf("expected page=1, got %s", q.Get("page"))
	}
	if len(slate) != 2 {
		t.Fatalf("expected games from both pages, got %d", len(slate))
	}

	game := slate[0]
	if game.ID != "leagueapi-10" {
		t.Fatalf("unexpected game id %s", game.ID)
	}
	if game.HomeTeam != "Harbor Cats" || game.AwayTeam != "River Hawks" {
		t.Fatalf("unexpected teams %s vs %s", game.AwayTeam, game.HomeTeam)
	}
	if game.Status != games.StatusScheduled {
		t.Fatalf("unexpected status %s", game.Status)
	}
	if want := time.Date(2026, 4, 7, 23, 5, 0, 0, time.UTC); !game.StartTime.Equal(want) {
		t.Fatalf("expected first pitch %s, got %s", want, game.StartTime)
	}
}

func TestFetchScheduleHandlesNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("boom")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})
	client.now = func() time.Time { return time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC) }

	if _, err := client.FetchSchedule(context.Background(), ""); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchScheduleSurfacesRateLimit(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		header := make(http.Header)
		header.Set("Retry-After", "30")
		header.Set("X-RateLimit-Remaining", "0")
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(strings.NewReader("slow down")),
			Header:     header,
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})
	client.now = func() time.Time { return time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC) }

	_, err := client.FetchSchedule(context.Background(), "")
	if err == nil {
		t.Fatal("expected rate limit error")
	}
	rlErr, ok := schedule.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected *schedule.RateLimitError, got %T", err)
	}
	if rlErr.Provider != "leagueapi" || rlErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected rate limit details %+v", rlErr)
	}
	if rlErr.RetryAfter != 30*time.Second {
		t.Fatalf("expected retry after 30s, got %s", rlErr.RetryAfter)
	}
	if rlErr.Remaining != "0" {
		t.Fatalf("expected remaining 0, got %s", rlErr.Remaining)
	}
	if rlErr.Message != "slow down" {
		t.Fatalf("unexpected message %q", rlErr.Message)
	}
}

func TestFetchScheduleHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{bad json")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})
	client.now = func() time.Time { return time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC) }

	if _, err := client.FetchSchedule(context.Background(), ""); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchScheduleRespectsMaxPagesCap(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		body := `{
			"data": [
				{
					"id": 1,
					"first_pitch": "2026-04-07T17:05:00Z",
					"status": "Scheduled",
					"home_team": { "id": 1, "city": "Harbor", "name": "Cats" },
					"away_team": { "id": 2, "city": "River", "name": "Hawks" },
					"season": 2026
				}
			],
			"meta": { "total_pages": 10 }
		}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
		MaxPages:   1,
	})

	slate, err := client.FetchSchedule(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slate) != 1 {
		t.Fatalf("expected 1 game, got %d", len(slate))
	}
	if calls != 1 {
		t.Fatalf("expected to stop after max pages, got %d calls", calls)
	}
}

func TestFetchScheduleUsesExplicitDate(t *testing.T) {
	var captured string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = req.URL.Query().Get("date")
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"data": []}`)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	if _, err := client.FetchSchedule(context.Background(), "2026-07-04"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if captured != "2026-07-04" {
		t.Fatalf("expected explicit date forwarded, got %s", captured)
	}
}

func TestNewClientSetsDefaultHTTPClient(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout == 0 {
		t.Fatalf("expected timeout to be set on default http client")
	}
}

func TestParseRetryAfterReadsHTTPDate(t *testing.T) {
	now := time.Date(2026, 4, 7, 12, 0, 0, 0, time.UTC)
	header := make(http.Header)
	header.Set("Retry-After", now.Add(45*time.Second).UTC().Format(http.TimeFormat))

	if got := parseRetryAfter(header, now); got != 45*time.Second {
		t.Fatalf("expected 45s, got %s", got)
	}
}

func TestParseRetryAfterIgnoresGarbage(t *testing.T) {
	now := time.Date(2026, 4, 7, 12, 0, 0, 0, time.UTC)
	header := make(http.Header)
	header.Set("Retry-After", "soon")

	if got := parseRetryAfter(header, now); got != 0 {
		t.Fatalf("expected 0, got %s", got)
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
