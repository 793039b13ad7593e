// Package adventofcode reads private leaderboards from the puzzle site.
package adventofcode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/external/httpx"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/aoc-leaderboard/internal/usecase"
)

const defaultBaseURL = "https://adventofcode.com"

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	// Session is the value of the site's "session" cookie for an account that can view the boards.
	Session    string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
	Breaker    *resilience.CircuitBreaker
	OnFailure  func(upstream string)
}

type Client struct {
	requester *httpx.Requester
	baseURL   string
	session   string
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	session := strings.TrimSpace(cfg.Session)

	return &Client{
		requester: httpx.New(httpx.Config{
			Name:       "adventofcode",
			HTTPClient: cfg.HTTPClient,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			Breaker:    cfg.Breaker,
			Logger:     cfg.Logger,
			Secrets:    []string{session},
			OnFailure:  cfg.OnFailure,
		}),
		baseURL: baseURL,
		session: session,
	}
}

// GetLeaderboard fetches the private leaderboard identified by boardID for one event year.
// Every failure is reported as usecase.ErrDependencyUnavailable.
func (c *Client) GetLeaderboard(ctx context.Context, year int, boardID string) (leaderboard.Board, error) {
	boardID = strings.TrimSpace(boardID)
	if boardID == "" {
		return leaderboard.Board{}, fmt.Errorf("%w: leaderboard id is required", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/%d/leaderboard/private/view/%s.json", year, boardID)
	var payload leaderboardResponse
	err := c.requester.GetJSON(ctx, httpx.JoinURL(c.baseURL, path), &payload,
		httpx.WithHeader("Cookie", "session="+c.session),
	)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return leaderboard.Board{}, err
		}
		return leaderboard.Board{}, fmt.Errorf("%w: fetch leaderboard year=%d: %v", usecase.ErrDependencyUnavailable, year, err)
	}

	return payload.toBoard(), nil
}
