// Package github reads repository language statistics.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/external/httpx"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/aoc-leaderboard/internal/usecase"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "aoc-leaderboard"
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	// ClientID and ClientSecret raise the unauthenticated rate limit when set.
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	Logger       *logging.Logger
	Breaker      *resilience.CircuitBreaker
	OnFailure    func(upstream string)
}

type Client struct {
	requester    *httpx.Requester
	baseURL      string
	clientID     string
	clientSecret string
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		requester: httpx.New(httpx.Config{
			Name:       "github",
			HTTPClient: cfg.HTTPClient,
			Timeout:    cfg.Timeout,
			Breaker:    cfg.Breaker,
			Logger:     cfg.Logger,
			Secrets:    []string{cfg.ClientSecret},
			OnFailure:  cfg.OnFailure,
		}),
		baseURL:      baseURL,
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
	}
}

// GetLanguages returns bytes of code per language for an "owner/repo" slug.
func (c *Client) GetLanguages(ctx context.Context, repoSlug string) (map[string]int, error) {
	repoSlug = strings.Trim(strings.TrimSpace(repoSlug), "/")
	if !participation.ValidRepoSlug(repoSlug) {
		return nil, fmt.Errorf("%w: repository %q must look like owner/repo", usecase.ErrInvalidInput, repoSlug)
	}

	languages := map[string]int{}
	err := c.requester.GetJSON(ctx, httpx.JoinURL(c.baseURL, "/repos/"+repoSlug+"/languages"), &languages,
		httpx.WithHeader("User-Agent", userAgent),
		httpx.WithHeader("Accept", "application/vnd.github+json"),
		httpx.WithBasicAuth(c.clientID, c.clientSecret),
	)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if httpx.StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: repository %s", usecase.ErrNotFound, repoSlug)
		}
		if httpx.Unavailable(err) {
			return nil, fmt.Errorf("%w: fetch languages %s: %v", usecase.ErrDependencyUnavailable, repoSlug, err)
		}
		return nil, fmt.Errorf("fetch languages %s: %w", repoSlug, err)
	}

	return languages, nil
}
