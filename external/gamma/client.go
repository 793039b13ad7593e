// Package gamma talks to the identity provider that owns user accounts and groups.
package gamma

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/riskibarqy/aoc-leaderboard/external/httpx"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/aoc-leaderboard/internal/usecase"
)

const (
	defaultTokenCacheTTL     = 30 * time.Second
	defaultTokenCacheEntries = 4096
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	// APIKey authenticates server-to-server profile lookups.
	APIKey        string
	Timeout       time.Duration
	Logger        *logging.Logger
	Breaker       *resilience.CircuitBreaker
	OnFailure     func(upstream string)
	TokenCacheTTL time.Duration
}

type Client struct {
	requester *httpx.Requester
	baseURL   string
	apiKey    string
	tokens    *tokenCache
	logger    *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	ttl := cfg.TokenCacheTTL
	if ttl == 0 {
		ttl = defaultTokenCacheTTL
	}

	return &Client{
		requester: httpx.New(httpx.Config{
			Name:       "gamma",
			HTTPClient: cfg.HTTPClient,
			Timeout:    cfg.Timeout,
			Breaker:    cfg.Breaker,
			Logger:     logger,
			Secrets:    []string{cfg.APIKey},
			OnFailure:  cfg.OnFailure,
		}),
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		tokens:  newTokenCache(ttl, defaultTokenCacheEntries, time.Now),
		logger:  logger,
	}
}

// GetProfile resolves the caller behind a user access token.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (user.Principal, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	var payload userResponse
	err := c.requester.GetJSON(ctx, httpx.JoinURL(c.baseURL, "/api/users/me"), &payload, token.SetAuthHeader)
	if err != nil {
		switch httpx.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return user.Principal{}, fmt.Errorf("%w: token rejected by identity provider", usecase.ErrUnauthorized)
		}
		return user.Principal{}, c.wrap(err, "fetch own profile")
	}

	return payload.toPrincipal()
}

// VerifyAccessToken is GetProfile with a short-lived cache in front of it.
func (c *Client) VerifyAccessToken(ctx context.Context, accessToken string) (user.Principal, error) {
	key := hashToken(accessToken)
	if principal, ok := c.tokens.Get(key); ok {
		return principal, nil
	}

	principal, err := c.GetProfile(ctx, accessToken)
	if err != nil {
		return user.Principal{}, err
	}
	c.tokens.Set(key, principal)
	return principal, nil
}

// GetProfileByID looks up any user by local id using the pre-shared API key.
func (c *Client) GetProfileByID(ctx context.Context, localID string) (user.Principal, error) {
	localID = strings.TrimSpace(localID)
	if localID == "" {
		return user.Principal{}, fmt.Errorf("%w: local id is required", usecase.ErrInvalidInput)
	}

	var payload userResponse
	err := c.requester.GetJSON(ctx, httpx.JoinURL(c.baseURL, "/api/users/"+url.PathEscape(localID)), &payload,
		httpx.WithHeader("Authorization", "pre-shared "+c.apiKey),
	)
	if err != nil {
		if httpx.StatusCode(err) == http.StatusNotFound {
			return user.Principal{}, fmt.Errorf("%w: user %s", usecase.ErrNotFound, localID)
		}
		return user.Principal{}, c.wrap(err, "fetch profile "+localID)
	}

	return payload.toPrincipal()
}

func (c *Client) wrap(err error, action string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if httpx.Unavailable(err) {
		return fmt.Errorf("%w: %s: %v", usecase.ErrDependencyUnavailable, action, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}

type userResponse struct {
	CID       string          `json:"cid"`
	Nick      string          `json:"nick"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	AvatarURL string          `json:"avatarUrl"`
	Groups    []groupResponse `json:"groups"`
}

type groupResponse struct {
	Name       string `json:"name"`
	SuperGroup struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"superGroup"`
}

func (u userResponse) toPrincipal() (user.Principal, error) {
	if strings.TrimSpace(u.CID) == "" {
		return user.Principal{}, fmt.Errorf("invalid profile response: cid is empty")
	}

	groups := make([]string, 0, len(u.Groups))
	seen := make(map[string]struct{}, len(u.Groups))
	for _, g := range u.Groups {
		name := strings.TrimSpace(g.SuperGroup.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		groups = append(groups, name)
	}

	display := strings.TrimSpace(u.Nick)
	if display == "" {
		display = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if display == "" {
		display = u.CID
	}

	return user.Principal{
		LocalID:     u.CID,
		DisplayName: display,
		AvatarURL:   u.AvatarURL,
		Groups:      groups,
	}, nil
}
