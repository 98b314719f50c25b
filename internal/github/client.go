// Package github lists the owner's public repositories for the corpus and the /api/repos proxy.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/customHttpClient"
	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/akolanti/portfolio/pkg/logger_i"
	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

var ErrNoUsername = errors.New("github username is not configured")

type Client struct {
	gh       *gh.Client
	username string
	limiter  *rate.Limiter
	logger   *logger_i.Logger

	mu        sync.Mutex
	cached    []portfolio.Repo
	fetchedAt time.Time
	now       func() time.Time
}

// NewClient authenticates with token when one is given; otherwise requests are anonymous and lower rate.
func NewClient(ctx context.Context, username, token string) *Client {
	httpClient := customHttpClient.Client(config.GitHubTimeout)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, httpClient), ts)
		httpClient.Timeout = config.GitHubTimeout
	}
	return NewClientWithHTTPClient(username, httpClient)
}

func NewClientWithHTTPClient(username string, httpClient *http.Client) *Client {
	return &Client{
		gh:       gh.NewClient(httpClient),
		username: username,
		limiter:  rate.NewLimiter(rate.Limit(config.GitHubRequestsPerS), 1),
		logger:   logger_i.NewLogger("github"),
		now:      time.Now,
	}
}

// ListPublicRepos returns one page of the user's most recently updated, non-private, non-fork repositories.
func (c *Client) ListPublicRepos(ctx context.Context) ([]portfolio.Repo, error) {
	if c.username == "" {
		return nil, ErrNoUsername
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: config.GitHubPageSize},
	}
	repos, _, err := c.gh.Repositories.ListByUser(ctx, c.username, opts)
	if err != nil {
		return nil, fmt.Errorf("list repos for %s: %w", c.username, err)
	}

	out := make([]portfolio.Repo, 0, len(repos))
	for _, r := range repos {
		if r.GetPrivate() || r.GetFork() {
			continue
		}
		out = append(out, toRepo(r))
	}
	return out, nil
}

// FetchRepos never fails: on error it returns an empty list and reports the cause in Err.
func (c *Client) FetchRepos(ctx context.Context) portfolio.RepoResult {
	fetchCtx, cancel := context.WithTimeout(ctx, config.GitHubTimeout)
	defer cancel()

	repos, err := c.ListPublicRepos(fetchCtx)
	if err != nil {
		return portfolio.RepoResult{Repos: []portfolio.Repo{}, Err: err}
	}
	return portfolio.RepoResult{Repos: repos}
}

// Cached serves the last listing for up to GitHubProxyCacheTTL. A failed refresh keeps serving the stale copy.
func (c *Client) Cached(ctx context.Context) ([]portfolio.Repo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Sub(c.fetchedAt) < config.GitHubProxyCacheTTL {
		return c.cached, nil
	}

	res := c.FetchRepos(ctx)
	if res.Err != nil {
		if c.cached != nil {
			c.logger.FromContext(ctx).Warn("Serving stale repositories", "error", res.Err)
			return c.cached, nil
		}
		return nil, res.Err
	}
	c.cached = res.Repos
	c.fetchedAt = c.now()
	return c.cached, nil
}

func toRepo(r *gh.Repository) portfolio.Repo {
	repo := portfolio.Repo{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		URL:         r.GetHTMLURL(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Topics:      r.Topics,
		Stars:       r.GetStargazersCount(),
	}
	if r.UpdatedAt != nil {
		repo.UpdatedAt = r.UpdatedAt.Format(time.RFC3339)
	}
	if repo.Topics == nil {
		repo.Topics = []string{}
	}
	return repo
}
