// Package github fetches a user's pinned repositories from the GitHub GraphQL API.
//
// The adapter never fails its caller: any upstream problem is logged, counted
// and turned into an empty result.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
	"github.com/okian/folio/pkg/metrics"
)

const (
	// DefaultEndpoint is the public GitHub GraphQL endpoint.
	DefaultEndpoint = "https://api.github.com/graphql"
	// MaxPinned is the most items a GitHub profile can pin.
	MaxPinned = 6

	sourceName   = "github"
	maxBodyBytes = 4 << 20
)

// Client talks to the GraphQL API. It is safe for concurrent use.
type Client struct {
	endpoint string
	token    string
	base     *http.Client
	http     *http.Client
	log      logger.Logger
}

// New creates a Client. The HTTP client is built once and shared by all calls.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		base:     &http.Client{},
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = c.base
	if c.token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
		c.http = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: c.token,
			TokenType:   "bearer",
		}))
	}
	return c
}

// PinnedRepositories returns up to count pinned repositories of username.
// count is clamped to 1..6 with non-positive values meaning 6. On any failure
// the result is an empty slice.
func (c *Client) PinnedRepositories(ctx context.Context, username string, count int) []model.RepositorySummary {
	start := time.Now()
	repos, err := c.fetch(ctx, username, clampCount(count))
	elapsed := time.Since(start)

	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.OutcomeTimeout
		}
		metrics.RecordSourceFetch(sourceName, outcome, float64(elapsed.Milliseconds()))
		c.log.Warn(ctx, "pinned repositories fetch failed",
			logger.String("source", sourceName),
			logger.String("username", username),
			logger.String("outcome", outcome),
			logger.Duration("duration", elapsed),
			logger.Error(err))
		return []model.RepositorySummary{}
	}

	metrics.RecordSourceFetch(sourceName, metrics.OutcomeOK, float64(elapsed.Milliseconds()))
	c.log.Debug(ctx, "pinned repositories fetched",
		logger.String("source", sourceName),
		logger.Int("count", len(repos)),
		logger.Duration("duration", elapsed))
	return repos
}

func (c *Client) fetch(ctx context.Context, username string, count int) ([]model.RepositorySummary, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query:     pinnedQuery,
		Variables: map[string]any{"login": username, "first": count},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	return decodePinned(body, count)
}

func decodePinned(body []byte, count int) ([]model.RepositorySummary, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	doc := gjson.ParseBytes(body)

	if errs := doc.Get("errors"); errs.IsArray() && len(errs.Array()) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrQuery, errs.Get("0.message").String())
	}

	nodes := doc.Get("data.user.pinnedItems.nodes")
	if !nodes.IsArray() {
		return nil, fmt.Errorf("%w: missing data.user.pinnedItems.nodes", ErrMalformed)
	}

	repos := make([]model.RepositorySummary, 0, count)
	seen := make(map[string]struct{}, count)
	for _, n := range nodes.Array() {
		name := n.Get("name").String()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		repos = append(repos, model.RepositorySummary{
			Name:                 name,
			Description:          optString(n.Get("description")),
			URL:                  n.Get("url").String(),
			PrimaryLanguageName:  optString(n.Get("primaryLanguage.name")),
			PrimaryLanguageColor: optString(n.Get("primaryLanguage.color")),
			StarCount:            nonNegative(n.Get("stargazerCount").Int()),
			ForkCount:            nonNegative(n.Get("forkCount").Int()),
		})
		if len(repos) == count {
			break
		}
	}
	return repos, nil
}

func clampCount(count int) int {
	if count <= 0 || count > MaxPinned {
		return MaxPinned
	}
	return count
}

func optString(r gjson.Result) *string {
	if r.Type != gjson.String {
		return nil
	}
	return model.StringPtr(r.String())
}

func nonNegative(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
