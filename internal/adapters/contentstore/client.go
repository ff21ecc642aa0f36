// Package contentstore reads portfolio records from a headless content store
// through its HTTP query API.
//
// Each record kind is one fixed query. A failing query never affects the
// others and never reaches the caller as an error: it yields an empty slice.
package contentstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
	"github.com/okian/folio/pkg/metrics"
)

const (
	defaultDataset    = "production"
	defaultAPIVersion = "2024-01-01"
	maxBodyBytes      = 8 << 20
)

// Source names used in logs and metrics.
const (
	SourceExperience = "experience"
	SourceSkills     = "skills"
	SourceProjects   = "projects"
	SourceAcademics  = "academics"
)

// Client queries one dataset. It is safe for concurrent use.
type Client struct {
	projectID  string
	dataset    string
	apiVersion string
	token      string
	useCDN     bool
	baseURL    string

	base *http.Client
	http *http.Client
	log  logger.Logger
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		dataset:    defaultDataset,
		apiVersion: defaultAPIVersion,
		base:       &http.Client{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" && c.projectID != "" {
		host := "api.sanity.io"
		if c.useCDN {
			host = "apicdn.sanity.io"
		}
		c.baseURL = fmt.Sprintf("https://%s.%s", c.projectID, host)
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

// Experience returns employment records, most recent joining date first.
func (c *Client) Experience(ctx context.Context) []model.ExperienceRecord {
	records := run(ctx, c, SourceExperience, experienceQuery, decodeExperience)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].JoiningDate.After(records[j].JoiningDate.Time)
	})
	return records
}

// Skills returns skill records in store order.
func (c *Client) Skills(ctx context.Context) []model.SkillRecord {
	return run(ctx, c, SourceSkills, skillsQuery, decodeSkill)
}

// Projects returns project records in store order.
func (c *Client) Projects(ctx context.Context) []model.ProjectRecord {
	return run(ctx, c, SourceProjects, projectsQuery, decodeProject)
}

// Academics returns education records, latest end date first.
func (c *Client) Academics(ctx context.Context) []model.AcademicRecord {
	return run(ctx, c, SourceAcademics, academicsQuery, decodeAcademic)
}

// run executes one query and decodes its rows, absorbing every failure.
func run[T any](ctx context.Context, c *Client, source, groq string, decode func(gjson.Result) (T, bool)) []T {
	start := time.Now()
	rows, err := c.query(ctx, groq)
	elapsed := time.Since(start)

	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.OutcomeTimeout
		}
		metrics.RecordSourceFetch(source, outcome, float64(elapsed.Milliseconds()))
		c.log.Warn(ctx, "content query failed",
			logger.String("source", source),
			logger.String("outcome", outcome),
			logger.Duration("duration", elapsed),
			logger.Error(err))
		return []T{}
	}

	out := make([]T, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if rec, ok := decode(row); ok {
			out = append(out, rec)
		} else {
			skipped++
		}
	}

	metrics.RecordSourceFetch(source, metrics.OutcomeOK, float64(elapsed.Milliseconds()))
	c.log.Debug(ctx, "content query finished",
		logger.String("source", source),
		logger.Int("count", len(out)),
		logger.Int("skipped", skipped),
		logger.Duration("duration", elapsed))
	return out
}

func (c *Client) query(ctx context.Context, groq string) ([]gjson.Result, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s",
		c.baseURL, c.apiVersion, url.PathEscape(c.dataset), url.Values{"query": {groq}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
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

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	doc := gjson.ParseBytes(body)
	if e := doc.Get("error"); e.Exists() {
		msg := e.Get("description").String()
		if msg == "" {
			msg = e.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrQuery, msg)
	}
	result := doc.Get("result")
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: result is not a list", ErrMalformed)
	}
	return result.Array(), nil
}
