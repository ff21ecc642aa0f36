package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/folio/internal/adapters/github"
)

const pinnedBody = `{
  "data": {
    "user": {
      "pinnedItems": {
        "nodes": [
          {"name": "folio", "description": "Portfolio service", "url": "https://github.com/octocat/folio",
           "primaryLanguage": {"name": "Go", "color": "#00ADD8"}, "stargazerCount": 12, "forkCount": 3},
          {"name": "dotfiles", "description": null, "url": "https://github.com/octocat/dotfiles",
           "primaryLanguage": null, "stargazerCount": 0, "forkCount": 0},
          {"name": "folio", "description": "duplicate", "url": "https://github.com/octocat/folio-dup",
           "primaryLanguage": null, "stargazerCount": 1, "forkCount": 1},
          {"name": "notes", "description": "", "url": "https://github.com/octocat/notes",
           "primaryLanguage": {"name": "Markdown"}, "stargazerCount": 4, "forkCount": 1}
        ]
      }
    }
  }
}`

type capturedRequest struct {
	mu        sync.Mutex
	Auth      string
	Query     string
	Variables map[string]any
}

func (c *capturedRequest) snapshot() (auth, query string, vars map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Auth, c.Query, c.Variables
}

func newServer(status int, body string, captured *capturedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.mu.Lock()
			defer captured.mu.Unlock()
			captured.Auth = r.Header.Get("Authorization")
			raw, _ := io.ReadAll(r.Body)
			var req struct {
				Query     string         `json:"query"`
				Variables map[string]any `json:"variables"`
			}
			_ = json.Unmarshal(raw, &req)
			captured.Query = req.Query
			captured.Variables = req.Variables
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func TestPinnedRepositories_Success(t *testing.T) {
	Convey("Given a GraphQL endpoint returning pinned repositories", t, func() {
		var captured capturedRequest
		srv := newServer(http.StatusOK, pinnedBody, &captured)
		defer srv.Close()

		client := github.New(github.WithEndpoint(srv.URL), github.WithToken("ghp_test"))

		Convey("When fetching pinned repositories", func() {
			repos := client.PinnedRepositories(context.Background(), "octocat", 6)

			Convey("Then later duplicates by name are dropped and order is kept", func() {
				So(len(repos), ShouldEqual, 3)
				So(repos[0].Name, ShouldEqual, "folio")
				So(repos[1].Name, ShouldEqual, "dotfiles")
				So(repos[2].Name, ShouldEqual, "notes")
				So(repos[0].URL, ShouldEqual, "https://github.com/octocat/folio")
			})

			Convey("Then fields are mapped with absent values as nil", func() {
				So(*repos[0].Description, ShouldEqual, "Portfolio service")
				So(*repos[0].PrimaryLanguageName, ShouldEqual, "Go")
				So(*repos[0].PrimaryLanguageColor, ShouldEqual, "#00ADD8")
				So(repos[0].StarCount, ShouldEqual, 12)
				So(repos[0].ForkCount, ShouldEqual, 3)

				So(repos[1].Description, ShouldBeNil)
				So(repos[1].PrimaryLanguageName, ShouldBeNil)
				So(repos[1].PrimaryLanguageColor, ShouldBeNil)

				So(repos[2].Description, ShouldBeNil)
				So(*repos[2].PrimaryLanguageName, ShouldEqual, "Markdown")
				So(repos[2].PrimaryLanguageColor, ShouldBeNil)
			})

			Convey("Then the request carries the bearer token and variables", func() {
				auth, query, vars := captured.snapshot()
				So(auth, ShouldEqual, "Bearer ghp_test")
				So(query, ShouldContainSubstring, "types: REPOSITORY")
				So(vars["login"], ShouldEqual, "octocat")
				So(vars["first"], ShouldEqual, float64(6))
			})
		})

		Convey("When asking for fewer repositories than returned", func() {
			repos := client.PinnedRepositories(context.Background(), "octocat", 2)

			Convey("Then the result is truncated to the requested count", func() {
				_, _, vars := captured.snapshot()
				So(len(repos), ShouldEqual, 2)
				So(vars["first"], ShouldEqual, float64(2))
			})
		})

		Convey("When asking for an out of range count", func() {
			_ = client.PinnedRepositories(context.Background(), "octocat", 0)
			_, _, zeroVars := captured.snapshot()
			_ = client.PinnedRepositories(context.Background(), "octocat", 42)
			_, _, bigVars := captured.snapshot()
			zero, big := zeroVars["first"], bigVars["first"]

			Convey("Then the count is clamped to six", func() {
				So(zero, ShouldEqual, float64(6))
				So(big, ShouldEqual, float64(6))
			})
		})
	})

	Convey("Given a client without a token", t, func() {
		var captured capturedRequest
		srv := newServer(http.StatusOK, pinnedBody, &captured)
		defer srv.Close()

		client := github.New(github.WithEndpoint(srv.URL))
		_ = client.PinnedRepositories(context.Background(), "octocat", 6)

		Convey("Then the request is sent unauthenticated", func() {
			auth, _, _ := captured.snapshot()
			So(auth, ShouldBeEmpty)
		})
	})
}

func TestPinnedRepositories_Failures(t *testing.T) {
	Convey("Given upstream failures", t, func() {
		cases := []struct {
			name   string
			status int
			body   string
			want   error
		}{
			{"unauthorized", http.StatusUnauthorized, `{"message":"Bad credentials"}`, github.ErrStatus},
			{"server error", http.StatusBadGateway, ``, github.ErrStatus},
			{"graphql errors", http.StatusOK, `{"errors":[{"message":"Could not resolve to a User"}]}`, github.ErrQuery},
			{"missing nodes", http.StatusOK, `{"data":{"user":null}}`, github.ErrMalformed},
			{"invalid json", http.StatusOK, `{"data":`, github.ErrMalformed},
		}

		for _, tc := range cases {
			srv := newServer(tc.status, tc.body, nil)
			client := github.New(github.WithEndpoint(srv.URL))

			Convey("When the upstream responds with "+tc.name, func() {
				repos := client.PinnedRepositories(context.Background(), "octocat", 6)
				_, err := client.Fetch(context.Background(), "octocat", 6)

				Convey("Then the public call yields an empty, non-nil slice", func() {
					So(repos, ShouldNotBeNil)
					So(repos, ShouldBeEmpty)
				})

				Convey("Then the internal error is classified", func() {
					So(errors.Is(err, tc.want), ShouldBeTrue)
				})
			})
			srv.Close()
		}
	})

	Convey("Given an unreachable endpoint", t, func() {
		srv := newServer(http.StatusOK, pinnedBody, nil)
		url := srv.URL
		srv.Close()

		client := github.New(github.WithEndpoint(url))
		_, err := client.Fetch(context.Background(), "octocat", 6)

		Convey("Then the failure is a transport error", func() {
			So(errors.Is(err, github.ErrTransport), ShouldBeTrue)
			So(client.PinnedRepositories(context.Background(), "octocat", 6), ShouldBeEmpty)
		})
	})

	Convey("Given an endpoint slower than the caller's deadline", t, func() {
		var calls atomic.Int32
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		client := github.New(github.WithEndpoint(srv.URL))
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.Fetch(ctx, "octocat", 6)

		Convey("Then the call gives up with a deadline error", func() {
			So(calls.Load(), ShouldEqual, int32(1))
			So(errors.Is(err, github.ErrTransport), ShouldBeTrue)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}
