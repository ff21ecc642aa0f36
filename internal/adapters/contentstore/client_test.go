package contentstore_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/tidwall/gjson"

	"github.com/okian/folio/internal/adapters/contentstore"
	"github.com/okian/folio/internal/domain/model"
)

const experienceFixture = `{"result": [
  {"_id": "exp-old", "company_name": "Acme", "company_url": "https://acme.example", "my_role": "Engineer",
   "company_description": "- Built things - Shipped things -", "joining_date": "2019-03-01",
   "current_company": false, "exit_date": "2021-06-30", "company_logo": "https://cdn.example/acme.png",
   "skills": [{"_id": "sk-go", "skill": "Go", "skill_logo": "https://cdn.example/go.svg"}, {"_id": "sk-x"}]},
  {"_id": "exp-new", "company_name": "Globex", "my_role": "Lead", "joining_date": "2022-01-10",
   "current_company": true, "exit_date": "2023-01-01",
   "company_logo": {"asset": {"url": "https://cdn.example/globex.png"}}, "skills": null},
  {"company_name": "No Id Corp", "joining_date": "2024-01-01"},
  {"_id": "exp-mid", "company_name": "Initech", "joining_date": "2021-07-01", "company_logo": 42}
]}`

const skillsFixture = `{"result": [
  {"_id": "s1", "skill": "React", "level": "advanced", "experience": 4, "skill_logo": "https://cdn.example/react.svg"},
  {"_id": "s2", "skill": "PostgreSQL", "level": "Wizard", "experience": -2},
  {"_id": "s3", "skill": "Docker", "level": "Competent", "experience": 1.5, "skill_logo": {"asset": {"url": "https://cdn.example/docker.svg"}}}
]}`

const projectsFixture = `{"result": [
  {"_id": "p1", "project_name": "Folio", "project_url": "https://folio.example", "project_description": "Portfolio",
   "project_logo": "https://cdn.example/folio.png", "categories": ["fullstack", "bogus", "frontend"],
   "skills": [{"_id": "s1", "skill": "React"}]},
  {"_id": "p2", "project_name": "Scratch", "categories": ["bogus"]},
  {"_id": "p3", "project_name": "Bare"}
]}`

const academicsFixture = `{"result": [
  {"_id": "a1", "name": "State University", "qualification": "BSc Computer Science",
   "start": "2014-09-01", "end": "2018-06-30", "image": "https://cdn.example/uni.png"}
]}`

type fakeStore struct {
	mu       sync.Mutex
	paths    []string
	auth     string
	failKind string
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("query")

	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.auth = r.Header.Get("Authorization")
	failKind := f.failKind
	f.mu.Unlock()

	kind := ""
	for _, k := range []string{"experience", "skills", "projects", "academics"} {
		if strings.Contains(q, `_type == "`+k+`"`) {
			kind = k
		}
	}
	if kind == failKind {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch kind {
	case "experience":
		_, _ = io.WriteString(w, experienceFixture)
	case "skills":
		_, _ = io.WriteString(w, skillsFixture)
	case "projects":
		_, _ = io.WriteString(w, projectsFixture)
	case "academics":
		_, _ = io.WriteString(w, academicsFixture)
	default:
		_, _ = io.WriteString(w, `{"error": {"description": "unknown query"}}`)
	}
}

func TestClient_BaseURL(t *testing.T) {
	convey.Convey("Given a project id", t, func() {
		convey.Convey("Then the live API host is used by default", func() {
			c := contentstore.New(contentstore.WithProjectID("abc123"))
			convey.So(c.BaseURL(), convey.ShouldEqual, "https://abc123.api.sanity.io")
		})

		convey.Convey("Then the CDN host is used when enabled", func() {
			c := contentstore.New(contentstore.WithProjectID("abc123"), contentstore.WithCDN(true))
			convey.So(c.BaseURL(), convey.ShouldEqual, "https://abc123.apicdn.sanity.io")
		})

		convey.Convey("Then an explicit base URL wins", func() {
			c := contentstore.New(contentstore.WithProjectID("abc123"), contentstore.WithBaseURL("http://localhost:1234/"))
			convey.So(c.BaseURL(), convey.ShouldEqual, "http://localhost:1234")
		})
	})

	convey.Convey("Given no project id and no base URL", t, func() {
		c := contentstore.New()

		convey.Convey("Then queries fail as not configured and public calls are empty", func() {
			_, err := c.Query(context.Background(), "*")
			convey.So(errors.Is(err, contentstore.ErrNotConfigured), convey.ShouldBeTrue)
			convey.So(c.Skills(context.Background()), convey.ShouldBeEmpty)
		})
	})
}

func TestClient_Records(t *testing.T) {
	convey.Convey("Given a content store with one record set per kind", t, func() {
		store := &fakeStore{}
		srv := httptest.NewServer(store)
		defer srv.Close()

		c := contentstore.New(
			contentstore.WithBaseURL(srv.URL),
			contentstore.WithDataset("staging"),
			contentstore.WithAPIVersion("v2023-05-03"),
			contentstore.WithToken("sk_read"),
		)
		ctx := context.Background()

		convey.Convey("When reading experience", func() {
			exp := c.Experience(ctx)

			convey.Convey("Then records without an id are skipped", func() {
				convey.So(len(exp), convey.ShouldEqual, 3)
			})

			convey.Convey("Then records are ordered by joining date descending", func() {
				convey.So(exp[0].ID, convey.ShouldEqual, "exp-new")
				convey.So(exp[1].ID, convey.ShouldEqual, "exp-mid")
				convey.So(exp[2].ID, convey.ShouldEqual, "exp-old")
			})

			convey.Convey("Then a current role with an exit date is passed through", func() {
				convey.So(exp[0].IsCurrent, convey.ShouldBeTrue)
				convey.So(exp[0].ExitDate, convey.ShouldNotBeNil)
				convey.So(exp[0].ExitDate.String(), convey.ShouldEqual, "2023-01-01")
			})

			convey.Convey("Then the description is split into bullets", func() {
				convey.So(exp[2].DescriptionBullets, convey.ShouldResemble, []string{"Built things", "Shipped things"})
			})

			convey.Convey("Then logo shapes are normalized", func() {
				convey.So(*exp[2].CompanyLogoURL, convey.ShouldEqual, "https://cdn.example/acme.png")
				convey.So(*exp[0].CompanyLogoURL, convey.ShouldEqual, "https://cdn.example/globex.png")
				convey.So(exp[1].CompanyLogoURL, convey.ShouldBeNil)
			})

			convey.Convey("Then skill references are resolved and unlabeled ones dropped", func() {
				convey.So(len(exp[2].SkillRefs), convey.ShouldEqual, 1)
				convey.So(exp[2].SkillRefs[0].Label, convey.ShouldEqual, "Go")
				convey.So(*exp[2].SkillRefs[0].LogoURL, convey.ShouldEqual, "https://cdn.example/go.svg")
				convey.So(exp[0].SkillRefs, convey.ShouldNotBeNil)
				convey.So(exp[0].SkillRefs, convey.ShouldBeEmpty)
			})

			convey.Convey("Then the request targets the versioned dataset path with the token", func() {
				store.mu.Lock()
				defer store.mu.Unlock()
				convey.So(store.paths[0], convey.ShouldEqual, "/v2023-05-03/data/query/staging")
				convey.So(store.auth, convey.ShouldEqual, "Bearer sk_read")
			})
		})

		convey.Convey("When reading skills", func() {
			skills := c.Skills(ctx)

			convey.Convey("Then proficiency, years and logos are decoded", func() {
				convey.So(len(skills), convey.ShouldEqual, 3)
				convey.So(skills[0].ProficiencyLevel, convey.ShouldEqual, model.Advanced)
				convey.So(skills[0].YearsExperience, convey.ShouldEqual, 4.0)
				convey.So(*skills[0].LogoURL, convey.ShouldEqual, "https://cdn.example/react.svg")
				convey.So(skills[2].YearsExperience, convey.ShouldEqual, 1.5)
				convey.So(*skills[2].LogoURL, convey.ShouldEqual, "https://cdn.example/docker.svg")
			})

			convey.Convey("Then unknown levels are kept and negative years clamp to zero", func() {
				convey.So(string(skills[1].ProficiencyLevel), convey.ShouldEqual, "Wizard")
				convey.So(skills[1].ProficiencyLevel.Valid(), convey.ShouldBeFalse)
				convey.So(skills[1].YearsExperience, convey.ShouldEqual, 0.0)
				convey.So(skills[1].LogoURL, convey.ShouldBeNil)
			})
		})

		convey.Convey("When reading projects", func() {
			projects := c.Projects(ctx)

			convey.Convey("Then the primary category is the first valid one", func() {
				convey.So(len(projects), convey.ShouldEqual, 3)
				convey.So(projects[0].Category, convey.ShouldEqual, model.ProjectFullStack)
				convey.So(projects[0].Categories, convey.ShouldResemble,
					[]model.ProjectCategory{model.ProjectFullStack, model.ProjectFrontend})
				convey.So(*projects[0].URL, convey.ShouldEqual, "https://folio.example")
			})

			convey.Convey("Then projects without a valid category fall back to other", func() {
				convey.So(projects[1].Category, convey.ShouldEqual, model.ProjectOther)
				convey.So(projects[2].Category, convey.ShouldEqual, model.ProjectOther)
				convey.So(projects[2].URL, convey.ShouldBeNil)
				convey.So(projects[2].LogoURL, convey.ShouldBeNil)
			})
		})

		convey.Convey("When reading academics", func() {
			academics := c.Academics(ctx)

			convey.Convey("Then dates and image are decoded", func() {
				convey.So(len(academics), convey.ShouldEqual, 1)
				convey.So(academics[0].InstitutionName, convey.ShouldEqual, "State University")
				convey.So(academics[0].StartDate.String(), convey.ShouldEqual, "2014-09-01")
				convey.So(academics[0].EndDate.String(), convey.ShouldEqual, "2018-06-30")
				convey.So(*academics[0].ImageURL, convey.ShouldEqual, "https://cdn.example/uni.png")
			})
		})

		convey.Convey("When one query fails", func() {
			store.mu.Lock()
			store.failKind = "skills"
			store.mu.Unlock()

			convey.Convey("Then only that kind is empty", func() {
				convey.So(c.Skills(ctx), convey.ShouldBeEmpty)
				convey.So(len(c.Projects(ctx)), convey.ShouldEqual, 3)
				convey.So(len(c.Academics(ctx)), convey.ShouldEqual, 1)
			})
		})
	})
}

func TestClient_QueryErrors(t *testing.T) {
	convey.Convey("Given malformed upstream responses", t, func() {
		cases := []struct {
			name   string
			status int
			body   string
			want   error
		}{
			{"forbidden", http.StatusForbidden, `{}`, contentstore.ErrStatus},
			{"query error", http.StatusOK, `{"error": {"description": "expected '}'"}}`, contentstore.ErrQuery},
			{"missing result", http.StatusOK, `{"ms": 3}`, contentstore.ErrMalformed},
			{"invalid json", http.StatusOK, `{"result": [`, contentstore.ErrMalformed},
		}

		for _, tc := range cases {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			c := contentstore.New(contentstore.WithBaseURL(srv.URL))

			convey.Convey("Then "+tc.name+" is classified and absorbed", func() {
				_, err := c.Query(context.Background(), `*[_type == "skills"]`)
				convey.So(errors.Is(err, tc.want), convey.ShouldBeTrue)
				convey.So(c.Skills(context.Background()), convey.ShouldBeEmpty)
			})
			srv.Close()
		}
	})

	convey.Convey("Given an upstream slower than the deadline", t, func() {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		c := contentstore.New(contentstore.WithBaseURL(srv.URL))
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		convey.Convey("Then the result is empty", func() {
			convey.So(c.Academics(ctx), convey.ShouldBeEmpty)
		})
	})
}

func TestImageURL(t *testing.T) {
	convey.Convey("Given the image shapes the store can return", t, func() {
		convey.So(*contentstore.ImageURL(gjson.Parse(`"https://x/a.png"`)), convey.ShouldEqual, "https://x/a.png")
		convey.So(*contentstore.ImageURL(gjson.Parse(`{"asset":{"url":"https://x/b.png"}}`)), convey.ShouldEqual, "https://x/b.png")
		convey.So(*contentstore.ImageURL(gjson.Parse(`{"url":"https://x/c.png"}`)), convey.ShouldEqual, "https://x/c.png")
		convey.So(contentstore.ImageURL(gjson.Parse(`{"asset":{"_ref":"image-abc"}}`)), convey.ShouldBeNil)
		convey.So(contentstore.ImageURL(gjson.Parse(`""`)), convey.ShouldBeNil)
		convey.So(contentstore.ImageURL(gjson.Parse(`null`)), convey.ShouldBeNil)
		convey.So(contentstore.ImageURL(gjson.Parse(`7`)), convey.ShouldBeNil)
	})
}
