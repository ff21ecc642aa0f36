package service_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/folio/internal/domain/model"
)

type fakePinned struct {
	repos  []model.RepositorySummary
	delay  time.Duration
	panics bool
	calls  atomic.Int32

	mu       sync.Mutex
	username string
	count    int
}

func (f *fakePinned) PinnedRepositories(ctx context.Context, username string, count int) []model.RepositorySummary {
	f.calls.Add(1)
	f.mu.Lock()
	f.username, f.count = username, count
	f.mu.Unlock()

	if f.panics {
		panic("github source exploded")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return []model.RepositorySummary{}
		}
	}
	return f.repos
}

type fakeContent struct {
	experience []model.ExperienceRecord
	skills     []model.SkillRecord
	projects   []model.ProjectRecord
	academics  []model.AcademicRecord

	// panics names the record kinds whose fetch panics.
	panics map[string]bool
}

func (f *fakeContent) explode(kind string) {
	if f.panics[kind] {
		panic(kind + " decoder exploded")
	}
}

func (f *fakeContent) Experience(context.Context) []model.ExperienceRecord {
	f.explode("experience")
	return f.experience
}

func (f *fakeContent) Skills(context.Context) []model.SkillRecord {
	f.explode("skills")
	return f.skills
}

func (f *fakeContent) Projects(context.Context) []model.ProjectRecord {
	f.explode("projects")
	return f.projects
}

func (f *fakeContent) Academics(context.Context) []model.AcademicRecord {
	f.explode("academics")
	return f.academics
}

// countingBuilder returns a fixed view and counts builds. When gate is set,
// each build blocks until the gate is closed.
type countingBuilder struct {
	view   model.ViewModel
	builds atomic.Int32
	gate   chan struct{}
}

func (b *countingBuilder) Build(context.Context) model.ViewModel {
	b.builds.Add(1)
	if b.gate != nil {
		<-b.gate
	}
	return b.view
}

// phasedBuilder blocks its first build on gate and returns the stale view
// from it; every later build returns the fresh view immediately.
type phasedBuilder struct {
	stale, fresh model.ViewModel
	gate         chan struct{}
	builds       atomic.Int32
}

func (b *phasedBuilder) Build(context.Context) model.ViewModel {
	if b.builds.Add(1) == 1 {
		<-b.gate
		return b.stale
	}
	return b.fresh
}

func sequentialIDs() func() string {
	var n atomic.Int32
	return func() string { return fmt.Sprintf("build-%d", n.Add(1)) }
}

func str(s string) *string { return &s }

func repos(names ...string) []model.RepositorySummary {
	out := make([]model.RepositorySummary, len(names))
	for i, n := range names {
		out[i] = model.RepositorySummary{Name: n, URL: "https://github.com/octocat/" + n, StarCount: i}
	}
	return out
}

func skillRecords(labels ...string) []model.SkillRecord {
	out := make([]model.SkillRecord, len(labels))
	for i, l := range labels {
		out[i] = model.SkillRecord{ID: fmt.Sprintf("s%d", i), SkillLabel: l, ProficiencyLevel: model.Competent}
	}
	return out
}

// portfolioContent is the shape of a typical populated store:
// 2 experience, 10 skills, 4 projects, 1 academic record.
func portfolioContent() *fakeContent {
	exit := model.NewDate(2023, time.January, 1)
	return &fakeContent{
		experience: []model.ExperienceRecord{
			{ID: "e2", CompanyName: "Globex", Role: "Lead", JoiningDate: model.NewDate(2022, time.January, 10),
				IsCurrent: true, ExitDate: &exit, DescriptionBullets: []string{"Led"}, SkillRefs: []model.SkillRef{}},
			{ID: "e1", CompanyName: "Acme", Role: "Engineer", JoiningDate: model.NewDate(2019, time.March, 1),
				DescriptionBullets: []string{"Built"}, SkillRefs: []model.SkillRef{}},
		},
		skills: skillRecords("React", "Next.js", "Node.js", "Go", "PostgreSQL", "MongoDB",
			"Docker", "Stripe", "Pandas", "Quantum Computing"),
		projects: []model.ProjectRecord{
			{ID: "p1", Name: "Folio", Category: model.ProjectFullStack, URL: str("https://folio.example")},
			{ID: "p2", Name: "Shop", Category: model.ProjectFrontend},
			{ID: "p3", Name: "Ingest", Category: model.ProjectBackend},
			{ID: "p4", Name: "Notebook", Category: model.ProjectDataScience},
		},
		academics: []model.AcademicRecord{
			{ID: "a1", InstitutionName: "State University", Qualification: "BSc",
				StartDate: model.NewDate(2014, time.September, 1), EndDate: model.NewDate(2018, time.June, 30)},
		},
	}
}
