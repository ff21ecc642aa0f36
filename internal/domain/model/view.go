package model

import "time"

// ViewModel is the render-ready aggregate of every content source.
// All five sequences are non-nil after Normalize.
type ViewModel struct {
	PinnedRepos []RepositorySummary `json:"pinnedRepos"`
	Experience  []ExperienceRecord  `json:"experience"`
	Skills      []SkillRecord       `json:"skills"`
	Projects    []ProjectRecord     `json:"projects"`
	Academics   []AcademicRecord    `json:"academics"`
}

// Normalize replaces nil sequences with empty ones so consumers never see null.
func (v *ViewModel) Normalize() {
	if v.PinnedRepos == nil {
		v.PinnedRepos = []RepositorySummary{}
	}
	if v.Experience == nil {
		v.Experience = []ExperienceRecord{}
	}
	if v.Skills == nil {
		v.Skills = []SkillRecord{}
	}
	if v.Projects == nil {
		v.Projects = []ProjectRecord{}
	}
	if v.Academics == nil {
		v.Academics = []AcademicRecord{}
	}
}

// CategoryBucket groups the skills that fall into one display category.
type CategoryBucket struct {
	CategoryName string        `json:"categoryName"`
	Members      []SkillRecord `json:"members"`
}

// Author holds the site owner's public profile, taken from configuration.
type Author struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	GitHubHandle   string `json:"githubHandle,omitempty"`
	LinkedInHandle string `json:"linkedinHandle,omitempty"`
}

// GitHubURL returns the profile URL, or "" when no handle is configured.
func (a Author) GitHubURL() string {
	if a.GitHubHandle == "" {
		return ""
	}
	return "https://github.com/" + a.GitHubHandle
}

// LinkedInURL returns the profile URL, or "" when no handle is configured.
func (a Author) LinkedInURL() string {
	if a.LinkedInHandle == "" {
		return ""
	}
	return "https://linkedin.com/in/" + a.LinkedInHandle
}

// Page is one complete build: the view model, its skill buckets and build metadata.
type Page struct {
	BuildID         string           `json:"buildId"`
	BuiltAt         time.Time        `json:"builtAt"`
	Author          Author           `json:"author"`
	View            ViewModel        `json:"view"`
	SkillCategories []CategoryBucket `json:"skillCategories"`
}
