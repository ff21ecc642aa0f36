// Package model contains the portfolio domain records passed between layers.
//
// Records are built once per aggregation and never mutated afterwards.
// Optional fields are pointers so "absent" stays distinct from "empty".
package model

import "strings"

// RepositorySummary is a pinned repository as shown on the GitHub section.
type RepositorySummary struct {
	Name                 string  `json:"name"`
	Description          *string `json:"description"`
	URL                  string  `json:"url"`
	PrimaryLanguageName  *string `json:"primaryLanguageName"`
	PrimaryLanguageColor *string `json:"primaryLanguageColor"`
	StarCount            int     `json:"starCount"`
	ForkCount            int     `json:"forkCount"`
}

// SkillRef is a reference from an experience or project to a skill.
type SkillRef struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	LogoURL *string `json:"logoUrl"`
}

// ExperienceRecord is one employment entry.
// IsCurrent with a non-nil ExitDate is an authoring error that is passed through as is.
type ExperienceRecord struct {
	ID                 string     `json:"id"`
	CompanyName        string     `json:"companyName"`
	CompanyURL         string     `json:"companyUrl"`
	Role               string     `json:"role"`
	DescriptionBullets []string   `json:"descriptionBullets"`
	JoiningDate        Date       `json:"joiningDate"`
	IsCurrent          bool       `json:"isCurrent"`
	ExitDate           *Date      `json:"exitDate"`
	CompanyLogoURL     *string    `json:"companyLogoUrl"`
	SkillRefs          []SkillRef `json:"skillRefs"`
}

// SkillRecord is one skill with its self-assessed proficiency.
type SkillRecord struct {
	ID               string      `json:"id"`
	SkillLabel       string      `json:"skillLabel"`
	ProficiencyLevel Proficiency `json:"proficiencyLevel"`
	YearsExperience  float64     `json:"yearsExperience"`
	LogoURL          *string     `json:"logoUrl"`
}

// ProjectRecord is one showcased project.
type ProjectRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	URL         *string           `json:"url"`
	Description string            `json:"description"`
	LogoURL     *string           `json:"logoUrl"`
	Category    ProjectCategory   `json:"category"`
	Categories  []ProjectCategory `json:"categories"`
	SkillRefs   []SkillRef        `json:"skillRefs"`
}

// AcademicRecord is one education entry.
type AcademicRecord struct {
	ID              string  `json:"id"`
	InstitutionName string  `json:"institutionName"`
	Qualification   string  `json:"qualification"`
	StartDate       Date    `json:"startDate"`
	EndDate         Date    `json:"endDate"`
	ImageURL        *string `json:"imageUrl"`
}

// ProjectCategory is the fixed project taxonomy of the content store.
type ProjectCategory string

// Project categories.
const (
	ProjectFrontend    ProjectCategory = "frontend"
	ProjectBackend     ProjectCategory = "backend"
	ProjectFullStack   ProjectCategory = "fullstack"
	ProjectMobile      ProjectCategory = "mobile"
	ProjectDataScience ProjectCategory = "datascience"
	ProjectDevOps      ProjectCategory = "devops"
	ProjectOther       ProjectCategory = "other"
)

// ParseProjectCategory maps a stored value to a ProjectCategory.
func ParseProjectCategory(s string) (ProjectCategory, bool) {
	switch c := ProjectCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case ProjectFrontend, ProjectBackend, ProjectFullStack, ProjectMobile,
		ProjectDataScience, ProjectDevOps, ProjectOther:
		return c, true
	}
	return "", false
}

// SplitBullets turns a free-text description into bullet points.
// Points are separated by "-" and blank points are dropped.
func SplitBullets(description string) []string {
	parts := strings.Split(description, "-")
	bullets := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			bullets = append(bullets, p)
		}
	}
	return bullets
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
