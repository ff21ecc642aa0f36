package contentstore

import (
	"github.com/tidwall/gjson"

	"github.com/okian/folio/internal/domain/model"
)

// imageURL normalizes the shapes an image field arrives in: a projected URL
// string, or an unprojected {asset: {url}} object. Anything else is absent.
func imageURL(r gjson.Result) *string {
	switch {
	case r.Type == gjson.String:
		return model.StringPtr(r.String())
	case r.IsObject():
		if u := r.Get("asset.url"); u.Type == gjson.String {
			return model.StringPtr(u.String())
		}
		if u := r.Get("url"); u.Type == gjson.String {
			return model.StringPtr(u.String())
		}
	}
	return nil
}

func optString(r gjson.Result) *string {
	if r.Type != gjson.String {
		return nil
	}
	return model.StringPtr(r.String())
}

func skillRefs(r gjson.Result) []model.SkillRef {
	refs := []model.SkillRef{}
	if !r.IsArray() {
		return refs
	}
	for _, item := range r.Array() {
		label := item.Get("skill").String()
		if label == "" {
			continue
		}
		refs = append(refs, model.SkillRef{
			ID:      item.Get("_id").String(),
			Label:   label,
			LogoURL: imageURL(item.Get("skill_logo")),
		})
	}
	return refs
}

func decodeExperience(r gjson.Result) (model.ExperienceRecord, bool) {
	id := r.Get("_id").String()
	if id == "" {
		return model.ExperienceRecord{}, false
	}
	joined, _ := model.ParseDate(r.Get("joining_date").String())
	return model.ExperienceRecord{
		ID:                 id,
		CompanyName:        r.Get("company_name").String(),
		CompanyURL:         r.Get("company_url").String(),
		Role:               r.Get("my_role").String(),
		DescriptionBullets: model.SplitBullets(r.Get("company_description").String()),
		JoiningDate:        joined,
		IsCurrent:          r.Get("current_company").Bool(),
		ExitDate:           model.ParseDatePtr(r.Get("exit_date").String()),
		CompanyLogoURL:     imageURL(r.Get("company_logo")),
		SkillRefs:          skillRefs(r.Get("skills")),
	}, true
}

func decodeSkill(r gjson.Result) (model.SkillRecord, bool) {
	id := r.Get("_id").String()
	if id == "" {
		return model.SkillRecord{}, false
	}
	years := r.Get("experience").Float()
	if years < 0 {
		years = 0
	}
	return model.SkillRecord{
		ID:               id,
		SkillLabel:       r.Get("skill").String(),
		ProficiencyLevel: model.ParseProficiency(r.Get("level").String()),
		YearsExperience:  years,
		LogoURL:          imageURL(r.Get("skill_logo")),
	}, true
}

func decodeProject(r gjson.Result) (model.ProjectRecord, bool) {
	id := r.Get("_id").String()
	if id == "" {
		return model.ProjectRecord{}, false
	}

	categories := []model.ProjectCategory{}
	for _, v := range r.Get("categories").Array() {
		if c, ok := model.ParseProjectCategory(v.String()); ok {
			categories = append(categories, c)
		}
	}
	primary := model.ProjectOther
	if len(categories) > 0 {
		primary = categories[0]
	}

	return model.ProjectRecord{
		ID:          id,
		Name:        r.Get("project_name").String(),
		URL:         optString(r.Get("project_url")),
		Description: r.Get("project_description").String(),
		LogoURL:     imageURL(r.Get("project_logo")),
		Category:    primary,
		Categories:  categories,
		SkillRefs:   skillRefs(r.Get("skills")),
	}, true
}

func decodeAcademic(r gjson.Result) (model.AcademicRecord, bool) {
	id := r.Get("_id").String()
	if id == "" {
		return model.AcademicRecord{}, false
	}
	start, _ := model.ParseDate(r.Get("start").String())
	end, _ := model.ParseDate(r.Get("end").String())
	return model.AcademicRecord{
		ID:              id,
		InstitutionName: r.Get("name").String(),
		Qualification:   r.Get("qualification").String(),
		StartDate:       start,
		EndDate:         end,
		ImageURL:        imageURL(r.Get("image")),
	}, true
}
