package contentstore

// Fixed queries, one per record kind. Image fields are projected to their
// asset URL; skill references are dereferenced in place.
const (
	experienceQuery = `*[_type == "experience"] | order(joining_date desc) {
  _id,
  company_name,
  company_url,
  my_role,
  company_description,
  joining_date,
  current_company,
  exit_date,
  "company_logo": company_logo.asset->url,
  "skills": skills[]->{ _id, skill, "skill_logo": skill_logo.asset->url }
}`

	skillsQuery = `*[_type == "skills"] {
  _id,
  skill,
  level,
  experience,
  "skill_logo": skill_logo.asset->url
}`

	projectsQuery = `*[_type == "projects"] {
  _id,
  project_name,
  project_url,
  project_description,
  "project_logo": project_logo.asset->url,
  categories,
  "skills": skills[]->{ _id, skill, "skill_logo": skill_logo.asset->url }
}`

	academicsQuery = `*[_type == "academics"] | order(end desc) {
  _id,
  name,
  qualification,
  start,
  end,
  "image": image.asset->url
}`
)
