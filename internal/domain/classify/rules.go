package classify

// Display categories, in default priority order.
const (
	Frontend     Category = "Frontend"
	Backend      Category = "Backend"
	Database     Category = "Database"
	CloudDevOps  Category = "Cloud & DevOps"
	Integration  Category = "Integration"
	DataAnalysis Category = "Data Analysis"
)

// DefaultRules returns a fresh copy of the built-in rule table.
// Order matters: the first rule with a matching pattern wins.
func DefaultRules() []Rule {
	return []Rule{
		{Category: Frontend, Patterns: []string{
			"react", "next", "javascript", "typescript", "electron js", "html", "css",
			"tailwind", "mui", "material", "redux", "bootstrap", "sass", "google map", "sanity",
		}},
		{Category: Backend, Patterns: []string{
			"node", "express", "django", "python", "git", "github", "socket", "redis",
			"rabbitmq", "mongoose", "prisma", "nest", "bun", "hono", "graphql",
		}},
		{Category: Database, Patterns: []string{
			"sql", "postgres", "mysql", "mongo", "firebase", "sanity", "neon",
		}},
		{Category: CloudDevOps, Patterns: []string{
			"aws", "gcp", "cloud", "docker", "vercel", "ci/cd", "linux", "prometheus",
			"grafana", "git", "app store", "play store",
		}},
		{Category: Integration, Patterns: []string{
			"stripe", "paypal", "firebase", "auth", "google", "zoom sdk", "map",
		}},
		{Category: DataAnalysis, Patterns: []string{
			"pandas", "seaborn", "matplotlib", "numpy", "scipy", "data analytics", "data analysis",
		}},
	}
}
