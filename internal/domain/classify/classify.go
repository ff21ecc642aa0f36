// Package classify buckets free-text skill labels into display categories.
//
// Classification is a single generic matcher over a declarative rule table:
// the label is lower-cased and the first rule with any substring match wins.
// Labels that match nothing fall back to the default category.
package classify

import (
	"strings"

	"github.com/okian/folio/internal/domain/model"
)

// Category is a display category name.
type Category string

// Rule maps a category to the substrings that select it.
type Rule struct {
	Category Category
	Patterns []string
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithRules replaces the rule table. Patterns are lower-cased; blank patterns
// and rules without a category are dropped. An empty table keeps the defaults.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		table := make([]Rule, 0, len(rules))
		for _, r := range rules {
			name := Category(strings.TrimSpace(string(r.Category)))
			if name == "" {
				continue
			}
			patterns := make([]string, 0, len(r.Patterns))
			for _, p := range r.Patterns {
				if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
					patterns = append(patterns, p)
				}
			}
			table = append(table, Rule{Category: name, Patterns: patterns})
		}
		if len(table) > 0 {
			c.rules = table
		}
	}
}

// WithDefault sets the category used when no rule matches.
func WithDefault(category Category) Option {
	return func(c *Classifier) {
		if category = Category(strings.TrimSpace(string(category))); category != "" {
			c.fallback = category
		}
	}
}

// Classifier is immutable after New and safe for concurrent use.
type Classifier struct {
	rules    []Rule
	fallback Category
}

// New creates a classifier with the default rule table and Frontend fallback.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		rules:    DefaultRules(),
		fallback: Frontend,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New()

// Classify classifies label with the default rule table.
func Classify(label string) Category {
	return defaultClassifier.Classify(label)
}

// Classify returns exactly one category for any input.
func (c *Classifier) Classify(label string) Category {
	if category, ok := match(strings.ToLower(label), c.rules); ok {
		return category
	}
	return c.fallback
}

func match(label string, rules []Rule) (Category, bool) {
	for _, r := range rules {
		for _, p := range r.Patterns {
			if strings.Contains(label, p) {
				return r.Category, true
			}
		}
	}
	return "", false
}

// Categories lists every category the classifier can return, in priority order.
// The fallback is appended when the table does not name it.
func (c *Classifier) Categories() []Category {
	out := make([]Category, 0, len(c.rules)+1)
	seen := make(map[Category]bool, len(c.rules)+1)
	for _, r := range c.rules {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	if !seen[c.fallback] {
		out = append(out, c.fallback)
	}
	return out
}

// Rules returns a copy of the active rule table.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Category: r.Category, Patterns: append([]string(nil), r.Patterns...)}
	}
	return out
}

// GroupByCategory partitions skills by category, keeping input order inside
// each group. Categories without members are absent from the map.
func (c *Classifier) GroupByCategory(skills []model.SkillRecord) map[Category][]model.SkillRecord {
	groups := make(map[Category][]model.SkillRecord)
	for _, s := range skills {
		category := c.Classify(s.SkillLabel)
		groups[category] = append(groups[category], s)
	}
	return groups
}

// Buckets is GroupByCategory laid out in category priority order.
func (c *Classifier) Buckets(skills []model.SkillRecord) []model.CategoryBucket {
	groups := c.GroupByCategory(skills)
	buckets := make([]model.CategoryBucket, 0, len(groups))
	for _, category := range c.Categories() {
		members, ok := groups[category]
		if !ok {
			continue
		}
		buckets = append(buckets, model.CategoryBucket{
			CategoryName: string(category),
			Members:      members,
		})
	}
	return buckets
}
