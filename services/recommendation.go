package services

import (
	"fmt"
	"sort"

	"github.com/rBrgv/KRF-sub000/models"
)

const (
	// DefaultMaxRecommendations bounds the list shown to the user.
	DefaultMaxRecommendations = 6
	// DefaultAttentionRatio marks a category as needing attention below this share of its max.
	DefaultAttentionRatio = 0.6

	categoryFallbackPriority = 50
	genericRecommendation    = "Book a free consultation with a KRF coach to turn these results into a personal training plan."
)

// Condition is a declarative predicate over scores and answers.
// Every clause that is set must hold; a condition with no clauses always holds.
type Condition struct {
	Category   models.Category `yaml:"category,omitempty"`    // Used with BelowRatio
	BelowRatio *float64        `yaml:"below_ratio,omitempty"` // Category value/max strictly below this
	MinOverall *float64        `yaml:"min_overall,omitempty"` // Overall score at or above this
	Question   string          `yaml:"question,omitempty"`    // Question whose answer is inspected
	AnyOf      []string        `yaml:"any_of,omitempty"`      // Choice answer is one of these
	Below      *float64        `yaml:"below,omitempty"`       // Scale/numeric answer strictly below
	Above      *float64        `yaml:"above,omitempty"`       // Scale/numeric answer strictly above
}

// Rule selects a recommendation text when its condition holds.
type Rule struct {
	ID       string          `yaml:"id"`
	Category models.Category `yaml:"category,omitempty"` // Category the advice targets, empty for general advice
	Priority int             `yaml:"priority"`
	Text     string          `yaml:"text"`
	When     Condition       `yaml:"when"`
}

// Matches evaluates the condition.
func (c Condition) Matches(scores models.Scores, answers models.Answers) bool {
	if c.BelowRatio != nil {
		cs, ok := scores.Category(c.Category)
		if !ok || cs.Ratio() >= *c.BelowRatio {
			return false
		}
	}
	if c.MinOverall != nil && !(scores.Overall >= *c.MinOverall) {
		return false
	}
	if c.Question == "" {
		return true
	}

	a, ok := answers[c.Question]
	if !ok || a.IsEmpty() {
		return false
	}
	if len(c.AnyOf) > 0 {
		v, isChoice := a.Choice()
		if !isChoice || !containsString(c.AnyOf, v) {
			return false
		}
	}
	if c.Below != nil || c.Above != nil {
		v, isNumber := answerNumber(a)
		if !isNumber {
			return false
		}
		if c.Below != nil && !(v < *c.Below) {
			return false
		}
		if c.Above != nil && !(v > *c.Above) {
			return false
		}
	}
	return true
}

func answerNumber(a models.Answer) (float64, bool) {
	if v, ok := a.Scale(); ok {
		return float64(v), true
	}
	return a.Numeric()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Recommender turns scores and answers into an ordered list of advice.
type Recommender interface {
	Recommend(scores models.Scores, answers models.Answers) []string
}

// RecommendationEngine evaluates a rule table. It holds no mutable state.
type RecommendationEngine struct {
	rules          []Rule
	limit          int
	attentionRatio float64
}

// NewRecommendationEngine creates an engine. Non-positive limit or ratio fall back to the defaults.
func NewRecommendationEngine(rules []Rule, limit int, attentionRatio float64) *RecommendationEngine {
	if limit <= 0 {
		limit = DefaultMaxRecommendations
	}
	if attentionRatio <= 0 {
		attentionRatio = DefaultAttentionRatio
	}
	return &RecommendationEngine{
		rules:          append([]Rule(nil), rules...),
		limit:          limit,
		attentionRatio: attentionRatio,
	}
}

type pick struct {
	text     string
	priority int
}

// Recommend returns at most the configured number of texts, highest priority first.
// Each category below the attention ratio is guaranteed one targeted text, even if that
// exceeds the limit. The result is never empty.
func (e *RecommendationEngine) Recommend(scores models.Scores, answers models.Answers) []string {
	fired := make([]int, 0, len(e.rules))
	for i, r := range e.rules {
		if r.When.Matches(scores, answers) {
			fired = append(fired, i)
		}
	}
	sort.SliceStable(fired, func(a, b int) bool {
		return e.rules[fired[a]].Priority > e.rules[fired[b]].Priority
	})

	chosen := make([]bool, len(fired))
	var picks []pick
	for _, cat := range models.Categories {
		cs, ok := scores.Category(cat)
		if !ok || cs.Ratio() >= e.attentionRatio {
			continue
		}
		targeted := false
		for pos, ri := range fired {
			if e.rules[ri].Category == cat {
				if !chosen[pos] {
					chosen[pos] = true
					picks = append(picks, pick{e.rules[ri].Text, e.rules[ri].Priority})
				}
				targeted = true
				break
			}
		}
		if !targeted {
			picks = append(picks, pick{
				text:     fmt.Sprintf("Your %s score needs attention. Ask your KRF coach for a focused plan in this area.", CategoryTitle(cat)),
				priority: categoryFallbackPriority,
			})
		}
	}

	for pos, ri := range fired {
		if len(picks) >= e.limit {
			break
		}
		if chosen[pos] {
			continue
		}
		chosen[pos] = true
		picks = append(picks, pick{e.rules[ri].Text, e.rules[ri].Priority})
	}

	sort.SliceStable(picks, func(a, b int) bool {
		return picks[a].priority > picks[b].priority
	})

	out := make([]string, 0, len(picks))
	seen := make(map[string]bool, len(picks))
	for _, p := range picks {
		if seen[p.text] {
			continue
		}
		seen[p.text] = true
		out = append(out, p.text)
	}
	if len(out) == 0 {
		out = append(out, genericRecommendation)
	}
	return out
}
