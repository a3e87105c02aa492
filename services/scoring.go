package services

import (
	"math"

	"github.com/rBrgv/KRF-sub000/models"
)

// Scorer maps a set of answers to per-category scores.
type Scorer interface {
	Score(answers models.Answers) []models.CategoryScore
}

// ScoringEngine scores answers against the catalog's weights and points tables.
// It is pure: the same answers always produce the same scores.
//
// Unanswered questions, including optional numeric ones, contribute zero. The
// category max is never renormalised over the answered questions.
type ScoringEngine struct {
	catalog *Catalog
}

// NewScoringEngine creates a scoring engine over a catalog.
func NewScoringEngine(catalog *Catalog) *ScoringEngine {
	return &ScoringEngine{catalog: catalog}
}

// Score returns one CategoryScore per category, in models.Categories order.
func (e *ScoringEngine) Score(answers models.Answers) []models.CategoryScore {
	totals := make(map[models.Category]float64, len(models.Categories))
	for _, q := range e.catalog.ordered {
		totals[q.Category] += contribution(q, answers[q.ID])
	}

	out := make([]models.CategoryScore, 0, len(models.Categories))
	for _, cat := range models.Categories {
		catMax := models.CategoryMax[cat]
		out = append(out, models.CategoryScore{
			Category: cat,
			Value:    clamp(totals[cat], 0, catMax),
			Max:      catMax,
		})
	}
	return out
}

// Floor is the overall score of a fully answered questionnaire where every answer is
// the worst possible one: scale 1, lowest-point choice, numeric at or past its zero point.
func (e *ScoringEngine) Floor() float64 {
	totals := make(map[models.Category]float64, len(models.Categories))
	for _, q := range e.catalog.ordered {
		totals[q.Category] += worstContribution(q)
	}
	var scores []models.CategoryScore
	for _, cat := range models.Categories {
		scores = append(scores, models.CategoryScore{Category: cat, Value: clamp(totals[cat], 0, models.CategoryMax[cat])})
	}
	return Overall(scores)
}

// Overall sums category values in order.
func Overall(scores []models.CategoryScore) float64 {
	var sum float64
	for _, s := range scores {
		sum += s.Value
	}
	return sum
}

func contribution(q models.Question, a models.Answer) float64 {
	if a.IsEmpty() || !a.Matches(q.Type) {
		return 0
	}
	switch q.Type {
	case models.QuestionTypeScale:
		v, _ := a.Scale()
		return scaleContribution(v, q.Weight)
	case models.QuestionTypeChoice:
		v, _ := a.Choice()
		ch, ok := q.Choice(v)
		if !ok {
			return 0
		}
		return clamp(ch.Points, 0, q.Weight)
	case models.QuestionTypeNumeric:
		v, _ := a.Numeric()
		return numericContribution(q, v)
	}
	return 0
}

func scaleContribution(v int, weight float64) float64 {
	if v < 1 {
		v = 1
	}
	if v > 5 {
		v = 5
	}
	return float64(v) / 5 * weight
}

func numericContribution(q models.Question, v float64) float64 {
	if q.Numeric == nil || math.IsNaN(v) {
		return 0
	}
	if q.Min != nil && v < *q.Min {
		v = *q.Min
	}
	if q.Max != nil && v > *q.Max {
		v = *q.Max
	}
	// Ideal-Zero carries the direction: the fraction is 1 at Ideal and 0 at Zero either way.
	frac := (v - q.Numeric.Zero) / (q.Numeric.Ideal - q.Numeric.Zero)
	return clamp(clamp(frac, 0, 1)*q.Weight, 0, q.Weight)
}

func worstContribution(q models.Question) float64 {
	switch q.Type {
	case models.QuestionTypeScale:
		return scaleContribution(1, q.Weight)
	case models.QuestionTypeChoice:
		worst := q.Weight
		for _, ch := range q.Choices {
			worst = math.Min(worst, clamp(ch.Points, 0, q.Weight))
		}
		return worst
	case models.QuestionTypeNumeric:
		worst := 0.0
		switch {
		case q.Min != nil && q.Max != nil:
			worst = math.Min(numericContribution(q, *q.Min), numericContribution(q, *q.Max))
		case q.Numeric != nil && q.Numeric.Direction == models.HigherIsBetter && q.Min != nil:
			worst = numericContribution(q, *q.Min)
		case q.Numeric != nil && q.Numeric.Direction == models.LowerIsBetter && q.Max != nil:
			worst = numericContribution(q, *q.Max)
		}
		return worst
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
