package services

import (
	"testing"

	"github.com/rBrgv/KRF-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondition_Matches(t *testing.T) {
	c := defaultCatalog(t)
	answers := bestAnswers(c)
	answers["water_intake"] = models.NumericAnswer(1.5)
	answers["smoking"] = models.ChoiceAnswer("daily")
	scores := scoresFor(c, answers)

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"Empty condition always holds", Condition{}, true},
		{"Choice in set", Condition{Question: "smoking", AnyOf: []string{"daily", "occasionally"}}, true},
		{"Choice not in set", Condition{Question: "alcohol", AnyOf: []string{"daily"}}, false},
		{"Numeric below", Condition{Question: "water_intake", Below: ptr(2)}, true},
		{"Numeric not above", Condition{Question: "water_intake", Above: ptr(2)}, false},
		{"Scale below", Condition{Question: "mood", Below: ptr(3)}, false},
		{"AnyOf on a scale answer", Condition{Question: "mood", AnyOf: []string{"5"}}, false},
		{"Numeric above", Condition{Question: "resting_heart_rate", Above: ptr(50)}, true},
		{"Category below ratio", Condition{Category: models.CategoryLifestyle, BelowRatio: ptr(0.8)}, true},
		{"Category at ratio", Condition{Category: models.CategoryPhysical, BelowRatio: ptr(1)}, false},
		{"Minimum overall", Condition{MinOverall: ptr(50)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Matches(scores, answers))
		})
	}

	t.Run("Absent and blank answers never match a question clause", func(t *testing.T) {
		cond := Condition{Question: "resting_heart_rate", Above: ptr(0)}
		assert.False(t, cond.Matches(scores, models.Answers{}))
		assert.False(t, cond.Matches(scores, models.Answers{"resting_heart_rate": models.EmptyNumericAnswer()}))
	})
}

func TestRecommendationEngine_Recommend(t *testing.T) {
	c := defaultCatalog(t)
	engine := NewRecommendationEngine(c.Rules(), 0, 0)

	t.Run("Healthy profile gets maintenance advice", func(t *testing.T) {
		answers := bestAnswers(c)
		recs := engine.Recommend(scoresFor(c, answers), answers)
		assert.Equal(t, []string{ruleText(t, "maintain")}, recs)
	})

	t.Run("Worst profile gets one targeted text per category", func(t *testing.T) {
		answers := worstAnswers(c)
		recs := engine.Recommend(scoresFor(c, answers), answers)
		assert.Equal(t, []string{
			ruleText(t, "high_resting_hr"),
			ruleText(t, "frequent_pain"),
			ruleText(t, "smoker"),
			ruleText(t, "high_stress"),
			ruleText(t, "low_nutrition"),
			ruleText(t, "low_commitment"),
		}, recs)
	})

	t.Run("No answers falls back to category ratio rules", func(t *testing.T) {
		recs := engine.Recommend(scoresFor(c, models.Answers{}), models.Answers{})
		assert.Equal(t, []string{
			ruleText(t, "low_nutrition"),
			ruleText(t, "low_physical"),
			ruleText(t, "low_mobility"),
			ruleText(t, "low_lifestyle"),
			ruleText(t, "low_mental"),
			ruleText(t, "low_goal_readiness"),
		}, recs)
	})

	t.Run("Limit bounds optional advice", func(t *testing.T) {
		answers := bestAnswers(c)
		answers["smoking"] = models.ChoiceAnswer("occasionally")
		answers["alcohol"] = models.ChoiceAnswer("daily")
		answers["water_intake"] = models.NumericAnswer(1)
		answers["mood"] = models.ScaleAnswer(2)

		limited := NewRecommendationEngine(c.Rules(), 2, 0)
		recs := limited.Recommend(scoresFor(c, answers), answers)
		assert.Equal(t, []string{ruleText(t, "smoker"), ruleText(t, "daily_alcohol")}, recs)
	})

	t.Run("Categories needing attention are kept past the limit", func(t *testing.T) {
		answers := worstAnswers(c)
		limited := NewRecommendationEngine(c.Rules(), 2, 0)
		recs := limited.Recommend(scoresFor(c, answers), answers)
		assert.Len(t, recs, len(models.Categories))
	})

	t.Run("Category without a rule gets a generated text", func(t *testing.T) {
		bare := NewRecommendationEngine(nil, 6, 0.6)
		answers := bestAnswers(c)
		answers["pain_frequency"] = models.ChoiceAnswer("daily")
		answers["mobility_comfort"] = models.ScaleAnswer(2)

		recs := bare.Recommend(scoresFor(c, answers), answers)
		require.Len(t, recs, 1)
		assert.Contains(t, recs[0], "Pain & Mobility")
	})

	t.Run("Never empty", func(t *testing.T) {
		bare := NewRecommendationEngine(nil, 3, 0.6)
		answers := bestAnswers(c)
		recs := bare.Recommend(scoresFor(c, answers), answers)
		assert.Equal(t, []string{genericRecommendation}, recs)

		for _, answers := range []models.Answers{{}, bestAnswers(c), worstAnswers(c)} {
			assert.NotEmpty(t, engine.Recommend(scoresFor(c, answers), answers))
			assert.NotEmpty(t, bare.Recommend(scoresFor(c, answers), answers))
		}
	})

	t.Run("Duplicate texts are collapsed and ties keep declaration order", func(t *testing.T) {
		rules := []Rule{
			{ID: "a", Priority: 5, Text: "Drink water."},
			{ID: "b", Priority: 5, Text: "Walk daily."},
			{ID: "c", Priority: 9, Text: "Drink water."},
		}
		answers := bestAnswers(c)
		recs := NewRecommendationEngine(rules, 6, 0.6).Recommend(scoresFor(c, answers), answers)
		assert.Equal(t, []string{"Drink water.", "Walk daily."}, recs)
	})

	t.Run("Deterministic", func(t *testing.T) {
		answers := worstAnswers(c)
		scores := scoresFor(c, answers)
		assert.Equal(t, engine.Recommend(scores, answers), engine.Recommend(scores, answers))
	})
}
