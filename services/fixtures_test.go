package services

import (
	"testing"

	"github.com/rBrgv/KRF-sub000/models"

	"github.com/stretchr/testify/require"
)

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(DefaultDefinition())
	require.NoError(t, err)
	return c
}

// bestAnswers answers every question with its healthiest value.
func bestAnswers(c *Catalog) models.Answers {
	out := models.Answers{}
	for _, q := range c.Questions() {
		switch q.Type {
		case models.QuestionTypeScale:
			out[q.ID] = models.ScaleAnswer(5)
		case models.QuestionTypeChoice:
			best := q.Choices[0]
			for _, ch := range q.Choices {
				if ch.Points > best.Points {
					best = ch
				}
			}
			out[q.ID] = models.ChoiceAnswer(best.Value)
		case models.QuestionTypeNumeric:
			out[q.ID] = models.NumericAnswer(q.Numeric.Ideal)
		}
	}
	return out
}

// worstAnswers answers every question with its least healthy value.
func worstAnswers(c *Catalog) models.Answers {
	out := models.Answers{}
	for _, q := range c.Questions() {
		switch q.Type {
		case models.QuestionTypeScale:
			out[q.ID] = models.ScaleAnswer(1)
		case models.QuestionTypeChoice:
			worst := q.Choices[0]
			for _, ch := range q.Choices {
				if ch.Points < worst.Points {
					worst = ch
				}
			}
			out[q.ID] = models.ChoiceAnswer(worst.Value)
		case models.QuestionTypeNumeric:
			if q.Numeric.Direction == models.HigherIsBetter {
				out[q.ID] = models.NumericAnswer(*q.Min)
			} else {
				out[q.ID] = models.NumericAnswer(*q.Max)
			}
		}
	}
	return out
}

func scoresFor(c *Catalog, answers models.Answers) models.Scores {
	cats := NewScoringEngine(c).Score(answers)
	return models.Scores{Overall: Overall(cats), Categories: cats}
}

func ruleText(t *testing.T, id string) string {
	t.Helper()
	for _, r := range DefaultDefinition().Rules {
		if r.ID == id {
			return r.Text
		}
	}
	t.Fatalf("no rule %q", id)
	return ""
}

// walkToLeadCapture answers each question from answers and presses next until lead capture.
func walkToLeadCapture(t *testing.T, w *WizardController, answers models.Answers) models.WizardState {
	t.Helper()
	s := w.Start()
	for i := 0; i < 100 && s.Phase == models.PhaseAssessment; i++ {
		q, ok := w.CurrentQuestion(s)
		require.True(t, ok)
		if a, ok := answers[q.ID]; ok {
			s = w.Answer(s, q.ID, a)
		}
		s = w.Next(s)
		require.Empty(t, s.FieldErrors, "unexpected field error on %s", q.ID)
	}
	require.Equal(t, models.PhaseLeadCapture, s.Phase)
	return s
}
