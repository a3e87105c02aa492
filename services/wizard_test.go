package services

import (
	"testing"

	"github.com/rBrgv/KRF-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardController_Start(t *testing.T) {
	w := NewWizardController(defaultCatalog(t))

	s := w.Start()
	assert.Equal(t, models.PhaseAssessment, s.Phase)
	assert.Equal(t, 0, s.SectionIndex)
	assert.Equal(t, 0, s.QuestionIndex)
	assert.Empty(t, s.Answers)
	assert.Empty(t, s.FieldErrors)

	q, ok := w.CurrentQuestion(s)
	require.True(t, ok)
	assert.Equal(t, "activity_level", q.ID)
}

func TestWizardController_Next(t *testing.T) {
	c := defaultCatalog(t)
	w := NewWizardController(c)

	t.Run("Blank required question blocks and reports only itself", func(t *testing.T) {
		s := w.Answer(w.Start(), "activity_level", models.ChoiceAnswer("moderate"))
		s = w.Next(s)
		require.Equal(t, 1, s.QuestionIndex)

		blocked := w.Next(s)
		assert.Equal(t, models.PhaseAssessment, blocked.Phase)
		assert.Equal(t, 0, blocked.SectionIndex)
		assert.Equal(t, 1, blocked.QuestionIndex)
		assert.Equal(t, map[string]string{"strength_confidence": RequiredFieldMessage}, blocked.FieldErrors)
	})

	t.Run("Answering clears the error and lets the user advance", func(t *testing.T) {
		s := w.Answer(w.Start(), "activity_level", models.ChoiceAnswer("moderate"))
		s = w.Next(w.Next(s))
		require.Contains(t, s.FieldErrors, "strength_confidence")

		s = w.Answer(s, "strength_confidence", models.ScaleAnswer(3))
		assert.NotContains(t, s.FieldErrors, "strength_confidence")
		s = w.Next(s)
		assert.Equal(t, 2, s.QuestionIndex)
	})

	t.Run("Blank choice and blank numeric count as unanswered", func(t *testing.T) {
		s := w.Answer(w.Start(), "activity_level", models.ChoiceAnswer("  "))
		s = w.Next(s)
		assert.Equal(t, 0, s.QuestionIndex)
		assert.Contains(t, s.FieldErrors, "activity_level")
	})

	t.Run("Optional question can be skipped and crosses into the next section", func(t *testing.T) {
		s := w.Start()
		for _, id := range []string{"activity_level", "strength_confidence", "cardio_endurance"} {
			s = w.Next(w.Answer(s, id, bestAnswers(c)[id]))
		}
		require.Equal(t, 3, s.QuestionIndex)
		q, _ := w.CurrentQuestion(s)
		require.Equal(t, "resting_heart_rate", q.ID)
		require.False(t, q.Required)

		s = w.Next(s)
		assert.Empty(t, s.FieldErrors)
		assert.Equal(t, 1, s.SectionIndex)
		assert.Equal(t, 0, s.QuestionIndex)
	})

	t.Run("Next from the last question enters lead capture", func(t *testing.T) {
		s := walkToLeadCapture(t, w, bestAnswers(c))
		assert.Len(t, s.Answers, len(c.Questions()))

		again := w.Next(s)
		assert.Equal(t, s, again)
	})
}

func TestWizardController_Previous(t *testing.T) {
	c := defaultCatalog(t)
	w := NewWizardController(c)

	t.Run("No-op at the first question", func(t *testing.T) {
		s := w.Start()
		assert.Equal(t, s, w.Previous(s))
	})

	t.Run("Steps back into the previous section's last question", func(t *testing.T) {
		s := models.WizardState{Phase: models.PhaseAssessment, SectionIndex: 1, QuestionIndex: 0}
		s = w.Previous(s)
		assert.Equal(t, 0, s.SectionIndex)
		assert.Equal(t, 3, s.QuestionIndex)
	})

	t.Run("Keeps answers", func(t *testing.T) {
		s := w.Next(w.Answer(w.Start(), "activity_level", models.ChoiceAnswer("active")))
		s = w.Previous(s)
		assert.Equal(t, 0, s.QuestionIndex)
		v, ok := s.Answers["activity_level"].Choice()
		assert.True(t, ok)
		assert.Equal(t, "active", v)
	})
}

func TestWizardController_Answer(t *testing.T) {
	w := NewWizardController(defaultCatalog(t))

	t.Run("Does not modify the input state", func(t *testing.T) {
		s := w.Start()
		out := w.Answer(s, "mood", models.ScaleAnswer(4))
		assert.Empty(t, s.Answers)
		assert.Len(t, out.Answers, 1)
	})

	t.Run("Re-answering overwrites", func(t *testing.T) {
		s := w.Answer(w.Start(), "mood", models.ScaleAnswer(4))
		s = w.Answer(s, "mood", models.ScaleAnswer(2))
		v, _ := s.Answers["mood"].Scale()
		assert.Equal(t, 2, v)
	})

	t.Run("Unknown question ignored", func(t *testing.T) {
		s := w.Answer(w.Start(), "favourite_colour", models.ChoiceAnswer("blue"))
		assert.Empty(t, s.Answers)
	})

	t.Run("Ignored outside the assessment phase", func(t *testing.T) {
		s := w.Answer(models.NewWizardState(), "mood", models.ScaleAnswer(4))
		assert.Empty(t, s.Answers)
	})

	tests := []struct {
		name   string
		answer models.Answer
	}{
		{"Wrong kind", models.ScaleAnswer(5)},
		{"Undeclared choice", models.ChoiceAnswer("bogus")},
		{"Missing kind", models.Answer{}},
	}
	for _, tt := range tests {
		t.Run(tt.name+" is refused and does not advance", func(t *testing.T) {
			s := w.Answer(w.Start(), "activity_level", tt.answer)
			assert.NotContains(t, s.Answers, "activity_level")
			assert.Equal(t, InvalidAnswerMessage, s.FieldErrors["activity_level"])

			p, _ := w.Progress(s)
			assert.Equal(t, 0.0, p)

			s = w.Next(s)
			assert.Equal(t, 0, s.QuestionIndex)
			assert.Equal(t, RequiredFieldMessage, s.FieldErrors["activity_level"])
		})
	}

	t.Run("Refused answer keeps the previous one", func(t *testing.T) {
		s := w.Answer(w.Start(), "activity_level", models.ChoiceAnswer("light"))
		s = w.Answer(s, "activity_level", models.ChoiceAnswer("marathon"))
		v, _ := s.Answers["activity_level"].Choice()
		assert.Equal(t, "light", v)
		assert.Contains(t, s.FieldErrors, "activity_level")
	})

	t.Run("Answer edited into the state is caught by Next and Progress", func(t *testing.T) {
		s := w.Start()
		s.Answers["activity_level"] = models.ScaleAnswer(5)

		p, _ := w.Progress(s)
		assert.Equal(t, 0.0, p)

		s = w.Next(s)
		assert.Equal(t, 0, s.QuestionIndex)
		assert.Equal(t, InvalidAnswerMessage, s.FieldErrors["activity_level"])
	})
}

func TestWizardController_MissingAnswers(t *testing.T) {
	c := defaultCatalog(t)
	w := NewWizardController(c)

	t.Run("Complete walk has nothing missing", func(t *testing.T) {
		assert.Empty(t, w.MissingAnswers(walkToLeadCapture(t, w, bestAnswers(c))))
	})

	t.Run("Empty answers report every required question", func(t *testing.T) {
		missing := w.MissingAnswers(models.WizardState{Phase: models.PhaseLeadCapture})
		assert.Len(t, missing, c.TotalRequired())
		assert.NotContains(t, missing, "resting_heart_rate")
		for _, msg := range missing {
			assert.Equal(t, RequiredFieldMessage, msg)
		}
	})

	t.Run("Unfit answers are reported even on optional questions", func(t *testing.T) {
		answers := bestAnswers(c)
		answers["mood"] = models.ChoiceAnswer("great")
		answers["resting_heart_rate"] = models.ChoiceAnswer("low")
		answers["smoking"] = models.ChoiceAnswer("sometimes")

		missing := w.MissingAnswers(models.WizardState{Phase: models.PhaseLeadCapture, Answers: answers})
		assert.Equal(t, map[string]string{
			"mood":               InvalidAnswerMessage,
			"resting_heart_rate": InvalidAnswerMessage,
			"smoking":            InvalidAnswerMessage,
		}, missing)
	})
}

func TestWizardController_Progress(t *testing.T) {
	c := defaultCatalog(t)
	w := NewWizardController(c)

	s := w.Start()
	p, ok := w.Progress(s)
	require.True(t, ok)
	assert.Equal(t, 0.0, p)

	s = w.Answer(s, "resting_heart_rate", models.NumericAnswer(70))
	p, _ = w.Progress(s)
	assert.Equal(t, 0.0, p, "optional answers do not count")

	s = w.Answer(s, "activity_level", models.ChoiceAnswer("light"))
	s = w.Answer(s, "mood", models.ScaleAnswer(3))
	s = w.Answer(s, "sleep_hours", models.EmptyNumericAnswer())
	p, _ = w.Progress(s)
	assert.InDelta(t, 2.0/16.0, p, 1e-9)

	for id, a := range bestAnswers(c) {
		s = w.Answer(s, id, a)
	}
	p, _ = w.Progress(s)
	assert.Equal(t, 1.0, p)

	_, ok = w.Progress(models.NewWizardState())
	assert.False(t, ok)
}

func TestWizardController_Submission(t *testing.T) {
	c := defaultCatalog(t)
	w := NewWizardController(c)
	lead := walkToLeadCapture(t, w, bestAnswers(c))

	t.Run("Reject keeps lead capture and answers", func(t *testing.T) {
		s := w.RejectSubmission(lead, map[string]string{"phone": "Please enter your phone number."})
		assert.Equal(t, models.PhaseLeadCapture, s.Phase)
		assert.Equal(t, lead.Answers, s.Answers)
		assert.Equal(t, "Please enter your phone number.", s.FieldErrors["phone"])
		assert.Empty(t, lead.FieldErrors)
	})

	t.Run("Complete moves to results", func(t *testing.T) {
		s := w.CompleteSubmission(w.RejectSubmission(lead, map[string]string{"submit": SubmitFailedMessage}))
		assert.Equal(t, models.PhaseResults, s.Phase)
		assert.Empty(t, s.FieldErrors)
	})

	t.Run("Complete is ignored outside lead capture", func(t *testing.T) {
		s := w.CompleteSubmission(w.Start())
		assert.Equal(t, models.PhaseAssessment, s.Phase)
	})

	t.Run("Reject is ignored outside lead capture", func(t *testing.T) {
		start := w.Start()
		s := w.RejectSubmission(start, map[string]string{"submit": SubmitFailedMessage})
		assert.Equal(t, start, s)
	})
}

func TestWizardController_Apply(t *testing.T) {
	c := defaultCatalog(t)
	w := NewWizardController(c)

	t.Run("Start ignores the incoming state", func(t *testing.T) {
		s, err := w.Apply(models.WizardState{Phase: "bogus"}, WizardEvent{Type: EventStart})
		require.NoError(t, err)
		assert.Equal(t, models.PhaseAssessment, s.Phase)
	})

	t.Run("Answer then next", func(t *testing.T) {
		s, err := w.Apply(w.Start(), WizardEvent{Type: EventAnswer, QuestionID: "activity_level", Answer: models.ChoiceAnswer("active")})
		require.NoError(t, err)
		s, err = w.Apply(s, WizardEvent{Type: EventNext})
		require.NoError(t, err)
		assert.Equal(t, 1, s.QuestionIndex)
		s, err = w.Apply(s, WizardEvent{Type: EventPrevious})
		require.NoError(t, err)
		assert.Equal(t, 0, s.QuestionIndex)
	})

	t.Run("Invalid states are rejected", func(t *testing.T) {
		_, err := w.Apply(models.WizardState{Phase: "bogus"}, WizardEvent{Type: EventNext})
		assert.ErrorIs(t, err, ErrInvalidWizardState)

		_, err = w.Apply(models.WizardState{Phase: models.PhaseAssessment, SectionIndex: 9}, WizardEvent{Type: EventNext})
		assert.ErrorIs(t, err, ErrInvalidWizardState)

		_, err = w.Apply(w.Start(), WizardEvent{Type: "jump"})
		assert.ErrorIs(t, err, ErrInvalidWizardState)
	})
}
