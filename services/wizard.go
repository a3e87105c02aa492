package services

import (
	"errors"
	"fmt"

	"github.com/rBrgv/KRF-sub000/models"
)

// RequiredFieldMessage is shown when a required question is left blank.
const RequiredFieldMessage = "This question is required."

// InvalidAnswerMessage is shown when an answer does not fit its question.
const InvalidAnswerMessage = "Please pick one of the listed options."

// ErrInvalidWizardState is returned when a client-supplied state cannot be navigated.
var ErrInvalidWizardState = errors.New("invalid wizard state")

// WizardEventType names a user action on the questionnaire.
type WizardEventType string

const (
	EventStart    WizardEventType = "start"
	EventAnswer   WizardEventType = "answer"
	EventNext     WizardEventType = "next"
	EventPrevious WizardEventType = "previous"
)

// WizardEvent is one user action, as received from the UI.
type WizardEvent struct {
	Type       WizardEventType `json:"type"`
	QuestionID string          `json:"question_id,omitempty"`
	Answer     models.Answer   `json:"answer"`
}

// WizardController navigates the catalog. Every transition is a pure function of
// its input state: the input is never modified and the output never shares its maps.
type WizardController struct {
	catalog *Catalog
}

// NewWizardController creates a controller over a catalog.
func NewWizardController(catalog *Catalog) *WizardController {
	return &WizardController{catalog: catalog}
}

// Start leaves the landing page: cursor at the first question, answers and errors cleared.
func (w *WizardController) Start() models.WizardState {
	s := models.NewWizardState()
	s.Phase = models.PhaseAssessment
	return s
}

// Answer upserts an answer and clears that question's error. It never moves the cursor.
// Unknown question ids and answers outside the assessment phase are ignored. An answer
// of the wrong kind, or a choice the question does not declare, leaves the stored
// answer unchanged and sets a field error instead.
func (w *WizardController) Answer(s models.WizardState, questionID string, a models.Answer) models.WizardState {
	out := s.Clone()
	if s.Phase != models.PhaseAssessment {
		return out
	}
	q, ok := w.catalog.Question(questionID)
	if !ok {
		return out
	}
	if !fits(q, a) {
		out.FieldErrors[questionID] = InvalidAnswerMessage
		return out
	}
	out.Answers[questionID] = a
	delete(out.FieldErrors, questionID)
	return out
}

// fits reports whether a can be stored for q. Blank answers of the right kind fit.
func fits(q models.Question, a models.Answer) bool {
	if !a.Matches(q.Type) {
		return false
	}
	if v, ok := a.Choice(); ok && !a.IsEmpty() {
		_, declared := q.Choice(v)
		return declared
	}
	return true
}

// answered reports whether q holds a usable, non-blank answer.
func answered(q models.Question, a models.Answer) bool {
	return !a.IsEmpty() && fits(q, a)
}

// Next validates only the question on screen. A blank required question, or an answer
// that does not fit the question, gets a field error and the cursor stays put; otherwise the cursor advances, crossing into the next
// section or, after the last question, into lead capture.
func (w *WizardController) Next(s models.WizardState) models.WizardState {
	out := s.Clone()
	if s.Phase != models.PhaseAssessment {
		return out
	}
	q, ok := w.catalog.at(s.SectionIndex, s.QuestionIndex)
	if !ok {
		return out
	}
	a := out.Answers[q.ID]
	switch {
	case !a.IsEmpty() && !fits(q, a):
		out.FieldErrors[q.ID] = InvalidAnswerMessage
		return out
	case q.Required && a.IsEmpty():
		out.FieldErrors[q.ID] = RequiredFieldMessage
		return out
	}

	switch {
	case s.QuestionIndex+1 < w.catalog.sectionLen(s.SectionIndex):
		out.QuestionIndex++
	case s.SectionIndex+1 < len(w.catalog.sections):
		out.SectionIndex++
		out.QuestionIndex = 0
	default:
		out.Phase = models.PhaseLeadCapture
	}
	return out
}

// Previous moves the cursor back one question, into the previous section's last
// question when needed. At the very first question it is a no-op.
func (w *WizardController) Previous(s models.WizardState) models.WizardState {
	out := s.Clone()
	if s.Phase != models.PhaseAssessment {
		return out
	}
	switch {
	case s.QuestionIndex > 0:
		out.QuestionIndex--
	case s.SectionIndex > 0:
		out.SectionIndex--
		out.QuestionIndex = w.catalog.sectionLen(out.SectionIndex) - 1
	}
	return out
}

// Progress is the share of required questions answered, in [0, 1].
// It is only defined during the assessment phase.
func (w *WizardController) Progress(s models.WizardState) (float64, bool) {
	if s.Phase != models.PhaseAssessment {
		return 0, false
	}
	total := w.catalog.TotalRequired()
	if total == 0 {
		return 1, true
	}
	done := 0
	for _, q := range w.catalog.ordered {
		if q.Required && answered(q, s.Answers[q.ID]) {
			done++
		}
	}
	return float64(done) / float64(total), true
}

// CurrentQuestion returns the question under the cursor during the assessment phase.
func (w *WizardController) CurrentQuestion(s models.WizardState) (models.Question, bool) {
	if s.Phase != models.PhaseAssessment {
		return models.Question{}, false
	}
	return w.catalog.at(s.SectionIndex, s.QuestionIndex)
}

// MissingAnswers returns a field error for every required question without a usable
// answer and for every answer that does not fit its question. A state whose answers
// were edited outside the wizard is caught here before it can be submitted.
func (w *WizardController) MissingAnswers(s models.WizardState) map[string]string {
	missing := map[string]string{}
	for _, q := range w.catalog.ordered {
		a := s.Answers[q.ID]
		switch {
		case !a.IsEmpty() && !fits(q, a):
			missing[q.ID] = InvalidAnswerMessage
		case q.Required && !answered(q, a):
			missing[q.ID] = RequiredFieldMessage
		}
	}
	return missing
}

// CompleteSubmission moves a lead-capture state to results after a successful submit.
func (w *WizardController) CompleteSubmission(s models.WizardState) models.WizardState {
	out := s.Clone()
	if s.Phase != models.PhaseLeadCapture {
		return out
	}
	out.Phase = models.PhaseResults
	out.FieldErrors = map[string]string{}
	return out
}

// RejectSubmission keeps the state in lead capture, answers intact, with the given errors.
// It is ignored outside lead capture.
func (w *WizardController) RejectSubmission(s models.WizardState, fieldErrors map[string]string) models.WizardState {
	out := s.Clone()
	if s.Phase != models.PhaseLeadCapture {
		return out
	}
	for field, msg := range fieldErrors {
		out.FieldErrors[field] = msg
	}
	return out
}

// Validate checks that a state received from outside can be navigated.
func (w *WizardController) Validate(s models.WizardState) error {
	switch s.Phase {
	case models.PhaseLanding, models.PhaseLeadCapture, models.PhaseResults:
		return nil
	case models.PhaseAssessment:
		if _, ok := w.catalog.at(s.SectionIndex, s.QuestionIndex); !ok {
			return fmt.Errorf("%w: cursor (%d, %d) is outside the questionnaire", ErrInvalidWizardState, s.SectionIndex, s.QuestionIndex)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown phase %q", ErrInvalidWizardState, s.Phase)
}

// Apply dispatches a UI event to its transition.
func (w *WizardController) Apply(s models.WizardState, ev WizardEvent) (models.WizardState, error) {
	if ev.Type == EventStart {
		return w.Start(), nil
	}
	if err := w.Validate(s); err != nil {
		return s, err
	}
	switch ev.Type {
	case EventAnswer:
		return w.Answer(s, ev.QuestionID, ev.Answer), nil
	case EventNext:
		return w.Next(s), nil
	case EventPrevious:
		return w.Previous(s), nil
	}
	return s, fmt.Errorf("%w: unknown event %q", ErrInvalidWizardState, ev.Type)
}
