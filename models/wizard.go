package models

// WizardPhase is the top-level step of the assessment flow. Phases only move forward.
type WizardPhase string

const (
	PhaseLanding     WizardPhase = "landing"
	PhaseAssessment  WizardPhase = "assessment"
	PhaseLeadCapture WizardPhase = "lead_capture"
	PhaseResults     WizardPhase = "results"
)

// WizardState is the in-progress questionnaire of a single user.
// It is treated as an immutable value: transitions return a new state.
type WizardState struct {
	Phase         WizardPhase       `json:"phase"`
	SectionIndex  int               `json:"section_index"`
	QuestionIndex int               `json:"question_index"`
	Answers       Answers           `json:"answers"`
	FieldErrors   map[string]string `json:"field_errors"`
}

// NewWizardState returns the landing state.
func NewWizardState() WizardState {
	return WizardState{
		Phase:       PhaseLanding,
		Answers:     Answers{},
		FieldErrors: map[string]string{},
	}
}

// Clone returns a deep copy so a transition never aliases the maps of its input.
func (s WizardState) Clone() WizardState {
	out := s
	out.Answers = s.Answers.Clone()
	out.FieldErrors = make(map[string]string, len(s.FieldErrors))
	for k, v := range s.FieldErrors {
		out.FieldErrors[k] = v
	}
	return out
}
