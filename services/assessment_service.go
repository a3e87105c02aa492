package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/rBrgv/KRF-sub000/models"
	"github.com/rBrgv/KRF-sub000/repository"
)

// SubmitFailedMessage is shown to the user when the assessment could not be stored.
const SubmitFailedMessage = "Submission failed, please retry."

// ErrSubmissionFailed wraps persistence failures. The caller decides whether to retry.
var ErrSubmissionFailed = errors.New("assessment submission failed")

// ErrNotReadyToSubmit is returned when a wizard state is not in lead capture or
// its answers leave a required question unanswered.
var ErrNotReadyToSubmit = errors.New("assessment is not ready to submit")

// ValidationError is a recoverable, field-scoped input problem.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for _, k := range []string{"name", "phone"} {
		if _, ok := e.Fields[k]; ok {
			keys = append(keys, k)
		}
	}
	return fmt.Sprintf("invalid lead info: %s required", strings.Join(keys, ", "))
}

// Submission is the outcome of a stored assessment.
type Submission struct {
	AssessmentID string                  `json:"assessmentId"`
	Result       models.AssessmentResult `json:"data"`
}

// AssessmentService defines the interface for assessment-related operations.
type AssessmentService interface {
	Questionnaire() *Catalog
	Wizard() *WizardController
	Submit(ctx context.Context, answers models.Answers, lead models.LeadInfo) (*Submission, error)
	SubmitWizard(ctx context.Context, state models.WizardState, lead models.LeadInfo) (models.WizardState, *Submission, error)
	GetAssessment(ctx context.Context, id string) (*models.Assessment, error)
	ListAssessments(ctx context.Context, limit int) ([]models.Assessment, error)
}

// assessmentService implements the AssessmentService interface.
type assessmentService struct {
	repo        repository.AssessmentRepository
	catalog     *Catalog
	wizard      *WizardController
	scorer      Scorer
	recommender Recommender
}

// NewAssessmentService creates a new instance of AssessmentService.
func NewAssessmentService(repo repository.AssessmentRepository, catalog *Catalog, scorer Scorer, recommender Recommender) AssessmentService {
	return &assessmentService{
		repo:        repo,
		catalog:     catalog,
		wizard:      NewWizardController(catalog),
		scorer:      scorer,
		recommender: recommender,
	}
}

func (s *assessmentService) Questionnaire() *Catalog {
	return s.catalog
}

func (s *assessmentService) Wizard() *WizardController {
	return s.wizard
}

// ValidateLead trims the lead and checks that name and phone are present.
func ValidateLead(lead models.LeadInfo) (models.LeadInfo, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.Email = strings.TrimSpace(lead.Email)

	fields := map[string]string{}
	if lead.Name == "" {
		fields["name"] = "Please enter your name."
	}
	if lead.Phone == "" {
		fields["phone"] = "Please enter your phone number."
	}
	if len(fields) > 0 {
		return lead, &ValidationError{Fields: fields}
	}
	return lead, nil
}

// Evaluate runs the scoring, classification and recommendation pipeline.
func (s *assessmentService) Evaluate(answers models.Answers) models.AssessmentResult {
	categories := s.scorer.Score(answers)
	overall := Overall(categories)
	scores := models.Scores{Overall: overall, Categories: categories}
	return models.AssessmentResult{
		Scores:          scores,
		Category:        Classify(overall),
		Recommendations: s.recommender.Recommend(scores, answers),
	}
}

// Submit validates the lead before any scoring, evaluates the answers and stores the result.
func (s *assessmentService) Submit(ctx context.Context, answers models.Answers, lead models.LeadInfo) (*Submission, error) {
	lead, err := ValidateLead(lead)
	if err != nil {
		log.Printf("INFO: [AssessmentService] Submission rejected: %v", err)
		return nil, err
	}

	result := s.Evaluate(answers)

	id, err := s.repo.CreateAssessment(ctx, lead, answers.Clone(), result)
	if err != nil {
		log.Printf("ERROR: [AssessmentService] Failed to persist assessment: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	log.Printf("INFO: [AssessmentService] Stored assessment %s: overall %.1f (%s), %d recommendations.", id, result.Scores.Overall, result.Category, len(result.Recommendations))
	return &Submission{AssessmentID: id, Result: result}, nil
}

// SubmitWizard submits from the lead-capture step. Validation problems come back as
// field errors; a storage failure keeps the state in lead capture with every answer
// intact so the user can retry; success moves the state to results.
func (s *assessmentService) SubmitWizard(ctx context.Context, state models.WizardState, lead models.LeadInfo) (models.WizardState, *Submission, error) {
	if state.Phase != models.PhaseLeadCapture {
		return state.Clone(), nil, fmt.Errorf("%w: phase is %q", ErrNotReadyToSubmit, state.Phase)
	}

	cleared := state.Clone()
	delete(cleared.FieldErrors, "name")
	delete(cleared.FieldErrors, "phone")
	delete(cleared.FieldErrors, "submit")

	if missing := s.wizard.MissingAnswers(state); len(missing) > 0 {
		log.Printf("WARN: [AssessmentService] Wizard submission with %d unusable answers rejected.", len(missing))
		return s.wizard.RejectSubmission(cleared, missing), nil, fmt.Errorf("%w: %d questions need an answer", ErrNotReadyToSubmit, len(missing))
	}

	sub, err := s.Submit(ctx, state.Answers, lead)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return s.wizard.RejectSubmission(cleared, verr.Fields), nil, err
		}
		return s.wizard.RejectSubmission(cleared, map[string]string{"submit": SubmitFailedMessage}), nil, err
	}
	return s.wizard.CompleteSubmission(cleared), sub, nil
}

// GetAssessment retrieves a stored assessment for the dashboard.
func (s *assessmentService) GetAssessment(ctx context.Context, id string) (*models.Assessment, error) {
	a, err := s.repo.GetAssessment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment %s: %w", id, err)
	}
	return a, nil
}

// ListAssessments lists the most recent stored assessments.
func (s *assessmentService) ListAssessments(ctx context.Context, limit int) ([]models.Assessment, error) {
	list, err := s.repo.ListAssessments(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return list, nil
}
