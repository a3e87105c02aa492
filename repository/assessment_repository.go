package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rBrgv/KRF-sub000/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// AssessmentRepository defines the persistence boundary for assessment submissions.
type AssessmentRepository interface {
	// CreateAssessment stores the lead and the assessment atomically and returns the assessment id.
	CreateAssessment(ctx context.Context, lead models.LeadInfo, answers models.Answers, result models.AssessmentResult) (string, error)
	GetAssessment(ctx context.Context, id string) (*models.Assessment, error)
	ListAssessments(ctx context.Context, limit int) ([]models.Assessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a new instance of AssessmentRepository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// CreateAssessment upserts the lead by phone and inserts the assessment in one
// transaction. Nothing is stored if either write fails.
func (r *assessmentRepository) CreateAssessment(ctx context.Context, lead models.LeadInfo, answers models.Answers, result models.AssessmentResult) (string, error) {
	assessment := models.Assessment{
		ID:              uuid.NewString(),
		Answers:         answers,
		Scores:          result.Scores,
		OverallScore:    result.Scores.Overall,
		Category:        result.Category,
		Recommendations: result.Recommendations,
		CreatedAt:       time.Now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := upsertLead(tx, lead, LeadSourceAssessment)
		if err != nil {
			return err
		}
		assessment.LeadID = stored.ID
		if err := tx.Create(&assessment).Error; err != nil {
			return fmt.Errorf("failed to insert assessment: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR: [AssessmentRepository] Failed to create assessment: %v", err)
		return "", err
	}

	log.Printf("INFO: [AssessmentRepository] Created assessment ID %s for lead %s (overall %.1f, %s).", assessment.ID, assessment.LeadID, assessment.OverallScore, assessment.Category)
	return assessment.ID, nil
}

// GetAssessment retrieves an assessment by id with its lead.
func (r *assessmentRepository) GetAssessment(ctx context.Context, id string) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.WithContext(ctx).Preload("Lead").First(&assessment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [AssessmentRepository] Assessment ID %s not found.", id)
			return nil, ErrNotFound
		}
		log.Printf("ERROR: [AssessmentRepository] Failed to retrieve assessment ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve assessment %s: %w", id, err)
	}
	return &assessment, nil
}

// ListAssessments returns the most recent assessments first.
func (r *assessmentRepository) ListAssessments(ctx context.Context, limit int) ([]models.Assessment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var assessments []models.Assessment
	err := r.db.WithContext(ctx).Preload("Lead").Order("created_at desc").Limit(limit).Find(&assessments).Error
	if err != nil {
		log.Printf("ERROR: [AssessmentRepository] Failed to list assessments: %v", err)
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	log.Printf("INFO: [AssessmentRepository] Listed %d assessments (limit %d).", len(assessments), limit)
	return assessments, nil
}
