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
	"gorm.io/gorm/clause"
)

// LeadSourceAssessment marks leads captured by the health assessment funnel.
const LeadSourceAssessment = "health_assessment"

// LeadRepository defines the interface for interacting with lead data.
type LeadRepository interface {
	UpsertLead(ctx context.Context, info models.LeadInfo, source string) (*models.Lead, error)
	GetLeadByPhone(ctx context.Context, phone string) (*models.Lead, error)
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new instance of LeadRepository.
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

// UpsertLead creates the lead or, when the phone number is already known, refreshes
// its name and email. Uses GORM's OnConflict (UPSERT) keyed on phone.
func (r *leadRepository) UpsertLead(ctx context.Context, info models.LeadInfo, source string) (*models.Lead, error) {
	return upsertLead(r.db.WithContext(ctx), info, source)
}

// GetLeadByPhone returns ErrNotFound if no lead has the phone number.
func (r *leadRepository) GetLeadByPhone(ctx context.Context, phone string) (*models.Lead, error) {
	return findLeadByPhone(r.db.WithContext(ctx), phone)
}

func upsertLead(tx *gorm.DB, info models.LeadInfo, source string) (*models.Lead, error) {
	if info.Phone == "" {
		log.Printf("ERROR: [LeadRepository] UpsertLead: phone cannot be empty.")
		return nil, errors.New("lead phone cannot be empty")
	}

	now := time.Now()
	lead := models.Lead{
		ID:        uuid.NewString(),
		Name:      info.Name,
		Phone:     info.Phone,
		Email:     info.Email,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// A blank email on a repeat visit must not wipe the one we already have.
	updates := []string{"name", "updated_at"}
	if info.Email != "" {
		updates = append(updates, "email")
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&lead).Error
	if err != nil {
		log.Printf("ERROR: [LeadRepository] Failed to upsert lead for phone %s: %v", maskPhone(info.Phone), err)
		return nil, fmt.Errorf("failed to upsert lead: %w", err)
	}

	// On conflict the generated ID was discarded, so re-fetch the stored row.
	stored, err := findLeadByPhone(tx, info.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lead after upsert: %w", err)
	}
	log.Printf("INFO: [LeadRepository] Upserted lead ID %s (phone %s).", stored.ID, maskPhone(stored.Phone))
	return stored, nil
}

func findLeadByPhone(tx *gorm.DB, phone string) (*models.Lead, error) {
	var lead models.Lead
	if err := tx.First(&lead, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("ERROR: [LeadRepository] Failed to fetch lead for phone %s: %v", maskPhone(phone), err)
		return nil, fmt.Errorf("failed to fetch lead: %w", err)
	}
	return &lead, nil
}

// maskPhone keeps the last four digits for logs.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return "****" + phone[len(phone)-4:]
}
