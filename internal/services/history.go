package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Conceptual-Machines/songsmith-api/internal/models"
)

var (
	ErrHistoryDisabled     = errors.New("composition history is not configured")
	ErrCompositionNotFound = errors.New("composition not found")
)

const maxHistoryPage = 100

// HistoryService stores composition records. A nil database disables it.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Enabled reports whether a database is attached.
func (s *HistoryService) Enabled() bool {
	return s != nil && s.db != nil
}

// Record inserts rec. Without a database it does nothing.
func (s *HistoryService) Record(ctx context.Context, rec *models.CompositionRecord) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("record composition %s: %w", rec.ID, err)
	}
	return nil
}

// Get loads one record by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*models.CompositionRecord, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}

	var rec models.CompositionRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompositionNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Recent lists the newest records, optionally for one user.
func (s *HistoryService) Recent(ctx context.Context, userID string, limit int) ([]models.CompositionRecord, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 || limit > maxHistoryPage {
		limit = maxHistoryPage
	}

	q := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var recs []models.CompositionRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
