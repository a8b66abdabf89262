package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/google/uuid"

	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/fees/model"
)

// FeesService runs the month-keyed fee ledger jobs. Rollover and penalty
// application are idempotent: re-running them in the same month writes
// nothing.
type FeesService struct {
	DB *gorm.DB
}

func NewFeesService(db *gorm.DB) *FeesService { return &FeesService{DB: db} }

// JobReport summarises one batch run over the active candidates.
type JobReport struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
}

func (s *FeesService) forEachActive(ctx context.Context, mutate func(fees model.FeesStatus, cand *admissionModel.ActiveCandidate) bool) (JobReport, error) {
	var report JobReport
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []admissionModel.ActiveCandidate
		if err := tx.Find(&candidates).Error; err != nil {
			return err
		}
		for i := range candidates {
			cand := &candidates[i]
			report.Processed++

			fees := cand.FeesStatus.Data()
			if fees == nil {
				fees = model.FeesStatus{}
			}
			if !mutate(fees, cand) {
				continue
			}
			if err := tx.Model(&admissionModel.ActiveCandidate{}).
				Where("active_candidate_id = ?", cand.ActiveCandidateID).
				UpdateColumn("fees_status", datatypes.NewJSONType(fees)).Error; err != nil {
				return err
			}
			report.Updated++
		}
		return nil
	})
	return report, err
}

// Rollover seeds the month of now as Not Paid for every active candidate
// that does not have it yet.
func (s *FeesService) Rollover(ctx context.Context, now time.Time) (JobReport, error) {
	key := model.NewMonthKey(now)
	return s.forEachActive(ctx, func(fees model.FeesStatus, cand *admissionModel.ActiveCandidate) bool {
		return fees.SeedMonth(key, cand.FeesAmount)
	})
}

// ApplyPenalties adds the flat late fee to the current month for every
// active candidate that has not paid it. A candidate missing the entry
// entirely gets it created already penalised.
func (s *FeesService) ApplyPenalties(ctx context.Context, now time.Time) (JobReport, error) {
	key := model.NewMonthKey(now)
	return s.forEachActive(ctx, func(fees model.FeesStatus, cand *admissionModel.ActiveCandidate) bool {
		return fees.ApplyPenalty(key, cand.FeesAmount)
	})
}

// UpdateFeesStatus replaces one candidate's whole fee ledger with the map
// the admin submitted. Entries absent from the new map are gone afterwards.
func (s *FeesService) UpdateFeesStatus(ctx context.Context, activeID uuid.UUID, fees model.FeesStatus) (model.FeesStatus, error) {
	if fees == nil {
		fees = model.FeesStatus{}
	}
	for key, entry := range fees {
		if _, err := model.ParseMonthKey(key); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid month key")
		}
		if entry.Status != model.FeeStatusPaid && entry.Status != model.FeeStatusNotPaid {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid fee status")
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cand admissionModel.ActiveCandidate
		if err := tx.First(&cand, "active_candidate_id = ?", activeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "active candidate not found")
			}
			return err
		}
		return tx.Model(&admissionModel.ActiveCandidate{}).
			Where("active_candidate_id = ?", activeID).
			UpdateColumn("fees_status", datatypes.NewJSONType(fees)).Error
	})
	if err != nil {
		return nil, err
	}
	return fees, nil
}

// GetFeesStatus reads one candidate's full ledger.
func (s *FeesService) GetFeesStatus(ctx context.Context, activeID uuid.UUID) (model.FeesStatus, error) {
	var cand admissionModel.ActiveCandidate
	if err := s.DB.WithContext(ctx).First(&cand, "active_candidate_id = ?", activeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "active candidate not found")
		}
		return nil, err
	}
	fees := cand.FeesStatus.Data()
	if fees == nil {
		fees = model.FeesStatus{}
	}
	return fees, nil
}
