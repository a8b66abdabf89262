package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/penalties/model"
)

// PenaltyService manages disciplinary penalties, stored as one JSONB array
// per active candidate.
type PenaltyService struct {
	DB *gorm.DB
}

func NewPenaltyService(db *gorm.DB) *PenaltyService { return &PenaltyService{DB: db} }

// VerifyActiveID confirms the id belongs to a current active candidate.
func (s *PenaltyService) VerifyActiveID(ctx context.Context, activeID uuid.UUID) (*admissionModel.ActiveCandidate, error) {
	var cand admissionModel.ActiveCandidate
	if err := s.DB.WithContext(ctx).First(&cand, "active_candidate_id = ?", activeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "wrong active id")
		}
		return nil, err
	}
	return &cand, nil
}

// AddPenalty appends an entry to the candidate's record, creating the record
// row on first penalty. Returns the entry's index.
func (s *PenaltyService) AddPenalty(ctx context.Context, activeID uuid.UUID, entry model.PenaltyEntry) (int, error) {
	if _, err := s.VerifyActiveID(ctx, activeID); err != nil {
		return 0, err
	}
	if entry.Payment == "" {
		entry.Payment = model.PenaltyPaymentPending
	}
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().Format(time.RFC3339)
	}

	index := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.PenaltyRecord
		err := tx.First(&record, "penalty_record_active_id = ?", activeID).Error
		if err == gorm.ErrRecordNotFound {
			record = model.PenaltyRecord{
				PenaltyRecordActiveID: activeID,
				PenaltyRecordEntries:  datatypes.NewJSONType([]model.PenaltyEntry{entry}),
			}
			index = 0
			return tx.Create(&record).Error
		}
		if err != nil {
			return err
		}

		entries := append(record.PenaltyRecordEntries.Data(), entry)
		index = len(entries) - 1
		return tx.Model(&model.PenaltyRecord{}).
			Where("penalty_record_active_id = ?", activeID).
			UpdateColumn("penalty_record_entries", datatypes.NewJSONType(entries)).Error
	})
	return index, err
}

// ListForActive returns the candidate's penalties; no record means an empty
// list, not an error.
func (s *PenaltyService) ListForActive(ctx context.Context, activeID uuid.UUID) ([]model.PenaltyEntry, error) {
	if _, err := s.VerifyActiveID(ctx, activeID); err != nil {
		return nil, err
	}
	var record model.PenaltyRecord
	err := s.DB.WithContext(ctx).First(&record, "penalty_record_active_id = ?", activeID).Error
	if err == gorm.ErrRecordNotFound {
		return []model.PenaltyEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return record.PenaltyRecordEntries.Data(), nil
}

// DeletePenalty removes one entry by index; removing the last entry drops
// the record row. Returns the deleted entry so the controller can clean up
// its proof blob.
func (s *PenaltyService) DeletePenalty(ctx context.Context, activeID uuid.UUID, index int) (*model.PenaltyEntry, error) {
	var deleted model.PenaltyEntry
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.PenaltyRecord
		if err := tx.First(&record, "penalty_record_active_id = ?", activeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "penalty record not found")
			}
			return err
		}

		entries := record.PenaltyRecordEntries.Data()
		if index < 0 || index >= len(entries) {
			return fiber.NewError(fiber.StatusNotFound, "penalty not found")
		}
		deleted = entries[index]
		entries = append(entries[:index], entries[index+1:]...)

		if len(entries) == 0 {
			return tx.Delete(&model.PenaltyRecord{}, "penalty_record_active_id = ?", activeID).Error
		}
		return tx.Model(&model.PenaltyRecord{}).
			Where("penalty_record_active_id = ?", activeID).
			UpdateColumn("penalty_record_entries", datatypes.NewJSONType(entries)).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// UpdatePaymentStatus flips one entry between Pending and Complete.
func (s *PenaltyService) UpdatePaymentStatus(ctx context.Context, activeID uuid.UUID, index int, status string) error {
	if status != model.PenaltyPaymentPending && status != model.PenaltyPaymentComplete {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment status")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.PenaltyRecord
		if err := tx.First(&record, "penalty_record_active_id = ?", activeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "penalty record not found")
			}
			return err
		}

		entries := record.PenaltyRecordEntries.Data()
		if index < 0 || index >= len(entries) {
			return fiber.NewError(fiber.StatusNotFound, "penalty not found")
		}
		entries[index].Payment = status

		return tx.Model(&model.PenaltyRecord{}).
			Where("penalty_record_active_id = ?", activeID).
			UpdateColumn("penalty_record_entries", datatypes.NewJSONType(entries)).Error
	})
}

// CandidatePenalties is one row of the all-penalties listing.
type CandidatePenalties struct {
	ActiveID  uuid.UUID            `json:"activeId"`
	FullName  string               `json:"fullName"`
	RoomNo    string               `json:"roomNo"`
	Penalties []model.PenaltyEntry `json:"penalties"`
}

// ListAll joins penalty records with their candidates. Records whose
// candidate has since been removed are skipped.
func (s *PenaltyService) ListAll(ctx context.Context) ([]CandidatePenalties, error) {
	var records []model.PenaltyRecord
	if err := s.DB.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]CandidatePenalties, 0, len(records))
	for _, record := range records {
		var cand admissionModel.ActiveCandidate
		err := s.DB.WithContext(ctx).
			First(&cand, "active_candidate_id = ?", record.PenaltyRecordActiveID).Error
		if err == gorm.ErrRecordNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, CandidatePenalties{
			ActiveID:  record.PenaltyRecordActiveID,
			FullName:  cand.FullName,
			RoomNo:    cand.RoomNo,
			Penalties: record.PenaltyRecordEntries.Data(),
		})
	}
	return out, nil
}
