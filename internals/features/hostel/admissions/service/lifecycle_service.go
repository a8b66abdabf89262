package service

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/admissions/dto"
	"hostelku_backend/internals/features/hostel/admissions/model"
	dashboardService "hostelku_backend/internals/features/hostel/dashboard/service"
	feesModel "hostelku_backend/internals/features/hostel/fees/model"
	occupancyService "hostelku_backend/internals/features/hostel/occupancy/service"
	penaltyModel "hostelku_backend/internals/features/hostel/penalties/model"
	"hostelku_backend/internals/helpers/oss"
)

// LifecycleService owns admission records and the activate/deactivate
// transitions. Every transition runs in one transaction so the master row,
// the active copy, the room counter and the dashboard counter move together.
type LifecycleService struct {
	DB        *gorm.DB
	Ledger    *occupancyService.RoomLedger
	Dashboard *dashboardService.DashboardService
	Blob      oss.BlobService
}

func NewLifecycleService(db *gorm.DB, blob oss.BlobService) *LifecycleService {
	return &LifecycleService{
		DB:        db,
		Ledger:    occupancyService.NewRoomLedger(db),
		Dashboard: dashboardService.NewDashboardService(db),
		Blob:      blob,
	}
}

// CreateAdmission inserts a master record and bumps the dashboard total.
func (s *LifecycleService) CreateAdmission(ctx context.Context, core model.StudentCore) (*model.Student, error) {
	student := &model.Student{StudentCore: core}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		return s.Dashboard.IncrementMasterDataTx(tx)
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

// Activate copies the master record into active_candidates, seeds the
// current month as unpaid, links the master row to the copy, and bumps the
// room and active counters.
func (s *LifecycleService) Activate(ctx context.Context, masterID uuid.UUID, now time.Time) (*model.ActiveCandidate, error) {
	var candidate *model.ActiveCandidate

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student model.Student
		if err := tx.First(&student, "student_id = ?", masterID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "candidate not found in masterdata")
			}
			return err
		}
		if student.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "candidate already active")
		}

		fees := feesModel.FeesStatus{}
		fees.SeedMonth(feesModel.NewMonthKey(now), student.FeesAmount)

		candidate = &model.ActiveCandidate{
			MasterID:    student.StudentID,
			StudentCore: student.StudentCore,
			IsActive:    true,
			FeesStatus:  datatypes.NewJSONType(fees),
		}
		if err := tx.Create(candidate).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Student{}).
			Where("student_id = ?", student.StudentID).
			Updates(map[string]interface{}{
				"is_active": true,
				"active_id": candidate.ActiveCandidateID,
			}).Error; err != nil {
			return err
		}

		if err := s.Ledger.IncrementTx(tx, student.RoomNo); err != nil {
			return err
		}
		return s.Dashboard.IncrementActiveTx(tx)
	})
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

// Deactivate reverses an activation: removes the active copy and its
// penalty record, unlinks the master row, and lowers the room and active
// counters.
func (s *LifecycleService) Deactivate(ctx context.Context, activeID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidate model.ActiveCandidate
		if err := tx.First(&candidate, "active_candidate_id = ?", activeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "active candidate not found")
			}
			return err
		}

		if err := tx.Delete(&penaltyModel.PenaltyRecord{}, "penalty_record_active_id = ?", activeID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ActiveCandidate{}, "active_candidate_id = ?", activeID).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Student{}).
			Where("student_id = ?", candidate.MasterID).
			Updates(map[string]interface{}{
				"is_active": false,
				"active_id": nil,
			}).Error; err != nil {
			return err
		}

		if err := s.Ledger.DecrementTx(tx, candidate.RoomNo); err != nil {
			return err
		}
		return s.Dashboard.DecrementActiveTx(tx)
	})
}

// UpdateAdmission patches the master record. When the student is active the
// same columns are mirrored onto the active copy, and a room change moves
// the occupancy counters in the same transaction.
func (s *LifecycleService) UpdateAdmission(ctx context.Context, masterID uuid.UUID, req *dto.UpdateAdmissionRequest) (*model.Student, error) {
	updates := req.ToUpdates()

	var student model.Student
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, "student_id = ?", masterID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "candidate not found in masterdata")
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&model.Student{}).
			Where("student_id = ?", masterID).
			Updates(updates).Error; err != nil {
			return err
		}

		if student.IsActive {
			if req.RoomNo != nil && *req.RoomNo != student.RoomNo {
				if err := s.Ledger.DecrementTx(tx, student.RoomNo); err != nil {
					return err
				}
				if err := s.Ledger.IncrementTx(tx, *req.RoomNo); err != nil {
					return err
				}
			}
			if err := tx.Model(&model.ActiveCandidate{}).
				Where("master_id = ?", masterID).
				Updates(updates).Error; err != nil {
				log.Printf("[ADMISSIONS] mirror update for %s failed: %v", masterID, err)
				return err
			}
		}

		return tx.First(&student, "student_id = ?", masterID).Error
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// DeleteAdmission removes the master record and, when active, its copy,
// penalty record and counter contributions. Blob cleanup happens after
// commit and is best-effort.
func (s *LifecycleService) DeleteAdmission(ctx context.Context, masterID uuid.UUID) error {
	var docURLs []string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student model.Student
		if err := tx.First(&student, "student_id = ?", masterID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "candidate not found in masterdata")
			}
			return err
		}
		docURLs = student.DocumentURLs()

		if student.IsActive && student.ActiveID != nil {
			if err := tx.Delete(&penaltyModel.PenaltyRecord{}, "penalty_record_active_id = ?", *student.ActiveID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.ActiveCandidate{}, "active_candidate_id = ?", *student.ActiveID).Error; err != nil {
				return err
			}
			if err := s.Ledger.DecrementTx(tx, student.RoomNo); err != nil {
				return err
			}
			if err := s.Dashboard.DecrementActiveTx(tx); err != nil {
				return err
			}
		}

		if err := tx.Delete(&model.Student{}, "student_id = ?", masterID).Error; err != nil {
			return err
		}
		return s.Dashboard.DecrementMasterDataTx(tx)
	})
	if err != nil {
		return err
	}

	if len(docURLs) > 0 {
		if _, failed := s.Blob.DeleteManyByPublicURL(ctx, docURLs); len(failed) > 0 {
			log.Printf("[ADMISSIONS] %d document(s) left behind for %s", len(failed), masterID)
		}
	}
	return nil
}
