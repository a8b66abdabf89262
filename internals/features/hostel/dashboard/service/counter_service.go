package service

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/dashboard/model"
)

// DashboardService maintains the aggregate counter row. All mutations are
// atomic upserts or guarded updates so overlapping lifecycle transitions
// cannot lose counts.
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService { return &DashboardService{DB: db} }

func (s *DashboardService) bump(tx *gorm.DB, column string) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "dashboard_counter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column + " + 1"),
		}),
	}).Create(&model.DashboardCounter{
		DashboardCounterID: model.DashboardCounterRowID,
		MasterdataCount:    boolToInt(column == "masterdata_count"),
		ActiveStudentCount: boolToInt(column == "active_student_count"),
	}).Error
}

func (s *DashboardService) drop(tx *gorm.DB, column string) error {
	return tx.Model(&model.DashboardCounter{}).
		Where("dashboard_counter_id = ? AND "+column+" > 0", model.DashboardCounterRowID).
		UpdateColumn(column, gorm.Expr(column+" - 1")).Error
}

func (s *DashboardService) IncrementMasterDataTx(tx *gorm.DB) error {
	return s.bump(tx, "masterdata_count")
}

func (s *DashboardService) DecrementMasterDataTx(tx *gorm.DB) error {
	return s.drop(tx, "masterdata_count")
}

func (s *DashboardService) IncrementActiveTx(tx *gorm.DB) error {
	return s.bump(tx, "active_student_count")
}

func (s *DashboardService) DecrementActiveTx(tx *gorm.DB) error {
	return s.drop(tx, "active_student_count")
}

// Read returns the counter row; a missing row reads as both counts zero.
func (s *DashboardService) Read(ctx context.Context) (model.DashboardCounter, error) {
	var row model.DashboardCounter
	err := s.DB.WithContext(ctx).
		First(&row, "dashboard_counter_id = ?", model.DashboardCounterRowID).Error
	if err == gorm.ErrRecordNotFound {
		return model.DashboardCounter{DashboardCounterID: model.DashboardCounterRowID}, nil
	}
	return row, err
}

// Recount repairs the counter row from the source tables.
func (s *DashboardService) Recount(ctx context.Context) (model.DashboardCounter, error) {
	var masterCount, activeCount int64
	db := s.DB.WithContext(ctx)
	if err := db.Model(&admissionModel.Student{}).Count(&masterCount).Error; err != nil {
		return model.DashboardCounter{}, err
	}
	if err := db.Model(&admissionModel.ActiveCandidate{}).Count(&activeCount).Error; err != nil {
		return model.DashboardCounter{}, err
	}
	row := model.DashboardCounter{
		DashboardCounterID: model.DashboardCounterRowID,
		MasterdataCount:    int(masterCount),
		ActiveStudentCount: int(activeCount),
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "dashboard_counter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"masterdata_count":     row.MasterdataCount,
			"active_student_count": row.ActiveStudentCount,
		}),
	}).Create(&row).Error
	return row, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
