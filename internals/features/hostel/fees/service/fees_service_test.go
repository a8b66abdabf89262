package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/fees/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&admissionModel.Student{}, &admissionModel.ActiveCandidate{}))
	return db
}

func seedCandidate(t *testing.T, db *gorm.DB, name string, feesAmount float64, fees model.FeesStatus) *admissionModel.ActiveCandidate {
	t.Helper()
	cand := &admissionModel.ActiveCandidate{
		MasterID: uuid.New(),
		StudentCore: admissionModel.StudentCore{
			FullName:   name,
			FeesAmount: feesAmount,
		},
		IsActive:   true,
		FeesStatus: datatypes.NewJSONType(fees),
	}
	require.NoError(t, db.Create(cand).Error)
	return cand
}

func ledgerOf(t *testing.T, db *gorm.DB, id uuid.UUID) model.FeesStatus {
	t.Helper()
	var cand admissionModel.ActiveCandidate
	require.NoError(t, db.First(&cand, "active_candidate_id = ?", id).Error)
	return cand.FeesStatus.Data()
}

func TestRollover(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeesService(db)
	ctx := context.Background()
	now := time.Date(2026, time.September, 1, 0, 1, 0, 0, time.UTC)

	fresh := seedCandidate(t, db, "Raj", 6000, model.FeesStatus{})
	already := seedCandidate(t, db, "Amit", 5000, model.FeesStatus{
		"September, 2026": {Status: model.FeeStatusNotPaid, FeesAmount: 5000},
	})

	report, err := svc.Rollover(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Updated, "candidate with the month already seeded is skipped")

	fees := ledgerOf(t, db, fresh.ActiveCandidateID)
	require.Contains(t, fees, "September, 2026")
	assert.Equal(t, 6000.0, fees["September, 2026"].FeesAmount)

	// second run changes nothing
	report, err = svc.Rollover(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, report.Updated)

	_ = already
}

func TestApplyPenalties(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeesService(db)
	ctx := context.Background()
	now := time.Date(2026, time.September, 5, 3, 0, 0, 0, time.UTC)

	paidDate := "2026-09-02"
	unpaid := seedCandidate(t, db, "Raj", 6000, model.FeesStatus{
		"August, 2026":    {Status: model.FeeStatusNotPaid, FeesAmount: 6000},
		"September, 2026": {Status: model.FeeStatusNotPaid, FeesAmount: 6000},
	})
	paid := seedCandidate(t, db, "Amit", 5000, model.FeesStatus{
		"September, 2026": {Status: model.FeeStatusPaid, FeesAmount: 5000, PaidDate: &paidDate},
	})

	report, err := svc.ApplyPenalties(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Updated)

	fees := ledgerOf(t, db, unpaid.ActiveCandidateID)
	assert.True(t, fees["September, 2026"].PenaltyApplied)
	assert.Equal(t, float64(model.MonthlyPenaltyAmount), fees["September, 2026"].PenaltyAmount)

	// only the current month is touched, older unpaid months keep their state
	assert.False(t, fees["August, 2026"].PenaltyApplied)
	assert.Zero(t, fees["August, 2026"].PenaltyAmount)

	fees = ledgerOf(t, db, paid.ActiveCandidateID)
	assert.False(t, fees["September, 2026"].PenaltyApplied)

	// idempotent
	report, err = svc.ApplyPenalties(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, report.Updated)
}

func TestApplyPenaltiesCreatesMissingMonth(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeesService(db)
	ctx := context.Background()
	now := time.Date(2026, time.September, 5, 3, 0, 0, 0, time.UTC)

	cand := seedCandidate(t, db, "Raj", 6000, model.FeesStatus{})

	report, err := svc.ApplyPenalties(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Updated)

	fees := ledgerOf(t, db, cand.ActiveCandidateID)
	require.Contains(t, fees, "September, 2026")
	entry := fees["September, 2026"]
	assert.Equal(t, model.FeeStatusNotPaid, entry.Status)
	assert.Equal(t, 6000.0, entry.FeesAmount)
	assert.True(t, entry.PenaltyApplied)
	assert.Equal(t, float64(model.MonthlyPenaltyAmount), entry.PenaltyAmount)
	assert.Nil(t, entry.PaidDate)
}

func TestUpdateFeesStatusReplacesLedger(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeesService(db)
	ctx := context.Background()

	cand := seedCandidate(t, db, "Raj", 6000, model.FeesStatus{
		"July, 2026":   {Status: model.FeeStatusNotPaid, FeesAmount: 6000},
		"August, 2026": {Status: model.FeeStatusNotPaid, FeesAmount: 6000, PenaltyApplied: true, PenaltyAmount: 500},
	})

	paidDate := "2026-08-03"
	fees, err := svc.UpdateFeesStatus(ctx, cand.ActiveCandidateID, model.FeesStatus{
		"August, 2026": {
			Status:         model.FeeStatusPaid,
			FeesAmount:     6000,
			PenaltyApplied: true,
			PenaltyAmount:  500,
			PaidDate:       &paidDate,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.FeeStatusPaid, fees["August, 2026"].Status)

	stored := ledgerOf(t, db, cand.ActiveCandidateID)
	assert.NotContains(t, stored, "July, 2026", "entries absent from the submitted map are removed")
	entry := stored["August, 2026"]
	assert.Equal(t, model.FeeStatusPaid, entry.Status)
	assert.True(t, entry.PenaltyApplied)
	assert.Equal(t, 500.0, entry.PenaltyAmount)
	require.NotNil(t, entry.PaidDate)
	assert.Equal(t, paidDate, *entry.PaidDate)
}

func TestUpdateFeesStatusErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeesService(db)
	ctx := context.Background()

	_, err := svc.UpdateFeesStatus(ctx, uuid.New(), model.FeesStatus{})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	cand := seedCandidate(t, db, "Raj", 6000, model.FeesStatus{})
	_, err = svc.UpdateFeesStatus(ctx, cand.ActiveCandidateID, model.FeesStatus{
		"not-a-month": {Status: model.FeeStatusPaid},
	})
	require.Error(t, err)
	fe, ok = err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)

	_, err = svc.UpdateFeesStatus(ctx, cand.ActiveCandidateID, model.FeesStatus{
		"August, 2026": {Status: "maybe"},
	})
	require.Error(t, err)
	fe, ok = err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}
