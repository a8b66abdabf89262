package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/penalties/model"
)

func newTestService(t *testing.T) *PenaltyService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&admissionModel.ActiveCandidate{}, &model.PenaltyRecord{}))
	return NewPenaltyService(db)
}

func seedActive(t *testing.T, s *PenaltyService, name string) *admissionModel.ActiveCandidate {
	t.Helper()
	cand := &admissionModel.ActiveCandidate{
		MasterID: uuid.New(),
		StudentCore: admissionModel.StudentCore{
			FullName: name,
			RoomNo:   "102 - 2",
		},
		IsActive: true,
	}
	require.NoError(t, s.DB.Create(cand).Error)
	return cand
}

func TestAddPenalty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	cand := seedActive(t, svc, "Raj")

	index, err := svc.AddPenalty(ctx, cand.ActiveCandidateID, model.PenaltyEntry{
		PenaltyBy: "Warden",
		Reason:    "noise after curfew",
		PenaltyRs: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, index, "first penalty sits at index 0")

	index, err = svc.AddPenalty(ctx, cand.ActiveCandidateID, model.PenaltyEntry{
		PenaltyBy: "Warden",
		Reason:    "late entry",
		PenaltyRs: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	entries, err := svc.ListForActive(ctx, cand.ActiveCandidateID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.PenaltyPaymentPending, entries[0].Payment)
	assert.NotEmpty(t, entries[0].CreatedAt)
}

func TestAddPenaltyWrongActiveID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddPenalty(context.Background(), uuid.New(), model.PenaltyEntry{
		PenaltyBy: "Warden",
		Reason:    "test",
		PenaltyRs: 100,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
	assert.Equal(t, "wrong active id", fe.Message)
}

func TestListForActiveWithoutRecord(t *testing.T) {
	svc := newTestService(t)
	cand := seedActive(t, svc, "Raj")

	entries, err := svc.ListForActive(context.Background(), cand.ActiveCandidateID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeletePenalty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	cand := seedActive(t, svc, "Raj")

	for _, reason := range []string{"first", "second"} {
		_, err := svc.AddPenalty(ctx, cand.ActiveCandidateID, model.PenaltyEntry{
			PenaltyBy: "Warden", Reason: reason, PenaltyRs: 100,
		})
		require.NoError(t, err)
	}

	deleted, err := svc.DeletePenalty(ctx, cand.ActiveCandidateID, 0)
	require.NoError(t, err)
	assert.Equal(t, "first", deleted.Reason)

	entries, err := svc.ListForActive(ctx, cand.ActiveCandidateID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "second", entries[0].Reason)

	// deleting the last entry drops the record row
	_, err = svc.DeletePenalty(ctx, cand.ActiveCandidateID, 0)
	require.NoError(t, err)

	var count int64
	svc.DB.Model(&model.PenaltyRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeletePenaltyBadIndex(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	cand := seedActive(t, svc, "Raj")
	_, err := svc.AddPenalty(ctx, cand.ActiveCandidateID, model.PenaltyEntry{
		PenaltyBy: "Warden", Reason: "test", PenaltyRs: 100,
	})
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 99} {
		_, err := svc.DeletePenalty(ctx, cand.ActiveCandidateID, index)
		require.Error(t, err, "index %d", index)
		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusNotFound, fe.Code)
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	cand := seedActive(t, svc, "Raj")
	_, err := svc.AddPenalty(ctx, cand.ActiveCandidateID, model.PenaltyEntry{
		PenaltyBy: "Warden", Reason: "test", PenaltyRs: 100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePaymentStatus(ctx, cand.ActiveCandidateID, 0, model.PenaltyPaymentComplete))

	entries, err := svc.ListForActive(ctx, cand.ActiveCandidateID)
	require.NoError(t, err)
	assert.Equal(t, model.PenaltyPaymentComplete, entries[0].Payment)

	err = svc.UpdatePaymentStatus(ctx, cand.ActiveCandidateID, 0, "Refunded")
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestListAllSkipsOrphans(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	cand := seedActive(t, svc, "Raj")
	_, err := svc.AddPenalty(ctx, cand.ActiveCandidateID, model.PenaltyEntry{
		PenaltyBy: "Warden", Reason: "test", PenaltyRs: 100,
	})
	require.NoError(t, err)

	// orphan record: its candidate no longer exists
	require.NoError(t, svc.DB.Create(&model.PenaltyRecord{
		PenaltyRecordActiveID: uuid.New(),
	}).Error)

	rows, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, cand.ActiveCandidateID, rows[0].ActiveID)
	assert.Equal(t, "Raj", rows[0].FullName)
	assert.Len(t, rows[0].Penalties, 1)
}
