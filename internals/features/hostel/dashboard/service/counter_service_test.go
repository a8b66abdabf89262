package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/dashboard/model"
)

func newTestService(t *testing.T) *DashboardService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.DashboardCounter{},
		&admissionModel.Student{},
		&admissionModel.ActiveCandidate{},
	))
	return NewDashboardService(db)
}

func TestReadDefaultsToZero(t *testing.T) {
	svc := newTestService(t)

	row, err := svc.Read(context.Background())
	require.NoError(t, err)
	assert.Zero(t, row.MasterdataCount)
	assert.Zero(t, row.ActiveStudentCount)
}

func TestIncrementAndDecrement(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.IncrementMasterDataTx(svc.DB))
	require.NoError(t, svc.IncrementMasterDataTx(svc.DB))
	require.NoError(t, svc.IncrementActiveTx(svc.DB))

	row, err := svc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, row.MasterdataCount)
	assert.Equal(t, 1, row.ActiveStudentCount)

	require.NoError(t, svc.DecrementActiveTx(svc.DB))
	require.NoError(t, svc.DecrementActiveTx(svc.DB), "decrement at zero must be a no-op")

	row, err = svc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, row.MasterdataCount)
	assert.Zero(t, row.ActiveStudentCount)
}

func TestDecrementWithoutRowIsNoop(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.DecrementMasterDataTx(svc.DB))
	row, err := svc.Read(context.Background())
	require.NoError(t, err)
	assert.Zero(t, row.MasterdataCount)
}

func TestRecount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.DB.Create(&admissionModel.Student{
			StudentCore: admissionModel.StudentCore{FullName: fmt.Sprintf("Student %d", i)},
		}).Error)
	}
	require.NoError(t, svc.DB.Create(&admissionModel.ActiveCandidate{
		MasterID:    uuid.New(),
		StudentCore: admissionModel.StudentCore{FullName: "Active"},
	}).Error)

	// drifted counter row
	require.NoError(t, svc.IncrementMasterDataTx(svc.DB))

	row, err := svc.Recount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, row.MasterdataCount)
	assert.Equal(t, 1, row.ActiveStudentCount)

	stored, err := svc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.MasterdataCount)
	assert.Equal(t, 1, stored.ActiveStudentCount)
}
