package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"hostelku_backend/internals/features/hostel/occupancy/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RoomCounter{}, &model.RoomConfiguration{}))
	return db
}

func TestIncrementCreatesAndBumps(t *testing.T) {
	ledger := NewRoomLedger(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, ledger.Increment(ctx, "102 - 2"))
	count, err := ledger.Count(ctx, "102 - 2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, ledger.Increment(ctx, "102 - 2"))
	require.NoError(t, ledger.Increment(ctx, "102 - 2"))
	count, err = ledger.Count(ctx, "102 - 2")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestDecrementClampsAtZero(t *testing.T) {
	ledger := NewRoomLedger(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, ledger.Increment(ctx, "201 - 1 Left"))
	require.NoError(t, ledger.Decrement(ctx, "201 - 1 Left"))
	require.NoError(t, ledger.Decrement(ctx, "201 - 1 Left"), "decrement at zero must be a no-op")

	count, err := ledger.Count(ctx, "201 - 1 Left")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDecrementMissingRoomIsNoop(t *testing.T) {
	ledger := NewRoomLedger(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, ledger.Decrement(ctx, "999 - 9"))
	count, err := ledger.Count(ctx, "999 - 9")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestResetAll(t *testing.T) {
	ledger := NewRoomLedger(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, ledger.Increment(ctx, "101 - 2"))
	require.NoError(t, ledger.Increment(ctx, "305 - 1"))
	require.NoError(t, ledger.Increment(ctx, "305 - 1"))

	affected, err := ledger.ResetAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	for _, room := range []string{"101 - 2", "305 - 1"} {
		count, err := ledger.Count(ctx, room)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	}
}

func TestInitializeRebuildsFromConfiguration(t *testing.T) {
	ledger := NewRoomLedger(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, ledger.Increment(ctx, "stale room"))

	created, err := ledger.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(ExpandLayout(model.DefaultRoomLayout())), created)

	// the stale row is gone, configured rooms start at zero
	counters, _, _, err := ledger.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.NotContains(t, counters, "stale room")
	assert.Len(t, counters, created)
	assert.Equal(t, 0, counters["102 - 2"])
}

func TestExpandLayout(t *testing.T) {
	rooms := ExpandLayout(model.DefaultRoomLayout())

	perFloor := 0
	for _, subs := range model.DefaultRoomLayout() {
		perFloor += len(subs)
	}
	assert.Len(t, rooms, perFloor*len(model.Floors()))
	assert.Contains(t, rooms, "102 - 2")
	assert.Contains(t, rooms, "401 - 3 Kitchen")
	assert.Contains(t, rooms, "205 - 2 Bed")
}

func TestListFilters(t *testing.T) {
	ledger := NewRoomLedger(newTestDB(t))
	ctx := context.Background()

	for _, room := range []string{"101 - 2", "102 - 2", "201 - 1 Left", "305 - 1"} {
		require.NoError(t, ledger.Increment(ctx, room))
	}

	t.Run("search by prefix", func(t *testing.T) {
		counters, _, hasMore, err := ledger.List(ctx, ListOptions{SearchTerm: "10"})
		require.NoError(t, err)
		assert.Len(t, counters, 2)
		assert.False(t, hasMore)
	})

	t.Run("floor filter", func(t *testing.T) {
		counters, _, _, err := ledger.List(ctx, ListOptions{Floor: "2nd"})
		require.NoError(t, err)
		assert.Len(t, counters, 1)
		assert.Contains(t, counters, "201 - 1 Left")
	})

	t.Run("cursor pagination", func(t *testing.T) {
		counters, last, hasMore, err := ledger.List(ctx, ListOptions{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, counters, 2)
		assert.True(t, hasMore)
		assert.Equal(t, "102 - 2", last)

		counters, _, hasMore, err = ledger.List(ctx, ListOptions{Limit: 2, LastRoomNo: last})
		require.NoError(t, err)
		assert.Len(t, counters, 2)
		assert.Contains(t, counters, "201 - 1 Left")
		assert.True(t, hasMore)

		counters, _, hasMore, err = ledger.List(ctx, ListOptions{Limit: 2, LastRoomNo: "305 - 1"})
		require.NoError(t, err)
		assert.Empty(t, counters)
		assert.False(t, hasMore)
	})
}

func TestConfigurationsSeedsDefault(t *testing.T) {
	ledger := NewRoomLedger(newTestDB(t))
	ctx := context.Background()

	layout, err := ledger.Configurations(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRoomLayout(), layout)

	// second read comes from the stored row
	layout, err = ledger.Configurations(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRoomLayout(), layout)
}
