package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostelku_backend/internals/features/hostel/occupancy/model"
)

// RoomLedger owns every mutation of room_counters. Increments and
// decrements are single atomic SQL statements, so concurrent activations on
// the same room cannot lose updates.
type RoomLedger struct {
	DB *gorm.DB
}

func NewRoomLedger(db *gorm.DB) *RoomLedger { return &RoomLedger{DB: db} }

// IncrementTx bumps the counter for roomNo, creating the row at 1 when it
// does not exist yet.
func (r *RoomLedger) IncrementTx(tx *gorm.DB, roomNo string) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "room_counter_no"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"room_counter_count": gorm.Expr("room_counter_count + 1"),
		}),
	}).Create(&model.RoomCounter{RoomCounterNo: roomNo, RoomCounterCount: 1}).Error
}

// DecrementTx lowers the counter for roomNo. A missing row or a counter
// already at zero is a no-op; the counter never goes negative.
func (r *RoomLedger) DecrementTx(tx *gorm.DB, roomNo string) error {
	return tx.Model(&model.RoomCounter{}).
		Where("room_counter_no = ? AND room_counter_count > 0", roomNo).
		UpdateColumn("room_counter_count", gorm.Expr("room_counter_count - 1")).Error
}

func (r *RoomLedger) Increment(ctx context.Context, roomNo string) error {
	return r.IncrementTx(r.DB.WithContext(ctx), roomNo)
}

func (r *RoomLedger) Decrement(ctx context.Context, roomNo string) error {
	return r.DecrementTx(r.DB.WithContext(ctx), roomNo)
}

// ResetAll zeroes every known room counter in one statement and reports how
// many rows it touched.
func (r *RoomLedger) ResetAll(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.RoomCounter{}).
		Where("1 = 1").
		UpdateColumn("room_counter_count", 0)
	return res.RowsAffected, res.Error
}

// Initialize drops all counters and recreates one zeroed row per configured
// room, all inside a single transaction.
func (r *RoomLedger) Initialize(ctx context.Context) (int, error) {
	layout, err := r.Configurations(ctx)
	if err != nil {
		return 0, err
	}
	roomNos := ExpandLayout(layout)

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.RoomCounter{}).Error; err != nil {
			return err
		}
		rows := make([]model.RoomCounter, 0, len(roomNos))
		for _, no := range roomNos {
			rows = append(rows, model.RoomCounter{RoomCounterNo: no, RoomCounterCount: 0})
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	return len(roomNos), err
}

// ExpandLayout turns the floor/room/sub-unit configuration into the flat,
// sorted list of room ids ("102 - 2").
func ExpandLayout(layout map[string][]string) []string {
	var out []string
	for _, floor := range model.Floors() {
		for room := 1; room <= 5; room++ {
			subs, ok := layout[strconv.Itoa(room)]
			if !ok {
				continue
			}
			for _, sub := range subs {
				out = append(out, fmt.Sprintf("%d - %s", floor+room, sub))
			}
		}
	}
	sort.Strings(out)
	return out
}

// ListOptions filters the counter listing. Search wins over floor/cursor,
// mirroring the original admin UI semantics.
type ListOptions struct {
	Limit      int
	LastRoomNo string
	Floor      string // "1st".."4th"
	SearchTerm string
}

var floorNames = []string{"1st", "2nd", "3rd", "4th"}

// List returns counters as roomNo → count plus the pagination cursor.
func (r *RoomLedger) List(ctx context.Context, opts ListOptions) (map[string]int, string, bool, error) {
	q := r.DB.WithContext(ctx).Model(&model.RoomCounter{}).Order("room_counter_no")

	paginated := false
	if opts.SearchTerm != "" {
		q = q.Where("room_counter_no LIKE ?", opts.SearchTerm+"%")
	} else {
		if opts.Floor != "" {
			for i, name := range floorNames {
				if name == opts.Floor {
					start := strconv.Itoa((i+1)*100 + 1)
					end := strconv.Itoa((i+1)*100 + 99)
					q = q.Where("room_counter_no >= ? AND room_counter_no <= ?", start, end)
					break
				}
			}
		}
		if opts.LastRoomNo != "" {
			q = q.Where("room_counter_no > ?", opts.LastRoomNo)
		}
		if opts.Limit > 0 {
			q = q.Limit(opts.Limit)
			paginated = true
		}
	}

	var rows []model.RoomCounter
	if err := q.Find(&rows).Error; err != nil {
		return nil, "", false, err
	}

	counters := make(map[string]int, len(rows))
	for _, row := range rows {
		counters[row.RoomCounterNo] = row.RoomCounterCount
	}
	lastNo := ""
	if len(rows) > 0 {
		lastNo = rows[len(rows)-1].RoomCounterNo
	}
	hasMore := paginated && len(rows) == opts.Limit
	return counters, lastNo, hasMore, nil
}

// Count returns the current counter for one room; a missing row reads 0.
func (r *RoomLedger) Count(ctx context.Context, roomNo string) (int, error) {
	var row model.RoomCounter
	err := r.DB.WithContext(ctx).First(&row, "room_counter_no = ?", roomNo).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	return row.RoomCounterCount, err
}

// Configurations reads the room-layout singleton, seeding the default
// layout on first access.
func (r *RoomLedger) Configurations(ctx context.Context) (map[string][]string, error) {
	var row model.RoomConfiguration
	err := r.DB.WithContext(ctx).First(&row, "room_configuration_id = ?", model.RoomConfigurationCurrentID).Error
	if err == gorm.ErrRecordNotFound {
		layout := model.DefaultRoomLayout()
		row = model.RoomConfiguration{
			RoomConfigurationID:   model.RoomConfigurationCurrentID,
			RoomConfigurationData: datatypes.NewJSONType(layout),
		}
		if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, err
		}
		return layout, nil
	}
	if err != nil {
		return nil, err
	}
	return row.RoomConfigurationData.Data(), nil
}
