package model

import (
	"time"

	"gorm.io/datatypes"
)

// RoomCounter is the denormalized occupancy count for one room id
// (e.g. "102 - 2"). Rows are only mutated through the room ledger service
// with atomic SQL expressions; the counter never goes negative.
type RoomCounter struct {
	RoomCounterNo    string    `gorm:"type:text;primaryKey;column:room_counter_no" json:"roomNo"`
	RoomCounterCount int       `gorm:"not null;default:0;column:room_counter_count" json:"counter"`
	RoomCounterUpdatedAt time.Time `gorm:"autoUpdateTime;column:room_counter_updated_at" json:"-"`
}

func (RoomCounter) TableName() string { return "room_counters" }

// RoomConfiguration is the singleton room-layout document: a JSONB mapping
// from room number (1..5) to its sub-unit labels.
type RoomConfiguration struct {
	RoomConfigurationID   string                                 `gorm:"type:text;primaryKey;column:room_configuration_id" json:"id"`
	RoomConfigurationData datatypes.JSONType[map[string][]string] `gorm:"type:jsonb;column:room_configuration_data" json:"roomConfigurations"`
	RoomConfigurationUpdatedAt time.Time `gorm:"autoUpdateTime;column:room_configuration_updated_at" json:"-"`
}

func (RoomConfiguration) TableName() string { return "room_configurations" }

const RoomConfigurationCurrentID = "current"

// DefaultRoomLayout mirrors the physical building: floors 1..4 (ids 100,
// 200, 300, 400), rooms 1..5 per floor, sub-units per room number.
func DefaultRoomLayout() map[string][]string {
	return map[string][]string{
		"1": {"2", "3 Hall", "3 Kitchen"},
		"2": {"1 Left", "1 Center", "1 Right", "2", "3"},
		"3": {"2 Hall", "2 Bed", "2 Kitchen"},
		"4": {"2 Bed", "2 Kitchen", "3"},
		"5": {"1", "2 Bed", "2 Kitchen"},
	}
}

// Floors lists the numeric floor bases used to build room ids.
func Floors() []int { return []int{100, 200, 300, 400} }
