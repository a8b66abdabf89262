package model

import (
	"time"

	"github.com/lib/pq"
)

const (
	AttendanceTypeFood  = "food"
	AttendanceTypeDaily = "daily"
)

// Attendance is one roll call: the active candidate ids present and absent
// on one date for one register (food or daily). One row per (date, type).
type Attendance struct {
	AttendanceDate string `gorm:"type:text;primaryKey;column:attendance_date" json:"date"`
	AttendanceType string `gorm:"type:text;primaryKey;column:attendance_type" json:"type"`

	AttendancePresent pq.StringArray `gorm:"type:text[];column:attendance_present" json:"present"`
	AttendanceAbsent  pq.StringArray `gorm:"type:text[];column:attendance_absent" json:"absent"`

	AttendanceTakenBy   string    `gorm:"type:text;column:attendance_taken_by" json:"takenBy"`
	AttendanceUpdatedAt time.Time `gorm:"autoUpdateTime;column:attendance_updated_at" json:"-"`
}

func (Attendance) TableName() string { return "attendances" }
