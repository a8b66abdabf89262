package model

import "time"

// DashboardCounter is the single aggregate row behind the admin dashboard:
// total admissions ever recorded and how many of them are currently active.
type DashboardCounter struct {
	DashboardCounterID string `gorm:"type:text;primaryKey;column:dashboard_counter_id" json:"id"`

	MasterdataCount    int `gorm:"not null;default:0;column:masterdata_count" json:"masterdatacount"`
	ActiveStudentCount int `gorm:"not null;default:0;column:active_student_count" json:"activestudentcount"`

	DashboardCounterUpdatedAt time.Time `gorm:"autoUpdateTime;column:dashboard_counter_updated_at" json:"-"`
}

func (DashboardCounter) TableName() string { return "dashboard_counters" }

const DashboardCounterRowID = "counters"
