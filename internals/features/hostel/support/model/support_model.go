package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SupportStatusPending  = "pending"
	SupportStatusResolved = "resolved"
)

// SupportQuery is one help-desk ticket raised from the app.
type SupportQuery struct {
	SupportQueryID uuid.UUID `gorm:"type:uuid;primaryKey;column:support_query_id" json:"id"`

	Name          string `gorm:"type:text;not null" json:"name"`
	Email         string `gorm:"type:text" json:"email"`
	MobileNo      string `gorm:"type:text" json:"mobileNo"`
	Subject       string `gorm:"type:text;not null" json:"subject"`
	Message       string `gorm:"type:text;not null" json:"message"`
	ScreenshotURL string `gorm:"type:text" json:"screenshotUrl"`

	Status string `gorm:"type:text;not null;default:pending" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (SupportQuery) TableName() string { return "support_queries" }

func (s *SupportQuery) BeforeCreate(tx *gorm.DB) error {
	if s.SupportQueryID == uuid.Nil {
		s.SupportQueryID = uuid.New()
	}
	return nil
}
