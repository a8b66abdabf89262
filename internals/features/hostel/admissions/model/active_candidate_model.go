package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	feesmodel "hostelku_backend/internals/features/hostel/fees/model"
)

// ActiveCandidate is the denormalized copy of a master record made at
// activation time. It exists only while the student occupies a room and
// carries the month-keyed fee ledger.
type ActiveCandidate struct {
	ActiveCandidateID uuid.UUID `gorm:"type:uuid;primaryKey;column:active_candidate_id" json:"id"`

	MasterID uuid.UUID `gorm:"type:uuid;not null;index" json:"masterId"`

	StudentCore `gorm:"embedded"`

	IsActive bool `gorm:"not null;default:true" json:"isActive"`

	FeesStatus datatypes.JSONType[feesmodel.FeesStatus] `gorm:"type:jsonb;column:fees_status" json:"feesStatus"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (ActiveCandidate) TableName() string { return "active_candidates" }

func (a *ActiveCandidate) BeforeCreate(tx *gorm.DB) error {
	if a.ActiveCandidateID == uuid.Nil {
		a.ActiveCandidateID = uuid.New()
	}
	return nil
}
