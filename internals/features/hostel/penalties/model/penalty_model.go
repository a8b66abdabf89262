package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PenaltyPaymentPending  = "Pending"
	PenaltyPaymentComplete = "Complete"
)

// PenaltyEntry is one disciplinary penalty levied on an active candidate.
type PenaltyEntry struct {
	PenaltyBy    string  `json:"penaltyBy"`
	Reason       string  `json:"reason"`
	ProofURL     string  `json:"proofUrl"`
	PenaltyRs    float64 `json:"penaltyRs"`
	Payment      string  `json:"payment"`
	SignatureURL string  `json:"signatureUrl"`
	CreatedAt    string  `json:"createdAt"`
}

// PenaltyRecord holds all penalty entries for one active candidate. The row
// is keyed by the candidate id and removed when its last entry is deleted or
// when the candidate is deactivated.
type PenaltyRecord struct {
	PenaltyRecordActiveID uuid.UUID `gorm:"type:uuid;primaryKey;column:penalty_record_active_id" json:"activeId"`

	PenaltyRecordEntries datatypes.JSONType[[]PenaltyEntry] `gorm:"type:jsonb;column:penalty_record_entries" json:"penalties"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (PenaltyRecord) TableName() string { return "penalty_records" }
