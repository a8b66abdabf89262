package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentCore holds the admission fields shared verbatim between the master
// record and its denormalized active-candidate copy. The copy is a deliberate
// read optimisation: the two stay in sync only through the lifecycle
// service's mutation paths.
type StudentCore struct {
	FullName            string `gorm:"type:text;not null" json:"fullName"`
	Email               string `gorm:"type:text" json:"email"`
	MobileNo            string `gorm:"type:text" json:"mobileNo"`
	DateOfAdmission     string `gorm:"type:text" json:"dateOfAdmission"`
	DateOfBirth         string `gorm:"type:text" json:"dateOfBirth"`
	Religion            string `gorm:"type:text" json:"religion"`
	BloodGroup          string `gorm:"type:text" json:"bloodGroup"`
	FathersName         string `gorm:"type:text" json:"fathersName"`
	MothersName         string `gorm:"type:text" json:"mothersName"`
	FatherMobileNo      string `gorm:"type:text" json:"fatherMobileNo"`
	FatherOccupation    string `gorm:"type:text" json:"fatherOccupation"`
	LocalContactDetails string `gorm:"type:text" json:"localContactDetails"`
	PermanentAddress    string `gorm:"type:text" json:"permanentAddress"`
	DepartmentAndCollege string `gorm:"type:text" json:"departmentAndCollege"`

	RoomNo string `gorm:"type:text" json:"roomNo"`

	FeesStructure     string  `gorm:"type:text" json:"feesStructure"`
	ContractPeriod    string  `gorm:"type:text" json:"contractPeriod"`
	FeesAmount        float64 `gorm:"not null;default:0" json:"feesAmount"`
	SecurityDeposit   float64 `gorm:"not null;default:0" json:"securityDeposit"`
	MaintenanceCharge float64 `gorm:"not null;default:0" json:"maintenanceCharge"`
	RegistrationFees  float64 `gorm:"not null;default:0" json:"registrationFees"`
	TotalAmount       float64 `gorm:"not null;default:0" json:"totalAmount"`

	AadhaarCardNo      string `gorm:"type:text" json:"aadhaarCardNo"`
	CollegeIDCardNo    string `gorm:"type:text;column:college_id_card_no" json:"collegeIdCardNo"`
	AadhaarCardFrontURL string `gorm:"type:text" json:"aadhaarCardFrontUrl"`
	AadhaarCardBackURL  string `gorm:"type:text" json:"aadhaarCardBackUrl"`
	CollegeIDCardURL    string `gorm:"type:text;column:college_id_card_url" json:"collegeIdCardUrl"`
	PassportPhotoURL    string `gorm:"type:text" json:"passportPhotoUrl"`
	SignatureURL        string `gorm:"type:text" json:"signatureUrl"`

	AgreeToRules bool `gorm:"not null;default:false" json:"agreeToRules"`
}

// DocumentURLs lists every blob-stored file attached to the record, for
// cleanup on deletion.
func (c *StudentCore) DocumentURLs() []string {
	urls := []string{
		c.AadhaarCardFrontURL,
		c.AadhaarCardBackURL,
		c.CollegeIDCardURL,
		c.PassportPhotoURL,
		c.SignatureURL,
	}
	out := urls[:0]
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Student is the master admission record: one row per admitted person,
// independent of active/inactive state.
//
// Invariant: IsActive == true exactly when ActiveID references an existing
// active candidate whose MasterID points back here.
type Student struct {
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"id"`

	StudentCore `gorm:"embedded"`

	IsActive bool       `gorm:"not null;default:false" json:"isActive"`
	ActiveID *uuid.UUID `gorm:"type:uuid" json:"activeId"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Student) TableName() string { return "students" }

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.StudentID == uuid.Nil {
		s.StudentID = uuid.New()
	}
	return nil
}
