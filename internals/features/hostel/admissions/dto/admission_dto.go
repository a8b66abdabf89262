package dto

import "hostelku_backend/internals/features/hostel/admissions/model"

// CreateAdmissionRequest carries the form fields of a new admission. File
// uploads arrive as multipart parts and are handled by the controller.
type CreateAdmissionRequest struct {
	FullName             string `json:"fullName" form:"fullName" validate:"required,min=2"`
	Email                string `json:"email" form:"email" validate:"omitempty,email"`
	MobileNo             string `json:"mobileNo" form:"mobileNo" validate:"required,min=10,max=15"`
	DateOfAdmission      string `json:"dateOfAdmission" form:"dateOfAdmission" validate:"required"`
	DateOfBirth          string `json:"dateOfBirth" form:"dateOfBirth"`
	Religion             string `json:"religion" form:"religion"`
	BloodGroup           string `json:"bloodGroup" form:"bloodGroup"`
	FathersName          string `json:"fathersName" form:"fathersName"`
	MothersName          string `json:"mothersName" form:"mothersName"`
	FatherMobileNo       string `json:"fatherMobileNo" form:"fatherMobileNo"`
	FatherOccupation     string `json:"fatherOccupation" form:"fatherOccupation"`
	LocalContactDetails  string `json:"localContactDetails" form:"localContactDetails"`
	PermanentAddress     string `json:"permanentAddress" form:"permanentAddress"`
	DepartmentAndCollege string `json:"departmentAndCollege" form:"departmentAndCollege"`

	RoomNo string `json:"roomNo" form:"roomNo" validate:"required"`

	FeesStructure     string  `json:"feesStructure" form:"feesStructure"`
	ContractPeriod    string  `json:"contractPeriod" form:"contractPeriod"`
	FeesAmount        float64 `json:"feesAmount" form:"feesAmount" validate:"gte=0"`
	SecurityDeposit   float64 `json:"securityDeposit" form:"securityDeposit" validate:"gte=0"`
	MaintenanceCharge float64 `json:"maintenanceCharge" form:"maintenanceCharge" validate:"gte=0"`
	RegistrationFees  float64 `json:"registrationFees" form:"registrationFees" validate:"gte=0"`
	TotalAmount       float64 `json:"totalAmount" form:"totalAmount" validate:"gte=0"`

	AadhaarCardNo   string `json:"aadhaarCardNo" form:"aadhaarCardNo"`
	CollegeIDCardNo string `json:"collegeIdCardNo" form:"collegeIdCardNo"`

	AgreeToRules bool `json:"agreeToRules" form:"agreeToRules"`
}

func (r *CreateAdmissionRequest) ToCore() model.StudentCore {
	return model.StudentCore{
		FullName:             r.FullName,
		Email:                r.Email,
		MobileNo:             r.MobileNo,
		DateOfAdmission:      r.DateOfAdmission,
		DateOfBirth:          r.DateOfBirth,
		Religion:             r.Religion,
		BloodGroup:           r.BloodGroup,
		FathersName:          r.FathersName,
		MothersName:          r.MothersName,
		FatherMobileNo:       r.FatherMobileNo,
		FatherOccupation:     r.FatherOccupation,
		LocalContactDetails:  r.LocalContactDetails,
		PermanentAddress:     r.PermanentAddress,
		DepartmentAndCollege: r.DepartmentAndCollege,
		RoomNo:               r.RoomNo,
		FeesStructure:        r.FeesStructure,
		ContractPeriod:       r.ContractPeriod,
		FeesAmount:           r.FeesAmount,
		SecurityDeposit:      r.SecurityDeposit,
		MaintenanceCharge:    r.MaintenanceCharge,
		RegistrationFees:     r.RegistrationFees,
		TotalAmount:          r.TotalAmount,
		AadhaarCardNo:        r.AadhaarCardNo,
		CollegeIDCardNo:      r.CollegeIDCardNo,
		AgreeToRules:         r.AgreeToRules,
	}
}

// UpdateAdmissionRequest is a partial update; only non-nil fields are
// written. Room changes additionally move the occupancy counters when the
// student is active.
type UpdateAdmissionRequest struct {
	FullName             *string `json:"fullName" validate:"omitempty,min=2"`
	Email                *string `json:"email" validate:"omitempty,email"`
	MobileNo             *string `json:"mobileNo" validate:"omitempty,min=10,max=15"`
	DateOfAdmission      *string `json:"dateOfAdmission"`
	DateOfBirth          *string `json:"dateOfBirth"`
	Religion             *string `json:"religion"`
	BloodGroup           *string `json:"bloodGroup"`
	FathersName          *string `json:"fathersName"`
	MothersName          *string `json:"mothersName"`
	FatherMobileNo       *string `json:"fatherMobileNo"`
	FatherOccupation     *string `json:"fatherOccupation"`
	LocalContactDetails  *string `json:"localContactDetails"`
	PermanentAddress     *string `json:"permanentAddress"`
	DepartmentAndCollege *string `json:"departmentAndCollege"`

	RoomNo *string `json:"roomNo"`

	FeesStructure     *string  `json:"feesStructure"`
	ContractPeriod    *string  `json:"contractPeriod"`
	FeesAmount        *float64 `json:"feesAmount" validate:"omitempty,gte=0"`
	SecurityDeposit   *float64 `json:"securityDeposit" validate:"omitempty,gte=0"`
	MaintenanceCharge *float64 `json:"maintenanceCharge" validate:"omitempty,gte=0"`
	RegistrationFees  *float64 `json:"registrationFees" validate:"omitempty,gte=0"`
	TotalAmount       *float64 `json:"totalAmount" validate:"omitempty,gte=0"`

	AadhaarCardNo   *string `json:"aadhaarCardNo"`
	CollegeIDCardNo *string `json:"collegeIdCardNo"`

	AgreeToRules *bool `json:"agreeToRules"`
}

// ToUpdates builds the column map for a partial UPDATE.
func (r *UpdateAdmissionRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	setS := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setF := func(col string, v *float64) {
		if v != nil {
			updates[col] = *v
		}
	}

	setS("full_name", r.FullName)
	setS("email", r.Email)
	setS("mobile_no", r.MobileNo)
	setS("date_of_admission", r.DateOfAdmission)
	setS("date_of_birth", r.DateOfBirth)
	setS("religion", r.Religion)
	setS("blood_group", r.BloodGroup)
	setS("fathers_name", r.FathersName)
	setS("mothers_name", r.MothersName)
	setS("father_mobile_no", r.FatherMobileNo)
	setS("father_occupation", r.FatherOccupation)
	setS("local_contact_details", r.LocalContactDetails)
	setS("permanent_address", r.PermanentAddress)
	setS("department_and_college", r.DepartmentAndCollege)
	setS("room_no", r.RoomNo)
	setS("fees_structure", r.FeesStructure)
	setS("contract_period", r.ContractPeriod)
	setF("fees_amount", r.FeesAmount)
	setF("security_deposit", r.SecurityDeposit)
	setF("maintenance_charge", r.MaintenanceCharge)
	setF("registration_fees", r.RegistrationFees)
	setF("total_amount", r.TotalAmount)
	setS("aadhaar_card_no", r.AadhaarCardNo)
	setS("college_id_card_no", r.CollegeIDCardNo)
	if r.AgreeToRules != nil {
		updates["agree_to_rules"] = *r.AgreeToRules
	}
	return updates
}
