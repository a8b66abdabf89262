package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/admissions/dto"
	"hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/admissions/service"
	helper "hostelku_backend/internals/helpers"
	"hostelku_backend/internals/helpers/oss"
)

type AdmissionController struct {
	DB      *gorm.DB
	Service *service.LifecycleService
	Blob    oss.BlobService
}

func NewAdmissionController(db *gorm.DB, blob oss.BlobService) *AdmissionController {
	return &AdmissionController{
		DB:      db,
		Service: service.NewLifecycleService(db, blob),
		Blob:    blob,
	}
}

// documentFields maps multipart part names to document URL columns.
var documentFields = []struct {
	part string
	set  func(*model.StudentCore, string)
}{
	{"aadhaarCardFront", func(c *model.StudentCore, u string) { c.AadhaarCardFrontURL = u }},
	{"aadhaarCardBack", func(c *model.StudentCore, u string) { c.AadhaarCardBackURL = u }},
	{"collegeIdCard", func(c *model.StudentCore, u string) { c.CollegeIDCardURL = u }},
	{"passportPhoto", func(c *model.StudentCore, u string) { c.PassportPhotoURL = u }},
}

// POST /new-admission (multipart)
func (ctl *AdmissionController) NewAdmission(c *fiber.Ctx) error {
	var req dto.CreateAdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	core := req.ToCore()

	for _, doc := range documentFields {
		fh, err := c.FormFile(doc.part)
		if err != nil {
			continue
		}
		url, err := ctl.Blob.UploadImage(c.Context(), "documents", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, fmt.Sprintf("failed to upload %s", doc.part))
		}
		doc.set(&core, url)
	}

	if sig := strings.TrimSpace(c.FormValue("signature")); sig != "" {
		url, err := ctl.Blob.UploadSignaturePNG(c.Context(), "signatures", sig)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid signature image")
		}
		core.SignatureURL = url
	}

	student, err := ctl.Service.CreateAdmission(c.Context(), core)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save admission")
	}
	return helper.JsonCreated(c, "admission saved", student)
}

// GET /get-masterdata?limit=&lastDocId=&searchTerm=
func (ctl *AdmissionController) GetMasterData(c *fiber.Ctx) error {
	search := strings.ToLower(strings.TrimSpace(c.Query("searchTerm")))
	limit := c.QueryInt("limit", 0)
	lastDocID := strings.TrimSpace(c.Query("lastDocId"))

	q := ctl.DB.WithContext(c.Context()).Model(&model.Student{}).Order("student_id")

	if search == "" {
		if lastDocID != "" {
			q = q.Where("student_id > ?", lastDocID)
		}
		if limit > 0 {
			q = q.Limit(limit)
		}
	}

	var students []model.Student
	if err := q.Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch masterdata")
	}

	if search != "" {
		filtered := students[:0]
		for _, s := range students {
			if strings.Contains(strings.ToLower(s.FullName), search) ||
				strings.Contains(s.MobileNo, search) ||
				strings.Contains(strings.ToLower(s.RoomNo), search) {
				filtered = append(filtered, s)
			}
		}
		students = filtered
		return helper.JsonList(c, students, "", false)
	}

	lastID := ""
	if len(students) > 0 {
		lastID = students[len(students)-1].StudentID.String()
	}
	hasMore := limit > 0 && len(students) == limit
	return helper.JsonList(c, students, lastID, hasMore)
}

// GET /get-student/:id
func (ctl *AdmissionController) GetStudentByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	var student model.Student
	if err := ctl.DB.WithContext(c.Context()).First(&student, "student_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "candidate not found in masterdata")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch student")
	}
	return helper.JsonOK(c, "student", student)
}

// PUT /update-admission/:id
func (ctl *AdmissionController) UpdateAdmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	var req dto.UpdateAdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	student, err := ctl.Service.UpdateAdmission(c.Context(), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "admission updated", student)
}

// DELETE /delete-admission/:id
func (ctl *AdmissionController) DeleteAdmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	if err := ctl.Service.DeleteAdmission(c.Context(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "admission deleted", fiber.Map{"id": id})
}

type uploadSignatureRequest struct {
	Signature string `json:"signature" validate:"required"`
}

// POST /upload-signature: stores a base64 PNG data URL and returns its
// public URL.
func (ctl *AdmissionController) UploadSignature(c *fiber.Ctx) error {
	var req uploadSignatureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	url, err := ctl.Blob.UploadSignaturePNG(c.Context(), "signatures", req.Signature)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid signature image")
	}
	return helper.JsonCreated(c, "signature uploaded", fiber.Map{"url": url})
}

// GET /download-masterdata-excel
func (ctl *AdmissionController) ExportMasterData(c *fiber.Ctx) error {
	var students []model.Student
	if err := ctl.DB.WithContext(c.Context()).Order("full_name").Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch masterdata")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "MasterData"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Full Name", "Mobile No", "Email", "Room No", "Date Of Admission", "Fees Amount", "Security Deposit", "Total Amount", "Active"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, s := range students {
		active := "No"
		if s.IsActive {
			active = "Yes"
		}
		values := []interface{}{s.FullName, s.MobileNo, s.Email, s.RoomNo, s.DateOfAdmission, s.FeesAmount, s.SecurityDeposit, s.TotalAmount, active}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="masterdata.xlsx"`)
	return c.Send(buf.Bytes())
}
