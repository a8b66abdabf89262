package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/support/model"
	helper "hostelku_backend/internals/helpers"
	"hostelku_backend/internals/helpers/oss"
)

type SupportController struct {
	DB   *gorm.DB
	Blob oss.BlobService
}

func NewSupportController(db *gorm.DB, blob oss.BlobService) *SupportController {
	return &SupportController{DB: db, Blob: blob}
}

type submitSupportRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=2"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	MobileNo string `json:"mobileNo" form:"mobileNo"`
	Subject  string `json:"subject" form:"subject" validate:"required"`
	Message  string `json:"message" form:"message" validate:"required"`
}

// POST /technical-support (multipart: optional screenshot)
func (ctl *SupportController) SubmitQuery(c *fiber.Ctx) error {
	var req submitSupportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	query := model.SupportQuery{
		Name:     req.Name,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		Subject:  req.Subject,
		Message:  req.Message,
		Status:   model.SupportStatusPending,
	}

	if fh, err := c.FormFile("screenshot"); err == nil {
		url, err := ctl.Blob.UploadImage(c.Context(), "support", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to upload screenshot")
		}
		query.ScreenshotURL = url
	}

	if err := ctl.DB.WithContext(c.Context()).Create(&query).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save support query")
	}
	return helper.JsonCreated(c, "support query submitted", query)
}

// GET /technical-support?status=&page=&per_page=
func (ctl *SupportController) GetQueries(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.WithContext(c.Context()).Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit)
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var queries []model.SupportQuery
	if err := q.Find(&queries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch support queries")
	}
	return helper.JsonOK(c, "support queries", queries)
}

type updateSupportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending resolved"`
}

// PUT /technical-support/:id/status
func (ctl *SupportController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query id")
	}
	var req updateSupportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.SupportQuery{}).
		Where("support_query_id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update support query")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "support query not found")
	}
	return helper.JsonUpdated(c, "support query updated", fiber.Map{"id": id, "status": req.Status})
}
