package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/penalties/model"
	"hostelku_backend/internals/features/hostel/penalties/service"
	helper "hostelku_backend/internals/helpers"
	"hostelku_backend/internals/helpers/oss"
)

type PenaltyController struct {
	Service *service.PenaltyService
	Blob    oss.BlobService
}

func NewPenaltyController(db *gorm.DB, blob oss.BlobService) *PenaltyController {
	return &PenaltyController{Service: service.NewPenaltyService(db), Blob: blob}
}

type addPenaltyRequest struct {
	ActiveID  string  `json:"activeId" form:"activeId" validate:"required,uuid4"`
	PenaltyBy string  `json:"penaltyBy" form:"penaltyBy" validate:"required"`
	Reason    string  `json:"reason" form:"reason" validate:"required"`
	PenaltyRs float64 `json:"penaltyRs" form:"penaltyRs" validate:"required,gt=0"`
}

// POST /add-penalty (multipart: optional proof image, optional signature
// data URL)
func (ctl *PenaltyController) AddPenalty(c *fiber.Ctx) error {
	var req addPenaltyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	activeID, err := uuid.Parse(req.ActiveID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid active id")
	}

	entry := model.PenaltyEntry{
		PenaltyBy: req.PenaltyBy,
		Reason:    req.Reason,
		PenaltyRs: req.PenaltyRs,
		Payment:   model.PenaltyPaymentPending,
	}

	if fh, err := c.FormFile("proof"); err == nil {
		url, err := ctl.Blob.UploadImage(c.Context(), "penalties", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to upload proof")
		}
		entry.ProofURL = url
	}
	if sig := strings.TrimSpace(c.FormValue("signature")); sig != "" {
		url, err := ctl.Blob.UploadSignaturePNG(c.Context(), "signatures", sig)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid signature image")
		}
		entry.SignatureURL = url
	}

	index, err := ctl.Service.AddPenalty(c.Context(), activeID, entry)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "penalty added", fiber.Map{
		"activeId": activeID,
		"index":    index,
		"penalty":  entry,
	})
}

type verifyActiveIDRequest struct {
	ActiveID string `json:"activeId" validate:"required,uuid4"`
}

// POST /verify-active-id
func (ctl *PenaltyController) VerifyActiveID(c *fiber.Ctx) error {
	var req verifyActiveIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	activeID, err := uuid.Parse(req.ActiveID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid active id")
	}

	cand, err := ctl.Service.VerifyActiveID(c.Context(), activeID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "active id verified", fiber.Map{
		"activeId": cand.ActiveCandidateID,
		"fullName": cand.FullName,
		"roomNo":   cand.RoomNo,
	})
}

// GET /get-all-penalties
func (ctl *PenaltyController) GetAllPenalties(c *fiber.Ctx) error {
	rows, err := ctl.Service.ListAll(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch penalties")
	}
	return helper.JsonOK(c, "penalties", rows)
}

// GET /get-penalties/:id (one candidate)
func (ctl *PenaltyController) GetPenaltiesByActiveID(c *fiber.Ctx) error {
	activeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid active id")
	}
	entries, err := ctl.Service.ListForActive(c.Context(), activeID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "penalties", entries)
}

type deletePenaltyRequest struct {
	ActiveID string `json:"activeId" validate:"required,uuid4"`
	Index    int    `json:"index" validate:"gte=0"`
}

// POST /delete-penalty
func (ctl *PenaltyController) DeletePenalty(c *fiber.Ctx) error {
	var req deletePenaltyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	activeID, err := uuid.Parse(req.ActiveID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid active id")
	}

	deleted, err := ctl.Service.DeletePenalty(c.Context(), activeID, req.Index)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var cleanup []string
	if deleted.ProofURL != "" {
		cleanup = append(cleanup, deleted.ProofURL)
	}
	if deleted.SignatureURL != "" {
		cleanup = append(cleanup, deleted.SignatureURL)
	}
	if len(cleanup) > 0 {
		ctl.Blob.DeleteManyByPublicURL(c.Context(), cleanup)
	}
	return helper.JsonDeleted(c, "penalty deleted", fiber.Map{"activeId": activeID, "index": req.Index})
}

type updatePenaltyPaymentRequest struct {
	ActiveID string `json:"activeId" validate:"required,uuid4"`
	Index    int    `json:"index" validate:"gte=0"`
	Payment  string `json:"payment" validate:"required,oneof=Pending Complete"`
}

// POST /update-payment-status
func (ctl *PenaltyController) UpdatePenaltyPayment(c *fiber.Ctx) error {
	var req updatePenaltyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	activeID, err := uuid.Parse(req.ActiveID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid active id")
	}

	if err := ctl.Service.UpdatePaymentStatus(c.Context(), activeID, req.Index, req.Payment); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "penalty payment updated", fiber.Map{
		"activeId": activeID,
		"index":    req.Index,
		"payment":  req.Payment,
	})
}
