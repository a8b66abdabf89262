package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/admissions/model"
	helper "hostelku_backend/internals/helpers"
)

type activateRequest struct {
	MasterID string `json:"masterId" validate:"required,uuid4"`
}

// POST /activate-candidate
func (ctl *AdmissionController) ActivateCandidate(c *fiber.Ctx) error {
	var req activateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	masterID, err := uuid.Parse(req.MasterID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid master id")
	}

	candidate, err := ctl.Service.Activate(c.Context(), masterID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "candidate activated", candidate)
}

type deactivateRequest struct {
	ActiveID string `json:"activeId" validate:"required,uuid4"`
}

// POST /deactivate-candidate
func (ctl *AdmissionController) DeactivateCandidate(c *fiber.Ctx) error {
	var req deactivateRequest
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

	if err := ctl.Service.Deactivate(c.Context(), activeID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "candidate deactivated", fiber.Map{"activeId": activeID})
}

// GET /get-active-candidates?limit=&lastDocId=&searchTerm=
func (ctl *AdmissionController) GetActiveCandidates(c *fiber.Ctx) error {
	search := strings.ToLower(strings.TrimSpace(c.Query("searchTerm")))
	limit := c.QueryInt("limit", 0)
	lastDocID := strings.TrimSpace(c.Query("lastDocId"))

	q := ctl.DB.WithContext(c.Context()).Model(&model.ActiveCandidate{}).Order("active_candidate_id")
	if search == "" {
		if lastDocID != "" {
			q = q.Where("active_candidate_id > ?", lastDocID)
		}
		if limit > 0 {
			q = q.Limit(limit)
		}
	}

	var candidates []model.ActiveCandidate
	if err := q.Find(&candidates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch active candidates")
	}

	if search != "" {
		filtered := candidates[:0]
		for _, cand := range candidates {
			if strings.Contains(strings.ToLower(cand.FullName), search) ||
				strings.Contains(cand.MobileNo, search) ||
				strings.Contains(strings.ToLower(cand.RoomNo), search) {
				filtered = append(filtered, cand)
			}
		}
		candidates = filtered
		return helper.JsonList(c, candidates, "", false)
	}

	lastID := ""
	if len(candidates) > 0 {
		lastID = candidates[len(candidates)-1].ActiveCandidateID.String()
	}
	hasMore := limit > 0 && len(candidates) == limit
	return helper.JsonList(c, candidates, lastID, hasMore)
}

// GET /get-active-candidate/:id
func (ctl *AdmissionController) GetActiveCandidateByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid active id")
	}
	var candidate model.ActiveCandidate
	if err := ctl.DB.WithContext(c.Context()).First(&candidate, "active_candidate_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "active candidate not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch active candidate")
	}
	return helper.JsonOK(c, "active candidate", candidate)
}
