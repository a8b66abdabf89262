package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/occupancy/service"
	helper "hostelku_backend/internals/helpers"
)

type RoomController struct {
	Ledger *service.RoomLedger
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{Ledger: service.NewRoomLedger(db)}
}

// GET /get-room-counters?limit=&lastRoomNo=&floor=&searchTerm=
func (ctl *RoomController) GetRoomCounters(c *fiber.Ctx) error {
	opts := service.ListOptions{
		Limit:      c.QueryInt("limit", 0),
		LastRoomNo: strings.TrimSpace(c.Query("lastRoomNo")),
		Floor:      strings.TrimSpace(c.Query("floor")),
		SearchTerm: strings.TrimSpace(c.Query("searchTerm")),
	}
	counters, lastNo, hasMore, err := ctl.Ledger.List(c.Context(), opts)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch room counters")
	}
	return helper.JsonList(c, counters, lastNo, hasMore)
}

// GET /get-room-configurations
func (ctl *RoomController) GetRoomConfigurations(c *fiber.Ctx) error {
	layout, err := ctl.Ledger.Configurations(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch room configurations")
	}
	return helper.JsonOK(c, "room configurations", layout)
}

// POST /initialize-room-status
func (ctl *RoomController) InitializeRoomStatus(c *fiber.Ctx) error {
	created, err := ctl.Ledger.Initialize(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to initialize room status")
	}
	return helper.JsonOK(c, "room status initialized", fiber.Map{"roomsCreated": created})
}

// POST /reset-room-counters
func (ctl *RoomController) ResetRoomCounters(c *fiber.Ctx) error {
	affected, err := ctl.Ledger.ResetAll(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to reset room counters")
	}
	return helper.JsonOK(c, "room counters reset", fiber.Map{"roomsReset": affected})
}

type updateCounterRequest struct {
	RoomNo    string `json:"roomNo" validate:"required"`
	Operation string `json:"operation" validate:"required,oneof=increment decrement"`
}

// POST /update-room-counter
func (ctl *RoomController) UpdateRoomCounter(c *fiber.Ctx) error {
	var req updateCounterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var err error
	if req.Operation == "increment" {
		err = ctl.Ledger.Increment(c.Context(), req.RoomNo)
	} else {
		err = ctl.Ledger.Decrement(c.Context(), req.RoomNo)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update room counter")
	}

	count, err := ctl.Ledger.Count(c.Context(), req.RoomNo)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to read room counter")
	}
	return helper.JsonUpdated(c, "room counter updated", fiber.Map{
		"roomNo":  req.RoomNo,
		"counter": count,
	})
}
