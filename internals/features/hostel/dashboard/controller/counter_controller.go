package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/dashboard/service"
	helper "hostelku_backend/internals/helpers"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Service: service.NewDashboardService(db)}
}

// GET /get-dashboard-counters
func (ctl *DashboardController) GetCounters(c *fiber.Ctx) error {
	row, err := ctl.Service.Read(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to read dashboard counters")
	}
	return helper.JsonOK(c, "dashboard counters", fiber.Map{
		"masterdatacount":    row.MasterdataCount,
		"activestudentcount": row.ActiveStudentCount,
	})
}

// POST /recount-dashboard-counters
func (ctl *DashboardController) Recount(c *fiber.Ctx) error {
	row, err := ctl.Service.Recount(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to recount dashboard counters")
	}
	return helper.JsonOK(c, "dashboard counters recounted", fiber.Map{
		"masterdatacount":    row.MasterdataCount,
		"activestudentcount": row.ActiveStudentCount,
	})
}
