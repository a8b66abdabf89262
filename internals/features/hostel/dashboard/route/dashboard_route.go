package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/dashboard/controller"
)

func DashboardRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)

	api.Get("/get-dashboard-counters", ctl.GetCounters)
	api.Post("/recount-dashboard-counters", ctl.Recount)
}
