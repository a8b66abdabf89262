package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/attendance/controller"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)

	api.Post("/take-food-attendance", ctl.TakeFood)
	api.Get("/get-food-attendance", ctl.GetFood)
	api.Post("/take-daily-attendance", ctl.TakeDaily)
	api.Get("/get-daily-attendance", ctl.GetDaily)
	api.Get("/download-attendance-excel", ctl.DownloadExcel)
}
