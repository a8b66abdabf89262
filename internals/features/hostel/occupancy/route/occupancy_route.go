package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/occupancy/controller"
)

func OccupancyRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewRoomController(db)

	api.Get("/get-room-counters", ctl.GetRoomCounters)
	api.Get("/get-room-configurations", ctl.GetRoomConfigurations)
	api.Post("/initialize-room-status", ctl.InitializeRoomStatus)
	api.Post("/reset-room-counters", ctl.ResetRoomCounters)
	api.Post("/update-room-counter", ctl.UpdateRoomCounter)
}
