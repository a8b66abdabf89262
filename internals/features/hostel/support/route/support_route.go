package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/support/controller"
	"hostelku_backend/internals/helpers/oss"
)

func SupportRoutes(api fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctl := controller.NewSupportController(db, blob)

	api.Post("/technical-support", ctl.SubmitQuery)
	api.Get("/technical-support", ctl.GetQueries)
	api.Put("/technical-support/:id/status", ctl.UpdateStatus)
}
