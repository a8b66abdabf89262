package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/penalties/controller"
	"hostelku_backend/internals/helpers/oss"
)

func PenaltyRoutes(api fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctl := controller.NewPenaltyController(db, blob)

	api.Post("/verify-active-id", ctl.VerifyActiveID)
	api.Post("/add-penalty", ctl.AddPenalty)
	api.Get("/get-all-penalties", ctl.GetAllPenalties)
	api.Get("/get-penalties/:id", ctl.GetPenaltiesByActiveID)
	api.Post("/delete-penalty", ctl.DeletePenalty)
	api.Post("/update-payment-status", ctl.UpdatePenaltyPayment)
}
