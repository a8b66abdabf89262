package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/auth/controller"
	"hostelku_backend/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	api.Post("/verify-password", middlewares.VerifyPasswordRateLimiter(), ctl.VerifyPassword)
}
