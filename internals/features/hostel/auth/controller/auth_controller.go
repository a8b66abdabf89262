package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/auth/service"
	helper "hostelku_backend/internals/helpers"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Service: service.NewAuthService(db)}
}

type verifyPasswordRequest struct {
	Scope    string `json:"scope" validate:"required,oneof=login penalty reminder"`
	Password string `json:"password" validate:"required"`
}

// POST /verify-password
func (ctl *AuthController) VerifyPassword(c *fiber.Ctx) error {
	var req verifyPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	token, err := ctl.Service.Verify(c.Context(), req.Scope, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	data := fiber.Map{"scope": req.Scope, "verified": true}
	if token != "" {
		data["token"] = token
	}
	return helper.JsonOK(c, "password verified", data)
}
