package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/fees/model"
	"hostelku_backend/internals/features/hostel/fees/service"
	helper "hostelku_backend/internals/helpers"
	"hostelku_backend/internals/helpers/mailer"
)

type FeesController struct {
	Service   *service.FeesService
	Reminders *service.ReminderService
}

func NewFeesController(db *gorm.DB, m mailer.Mailer) *FeesController {
	return &FeesController{
		Service:   service.NewFeesService(db),
		Reminders: service.NewReminderService(db, m),
	}
}

// POST /add-monthly-fees-status
func (ctl *FeesController) AddMonthlyFeesStatus(c *fiber.Ctx) error {
	report, err := ctl.Service.Rollover(c.Context(), time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to add monthly fees status")
	}
	return helper.JsonOK(c, "monthly fees status added", report)
}

// POST /apply-penalties
func (ctl *FeesController) ApplyFeePenalties(c *fiber.Ctx) error {
	report, err := ctl.Service.ApplyPenalties(c.Context(), time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to apply fee penalties")
	}
	return helper.JsonOK(c, "fee penalties applied", report)
}

type updateFeesStatusRequest struct {
	ActiveID   string           `json:"activeId" validate:"required,uuid4"`
	FeesStatus model.FeesStatus `json:"feesStatus" validate:"required"`
}

// PUT /update-fees-status: the admin edits the ledger client-side and sends
// the whole map back.
func (ctl *FeesController) UpdateFeesStatus(c *fiber.Ctx) error {
	var req updateFeesStatusRequest
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

	fees, err := ctl.Service.UpdateFeesStatus(c.Context(), activeID, req.FeesStatus)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "fees status updated", fees)
}

// GET /get-fees-status/:id
func (ctl *FeesController) GetFeesStatus(c *fiber.Ctx) error {
	activeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid active id")
	}
	fees, err := ctl.Service.GetFeesStatus(c.Context(), activeID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "fees status", fees)
}

// POST /send-fees-remainder
func (ctl *FeesController) SendFeeReminders(c *fiber.Ctx) error {
	report, err := ctl.Reminders.SendReminders(c.Context(), time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to send fee reminders")
	}
	return helper.JsonOK(c, "fee reminders processed", report)
}

type invoiceRequest struct {
	ActiveID string `json:"activeId" validate:"required,uuid4"`
}

// POST /download-month-invoice
func (ctl *FeesController) DownloadMonthInvoice(c *fiber.Ctx) error {
	var req invoiceRequest
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

	now := time.Now()
	cand, pending, err := ctl.Reminders.PendingFor(c.Context(), activeID, now)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(pending) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "no pending fees for this candidate")
	}

	invoice, err := service.BuildInvoicePDF(cand, pending, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to build invoice")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice.pdf"`)
	return c.Send(invoice)
}

// POST /send-invoice-email
func (ctl *FeesController) SendInvoiceEmail(c *fiber.Ctx) error {
	var req invoiceRequest
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

	if err := ctl.Reminders.SendInvoice(c.Context(), activeID, time.Now()); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "invoice sent", fiber.Map{"activeId": activeID})
}
