package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/fees/controller"
	"hostelku_backend/internals/helpers/mailer"
)

func FeesRoutes(api fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctl := controller.NewFeesController(db, m)

	api.Post("/add-monthly-fees-status", ctl.AddMonthlyFeesStatus)
	api.Post("/apply-penalties", ctl.ApplyFeePenalties)
	api.Put("/update-fees-status", ctl.UpdateFeesStatus)
	api.Get("/get-fees-status/:id", ctl.GetFeesStatus)
	api.Post("/send-fees-remainder", ctl.SendFeeReminders)
	api.Post("/download-month-invoice", ctl.DownloadMonthInvoice)
	api.Post("/send-invoice-email", ctl.SendInvoiceEmail)
}
