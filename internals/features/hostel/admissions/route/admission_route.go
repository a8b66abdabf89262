package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/features/hostel/admissions/controller"
	"hostelku_backend/internals/helpers/oss"
)

func AdmissionRoutes(api fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctl := controller.NewAdmissionController(db, blob)

	api.Post("/new-admission", ctl.NewAdmission)
	api.Get("/get-masterdata", ctl.GetMasterData)
	api.Get("/get-student/:id", ctl.GetStudentByID)
	api.Put("/update-admission/:id", ctl.UpdateAdmission)
	api.Delete("/delete-admission/:id", ctl.DeleteAdmission)
	api.Get("/download-masterdata-excel", ctl.ExportMasterData)
	api.Post("/upload-signature", ctl.UploadSignature)

	api.Post("/activate-candidate", ctl.ActivateCandidate)
	api.Post("/deactivate-candidate", ctl.DeactivateCandidate)
	api.Get("/get-active-candidates", ctl.GetActiveCandidates)
	api.Get("/get-active-candidate/:id", ctl.GetActiveCandidateByID)
}
