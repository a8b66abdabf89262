package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/attendance/model"
	helper "hostelku_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

type takeAttendanceRequest struct {
	Date    string   `json:"date" validate:"required,datetime=2006-01-02"`
	Present []string `json:"present" validate:"required"`
	TakenBy string   `json:"takenBy"`
}

// TakeFood and TakeDaily share one implementation; absentees are derived as
// every current active candidate not in the present list.
func (ctl *AttendanceController) TakeFood(c *fiber.Ctx) error {
	return ctl.take(c, model.AttendanceTypeFood)
}

func (ctl *AttendanceController) TakeDaily(c *fiber.Ctx) error {
	return ctl.take(c, model.AttendanceTypeDaily)
}

func (ctl *AttendanceController) take(c *fiber.Ctx, attendanceType string) error {
	var req takeAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var candidates []admissionModel.ActiveCandidate
	if err := ctl.DB.WithContext(c.Context()).
		Select("active_candidate_id").
		Find(&candidates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch active candidates")
	}

	present := map[string]bool{}
	for _, id := range req.Present {
		present[strings.TrimSpace(id)] = true
	}

	absent := []string{}
	for _, cand := range candidates {
		id := cand.ActiveCandidateID.String()
		if !present[id] {
			absent = append(absent, id)
		}
	}

	row := model.Attendance{
		AttendanceDate:    req.Date,
		AttendanceType:    attendanceType,
		AttendancePresent: pq.StringArray(req.Present),
		AttendanceAbsent:  pq.StringArray(absent),
		AttendanceTakenBy: req.TakenBy,
	}
	err := ctl.DB.WithContext(c.Context()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attendance_date"}, {Name: "attendance_type"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save attendance")
	}
	return helper.JsonCreated(c, "attendance saved", row)
}

func (ctl *AttendanceController) GetFood(c *fiber.Ctx) error {
	return ctl.get(c, model.AttendanceTypeFood)
}

func (ctl *AttendanceController) GetDaily(c *fiber.Ctx) error {
	return ctl.get(c, model.AttendanceTypeDaily)
}

// GET /get-*-attendance?date=
func (ctl *AttendanceController) get(c *fiber.Ctx, attendanceType string) error {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "date is required")
	}

	var row model.Attendance
	err := ctl.DB.WithContext(c.Context()).
		First(&row, "attendance_date = ? AND attendance_type = ?", date, attendanceType).Error
	if err == gorm.ErrRecordNotFound {
		return helper.JsonError(c, fiber.StatusNotFound, "attendance not taken for this date")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch attendance")
	}
	return helper.JsonOK(c, "attendance", row)
}

// GET /download-attendance-excel?from=&to=
func (ctl *AttendanceController) DownloadExcel(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).Order("attendance_date, attendance_type")
	if from := strings.TrimSpace(c.Query("from")); from != "" {
		q = q.Where("attendance_date >= ?", from)
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		q = q.Where("attendance_date <= ?", to)
	}

	var rows []model.Attendance
	if err := q.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch attendance")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Type", "Present", "Absent", "Taken By"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []interface{}{
			row.AttendanceDate,
			row.AttendanceType,
			len(row.AttendancePresent),
			len(row.AttendanceAbsent),
			row.AttendanceTakenBy,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="attendance.xlsx"`)
	return c.Send(buf.Bytes())
}
