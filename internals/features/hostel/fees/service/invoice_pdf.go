package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/configs"
	"hostelku_backend/internals/features/hostel/fees/model"
)

// BuildInvoicePDF renders the pending-fees invoice attached to reminder
// mails.
func BuildInvoicePDF(cand *admissionModel.ActiveCandidate, pending []model.PendingMonth, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fee Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, configs.HostelName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, configs.HostelAddress, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Phone: %s | Email: %s", configs.HostelPhone, configs.HostelEmail), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "PENDING FEES INVOICE", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", now.Format("02 Jan 2006")), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.CellFormat(0, 6, fmt.Sprintf("Name: %s", cand.FullName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Room No: %s", cand.RoomNo), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Mobile: %s", cand.MobileNo), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(60, 8, "Month", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Fees (Rs)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Penalty (Rs)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Total (Rs)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	grand := 0.0
	for _, p := range pending {
		pdf.CellFormat(60, 8, p.Month, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", p.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", p.PenaltyAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", p.TotalAmount), "1", 1, "R", false, 0, "")
		grand += p.TotalAmount
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(140, 8, "Grand Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", grand), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Kindly clear the pending amount at the earliest to avoid further penalties.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
