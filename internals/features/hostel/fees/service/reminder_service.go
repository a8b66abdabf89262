package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostelku_backend/internals/configs"
	admissionModel "hostelku_backend/internals/features/hostel/admissions/model"
	"hostelku_backend/internals/features/hostel/fees/model"
	"hostelku_backend/internals/helpers/mailer"
)

// ReminderService mails pending-fee reminders with an invoice PDF attached.
type ReminderService struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
}

func NewReminderService(db *gorm.DB, m mailer.Mailer) *ReminderService {
	return &ReminderService{DB: db, Mailer: m}
}

// ReminderReport summarises one reminder run.
type ReminderReport struct {
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// SendReminders mails every active candidate that has unpaid months at or
// before now. Duplicate email addresses get one combined mail per address
// per run. Per-recipient failures are collected, not fatal.
func (s *ReminderService) SendReminders(ctx context.Context, now time.Time) (ReminderReport, error) {
	var report ReminderReport

	var candidates []admissionModel.ActiveCandidate
	if err := s.DB.WithContext(ctx).Find(&candidates).Error; err != nil {
		return report, err
	}

	cutoff := model.NewMonthKey(now)
	seen := map[string]bool{}

	for i := range candidates {
		cand := &candidates[i]

		email := strings.ToLower(strings.TrimSpace(cand.Email))
		if email == "" {
			report.Skipped++
			continue
		}
		if seen[email] {
			report.Skipped++
			continue
		}

		fees := cand.FeesStatus.Data()
		if fees == nil {
			report.Skipped++
			continue
		}
		pending := fees.PendingMonths(cutoff)
		if len(pending) == 0 {
			report.Skipped++
			continue
		}
		seen[email] = true

		var attachments []mailer.Attachment
		if invoice, err := BuildInvoicePDF(cand, pending, now); err == nil {
			attachments = append(attachments, mailer.Attachment{
				Filename:    "invoice.pdf",
				Content:     invoice,
				ContentType: "application/pdf",
			})
		} else {
			log.Printf("[FEES] invoice for %s failed: %v", cand.ActiveCandidateID, err)
		}

		subject := fmt.Sprintf("%s - Fee Payment Reminder", configs.HostelName)
		if err := s.Mailer.Send(email, subject, reminderHTML(cand, pending), attachments...); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		report.Sent++
	}
	return report, nil
}

// PendingFor loads one candidate and its unpaid months up to now.
func (s *ReminderService) PendingFor(ctx context.Context, activeID uuid.UUID, now time.Time) (*admissionModel.ActiveCandidate, []model.PendingMonth, error) {
	var cand admissionModel.ActiveCandidate
	if err := s.DB.WithContext(ctx).First(&cand, "active_candidate_id = ?", activeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "active candidate not found")
		}
		return nil, nil, err
	}
	fees := cand.FeesStatus.Data()
	if fees == nil {
		fees = model.FeesStatus{}
	}
	return &cand, fees.PendingMonths(model.NewMonthKey(now)), nil
}

// SendInvoice mails one candidate their pending-fees invoice on demand.
func (s *ReminderService) SendInvoice(ctx context.Context, activeID uuid.UUID, now time.Time) error {
	cand, pending, err := s.PendingFor(ctx, activeID, now)
	if err != nil {
		return err
	}
	if strings.TrimSpace(cand.Email) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "candidate has no email address")
	}
	if len(pending) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no pending fees for this candidate")
	}

	invoice, err := BuildInvoicePDF(cand, pending, now)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s - Fee Invoice", configs.HostelName)
	return s.Mailer.Send(strings.ToLower(strings.TrimSpace(cand.Email)), subject,
		reminderHTML(cand, pending),
		mailer.Attachment{Filename: "invoice.pdf", Content: invoice, ContentType: "application/pdf"})
}

func reminderHTML(cand *admissionModel.ActiveCandidate, pending []model.PendingMonth) string {
	var b strings.Builder
	grand := 0.0

	fmt.Fprintf(&b, "<p>Dear %s,</p>", cand.FullName)
	b.WriteString("<p>The following hostel fees are pending against your name:</p>")
	b.WriteString(`<table border="1" cellpadding="6" cellspacing="0">`)
	b.WriteString("<tr><th>Month</th><th>Fees (Rs)</th><th>Penalty (Rs)</th><th>Total (Rs)</th></tr>")
	for _, p := range pending {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%.2f</td><td>%.2f</td><td>%.2f</td></tr>",
			p.Month, p.Amount, p.PenaltyAmount, p.TotalAmount)
		grand += p.TotalAmount
	}
	fmt.Fprintf(&b, `<tr><td><b>Grand Total</b></td><td colspan="3"><b>%.2f</b></td></tr>`, grand)
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>Please clear the dues before the 5th to avoid a late fee of Rs %d per month.</p>", model.MonthlyPenaltyAmount)
	fmt.Fprintf(&b, "<p>Regards,<br>%s<br>%s</p>", configs.HostelName, configs.HostelPhone)
	return b.String()
}
