package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"hostelku_backend/internals/configs"
	feesService "hostelku_backend/internals/features/hostel/fees/service"
	"hostelku_backend/internals/helpers/mailer"
)

// Start registers the monthly fee jobs:
//   - 1st 00:01  seed the new month as Not Paid
//   - 1st-4th 09:00  mail payment reminders
//   - 5th 03:00  apply late fees, then mail updated reminders
//
// All schedules run in the hostel's timezone and can be overridden per job
// via env.
func Start(db *gorm.DB, m mailer.Mailer) *cron.Cron {
	tzName := configs.GetEnv("CRON_TZ", "Asia/Kolkata")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("[CRON] unknown timezone %q, using UTC", tzName)
		loc = time.UTC
	}

	fees := feesService.NewFeesService(db)
	reminders := feesService.NewReminderService(db, m)

	c := cron.New(cron.WithLocation(loc))

	mustAdd(c, configs.GetEnv("CRON_ROLLOVER", "1 0 1 * *"), "monthly-rollover", func() {
		ctx, cancel := jobContext()
		defer cancel()
		report, err := fees.Rollover(ctx, time.Now().In(loc))
		if err != nil {
			log.Printf("[CRON] rollover failed: %v", err)
			return
		}
		log.Printf("[CRON] rollover done: %d/%d updated", report.Updated, report.Processed)
	})

	mustAdd(c, configs.GetEnv("CRON_REMINDERS", "0 9 1-4 * *"), "fee-reminders", func() {
		ctx, cancel := jobContext()
		defer cancel()
		report, err := reminders.SendReminders(ctx, time.Now().In(loc))
		if err != nil {
			log.Printf("[CRON] reminders failed: %v", err)
			return
		}
		log.Printf("[CRON] reminders done: sent=%d failed=%d skipped=%d", report.Sent, report.Failed, report.Skipped)
	})

	mustAdd(c, configs.GetEnv("CRON_PENALTIES", "0 3 5 * *"), "fee-penalties", func() {
		ctx, cancel := jobContext()
		defer cancel()
		now := time.Now().In(loc)
		report, err := fees.ApplyPenalties(ctx, now)
		if err != nil {
			log.Printf("[CRON] penalties failed: %v", err)
			return
		}
		log.Printf("[CRON] penalties done: %d/%d updated", report.Updated, report.Processed)

		mailReport, err := reminders.SendReminders(ctx, now)
		if err != nil {
			log.Printf("[CRON] post-penalty reminders failed: %v", err)
			return
		}
		log.Printf("[CRON] post-penalty reminders: sent=%d failed=%d", mailReport.Sent, mailReport.Failed)
	})

	c.Start()
	log.Printf("[CRON] scheduler started in %s", loc)
	return c
}

func mustAdd(c *cron.Cron, spec, name string, job func()) {
	if _, err := c.AddFunc(spec, job); err != nil {
		log.Fatalf("[CRON] bad schedule for %s (%q): %v", name, spec, err)
	}
}

func jobContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Minute)
}
