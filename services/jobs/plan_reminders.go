package jobs

import (
	"context"
	"fmt"
	"time"

	"social_cases_go/config"
	"social_cases_go/logger"
	"social_cases_go/metrics"
	"social_cases_go/models"
	"social_cases_go/services"
	"social_cases_go/services/enrichment"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// reminderWindow is how far ahead of a plan's next date its professional is reminded
const reminderWindow = 24 * time.Hour

// StartScheduler schedules the plan reminder job on cfg.ReminderCron in cfg.Timezone.
// The returned cron must be stopped on shutdown.
func StartScheduler(database *gorm.DB, gw enrichment.Gateway, cfg *config.Config) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Log.Warnw("[CRON] Unknown timezone, using UTC", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.ReminderCron, func() {
		logger.Log.Info("[CRON] Running intervention plan reminders")
		SendPlanReminders(context.Background(), database, gw, cfg, time.Now().UTC())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule plan reminders: %w", err)
	}

	c.Start()
	logger.Log.Infow("[CRON] Scheduler started", "schedule", cfg.ReminderCron, "timezone", loc.String())
	return c, nil
}

// SendPlanReminders emails the professional of every plan due within the next
// 24 hours that has not been reminded yet. It returns the number of emails sent.
func SendPlanReminders(ctx context.Context, database *gorm.DB, gw enrichment.Gateway, cfg *config.Config, now time.Time) int {
	plans, err := services.PlansDueForReminder(database, now, now.Add(reminderWindow))
	if err != nil {
		logger.Log.Errorw("[JOB] Error fetching plans for reminders", "error", err)
		return 0
	}

	logger.Log.Infow("[JOB] Plans to remind", "count", len(plans))

	sent := 0
	for _, plan := range plans {
		if err := remindPlan(ctx, database, gw, cfg, plan); err != nil {
			metrics.RemindersSent.WithLabelValues("error").Inc()
			logger.Log.Warnw("[JOB] Failed to send plan reminder", "plan_id", plan.ID, "error", err)
			continue
		}

		if err := services.MarkReminderSent(database, plan.ID, time.Now().UTC()); err != nil {
			logger.Log.Errorw("[JOB] Failed to mark reminder as sent", "plan_id", plan.ID, "error", err)
		}
		metrics.RemindersSent.WithLabelValues("sent").Inc()
		sent++
	}

	logger.Log.Infow("[JOB] Plan reminder job completed", "sent", sent)
	return sent
}

func remindPlan(ctx context.Context, database *gorm.DB, gw enrichment.Gateway, cfg *config.Config, plan models.InterventionPlan) error {
	user, err := gw.GetUser(ctx, cfg.ServiceToken, plan.ProfessionalID)
	if err != nil {
		return err
	}
	if user.Email == "" {
		return fmt.Errorf("professional %d has no email", plan.ProfessionalID)
	}

	var employeeNames string
	if socialCase, err := services.GetSocialCase(database, plan.SocialCaseID); err == nil {
		employeeNames = socialCase.EmployeeNames
	}

	professionalName := user.FullName()
	if professionalName == "" {
		professionalName = plan.ProfessionalNames
	}

	email, err := services.BuildPlanReminderEmail(user.Email, services.PlanReminderEmailData{
		ProfessionalName: professionalName,
		ManagementName:   plan.ManagementName,
		Frequency:        plan.Frequency,
		Date:             plan.NextDate.Format("02-01-2006 15:04"),
		SocialCaseID:     plan.SocialCaseID,
		EmployeeNames:    employeeNames,
	})
	if err != nil {
		return err
	}

	return services.SendEmail(cfg, email)
}
