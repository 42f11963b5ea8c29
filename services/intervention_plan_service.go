package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"social_cases_go/models"
	"social_cases_go/services/enrichment"

	"gorm.io/gorm"
)

const planOrder = "created_at ASC, id ASC"

// PlanInput is the body used to create or update an intervention plan
type PlanInput struct {
	NextDate          *time.Time `json:"nextDate"`
	Frequency         string     `json:"frequency"`
	SocialCaseID      uint       `json:"socialCaseId"`
	ManagementID      uint       `json:"managementId"`
	ManagementName    string     `json:"managementName"`
	ProfessionalID    uint       `json:"professionalId"`
	ProfessionalNames string     `json:"professionalNames"`
}

func (in *PlanInput) validate() error {
	if in.NextDate == nil || in.NextDate.IsZero() {
		return newValidationError("nextDate", "is required")
	}
	if in.SocialCaseID == 0 {
		return newValidationError("socialCaseId", "is required")
	}
	if in.ManagementID == 0 {
		return newValidationError("managementId", "is required")
	}
	if in.ProfessionalID == 0 {
		return newValidationError("professionalId", "is required")
	}
	if strings.TrimSpace(in.Frequency) == "" {
		return newValidationError("frequency", "is required")
	}
	return checkLengths(
		fieldLength{"frequency", strings.TrimSpace(in.Frequency), 15},
		fieldLength{"managementName", in.ManagementName, 120},
		fieldLength{"professionalNames", in.ProfessionalNames, 200},
	)
}

// PlanFilters narrows the plan list
type PlanFilters struct {
	SocialCaseID *uint
	Search       string
}

// CalendarFilters selects plans shown in the calendar
type CalendarFilters struct {
	ProfessionalIDs []uint
	StartDate       *time.Time
	EndDate         *time.Time
}

// PlanDetails is a plan hydrated with its professional and case
type PlanDetails struct {
	models.InterventionPlan
	Professional *enrichment.User        `json:"professional"`
	SocialCase   *SocialCaseWithEmployee `json:"socialCase"`
}

// SocialCaseWithEmployee is a case with its employee record
type SocialCaseWithEmployee struct {
	models.SocialCase
	Employee *enrichment.Employee `json:"employee"`
}

// GetInterventionPlan retrieves an active plan by ID
func GetInterventionPlan(db *gorm.DB, id uint) (*models.InterventionPlan, error) {
	var plan models.InterventionPlan
	if err := db.Where("is_active = ?", true).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// CreateInterventionPlan schedules a follow-up for an existing case
func CreateInterventionPlan(db *gorm.DB, actor Actor, in PlanInput) (*models.InterventionPlan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := GetSocialCase(db, in.SocialCaseID); err != nil {
		return nil, err
	}

	plan := models.InterventionPlan{
		NextDate:          in.NextDate.UTC(),
		Frequency:         strings.TrimSpace(in.Frequency),
		SocialCaseID:      in.SocialCaseID,
		ManagementID:      in.ManagementID,
		ManagementName:    SanitizeText(in.ManagementName),
		ProfessionalID:    in.ProfessionalID,
		ProfessionalNames: SanitizeText(in.ProfessionalNames),
		IsActive:          true,
		CreatedBy:         actor.UserID,
	}
	if err := db.Create(&plan).Error; err != nil {
		return nil, err
	}

	LogAuditEvent(db, actor, models.AuditActionCreate, models.AuditResourceInterventionPlan,
		plan.ID, "Intervention plan created", plan)

	return &plan, nil
}

// UpdateInterventionPlan replaces the editable fields of a plan.
// Moving the next date re-arms its reminder.
func UpdateInterventionPlan(db *gorm.DB, actor Actor, id uint, in PlanInput) (*models.InterventionPlan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	plan, err := GetInterventionPlan(db, id)
	if err != nil {
		return nil, err
	}
	if in.SocialCaseID != plan.SocialCaseID {
		if _, err := GetSocialCase(db, in.SocialCaseID); err != nil {
			return nil, err
		}
	}

	nextDate := in.NextDate.UTC()
	if !nextDate.Equal(plan.NextDate) {
		plan.ReminderSentAt = nil
	}
	plan.NextDate = nextDate
	plan.Frequency = strings.TrimSpace(in.Frequency)
	plan.SocialCaseID = in.SocialCaseID
	plan.ManagementID = in.ManagementID
	plan.ManagementName = SanitizeText(in.ManagementName)
	plan.ProfessionalID = in.ProfessionalID
	plan.ProfessionalNames = SanitizeText(in.ProfessionalNames)

	if err := db.Save(plan).Error; err != nil {
		return nil, err
	}

	LogAuditEvent(db, actor, models.AuditActionUpdate, models.AuditResourceInterventionPlan,
		plan.ID, "Intervention plan updated", plan)

	return plan, nil
}

// CompleteInterventionPlan marks a plan as done
func CompleteInterventionPlan(db *gorm.DB, actor Actor, id uint) (*models.InterventionPlan, error) {
	plan, err := GetInterventionPlan(db, id)
	if err != nil {
		return nil, err
	}
	if plan.IsCompleted {
		return plan, nil
	}

	if err := db.Model(plan).Update("is_completed", true).Error; err != nil {
		return nil, err
	}
	plan.IsCompleted = true

	LogAuditEvent(db, actor, models.AuditActionComplete, models.AuditResourceInterventionPlan,
		plan.ID, "Intervention plan completed", nil)

	return plan, nil
}

// DeleteInterventionPlan deactivates a plan
func DeleteInterventionPlan(db *gorm.DB, actor Actor, id uint) error {
	plan, err := GetInterventionPlan(db, id)
	if err != nil {
		return err
	}

	if err := db.Model(plan).Update("is_active", false).Error; err != nil {
		return err
	}

	LogAuditEvent(db, actor, models.AuditActionDelete, models.AuditResourceInterventionPlan,
		plan.ID, "Intervention plan deactivated", nil)
	return nil
}

// ListInterventionPlans returns a page of active plans matching all filters
func ListInterventionPlans(db *gorm.DB, f PlanFilters, params PageParams) (*Page[models.InterventionPlan], error) {
	query := db.Model(&models.InterventionPlan{}).Where("is_active = ?", true)

	if f.SocialCaseID != nil {
		query = query.Where("social_case_id = ?", *f.SocialCaseID)
	}
	query = wherePrefix(query, f.Search, "management_name", "professional_names")

	return Paginate[models.InterventionPlan](query, planOrder, params)
}

// ListCalendarPlans returns the active plans of the given professionals.
// The day range applies only when both bounds are given.
func ListCalendarPlans(db *gorm.DB, f CalendarFilters) ([]models.InterventionPlan, error) {
	query := db.Where("is_active = ?", true)
	if len(f.ProfessionalIDs) > 0 {
		query = query.Where("professional_id IN ?", f.ProfessionalIDs)
	}
	if f.StartDate != nil && f.EndDate != nil {
		query = whereDayRange(query, "next_date", f.StartDate, f.EndDate)
	}

	plans := make([]models.InterventionPlan, 0)
	err := query.Order("next_date ASC").Order("id ASC").Find(&plans).Error
	return plans, err
}

// GetInterventionPlanDetails loads a plan with its professional and its case's employee
func GetInterventionPlanDetails(ctx context.Context, db *gorm.DB, gw enrichment.Gateway, actor Actor, id uint) (*PlanDetails, error) {
	plan, err := GetInterventionPlan(db, id)
	if err != nil {
		return nil, err
	}

	socialCase, err := GetSocialCase(db, plan.SocialCaseID)
	if err != nil {
		return nil, err
	}

	details := &PlanDetails{
		InterventionPlan: *plan,
		SocialCase:       &SocialCaseWithEmployee{SocialCase: *socialCase},
	}

	if details.Professional, err = gw.GetUser(ctx, actor.Token, plan.ProfessionalID); err != nil {
		return nil, err
	}
	if details.SocialCase.Employee, err = gw.GetEmployee(ctx, actor.Token, socialCase.EmployeeID); err != nil {
		return nil, err
	}

	return details, nil
}

// PlansDueForReminder lists active, incomplete plans due in [from, to) that were not reminded yet
func PlansDueForReminder(db *gorm.DB, from, to time.Time) ([]models.InterventionPlan, error) {
	plans := make([]models.InterventionPlan, 0)
	err := db.Where("is_active = ? AND is_completed = ? AND reminder_sent_at IS NULL", true, false).
		Where("next_date >= ? AND next_date < ?", from, to).
		Order("next_date ASC").
		Find(&plans).Error
	return plans, err
}

// MarkReminderSent records that the plan's professional was notified
func MarkReminderSent(db *gorm.DB, planID uint, at time.Time) error {
	return db.Model(&models.InterventionPlan{}).
		Where("id = ?", planID).
		Update("reminder_sent_at", at).Error
}
