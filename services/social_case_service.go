package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"social_cases_go/logger"
	"social_cases_go/metrics"
	"social_cases_go/models"
	"social_cases_go/services/enrichment"

	"gorm.io/gorm"
)

// Enrichment is the gateway to sibling services used by the handlers
var Enrichment enrichment.Gateway

const socialCaseOrder = "created_at DESC, id DESC"

// openStates are the states a case can be derived or closed from
var openStates = []string{models.SocialCaseStateRequested, models.SocialCaseStateAssigned}

// CreateSocialCaseInput is the body of a new social case request
type CreateSocialCaseInput struct {
	Date             *time.Time `json:"date"`
	AssistanceID     uint       `json:"assistanceId"`
	ProfessionalID   uint       `json:"professionalId"`
	EmployeeRut      string     `json:"employeeRut"`
	EmployeeID       uint       `json:"employeeId"`
	EmployeeNames    string     `json:"employeeNames"`
	BusinessID       uint       `json:"businessId"`
	BusinessName     string     `json:"businessName"`
	ConstructionID   *uint      `json:"constructionId"`
	ConstructionName *string    `json:"constructionName"`
	AreaID           uint       `json:"areaId"`
	RequestType      string     `json:"requestType"`
}

func (in *CreateSocialCaseInput) validate() error {
	if in.EmployeeID == 0 {
		return newValidationError("employeeId", "is required")
	}
	if in.BusinessID == 0 {
		return newValidationError("businessId", "is required")
	}
	if in.AreaID == 0 {
		return newValidationError("areaId", "is required")
	}
	constructionName := ""
	if in.ConstructionName != nil {
		constructionName = *in.ConstructionName
	}
	return checkLengths(
		fieldLength{"employeeRut", strings.TrimSpace(in.EmployeeRut), 12},
		fieldLength{"employeeNames", in.EmployeeNames, 250},
		fieldLength{"businessName", in.BusinessName, 200},
		fieldLength{"constructionName", constructionName, 255},
		fieldLength{"requestType", in.RequestType, 400},
	)
}

// ProfessionalInput names a professional assigned by a derivation
type ProfessionalInput struct {
	UserID   uint   `json:"userId"`
	FullName string `json:"fullName"`
}

// DeriveInput is the body of a derivation request
type DeriveInput struct {
	Date                *time.Time          `json:"date"`
	AssistanceTitularID uint                `json:"assistanceTitularId"`
	Observations        string              `json:"observations"`
	State               string              `json:"state"`
	Priority            string              `json:"priority"`
	Professionals       []ProfessionalInput `json:"professionals"`
}

func (in *DeriveInput) validate() error {
	if len(in.Professionals) == 0 {
		return newValidationError("professionals", "at least one professional is required")
	}
	for _, p := range in.Professionals {
		if p.UserID == 0 {
			return newValidationError("professionals", "userId is required")
		}
		if err := checkLengths(fieldLength{"professionals.fullName", p.FullName, 120}); err != nil {
			return err
		}
	}
	return checkLengths(
		fieldLength{"observations", in.Observations, 900},
		fieldLength{"state", strings.TrimSpace(in.State), 20},
		fieldLength{"priority", strings.TrimSpace(in.Priority), 5},
	)
}

// CloseInput is the body of a closing request
type CloseInput struct {
	Date              *time.Time `json:"date"`
	State             string     `json:"state"`
	ProfessionalID    uint       `json:"professionalId"`
	ProfessionalNames string     `json:"professionalNames"`
	Observations      string     `json:"observations"`
}

func (in *CloseInput) validate() error {
	if in.ProfessionalID == 0 {
		return newValidationError("professionalId", "is required")
	}
	return checkLengths(
		fieldLength{"state", strings.TrimSpace(in.State), 20},
		fieldLength{"professionalNames", in.ProfessionalNames, 120},
		fieldLength{"observations", in.Observations, 900},
	)
}

// SocialCaseFilters are the optional list filters. Nil or empty means no constraint.
type SocialCaseFilters struct {
	BusinessID     *uint
	ProfessionalID *uint
	AreaID         *uint
	StartDate      *time.Time
	EndDate        *time.Time
	Search         string
	State          string
}

// DerivationResult is returned after deriving a case
type DerivationResult struct {
	models.SocialCase
	Derivation models.Derivation `json:"derivation"`
}

// ClosingResult is returned after closing a case
type ClosingResult struct {
	models.SocialCase
	Closing models.Closing `json:"closing"`
}

// SocialCaseDetails is a case hydrated with records from sibling services
type SocialCaseDetails struct {
	models.SocialCase
	Business     *enrichment.Business  `json:"business"`
	Employee     *enrichment.Employee  `json:"employee"`
	Area         *enrichment.Parameter `json:"area"`
	Professional *enrichment.User      `json:"professional"`
	Closing      *models.Closing       `json:"closing"`
}

// DerivationDetails is a derivation whose professionals come from the users service
type DerivationDetails struct {
	models.Derivation
	Professionals []enrichment.User `json:"professionals"`
}

// SocialCaseEmployee is a pending case with its employee record
type SocialCaseEmployee struct {
	models.SocialCase
	Employee *enrichment.Employee `json:"employee"`
	Motive   string               `json:"motive"`
}

// PlanSummary is the short form of a plan listed under a case
type PlanSummary struct {
	ID             uint   `json:"id"`
	ManagementID   uint   `json:"managementId"`
	ManagementName string `json:"managementName"`
}

// SocialCaseSummary lists an employee's case with its plans
type SocialCaseSummary struct {
	ID                uint          `json:"id"`
	Date              time.Time     `json:"date"`
	EmployeeNames     string        `json:"employeeNames"`
	EmployeeID        uint          `json:"employeeId"`
	InterventionPlans []PlanSummary `json:"interventionPlans"`
}

func orNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

// GetSocialCase retrieves a case by ID
func GetSocialCase(db *gorm.DB, id uint) (*models.SocialCase, error) {
	var socialCase models.SocialCase
	if err := db.First(&socialCase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocialCaseNotFound
		}
		return nil, err
	}
	return &socialCase, nil
}

// CreateSocialCase registers a new case in state SOLICITADO and flags the
// employee as having a social case.
func CreateSocialCase(ctx context.Context, db *gorm.DB, gw enrichment.Gateway, actor Actor, in CreateSocialCaseInput) (*models.SocialCase, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	professionalID := in.ProfessionalID
	if professionalID == 0 {
		professionalID = actor.UserID
	}
	requestType := SanitizeText(in.RequestType)
	if requestType == "" {
		requestType = models.DefaultRequestType
	}

	socialCase := models.SocialCase{
		Date:             orNow(in.Date),
		AssistanceID:     in.AssistanceID,
		EmployeeRut:      strings.TrimSpace(in.EmployeeRut),
		EmployeeID:       in.EmployeeID,
		EmployeeNames:    SanitizeText(in.EmployeeNames),
		BusinessID:       in.BusinessID,
		BusinessName:     SanitizeText(in.BusinessName),
		ConstructionID:   in.ConstructionID,
		ConstructionName: in.ConstructionName,
		AreaID:           in.AreaID,
		ProfessionalID:   professionalID,
		RequestType:      requestType,
		State:            models.SocialCaseStateRequested,
		IsActive:         true,
		CreatedBy:        actor.UserID,
	}

	if err := db.Create(&socialCase).Error; err != nil {
		return nil, err
	}

	metrics.CaseTransitions.WithLabelValues(socialCase.State).Inc()
	LogAuditEvent(db, actor, models.AuditActionCreate, models.AuditResourceSocialCase,
		socialCase.ID, "Social case created", socialCase)

	if err := gw.UpdateEmployeeCaseStatus(ctx, actor.Token, socialCase.EmployeeID, true); err != nil {
		return &socialCase, err
	}

	return &socialCase, nil
}

// DeriveSocialCase assigns professionals to a case and moves it to ASIGNADO.
// A new derivation replaces the case's previous one.
func DeriveSocialCase(db *gorm.DB, actor Actor, caseID uint, in DeriveInput) (*DerivationResult, error) {
	if _, err := GetSocialCase(db, caseID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	derivation := models.Derivation{
		Date:                orNow(in.Date),
		AssistanceTitularID: in.AssistanceTitularID,
		Observations:        SanitizeText(in.Observations),
		State:               strings.TrimSpace(in.State),
		Priority:            strings.TrimSpace(in.Priority),
		CreatedBy:           actor.UserID,
	}
	for _, p := range in.Professionals {
		derivation.Professionals = append(derivation.Professionals, models.AssignedProfessional{
			UserID:    p.UserID,
			FullName:  SanitizeText(p.FullName),
			CreatedBy: actor.UserID,
		})
	}

	var socialCase *models.SocialCase
	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := GetSocialCase(tx, caseID)
		if err != nil {
			return err
		}
		if !found.CanDerive() {
			return transitionError(found.State, models.SocialCaseStateAssigned)
		}

		if err := tx.Create(&derivation).Error; err != nil {
			return err
		}

		socialCase, err = moveSocialCase(tx, found.ID, openStates, models.SocialCaseStateAssigned,
			map[string]interface{}{"derivation_id": derivation.ID})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.CaseTransitions.WithLabelValues(socialCase.State).Inc()
	LogAuditEvent(db, actor, models.AuditActionDerive, models.AuditResourceSocialCase,
		socialCase.ID, "Social case derived", derivation)

	return &DerivationResult{SocialCase: *socialCase, Derivation: derivation}, nil
}

// CloseSocialCase attaches a closing record and moves the case to CERRADO.
// The employee service is then told whether the employee still has open cases;
// that call is not part of the local transaction.
func CloseSocialCase(ctx context.Context, db *gorm.DB, gw enrichment.Gateway, actor Actor, caseID uint, in CloseInput) (*ClosingResult, error) {
	if _, err := GetSocialCase(db, caseID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	closing := models.Closing{
		Date:              orNow(in.Date),
		State:             strings.TrimSpace(in.State),
		ProfessionalID:    in.ProfessionalID,
		ProfessionalNames: SanitizeText(in.ProfessionalNames),
		Observations:      SanitizeText(in.Observations),
		CreatedBy:         actor.UserID,
	}

	var socialCase *models.SocialCase
	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := GetSocialCase(tx, caseID)
		if err != nil {
			return err
		}
		if found.IsClosed() {
			return transitionError(found.State, models.SocialCaseStateClosed)
		}

		if err := tx.Create(&closing).Error; err != nil {
			return err
		}

		socialCase, err = moveSocialCase(tx, found.ID, openStates, models.SocialCaseStateClosed,
			map[string]interface{}{"closing_id": closing.ID})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.CaseTransitions.WithLabelValues(socialCase.State).Inc()
	LogAuditEvent(db, actor, models.AuditActionClose, models.AuditResourceSocialCase,
		socialCase.ID, "Social case closed", closing)

	result := &ClosingResult{SocialCase: *socialCase, Closing: closing}

	hasOpen, err := HasOpenSocialCases(db, socialCase.EmployeeID)
	if err != nil {
		return result, err
	}
	if err := gw.UpdateEmployeeCaseStatus(ctx, actor.Token, socialCase.EmployeeID, hasOpen); err != nil {
		logger.Log.Warnw("Closed case but failed to update employee status",
			"social_case_id", socialCase.ID, "employee_id", socialCase.EmployeeID, "error", err)
		return result, err
	}

	return result, nil
}

// moveSocialCase sets the case to state "to" plus changes, but only while it is
// still in one of the from states. It returns the stored case.
func moveSocialCase(tx *gorm.DB, id uint, from []string, to string, changes map[string]interface{}) (*models.SocialCase, error) {
	changes["state"] = to
	res := tx.Model(&models.SocialCase{}).
		Where("id = ? AND state IN ?", id, from).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}

	current, err := GetSocialCase(tx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, transitionError(current.State, to)
	}
	return current, nil
}

// DeleteSocialCase deactivates a case without changing its state
func DeleteSocialCase(db *gorm.DB, actor Actor, caseID uint) (*models.SocialCase, error) {
	socialCase, err := GetSocialCase(db, caseID)
	if err != nil {
		return nil, err
	}

	if err := db.Model(socialCase).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	socialCase.IsActive = false

	LogAuditEvent(db, actor, models.AuditActionDelete, models.AuditResourceSocialCase,
		socialCase.ID, "Social case deactivated", nil)

	return socialCase, nil
}

// HasOpenSocialCases reports whether the employee has any active case that is not closed
func HasOpenSocialCases(db *gorm.DB, employeeID uint) (bool, error) {
	var count int64
	err := db.Model(&models.SocialCase{}).
		Where("employee_id = ? AND is_active = ? AND state <> ?", employeeID, true, models.SocialCaseStateClosed).
		Count(&count).Error
	return count > 0, err
}

// ApplySocialCaseFilters adds the list filters to a social case query
func ApplySocialCaseFilters(query *gorm.DB, f SocialCaseFilters) *gorm.DB {
	if f.BusinessID != nil {
		query = query.Where("business_id = ?", *f.BusinessID)
	}
	if f.ProfessionalID != nil {
		query = query.Where("professional_id = ?", *f.ProfessionalID)
	}
	if f.AreaID != nil {
		query = query.Where("area_id = ?", *f.AreaID)
	}
	if f.State != "" {
		query = query.Where("state = ?", f.State)
	}
	query = whereDayRange(query, "date", f.StartDate, f.EndDate)

	return wherePrefix(query, f.Search, "employee_names", "employee_rut", "business_name")
}

// ListSocialCases returns a page of cases matching the filters, newest first
func ListSocialCases(db *gorm.DB, f SocialCaseFilters, params PageParams) (*Page[models.SocialCase], error) {
	query := ApplySocialCaseFilters(db.Model(&models.SocialCase{}), f)
	return Paginate[models.SocialCase](query, socialCaseOrder, params)
}

// GetSocialCaseDetails loads a case and hydrates it from the sibling services
func GetSocialCaseDetails(ctx context.Context, db *gorm.DB, gw enrichment.Gateway, actor Actor, caseID uint) (*SocialCaseDetails, error) {
	socialCase, err := GetSocialCase(db, caseID)
	if err != nil {
		return nil, err
	}

	details := &SocialCaseDetails{SocialCase: *socialCase}

	if details.Business, err = gw.GetBusiness(ctx, actor.Token, socialCase.BusinessID); err != nil {
		return nil, err
	}
	if details.Employee, err = gw.GetEmployee(ctx, actor.Token, socialCase.EmployeeID); err != nil {
		return nil, err
	}
	if details.Area, err = gw.GetParameter(ctx, actor.Token, "areas", socialCase.AreaID); err != nil {
		return nil, err
	}
	if details.Professional, err = gw.GetUser(ctx, actor.Token, socialCase.ProfessionalID); err != nil {
		return nil, err
	}

	if socialCase.ClosingID != nil {
		var closing models.Closing
		if err := db.First(&closing, *socialCase.ClosingID).Error; err != nil {
			return nil, err
		}
		details.Closing = &closing
	}

	return details, nil
}

// GetDerivationDetails loads a derivation of a case with its professionals' user records
func GetDerivationDetails(ctx context.Context, db *gorm.DB, gw enrichment.Gateway, actor Actor, caseID, derivationID uint) (*DerivationDetails, error) {
	if _, err := GetSocialCase(db, caseID); err != nil {
		return nil, err
	}

	var derivation models.Derivation
	if err := db.Preload("Professionals").First(&derivation, derivationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDerivationNotFound
		}
		return nil, err
	}

	details := &DerivationDetails{
		Derivation:    derivation,
		Professionals: make([]enrichment.User, 0, len(derivation.Professionals)),
	}
	for _, p := range derivation.Professionals {
		user, err := gw.GetUser(ctx, actor.Token, p.UserID)
		if err != nil {
			return nil, err
		}
		details.Professionals = append(details.Professionals, *user)
	}

	return details, nil
}

// ListPendingCasesByBusiness returns the open cases of a business that has the
// social service contracted, each with its employee record.
func ListPendingCasesByBusiness(ctx context.Context, db *gorm.DB, gw enrichment.Gateway, actor Actor, businessID uint, params PageParams) (*Page[SocialCaseEmployee], error) {
	business, err := gw.GetBusiness(ctx, actor.Token, businessID)
	if err != nil {
		return nil, err
	}
	if !business.HasSocialService() {
		return EmptyPage[SocialCaseEmployee](params), nil
	}

	query := db.Model(&models.SocialCase{}).
		Where("business_id = ? AND state <> ? AND is_active = ?", businessID, models.SocialCaseStateClosed, true)
	cases, err := Paginate[models.SocialCase](query, socialCaseOrder, params)
	if err != nil {
		return nil, err
	}

	page := &Page[SocialCaseEmployee]{
		Items: make([]SocialCaseEmployee, 0, len(cases.Items)),
		Total: cases.Total,
		Page:  cases.Page,
		Size:  cases.Size,
	}
	for _, sc := range cases.Items {
		employee, err := gw.GetEmployee(ctx, actor.Token, sc.EmployeeID)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, SocialCaseEmployee{SocialCase: sc, Employee: employee, Motive: "Caso social"})
	}
	return page, nil
}

// CollectEmployeeCases lists an employee's active cases, oldest first, with their active plans
func CollectEmployeeCases(db *gorm.DB, employeeID uint) ([]SocialCaseSummary, error) {
	var cases []models.SocialCase
	if err := db.Where("employee_id = ? AND is_active = ?", employeeID, true).
		Order("created_at ASC").Order("id ASC").
		Find(&cases).Error; err != nil {
		return nil, err
	}

	summaries := make([]SocialCaseSummary, 0, len(cases))
	if len(cases) == 0 {
		return summaries, nil
	}

	ids := make([]uint, len(cases))
	for i, sc := range cases {
		ids[i] = sc.ID
	}

	var plans []models.InterventionPlan
	if err := db.Where("social_case_id IN ? AND is_active = ?", ids, true).
		Order("created_at ASC").Order("id ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}

	byCase := make(map[uint][]PlanSummary)
	for _, p := range plans {
		byCase[p.SocialCaseID] = append(byCase[p.SocialCaseID], PlanSummary{
			ID:             p.ID,
			ManagementID:   p.ManagementID,
			ManagementName: p.ManagementName,
		})
	}

	for _, sc := range cases {
		plans := byCase[sc.ID]
		if plans == nil {
			plans = make([]PlanSummary, 0)
		}
		summaries = append(summaries, SocialCaseSummary{
			ID:                sc.ID,
			Date:              sc.Date,
			EmployeeNames:     sc.EmployeeNames,
			EmployeeID:        sc.EmployeeID,
			InterventionPlans: plans,
		})
	}
	return summaries, nil
}
