package enrichment

import (
	"context"
	"fmt"
	"time"
)

// Service names used in errors and metrics
const (
	ServiceEmployees  = "employees"
	ServiceBusiness   = "business"
	ServiceUsers      = "users"
	ServiceParameters = "parameters"
)

// Gateway looks up records owned by sibling services. Every call forwards the
// caller's bearer token and fails with *UpstreamError.
type Gateway interface {
	GetEmployee(ctx context.Context, token string, id uint) (*Employee, error)
	UpdateEmployeeCaseStatus(ctx context.Context, token string, id uint, hasSocialCase bool) error
	GetBusiness(ctx context.Context, token string, id uint) (*Business, error)
	GetParameter(ctx context.Context, token string, kind string, id uint) (*Parameter, error)
	GetUser(ctx context.Context, token string, id uint) (*User, error)
}

// UpstreamError reports a failed call to a sibling service
type UpstreamError struct {
	Service    string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s service returned status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s service request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type Nationality struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
}

type CurrentJob struct {
	AdmissionDate    *time.Time `json:"admissionDate,omitempty"`
	BusinessID       *uint      `json:"businessId,omitempty"`
	BusinessName     *string    `json:"businessName,omitempty"`
	ConstructionID   *uint      `json:"constructionId,omitempty"`
	ConstructionName *string    `json:"constructionName,omitempty"`
	Salary           *float64   `json:"salary,omitempty"`
}

type Employee struct {
	ID              uint        `json:"id"`
	Rut             string      `json:"run,omitempty"`
	Names           string      `json:"names"`
	PaternalSurname string      `json:"paternalSurname"`
	MaternalSurname string      `json:"maternalSurname"`
	Gender          string      `json:"gender"`
	Nationality     Nationality `json:"nationality"`
	CurrentJob      *CurrentJob `json:"currentJob,omitempty"`
}

// FullName joins names and surnames
func (e *Employee) FullName() string {
	return joinNames(e.Names, e.PaternalSurname, e.MaternalSurname)
}

type Region struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Commune struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Business struct {
	ID            uint    `json:"id"`
	Rut           string  `json:"rut"`
	BusinessName  string  `json:"businessName"`
	Address       string  `json:"address"`
	Email         *string `json:"email,omitempty"`
	Type          string  `json:"type"`
	SocialService string  `json:"socialService"`
	Region        Region  `json:"region"`
	Commune       Commune `json:"commune"`
}

// HasSocialService reports whether the business contracted the social service
func (b *Business) HasSocialService() bool {
	return b.SocialService == "SI"
}

// Parameter is a catalog entry such as an area
type Parameter struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// User is a professional registered in the users service
type User struct {
	ID              uint    `json:"id"`
	Names           string  `json:"names"`
	Email           string  `json:"email"`
	PaternalSurname string  `json:"paternalSurname"`
	MaternalSurname string  `json:"maternalSurname"`
	Charge          *string `json:"charge,omitempty"`
}

// FullName joins names and surnames
func (u *User) FullName() string {
	return joinNames(u.Names, u.PaternalSurname, u.MaternalSurname)
}

func joinNames(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
