package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
	EmploymentFreelance  = "freelance"
)

type Job struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      uuid.UUID `json:"company_id"`
	PostedBy       uuid.UUID `json:"posted_by"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	SalaryMin      *int      `json:"salary_min"`
	SalaryMax      *int      `json:"salary_max"`
	IsPublic       bool      `json:"is_public"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Listing is a public job joined with its company for list views.
type Listing struct {
	Job
	CompanyName    string  `json:"company_name"`
	CompanyLogoURL *string `json:"company_logo_url"`
}

type ListFilter struct {
	Query          string
	Location       string
	EmploymentType string
	CompanyID      *uuid.UUID
	Limit          int
	Offset         int
}

var (
	ErrTitleRequired       = errors.New("job title is required")
	ErrInvalidEmployment   = errors.New("invalid employment type")
	ErrInvalidSalaryBounds = errors.New("salary_min must not exceed salary_max")
)

func ValidEmploymentType(t string) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship, EmploymentFreelance:
		return true
	}
	return false
}

func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return ErrTitleRequired
	}
	if !ValidEmploymentType(j.EmploymentType) {
		return ErrInvalidEmployment
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return ErrInvalidSalaryBounds
	}
	return nil
}

type Repository interface {
	// Save writes the job and its skill links in one transaction.
	Save(ctx context.Context, job *Job, skillIDs []uuid.UUID) error
	FindPublicByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	ListPublic(ctx context.Context, filter ListFilter) ([]*Listing, error)
}
