package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/internal/domain/experience"
	"github.com/khoahotran/hireboard/internal/domain/job"
	"github.com/khoahotran/hireboard/internal/domain/skill"
)

// Auth DTOs

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Role     string  `json:"role" binding:"omitempty,oneof=candidate employer"`
}

// Company DTOs

type CreateCompanyRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Contact  string  `json:"contact" binding:"max=255"`
	Website  string  `json:"website" binding:"max=255"`
	Industry *string `json:"industry" binding:"omitempty,max=255"`
}

type CompanyDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Contact  string    `json:"contact"`
	Website  string    `json:"website"`
	LogoURL  *string   `json:"logo_url"`
	Industry *string   `json:"industry"`
}

func ToCompanyDTO(c *company.Company) CompanyDTO {
	return CompanyDTO{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Contact:  c.Contact,
		Website:  c.Website,
		LogoURL:  c.LogoURL,
		Industry: c.Industry,
	}
}

// Experience DTOs

type AccomplishmentDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
}

type WorkExperienceDTO struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Company         string              `json:"company"`
	EmploymentType  string              `json:"employment_type"`
	IsCurrent       bool                `json:"is_current"`
	StartDate       *string             `json:"start_date"`
	EndDate         *string             `json:"end_date"`
	Location        *string             `json:"location"`
	Description     *string             `json:"description"`
	JobSource       *string             `json:"job_source"`
	SkillIDs        []uuid.UUID         `json:"skill_ids"`
	MediaURL        *string             `json:"media_url"`
	Accomplishments []AccomplishmentDTO `json:"accomplishments"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(experience.DateLayout)
	return &s
}

func ToWorkExperienceDTOs(items []experience.WorkExperience) []WorkExperienceDTO {
	out := make([]WorkExperienceDTO, len(items))
	for i, e := range items {
		accs := make([]AccomplishmentDTO, len(e.Accomplishments))
		for j, a := range e.Accomplishments {
			accs[j] = AccomplishmentDTO{ID: a.ID, Title: a.Title, Description: a.Description}
		}
		skillIDs := e.SkillIDs
		if skillIDs == nil {
			skillIDs = []uuid.UUID{}
		}
		out[i] = WorkExperienceDTO{
			ID:              e.ID,
			Title:           e.Title,
			Company:         e.Company,
			EmploymentType:  e.EmploymentType,
			IsCurrent:       e.IsCurrent,
			StartDate:       formatDate(e.StartDate),
			EndDate:         formatDate(e.EndDate),
			Location:        e.Location,
			Description:     e.Description,
			JobSource:       e.JobSource,
			SkillIDs:        skillIDs,
			MediaURL:        e.MediaURL,
			Accomplishments: accs,
		}
	}
	return out
}

// Job DTOs

type CreateJobRequest struct {
	CompanyID      uuid.UUID `json:"company_id" binding:"required"`
	Title          string    `json:"title" binding:"required,max=255"`
	Description    string    `json:"description"`
	Location       string    `json:"location" binding:"max=255"`
	EmploymentType string    `json:"employment_type" binding:"required,oneof=full_time part_time contract internship freelance"`
	SalaryMin      *int      `json:"salary_min" binding:"omitempty,min=0"`
	SalaryMax      *int      `json:"salary_max" binding:"omitempty,min=0"`
	IsPublic       *bool     `json:"is_public"`
	Skills         []string  `json:"skills" binding:"omitempty,max=30,dive,max=64"`
}

type ListJobsQuery struct {
	Q              string `form:"q" binding:"max=200"`
	Location       string `form:"location" binding:"max=255"`
	EmploymentType string `form:"employment_type"`
	CompanyID      string `form:"company_id" binding:"omitempty,uuid"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type JobSummaryDTO struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      uuid.UUID `json:"company_id"`
	CompanyName    string    `json:"company_name"`
	CompanyLogoURL *string   `json:"company_logo_url"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	SalaryMin      *int      `json:"salary_min"`
	SalaryMax      *int      `json:"salary_max"`
	CreatedAt      time.Time `json:"created_at"`
}

type JobDTO struct {
	JobSummaryDTO
	Description string        `json:"description"`
	IsPublic    bool          `json:"is_public"`
	Skills      []skill.Skill `json:"skills"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func ToJobSummaryDTO(l *job.Listing) JobSummaryDTO {
	return JobSummaryDTO{
		ID:             l.ID,
		CompanyID:      l.CompanyID,
		CompanyName:    l.CompanyName,
		CompanyLogoURL: l.CompanyLogoURL,
		Title:          l.Title,
		Location:       l.Location,
		EmploymentType: l.EmploymentType,
		SalaryMin:      l.SalaryMin,
		SalaryMax:      l.SalaryMax,
		CreatedAt:      l.CreatedAt,
	}
}

func ToJobDTO(l *job.Listing, skills []skill.Skill) JobDTO {
	if skills == nil {
		skills = []skill.Skill{}
	}
	return JobDTO{
		JobSummaryDTO: ToJobSummaryDTO(l),
		Description:   l.Description,
		IsPublic:      l.IsPublic,
		Skills:        skills,
		UpdatedAt:     l.UpdatedAt,
	}
}
