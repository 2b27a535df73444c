package experience

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of start_date and end_date.
const DateLayout = "2006-01-02"

type WorkExperience struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user_id"`
	Position        int              `json:"position"`
	Title           string           `json:"title"`
	Company         string           `json:"company"`
	EmploymentType  string           `json:"employment_type"`
	IsCurrent       bool             `json:"is_current"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
	Location        *string          `json:"location"`
	Description     *string          `json:"description"`
	JobSource       *string          `json:"job_source"`
	MediaURL        *string          `json:"media_url"`
	SkillIDs        []uuid.UUID      `json:"skill_ids"`
	Accomplishments []Accomplishment `json:"accomplishments"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type Accomplishment struct {
	ID               uuid.UUID `json:"id"`
	WorkExperienceID uuid.UUID `json:"work_experience_id"`
	Position         int       `json:"position"`
	Title            string    `json:"title"`
	Description      *string   `json:"description"`
}

// PersistedIDs lists the ids of a submitted batch in input order.
// Accomplishments mirrors the top-level accomplishments of the submission.
type PersistedIDs struct {
	WorkExperiences []PersistedExperience `json:"work_experiences"`
	Accomplishments []uuid.UUID           `json:"accomplishment_ids"`
}

type PersistedExperience struct {
	ID                uuid.UUID   `json:"id"`
	AccomplishmentIDs []uuid.UUID `json:"accomplishment_ids"`
}

type Repository interface {
	// ReplaceForUser makes experiences the complete set of the user's work
	// experiences in a single transaction.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, experiences []WorkExperience) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]WorkExperience, error)
}
