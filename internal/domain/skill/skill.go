package skill

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Skill struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func Slugify(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

type Repository interface {
	List(ctx context.Context) ([]Skill, error)
	FindOrCreateSkills(ctx context.Context, names []string) ([]Skill, error)
	GetSkillsForJob(ctx context.Context, jobID uuid.UUID) ([]Skill, error)
}
