package skill

import (
	"context"

	"github.com/khoahotran/hireboard/internal/domain/skill"
)

type ListSkillsUseCase struct {
	skillRepo skill.Repository
}

func NewListSkillsUseCase(r skill.Repository) *ListSkillsUseCase {
	return &ListSkillsUseCase{skillRepo: r}
}

func (uc *ListSkillsUseCase) Execute(ctx context.Context) ([]skill.Skill, error) {
	skills, err := uc.skillRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []skill.Skill{}
	}
	return skills, nil
}
