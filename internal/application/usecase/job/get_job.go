package job

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/domain/job"
	"github.com/khoahotran/hireboard/internal/domain/skill"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type GetPublicJobUseCase struct {
	jobRepo   job.Repository
	skillRepo skill.Repository
	logger    logger.Logger
}

func NewGetPublicJobUseCase(jRepo job.Repository, sRepo skill.Repository, log logger.Logger) *GetPublicJobUseCase {
	return &GetPublicJobUseCase{jobRepo: jRepo, skillRepo: sRepo, logger: log}
}

type GetPublicJobOutput struct {
	Job    *job.Listing
	Skills []skill.Skill
}

func (uc *GetPublicJobUseCase) Execute(ctx context.Context, id uuid.UUID) (*GetPublicJobOutput, error) {
	l, err := uc.jobRepo.FindPublicByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skills, err := uc.skillRepo.GetSkillsForJob(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to load job skills", zap.String("job_id", id.String()), zap.Error(err))
		skills = []skill.Skill{}
	}
	return &GetPublicJobOutput{Job: l, Skills: skills}, nil
}
