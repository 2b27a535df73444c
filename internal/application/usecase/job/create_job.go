package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/domain/job"
	"github.com/khoahotran/hireboard/internal/domain/skill"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

var tracer = otel.Tracer("job_usecase")

type CreateJobUseCase struct {
	jobRepo   job.Repository
	skillRepo skill.Repository
	logger    logger.Logger
}

func NewCreateJobUseCase(jRepo job.Repository, sRepo skill.Repository, log logger.Logger) *CreateJobUseCase {
	return &CreateJobUseCase{jobRepo: jRepo, skillRepo: sRepo, logger: log}
}

type CreateJobInput struct {
	PostedBy       uuid.UUID
	CompanyID      uuid.UUID
	Title          string
	Description    string
	Location       string
	EmploymentType string
	SalaryMin      *int
	SalaryMax      *int
	IsPublic       bool
	SkillNames     []string
}

type CreateJobOutput struct {
	Job    *job.Job
	Skills []skill.Skill
}

func (uc *CreateJobUseCase) Execute(ctx context.Context, input CreateJobInput) (*CreateJobOutput, error) {
	ctx, span := tracer.Start(ctx, "CreateJob")
	defer span.End()

	now := time.Now().UTC()
	j := &job.Job{
		ID:             uuid.New(),
		CompanyID:      input.CompanyID,
		PostedBy:       input.PostedBy,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Location:       strings.TrimSpace(input.Location),
		EmploymentType: input.EmploymentType,
		SalaryMin:      input.SalaryMin,
		SalaryMax:      input.SalaryMax,
		IsPublic:       input.IsPublic,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := j.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	skills, err := uc.skillRepo.FindOrCreateSkills(ctx, input.SkillNames)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	skillIDs := make([]uuid.UUID, len(skills))
	for i, s := range skills {
		skillIDs[i] = s.ID
	}
	if err := uc.jobRepo.Save(ctx, j, skillIDs); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Job created", zap.String("job_id", j.ID.String()), zap.String("company_id", j.CompanyID.String()), zap.Int("skills", len(skills)))
	span.SetAttributes(attribute.String("job_id", j.ID.String()))
	return &CreateJobOutput{Job: j, Skills: skills}, nil
}
