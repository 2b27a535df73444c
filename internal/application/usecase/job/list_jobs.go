package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/hireboard/internal/domain/job"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

const maxPageSize = 100

type ListPublicJobsUseCase struct {
	jobRepo job.Repository
	logger  logger.Logger
}

func NewListPublicJobsUseCase(r job.Repository, log logger.Logger) *ListPublicJobsUseCase {
	return &ListPublicJobsUseCase{jobRepo: r, logger: log}
}

type ListPublicJobsInput struct {
	Query          string
	Location       string
	EmploymentType string
	CompanyID      *uuid.UUID
	Page           int
	Limit          int
}

type ListPublicJobsOutput struct {
	Jobs  []*job.Listing
	Page  int
	Limit int
}

func (uc *ListPublicJobsUseCase) Execute(ctx context.Context, input ListPublicJobsInput) (*ListPublicJobsOutput, error) {
	ctx, span := tracer.Start(ctx, "ListPublicJobs")
	defer span.End()

	if input.Limit <= 0 {
		input.Limit = 10
	}
	if input.Limit > maxPageSize {
		input.Limit = maxPageSize
	}
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.EmploymentType != "" && !job.ValidEmploymentType(input.EmploymentType) {
		return nil, apperror.NewInvalidInput(job.ErrInvalidEmployment.Error(), job.ErrInvalidEmployment)
	}

	jobs, err := uc.jobRepo.ListPublic(ctx, job.ListFilter{
		Query:          input.Query,
		Location:       input.Location,
		EmploymentType: input.EmploymentType,
		CompanyID:      input.CompanyID,
		Limit:          input.Limit,
		Offset:         (input.Page - 1) * input.Limit,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &ListPublicJobsOutput{Jobs: jobs, Page: input.Page, Limit: input.Limit}, nil
}
