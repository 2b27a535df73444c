package company

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

var tracer = otel.Tracer("company_usecase")

type CreateCompanyUseCase struct {
	companyRepo company.Repository
	cache       company.ListCache
	logger      logger.Logger
}

func NewCreateCompanyUseCase(r company.Repository, c company.ListCache, log logger.Logger) *CreateCompanyUseCase {
	return &CreateCompanyUseCase{companyRepo: r, cache: c, logger: log}
}

type CreateCompanyInput struct {
	Name     string
	Email    string
	Contact  string
	Website  string
	Industry *string
}

type CreateCompanyOutput struct {
	Company *company.Company
}

func (uc *CreateCompanyUseCase) Execute(ctx context.Context, input CreateCompanyInput) (*CreateCompanyOutput, error) {
	ctx, span := tracer.Start(ctx, "CreateCompany")
	defer span.End()

	now := time.Now().UTC()
	c := &company.Company{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Contact:   input.Contact,
		Website:   input.Website,
		Industry:  input.Industry,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.companyRepo.Save(ctx, c); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate company list cache", zap.Error(err))
	}

	span.SetAttributes(attribute.String("company_id", c.ID.String()))
	return &CreateCompanyOutput{Company: c}, nil
}
