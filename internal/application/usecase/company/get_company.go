package company

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/hireboard/internal/domain/company"
)

type GetCompanyUseCase struct {
	companyRepo company.Repository
}

func NewGetCompanyUseCase(r company.Repository) *GetCompanyUseCase {
	return &GetCompanyUseCase{companyRepo: r}
}

func (uc *GetCompanyUseCase) Execute(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	return uc.companyRepo.FindByID(ctx, id)
}
