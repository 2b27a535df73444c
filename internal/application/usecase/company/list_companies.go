package company

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type ListCompaniesUseCase struct {
	companyRepo company.Repository
	cache       company.ListCache
	logger      logger.Logger
}

func NewListCompaniesUseCase(r company.Repository, c company.ListCache, log logger.Logger) *ListCompaniesUseCase {
	return &ListCompaniesUseCase{companyRepo: r, cache: c, logger: log}
}

type ListCompaniesOutput struct {
	Companies []company.Summary
}

func (uc *ListCompaniesUseCase) Execute(ctx context.Context) (*ListCompaniesOutput, error) {
	ctx, span := tracer.Start(ctx, "ListCompanies")
	defer span.End()

	gen, err := uc.cache.Generation(ctx)
	cacheable := err == nil
	if err != nil {
		uc.logger.Warn("Company list cache generation unavailable, falling back to store", zap.Error(err))
	}

	var cached []company.Summary
	var ok bool
	if cacheable {
		cached, ok, err = uc.cache.GetSummaries(ctx, gen)
		if err != nil {
			uc.logger.Warn("Company list cache read failed, falling back to store", zap.Error(err))
		}
	}
	if ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		company.SortByName(cached)
		return &ListCompaniesOutput{Companies: cached}, nil
	}

	items, err := uc.companyRepo.ListSummaries(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if items == nil {
		items = []company.Summary{}
	}
	company.SortByName(items)

	if cacheable {
		if err := uc.cache.SetSummaries(ctx, gen, items); err != nil {
			uc.logger.Warn("Failed to populate company list cache", zap.Error(err))
		}
	}

	span.SetAttributes(attribute.Bool("cache_hit", false), attribute.Int("count", len(items)))
	return &ListCompaniesOutput{Companies: items}, nil
}
