package company

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/adapters/event"
	"github.com/khoahotran/hireboard/internal/application/service"
	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type UploadLogoUseCase struct {
	companyRepo company.Repository
	cache       company.ListCache
	uploader    service.Uploader
	publisher   event.CompanyEventPublisher
	logger      logger.Logger
}

func NewUploadLogoUseCase(
	r company.Repository,
	c company.ListCache,
	u service.Uploader,
	p event.CompanyEventPublisher,
	log logger.Logger,
) *UploadLogoUseCase {
	return &UploadLogoUseCase{companyRepo: r, cache: c, uploader: u, publisher: p, logger: log}
}

type UploadLogoInput struct {
	CompanyID uuid.UUID
	File      io.Reader
}

type UploadLogoOutput struct {
	Company *company.Company
}

func (uc *UploadLogoUseCase) Execute(ctx context.Context, input UploadLogoInput) (*UploadLogoOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadLogo")
	defer span.End()

	if uc.uploader == nil {
		return nil, apperror.NewInternal("media storage is not configured", nil)
	}

	c, err := uc.companyRepo.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	folder := fmt.Sprintf("companies/%s/logos", c.ID.String())
	assetID := uuid.New().String()
	originalPublicID := folder + "/" + assetID

	originalURL, err := uc.uploader.Upload(ctx, input.File, folder, assetID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload company logo", err)
	}

	if err := uc.companyRepo.UpdateLogo(ctx, c.ID, originalURL); err != nil {
		go func() {
			if delErr := uc.uploader.Delete(context.Background(), originalPublicID); delErr != nil {
				uc.logger.Error("Failed to remove orphaned logo", delErr, zap.String("public_id", originalPublicID))
			}
		}()
		return nil, err
	}
	c.LogoURL = &originalURL

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate company list cache", zap.Error(err))
	}

	if uc.publisher != nil {
		go func() {
			payload := event.CompanyEventPayload{
				EventType:        event.CompanyEventLogoUploaded,
				CompanyID:        c.ID,
				OriginalPublicID: originalPublicID,
			}
			if err := uc.publisher.PublishCompanyEvent(context.Background(), payload); err != nil {
				uc.logger.Error("Failed to publish Kafka 'company.logo_uploaded' event", err, zap.String("company_id", c.ID.String()))
			}
		}()
	}

	return &UploadLogoOutput{Company: c}, nil
}
