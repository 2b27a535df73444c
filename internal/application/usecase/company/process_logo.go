package company

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/adapters/event"
	"github.com/khoahotran/hireboard/internal/application/service"
	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

// LogoTransformation is the square crop served as the company avatar.
const LogoTransformation = "c_fill,g_auto,w_256,h_256"

type ProcessLogoEventUseCase struct {
	companyRepo company.Repository
	cache       company.ListCache
	uploader    service.Uploader
	logger      logger.Logger
}

func NewProcessLogoEventUseCase(r company.Repository, c company.ListCache, u service.Uploader, log logger.Logger) *ProcessLogoEventUseCase {
	return &ProcessLogoEventUseCase{companyRepo: r, cache: c, uploader: u, logger: log}
}

func (uc *ProcessLogoEventUseCase) Execute(ctx context.Context, payload event.CompanyEventPayload) (err error) {
	ctx, span := tracer.Start(ctx, "ProcessLogoEvent",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("company_id", payload.CompanyID.String()),
			attribute.String("event_type", string(payload.EventType)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	l := uc.logger.With(zap.String("company_id", payload.CompanyID.String()), zap.String("event_type", string(payload.EventType)))

	if payload.EventType != event.CompanyEventLogoUploaded {
		l.Info("Ignoring unsupported company event")
		return nil
	}
	if payload.OriginalPublicID == "" {
		l.Warn("Logo event without public id, skipping")
		return nil
	}

	if _, err := uc.companyRepo.FindByID(ctx, payload.CompanyID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			l.Warn("Company not found, skipping event")
			return nil
		}
		return err
	}

	logoURL, err := uc.uploader.TransformedURL(payload.OriginalPublicID, LogoTransformation)
	if err != nil {
		return apperror.NewInternal("failed to build logo URL", err)
	}

	if err := uc.companyRepo.UpdateLogo(ctx, payload.CompanyID, logoURL); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			l.Warn("Company removed while processing logo, skipping")
			return nil
		}
		return err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		l.Warn("Failed to invalidate company list cache", zap.Error(err))
	}

	l.Info("Processed company logo", zap.String("logo_url", logoURL))
	return nil
}
