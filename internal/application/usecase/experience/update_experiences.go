package experience

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/domain/experience"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

var tracer = otel.Tracer("experience_usecase")

type UpdateExperiencesUseCase struct {
	experienceRepo experience.Repository
	newID          func() uuid.UUID
	logger         logger.Logger
}

func NewUpdateExperiencesUseCase(r experience.Repository, log logger.Logger) *UpdateExperiencesUseCase {
	return &UpdateExperiencesUseCase{experienceRepo: r, newID: uuid.New, logger: log}
}

type UpdateExperiencesInput struct {
	UserID uuid.UUID
	Data   experience.ExperienceUpdateData
}

type UpdateExperiencesOutput struct {
	IDs experience.PersistedIDs
}

func (uc *UpdateExperiencesUseCase) Execute(ctx context.Context, input UpdateExperiencesInput) (*UpdateExperiencesOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdateExperiences")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.UserID.String()))

	batch, err := input.Data.Bind()
	if err != nil {
		var verr *experience.ValidationError
		if errors.As(err, &verr) {
			return nil, apperror.NewInvalidInput(verr.Error(), verr)
		}
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	batch.AssignIDs(input.UserID, uc.newID)

	if err := uc.experienceRepo.ReplaceForUser(ctx, input.UserID, batch.Experiences); err != nil {
		span.RecordError(err)
		return nil, err
	}

	ids := batch.PersistedIDs()
	uc.logger.Info("Updated work experiences",
		zap.String("user_id", input.UserID.String()),
		zap.Int("work_experiences", len(ids.WorkExperiences)),
	)
	return &UpdateExperiencesOutput{IDs: ids}, nil
}
