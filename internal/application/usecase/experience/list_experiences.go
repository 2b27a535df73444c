package experience

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/hireboard/internal/domain/experience"
)

type ListExperiencesUseCase struct {
	experienceRepo experience.Repository
}

func NewListExperiencesUseCase(r experience.Repository) *ListExperiencesUseCase {
	return &ListExperiencesUseCase{experienceRepo: r}
}

func (uc *ListExperiencesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]experience.WorkExperience, error) {
	ctx, span := tracer.Start(ctx, "ListExperiences")
	defer span.End()

	items, err := uc.experienceRepo.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if items == nil {
		items = []experience.WorkExperience{}
	}
	return items, nil
}
