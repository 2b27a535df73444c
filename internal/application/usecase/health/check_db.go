package health

import (
	"context"

	"github.com/khoahotran/hireboard/internal/domain/user"
	"github.com/khoahotran/hireboard/pkg/apperror"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CheckDBUseCase struct {
	db       Pinger
	userRepo user.Repository
}

func NewCheckDBUseCase(db Pinger, userRepo user.Repository) *CheckDBUseCase {
	return &CheckDBUseCase{db: db, userRepo: userRepo}
}

type CheckDBOutput struct {
	UserCount int64
}

func (uc *CheckDBUseCase) Execute(ctx context.Context) (*CheckDBOutput, error) {
	if err := uc.db.Ping(ctx); err != nil {
		return nil, apperror.NewPersist("database ping failed", err)
	}
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &CheckDBOutput{UserCount: count}, nil
}
