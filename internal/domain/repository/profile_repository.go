package repository

import (
	"context"

	"pawmarket/internal/domain/entity"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)
	// Mutate runs fn on the stored profile inside a transaction and saves the result.
	// A default profile is created first when the user has none.
	Mutate(ctx context.Context, userID string, fn func(p *entity.UserProfile) error) (*entity.UserProfile, error)

	AddExperienceLog(ctx context.Context, log *entity.ExperienceLog) error
	ListExperienceLogs(ctx context.Context, userID string, limit, offset int) ([]*entity.ExperienceLog, int64, error)
}

type InspectorRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Inspector, error)
	// Create fails with a Conflict error when the user is already an inspector.
	Create(ctx context.Context, inspector *entity.Inspector) error
}
