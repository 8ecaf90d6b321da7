package service

import (
	"context"

	"pawmarket/internal/domain/entity"
)

// AuthGateway is the identity provider boundary.
type AuthGateway interface {
	VerifyToken(ctx context.Context, idToken string) (string, error)
	GetUser(ctx context.Context, uid string) (*entity.User, error)
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)
	RevokeSessions(ctx context.Context, uid string) error
}
