package usecase

import (
	"context"
	"strings"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/service"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

type AuthUseCase struct {
	auth       service.AuthGateway
	profiles   *ProfileUseCase
	inspectors *InspectorUseCase
}

func NewAuthUseCase(auth service.AuthGateway, profiles *ProfileUseCase, inspectors *InspectorUseCase) *AuthUseCase {
	return &AuthUseCase{
		auth:       auth,
		profiles:   profiles,
		inspectors: inspectors,
	}
}

type LoginResult struct {
	Session *entity.Session     `json:"session"`
	Profile *entity.UserProfile `json:"profile"`
}

type MeResult struct {
	User        *entity.User        `json:"user"`
	Profile     *entity.UserProfile `json:"profile"`
	IsInspector bool                `json:"is_inspector"`
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.InvalidArgument("email and password are required", nil)
	}

	session, err := uc.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := uc.profiles.GetProfile(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	logger.Info("user %s logged in", session.UserID)
	return &LoginResult{Session: session, Profile: profile}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	if err := uc.auth.RevokeSessions(ctx, userID); err != nil {
		return errors.Internal("Failed to revoke sessions", err)
	}
	return nil
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*MeResult, error) {
	user, err := uc.auth.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	isInspector, err := uc.inspectors.IsInspector(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MeResult{User: user, Profile: profile, IsInspector: isInspector}, nil
}
