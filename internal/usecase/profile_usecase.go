package usecase

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/rules"
	"pawmarket/internal/domain/service"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

const maxUsernameLength = 30

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	files       service.FileUploadService
	recorder    Recorder
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, files service.FileUploadService, recorder Recorder) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		files:       files,
		recorder:    recorderOrNop(recorder),
	}
}

// GetProfile returns the user's profile, creating the default one on first access.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return withProgress(profile), nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	return uc.mutate(ctx, userID, func(*entity.UserProfile) error { return nil })
}

func (uc *ProfileUseCase) UpdateUsername(ctx context.Context, userID, username string) (*entity.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.InvalidArgument("username is required", nil)
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, errors.InvalidArgument("username is too long", nil)
	}

	return uc.mutate(ctx, userID, func(p *entity.UserProfile) error {
		p.Username = username
		p.UpdatedAt = time.Now()
		return nil
	})
}

func (uc *ProfileUseCase) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*entity.UserProfile, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return nil, errors.InvalidArgument("avatar url is required", nil)
	}

	return uc.mutate(ctx, userID, func(p *entity.UserProfile) error {
		p.AvatarURL = avatarURL
		p.UpdatedAt = time.Now()
		return nil
	})
}

// UploadAvatar stores the image, points the profile at it and removes the
// previously uploaded avatar.
func (uc *ProfileUseCase) UploadAvatar(ctx context.Context, userID string, file io.Reader, contentType string) (*entity.UserProfile, error) {
	url, err := uc.files.UploadFile(ctx, file, contentType, service.FolderAvatars)
	if err != nil {
		return nil, uploadError("avatar", err)
	}

	var previous string
	profile, err := uc.mutate(ctx, userID, func(p *entity.UserProfile) error {
		previous = p.AvatarURL
		p.AvatarURL = url
		p.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		discardFile(ctx, uc.files, url)
		return nil, err
	}
	if previous != entity.DefaultAvatarURL {
		discardFile(ctx, uc.files, previous)
	}
	return profile, nil
}

func (uc *ProfileUseCase) mutate(ctx context.Context, userID string, fn func(p *entity.UserProfile) error) (*entity.UserProfile, error) {
	profile, err := uc.profileRepo.Mutate(ctx, userID, fn)
	if err != nil {
		return nil, err
	}
	return withProgress(profile), nil
}

func withProgress(p *entity.UserProfile) *entity.UserProfile {
	p.NextLevelExperience = rules.NextLevelExperience(p.Level)
	return p
}

// award applies the fixed award for action to the user's profile.
func (uc *ProfileUseCase) award(ctx context.Context, userID string, action entity.ActionType) (*rules.AwardResult, error) {
	if _, ok := rules.ExperienceFor(action); !ok {
		return nil, errors.InvalidArgument("unknown action type "+string(action), nil)
	}

	var result rules.AwardResult
	_, err := uc.profileRepo.Mutate(ctx, userID, func(p *entity.UserProfile) error {
		var err error
		result, err = rules.ApplyAward(p, action, 0, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.recordAward(ctx, userID, result)
	return &result, nil
}

// recordAward reports an award that has already been saved and appends it to
// the user's experience log.
func (uc *ProfileUseCase) recordAward(ctx context.Context, userID string, result rules.AwardResult) {
	uc.recorder.ExperienceAwarded(result.Action, result.LevelUp)
	if result.LevelUp {
		logger.Info("user %s reached level %d", userID, result.NewLevel)
	}

	log := &entity.ExperienceLog{
		UserID:           userID,
		ActionType:       result.Action,
		ExperienceChange: result.ExpGained,
		PointsChange:     result.PointsGained,
		CreatedAt:        time.Now(),
	}
	if err := uc.profileRepo.AddExperienceLog(ctx, log); err != nil {
		logger.Error("Failed to write experience log for user %s: %v", userID, err)
	}
}

// awardBestEffort is used after a triggering write has already succeeded; a
// failed award is logged and otherwise ignored.
func (uc *ProfileUseCase) awardBestEffort(ctx context.Context, userID string, action entity.ActionType) {
	if _, err := uc.award(ctx, userID, action); err != nil {
		logger.Error("Failed to award %s experience to user %s: %v", action, userID, err)
	}
}

// adjustPoints moves delta points in or out of the user's balance.
func (uc *ProfileUseCase) adjustPoints(ctx context.Context, userID string, delta int) error {
	_, err := uc.profileRepo.Mutate(ctx, userID, func(p *entity.UserProfile) error {
		return rules.AdjustPoints(p, delta, time.Now())
	})
	return err
}

func (uc *ProfileUseCase) ListExperienceLogs(ctx context.Context, userID string, limit, offset int) ([]*entity.ExperienceLog, int64, error) {
	return uc.profileRepo.ListExperienceLogs(ctx, userID, limit, offset)
}

// uploadError keeps classified storage errors (e.g. an unsupported file type)
// and reports anything else as an internal failure.
func uploadError(what string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.Internal("Failed to upload "+what, err)
}

// discardFile removes an uploaded object that is no longer referenced. URLs
// that do not point into our bucket are left alone.
func discardFile(ctx context.Context, files service.FileUploadService, url string) {
	if url == "" {
		return
	}
	err := files.DeleteFile(ctx, url)
	switch {
	case err == nil:
	case errors.Is(err, errors.CodeInvalidArgument):
		logger.Debug("Skipping delete of foreign file %s", url)
	default:
		logger.Warn("Failed to delete replaced file %s: %v", url, err)
	}
}
