package usecase

import (
	"context"
	"sort"
	"time"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/rules"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

type InspectorUseCase struct {
	inspectorRepo repository.InspectorRepository
	shopRepo      repository.ShopRepository
	postRepo      repository.PostRepository
	profiles      *ProfileUseCase
}

func NewInspectorUseCase(
	inspectorRepo repository.InspectorRepository,
	shopRepo repository.ShopRepository,
	postRepo repository.PostRepository,
	profiles *ProfileUseCase,
) *InspectorUseCase {
	return &InspectorUseCase{
		inspectorRepo: inspectorRepo,
		shopRepo:      shopRepo,
		postRepo:      postRepo,
		profiles:      profiles,
	}
}

type InspectorStatus struct {
	IsInspector bool       `json:"is_inspector"`
	AppointedAt *time.Time `json:"appointed_at,omitempty"`
}

func (uc *InspectorUseCase) CheckEligibility(ctx context.Context, userID string) (*rules.Eligibility, error) {
	profile, err := uc.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	e := rules.CheckEligibility(profile)
	return &e, nil
}

func (uc *InspectorUseCase) Status(ctx context.Context, userID string) (*InspectorStatus, error) {
	inspector, err := uc.inspectorRepo.GetByUserID(ctx, userID)
	if errors.Is(err, errors.CodeNotFound) {
		return &InspectorStatus{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &InspectorStatus{IsInspector: true, AppointedAt: &inspector.AppointedAt}, nil
}

// Apply grants the inspector capability. Eligibility is recomputed from the
// stored profile; nothing the caller sends is trusted.
func (uc *InspectorUseCase) Apply(ctx context.Context, userID string) (*entity.Inspector, error) {
	eligibility, err := uc.CheckEligibility(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, errors.Forbidden("not eligible to become an inspector", nil)
	}

	inspector := &entity.Inspector{
		UserID:      userID,
		AppointedAt: time.Now(),
		AppointedBy: "system",
	}
	if err := uc.inspectorRepo.Create(ctx, inspector); err != nil {
		if errors.Is(err, errors.CodeConflict) {
			return nil, errors.Conflict("already an inspector")
		}
		return nil, err
	}

	logger.Info("user %s appointed inspector (level %d, %d points)", userID, eligibility.Level, eligibility.Points)
	return inspector, nil
}

// RequireInspector fails with Forbidden unless the user currently holds the capability.
func (uc *InspectorUseCase) RequireInspector(ctx context.Context, userID string) error {
	_, err := uc.inspectorRepo.GetByUserID(ctx, userID)
	if errors.Is(err, errors.CodeNotFound) {
		return errors.Forbidden("inspector role required", nil)
	}
	return err
}

func (uc *InspectorUseCase) IsInspector(ctx context.Context, userID string) (bool, error) {
	err := uc.RequireInspector(ctx, userID)
	if errors.Is(err, errors.CodeForbidden) {
		return false, nil
	}
	return err == nil, err
}

// ListTasks returns everything waiting for review, oldest first.
func (uc *InspectorUseCase) ListTasks(ctx context.Context, reviewerID string) ([]*entity.ReviewTask, error) {
	if err := uc.RequireInspector(ctx, reviewerID); err != nil {
		return nil, err
	}

	shops, _, err := uc.shopRepo.ListByStatus(ctx, []entity.ShopStatus{entity.ShopPending}, 0, 0)
	if err != nil {
		return nil, err
	}
	posts, _, err := uc.postRepo.List(ctx, repository.PostFilter{
		PostType:     entity.PostHelp,
		ReviewStatus: entity.ReviewPending,
	}, 0, 0)
	if err != nil {
		return nil, err
	}

	tasks := make([]*entity.ReviewTask, 0, len(shops)+len(posts))
	for _, s := range shops {
		tasks = append(tasks, &entity.ReviewTask{
			Type:        entity.ReviewTaskShop,
			TargetID:    s.ID,
			Title:       s.ShopName,
			Content:     s.Description,
			SubmittedBy: s.OwnerUserID,
			CreatedAt:   s.CreatedAt,
		})
	}
	for _, p := range posts {
		tasks = append(tasks, &entity.ReviewTask{
			Type:         entity.ReviewTaskPost,
			TargetID:     p.ID,
			Title:        "Help request",
			Content:      p.Content,
			SubmittedBy:  p.PublicView().UserID,
			RewardPoints: p.RewardPoints,
			CreatedAt:    p.CreatedAt,
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}
