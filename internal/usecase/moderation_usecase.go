package usecase

import (
	"context"
	"fmt"
	"time"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/rules"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

type ModerationUseCase struct {
	inspectors *InspectorUseCase
	shopRepo   repository.ShopRepository
	postRepo   repository.PostRepository
	recorder   Recorder
}

func NewModerationUseCase(
	inspectors *InspectorUseCase,
	shopRepo repository.ShopRepository,
	postRepo repository.PostRepository,
	recorder Recorder,
) *ModerationUseCase {
	return &ModerationUseCase{
		inspectors: inspectors,
		shopRepo:   shopRepo,
		postRepo:   postRepo,
		recorder:   recorderOrNop(recorder),
	}
}

type ReviewInput struct {
	ReviewerID string
	TargetID   string
	Decision   entity.Decision
	Comment    string
}

func (uc *ModerationUseCase) ReviewShop(ctx context.Context, input ReviewInput) (*entity.Shop, error) {
	if !input.Decision.Valid() {
		return nil, errors.InvalidArgument(fmt.Sprintf("unknown decision %q", input.Decision), nil)
	}
	if err := uc.inspectors.RequireInspector(ctx, input.ReviewerID); err != nil {
		return nil, err
	}

	comment := rules.DefaultReviewComment(input.Decision, input.Comment)
	shop, err := uc.shopRepo.Mutate(ctx, input.TargetID, func(shop *entity.Shop) error {
		next, err := rules.NextShopStatus(shop.Status, rules.ShopEventForDecision(input.Decision))
		if err != nil {
			return err
		}
		now := time.Now()
		shop.Status = next
		shop.ReviewComment = comment
		shop.ReviewedBy = input.ReviewerID
		shop.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.ReviewDecided(entity.ReviewTaskShop, input.Decision)

	review := &entity.ShopReview{
		ShopID:        shop.ID,
		ApplicantID:   shop.OwnerUserID,
		ReviewerID:    input.ReviewerID,
		Decision:      input.Decision,
		ReviewComment: comment,
	}
	if err := uc.shopRepo.CreateReview(ctx, review); err != nil {
		logger.LogStepError("shop_review", "audit", shop.ID, err)
	}

	return shop, nil
}

// ReviewPost resolves a pending help post. Rejecting it returns the escrowed
// reward to the author in the same write.
func (uc *ModerationUseCase) ReviewPost(ctx context.Context, input ReviewInput) (*entity.Post, error) {
	if !input.Decision.Valid() {
		return nil, errors.InvalidArgument(fmt.Sprintf("unknown decision %q", input.Decision), nil)
	}
	if err := uc.inspectors.RequireInspector(ctx, input.ReviewerID); err != nil {
		return nil, err
	}

	current, err := uc.postRepo.GetByID(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}

	comment := rules.DefaultReviewComment(input.Decision, input.Comment)
	resolve := func(post *entity.Post) error {
		next, err := rules.NextPostReviewStatus(post, input.Decision)
		if err != nil {
			return err
		}
		post.ReviewStatus = next
		post.ReviewComment = comment
		return nil
	}

	var post *entity.Post
	if input.Decision == entity.DecisionReject && current.RewardPoints > 0 {
		post, err = uc.postRepo.MutateWithProfile(ctx, current.ID, current.UserID, func(post *entity.Post, author *entity.UserProfile) error {
			if err := resolve(post); err != nil {
				return err
			}
			return rules.AdjustPoints(author, post.RewardPoints, time.Now())
		})
	} else {
		post, err = uc.postRepo.Mutate(ctx, current.ID, resolve)
	}
	if err != nil {
		return nil, err
	}
	uc.recorder.ReviewDecided(entity.ReviewTaskPost, input.Decision)

	review := &entity.PostReview{
		PostID:        post.ID,
		AuthorID:      post.UserID,
		ReviewerID:    input.ReviewerID,
		Decision:      input.Decision,
		ReviewComment: comment,
	}
	if err := uc.postRepo.CreateReview(ctx, review); err != nil {
		logger.LogStepError("post_review", "audit", post.ID, err)
	}

	return post, nil
}
