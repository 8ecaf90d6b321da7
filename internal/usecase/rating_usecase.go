package usecase

import (
	"context"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/rules"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

type RatingUseCase struct {
	ratingRepo  repository.RatingRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
}

func NewRatingUseCase(
	ratingRepo repository.RatingRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo:  ratingRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
	}
}

type RateInput struct {
	TargetID string
	Rating   int
	Comment  string
}

func (uc *RatingUseCase) RateProduct(ctx context.Context, userID string, input RateInput) (*entity.Rating, error) {
	if err := rules.ValidateRating(input.Rating); err != nil {
		return nil, err
	}
	if _, err := uc.productRepo.GetByID(ctx, input.TargetID); err != nil {
		return nil, err
	}

	purchased, err := uc.orderRepo.HasPurchasedProduct(ctx, userID, input.TargetID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, errors.Forbidden("you can only rate products you have bought", nil)
	}

	return uc.create(ctx, userID, entity.RatingTargetProduct, input)
}

func (uc *RatingUseCase) RateShop(ctx context.Context, userID string, input RateInput) (*entity.Rating, error) {
	if err := rules.ValidateRating(input.Rating); err != nil {
		return nil, err
	}
	if _, err := uc.shopRepo.GetByID(ctx, input.TargetID); err != nil {
		return nil, err
	}

	purchased, err := uc.orderRepo.HasPurchasedFromShop(ctx, userID, input.TargetID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, errors.Forbidden("you can only rate shops you have bought from", nil)
	}

	rating, err := uc.create(ctx, userID, entity.RatingTargetShop, input)
	if err != nil {
		return nil, err
	}

	if err := uc.refreshShopAverage(ctx, input.TargetID); err != nil {
		logger.LogStepError("rate_shop", "refresh_average", input.TargetID, err)
	}
	return rating, nil
}

func (uc *RatingUseCase) create(ctx context.Context, userID string, target entity.RatingTarget, input RateInput) (*entity.Rating, error) {
	rating := &entity.Rating{
		Target:   target,
		TargetID: input.TargetID,
		UserID:   userID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}
	if err := uc.ratingRepo.Create(ctx, rating); err != nil {
		if errors.Is(err, errors.CodeConflict) {
			return nil, errors.Conflict("you have already rated this " + string(target))
		}
		return nil, err
	}
	return rating, nil
}

func (uc *RatingUseCase) refreshShopAverage(ctx context.Context, shopID string) error {
	summary, err := uc.summary(ctx, entity.RatingTargetShop, shopID)
	if err != nil {
		return err
	}
	_, err = uc.shopRepo.Mutate(ctx, shopID, func(shop *entity.Shop) error {
		shop.AverageRating = summary.AverageRating
		shop.RatingCount = summary.TotalCount
		return nil
	})
	return err
}

func (uc *RatingUseCase) summary(ctx context.Context, target entity.RatingTarget, targetID string) (*entity.RatingSummary, error) {
	ratings, err := uc.ratingRepo.ListByTarget(ctx, target, targetID)
	if err != nil {
		return nil, err
	}

	values := make([]int, len(ratings))
	for i, r := range ratings {
		values[i] = r.Rating
	}
	return &entity.RatingSummary{
		AverageRating: rules.AverageRating(values),
		TotalCount:    len(ratings),
		Ratings:       ratings,
	}, nil
}

func (uc *RatingUseCase) GetProductRatings(ctx context.Context, productID string) (*entity.RatingSummary, error) {
	return uc.summary(ctx, entity.RatingTargetProduct, productID)
}

func (uc *RatingUseCase) GetShopRatings(ctx context.Context, shopID string) (*entity.RatingSummary, error) {
	return uc.summary(ctx, entity.RatingTargetShop, shopID)
}
