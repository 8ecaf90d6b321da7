package usecase

import (
	"context"
	"io"
	"strings"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/rules"
	"pawmarket/internal/domain/service"
	"pawmarket/pkg/errors"
)

type ShopUseCase struct {
	shopRepo  repository.ShopRepository
	orderRepo repository.OrderRepository
	files     service.FileUploadService
}

func NewShopUseCase(shopRepo repository.ShopRepository, orderRepo repository.OrderRepository, files service.FileUploadService) *ShopUseCase {
	return &ShopUseCase{
		shopRepo:  shopRepo,
		orderRepo: orderRepo,
		files:     files,
	}
}

type ShopInput struct {
	ShopName    string
	Description string
	LogoURL     string
}

func (in ShopInput) validate() error {
	if strings.TrimSpace(in.ShopName) == "" {
		return errors.InvalidArgument("shop name is required", nil)
	}
	return nil
}

// RegisterShop opens a shop application. It starts pending until an inspector reviews it.
func (uc *ShopUseCase) RegisterShop(ctx context.Context, userID string, input ShopInput) (*entity.Shop, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	shop := &entity.Shop{
		OwnerUserID: userID,
		ShopName:    strings.TrimSpace(input.ShopName),
		Description: input.Description,
		LogoURL:     input.LogoURL,
		Status:      entity.ShopPending,
	}
	if err := uc.shopRepo.CreateForOwner(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// GetShop hides shops that are not open unless the viewer owns them.
func (uc *ShopUseCase) GetShop(ctx context.Context, viewerID, shopID string) (*entity.Shop, error) {
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !shop.Status.Operational() && shop.OwnerUserID != viewerID {
		return nil, errors.NotFound("Shop", nil)
	}
	return shop, nil
}

func (uc *ShopUseCase) GetMyShop(ctx context.Context, userID string) (*entity.Shop, error) {
	return uc.shopRepo.GetByOwner(ctx, userID)
}

func (uc *ShopUseCase) ListShops(ctx context.Context, limit, offset int) ([]*entity.Shop, int64, error) {
	return uc.shopRepo.ListByStatus(ctx, []entity.ShopStatus{entity.ShopApproved, entity.ShopActive}, limit, offset)
}

func (uc *ShopUseCase) UpdateMyShop(ctx context.Context, userID string, input ShopInput) (*entity.Shop, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	current, err := uc.shopRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return uc.shopRepo.Mutate(ctx, current.ID, func(shop *entity.Shop) error {
		shop.ShopName = strings.TrimSpace(input.ShopName)
		shop.Description = input.Description
		if input.LogoURL != "" {
			shop.LogoURL = input.LogoURL
		}
		return nil
	})
}

// SetMyShopActive is the owner's open/close toggle, allowed once the shop is approved.
func (uc *ShopUseCase) SetMyShopActive(ctx context.Context, userID string, active bool) (*entity.Shop, error) {
	current, err := uc.shopRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	event := rules.ShopEventDeactivate
	if active {
		event = rules.ShopEventActivate
	}
	return uc.shopRepo.Mutate(ctx, current.ID, func(shop *entity.Shop) error {
		next, err := rules.NextShopStatus(shop.Status, event)
		if err != nil {
			return err
		}
		shop.Status = next
		return nil
	})
}

func (uc *ShopUseCase) UploadLogo(ctx context.Context, userID string, file io.Reader, contentType string) (*entity.Shop, error) {
	current, err := uc.shopRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := uc.files.UploadFile(ctx, file, contentType, service.FolderShopLogos)
	if err != nil {
		return nil, uploadError("shop logo", err)
	}

	var previous string
	shop, err := uc.shopRepo.Mutate(ctx, current.ID, func(shop *entity.Shop) error {
		previous = shop.LogoURL
		shop.LogoURL = url
		return nil
	})
	if err != nil {
		discardFile(ctx, uc.files, url)
		return nil, err
	}
	discardFile(ctx, uc.files, previous)
	return shop, nil
}

func (uc *ShopUseCase) ListMyShopOrders(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error) {
	shop, err := uc.shopRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return uc.orderRepo.ListByShop(ctx, shop.ID, limit, offset)
}
