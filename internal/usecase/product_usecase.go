package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/service"
	"pawmarket/pkg/errors"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	files       service.FileUploadService
}

func NewProductUseCase(productRepo repository.ProductRepository, shopRepo repository.ShopRepository, files service.FileUploadService) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		shopRepo:    shopRepo,
		files:       files,
	}
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Stock       int
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.InvalidArgument("product name is required", nil)
	}
	if in.Price < 0 {
		return errors.InvalidArgument("price cannot be negative", nil)
	}
	if in.Stock < 0 {
		return errors.InvalidArgument("stock cannot be negative", nil)
	}
	return nil
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, userID string, input ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	shop, err := uc.shopRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !shop.Status.Operational() {
		return nil, errors.InvalidState(fmt.Sprintf("shop is %s and cannot list products", shop.Status))
	}

	product := &entity.Product{
		ShopID:      shop.ID,
		SellerID:    userID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		Status:      entity.ProductActive,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ownedProduct loads a product and checks the caller sells it.
func (uc *ProductUseCase) ownedProduct(ctx context.Context, userID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != userID {
		return nil, errors.Forbidden("you can only manage your own products", nil)
	}
	return product, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, userID, productID string, input ProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	product, err := uc.ownedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Stock = input.Stock
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) SetProductStatus(ctx context.Context, userID, productID string, status entity.ProductStatus) (*entity.Product, error) {
	if !status.Valid() {
		return nil, errors.InvalidArgument(fmt.Sprintf("unknown product status %q", status), nil)
	}
	product, err := uc.ownedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	product.Status = status
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, userID, productID string) error {
	if _, err := uc.ownedProduct(ctx, userID, productID); err != nil {
		return err
	}
	return uc.productRepo.Delete(ctx, productID)
}

func (uc *ProductUseCase) UploadImage(ctx context.Context, userID, productID string, file io.Reader, contentType string) (*entity.Product, error) {
	product, err := uc.ownedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	url, err := uc.files.UploadFile(ctx, file, contentType, service.FolderProductImages)
	if err != nil {
		return nil, uploadError("product image", err)
	}

	previous := product.ImageURL
	product.ImageURL = url
	if err := uc.productRepo.Update(ctx, product); err != nil {
		discardFile(ctx, uc.files, url)
		return nil, err
	}
	discardFile(ctx, uc.files, previous)
	return product, nil
}

// GetProduct hides inactive products from everyone but their seller.
func (uc *ProductUseCase) GetProduct(ctx context.Context, viewerID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != entity.ProductActive && product.SellerID != viewerID {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, category string, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, repository.ProductFilter{
		Category: category,
		Status:   entity.ProductActive,
	}, limit, offset)
}

func (uc *ProductUseCase) ListShopProducts(ctx context.Context, shopID string, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, repository.ProductFilter{
		ShopID: shopID,
		Status: entity.ProductActive,
	}, limit, offset)
}

func (uc *ProductUseCase) ListMyProducts(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, int64, error) {
	shop, err := uc.shopRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return uc.productRepo.List(ctx, repository.ProductFilter{ShopID: shop.ID}, limit, offset)
}
