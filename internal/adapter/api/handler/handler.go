package handler

import (
	"pawmarket/internal/usecase"
)

var (
	authHandler      *AuthHandler
	profileHandler   *ProfileHandler
	inspectorHandler *InspectorHandler
	reviewHandler    *ReviewHandler
	shopHandler      *ShopHandler
	productHandler   *ProductHandler
	cartHandler      *CartHandler
	orderHandler     *OrderHandler
	postHandler      *PostHandler
	ratingHandler    *RatingHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	profileUseCase *usecase.ProfileUseCase,
	inspectorUseCase *usecase.InspectorUseCase,
	moderationUseCase *usecase.ModerationUseCase,
	shopUseCase *usecase.ShopUseCase,
	productUseCase *usecase.ProductUseCase,
	cartUseCase *usecase.CartUseCase,
	checkoutUseCase *usecase.CheckoutUseCase,
	postUseCase *usecase.PostUseCase,
	ratingUseCase *usecase.RatingUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	profileHandler = NewProfileHandler(profileUseCase)
	inspectorHandler = NewInspectorHandler(inspectorUseCase)
	reviewHandler = NewReviewHandler(moderationUseCase)
	shopHandler = NewShopHandler(shopUseCase)
	productHandler = NewProductHandler(productUseCase)
	cartHandler = NewCartHandler(cartUseCase, checkoutUseCase)
	orderHandler = NewOrderHandler(checkoutUseCase)
	postHandler = NewPostHandler(postUseCase)
	ratingHandler = NewRatingHandler(ratingUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetInspectorHandler() *InspectorHandler {
	return inspectorHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetShopHandler() *ShopHandler {
	return shopHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetPostHandler() *PostHandler {
	return postHandler
}

func GetRatingHandler() *RatingHandler {
	return ratingHandler
}
