package router

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/handler"
	"pawmarket/internal/adapter/api/middleware"
)

func SetupPostRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	postHandler := handler.GetPostHandler()

	posts := e.Group("/v1/posts")
	posts.Use(authMiddleware.OptionalAuthenticate)
	posts.GET("", postHandler.ListPosts)
	posts.GET("/:id", postHandler.GetPost)
	posts.GET("/:id/comments", postHandler.ListComments)

	writes := e.Group("/v1/posts")
	writes.Use(authMiddleware.Authenticate)
	writes.POST("", postHandler.CreatePost, rateLimitMiddleware.PerUser(ActionCreatePost))
	writes.POST("/:id/like", postHandler.LikePost, rateLimitMiddleware.PerUser(ActionLikePost))
	writes.DELETE("/:id/like", postHandler.UnlikePost)
	writes.POST("/:id/solve", postHandler.MarkSolved)
	writes.POST("/:id/comments", postHandler.CreateComment, rateLimitMiddleware.PerUser(ActionCreateComment))

	e.GET("/v1/my-posts", postHandler.ListMyPosts, authMiddleware.Authenticate)
}
