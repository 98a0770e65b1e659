package router

import (
	"sizefit/internal/middleware"
	"sizefit/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	auth := api.Group("/auth")

	auth.POST("/login", handler.Login)
}

func SetupClientRoutes(api *echo.Group, handler *rest.ClientHandler) {
	clients := api.Group("/clients")

	clients.GET("", handler.GetAllClients)
	clients.GET("/search", handler.SearchClients)
	clients.GET("/:id", handler.GetClient)

	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()
	clients.POST("", handler.CreateClient, authRequired, adminOnly)
	clients.PUT("/:id", handler.UpdateClient, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/search", handler.SearchProducts)
	products.GET("/:id", handler.GetProduct)

	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")

	reco.GET("", handler.GetRecommendation)
	reco.POST("/feedback", handler.RecordFeedback)
}

func SetupChatRoutes(api *echo.Group, handler *rest.ChatHandler) {
	chat := api.Group("/chat")

	chat.POST("", handler.PostMessage)
	chat.GET("/sessions/:id", handler.GetSession)
	chat.DELETE("/sessions/:id", handler.DeleteSession)
}
