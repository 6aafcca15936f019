// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"campusmart/internal/delivery/http/middleware"
	"campusmart/internal/delivery/http/router/handler"
	"campusmart/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ShopHandler    *handler.ShopHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	StatsHandler   *handler.StatsHandler
	PaymentHandler *handler.PaymentHandler
	UploadHandler  *handler.UploadHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	shopHandler    *handler.ShopHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	statsHandler   *handler.StatsHandler
	paymentHandler *handler.PaymentHandler
	uploadHandler  *handler.UploadHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		shopHandler:    params.ShopHandler,
		productHandler: params.ProductHandler,
		orderHandler:   params.OrderHandler,
		reviewHandler:  params.ReviewHandler,
		statsHandler:   params.StatsHandler,
		paymentHandler: params.PaymentHandler,
		uploadHandler:  params.UploadHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Account sync and profile. Sync only needs verified claims, the User
	// record may not exist yet.
	authGroup := api.Group("/auth")
	authGroup.Use(r.authMiddleware.Authenticate)
	{
		authGroup.POST("/user", r.authHandler.Sync)
		authGroup.GET("/me", r.authHandler.Me)
	}

	api.GET("/users/:id", r.authHandler.GetUser, r.authMiddleware.Authenticate)

	// Shop directory. Listing and detail are public storefront surfaces.
	shopGroup := api.Group("/shops")
	{
		shopGroup.GET("", r.shopHandler.List)
		shopGroup.POST("", r.shopHandler.Create, r.authMiddleware.Authenticate)
		shopGroup.GET("/my", r.shopHandler.GetOwn, r.authMiddleware.Authenticate)
		shopGroup.GET("/:id", r.shopHandler.Get)
		shopGroup.PATCH("/:id", r.shopHandler.Update,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}

	// Product catalog. Browsing is public, mutation requires a shop owner.
	productGroup := api.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.GET("/featured", r.productHandler.Featured)
		productGroup.POST("", r.productHandler.Create, r.authMiddleware.Authenticate)
		productGroup.GET("/:id", r.productHandler.Get)
		productGroup.PATCH("/:id", r.productHandler.Update, r.authMiddleware.Authenticate)
		productGroup.DELETE("/:id", r.productHandler.Delete, r.authMiddleware.Authenticate)
		productGroup.GET("/:id/reviews", r.reviewHandler.ListForProduct)
	}

	orderGroup := api.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.Checkout)
		orderGroup.GET("", r.orderHandler.List)
		orderGroup.GET("/:id", r.orderHandler.Get)
		orderGroup.PATCH("/:id/status", r.orderHandler.UpdateStatus)
		orderGroup.POST("/:id/payment", r.orderHandler.AttachPayment)
	}

	// Shop-side surfaces. The order inbox is the same listing as /orders;
	// the service scopes results to the caller's shop.
	shopSide := api.Group("/shop", r.authMiddleware.Authenticate,
		r.authMiddleware.RequireRole(entity.RoleShopOwner, entity.RoleAdmin))
	{
		shopSide.GET("/orders", r.orderHandler.List)
		shopSide.GET("/stats", r.statsHandler.Shop)
	}

	api.POST("/uploads", r.uploadHandler.Upload, r.authMiddleware.Authenticate)

	reviewGroup := api.Group("/reviews")
	reviewGroup.Use(r.authMiddleware.Authenticate)
	{
		reviewGroup.POST("", r.reviewHandler.Create)
		reviewGroup.DELETE("/:id", r.reviewHandler.Delete,
			r.authMiddleware.RequireRole(entity.RoleAdmin))
	}

	// QR render endpoint referenced by payment instruments.
	api.GET("/payments/qr", r.paymentHandler.RenderQR)

	adminGroup := api.Group("/admin", r.authMiddleware.Authenticate,
		r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/stats", r.statsHandler.Admin)
		adminGroup.GET("/shops/pending", r.shopHandler.ListPending)
	}
}
