// Package router contains routing and server setup for the API delivery.
package router

import (
	"strings"

	"yearbook/config"
	"yearbook/internal/delivery/api/middleware"
	"yearbook/internal/delivery/api/router/handler"
	"yearbook/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler the router registers, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	MeHandler      *handler.MeHandler
	MessageHandler *handler.MessageHandler
	RosterHandler  *handler.RosterHandler
	DesignHandler  *handler.DesignHandler
	SchoolHandler  *handler.SchoolHandler
	StoreHandler   *handler.StoreHandler
	ContactHandler *handler.ContactHandler
	UploadHandler  *handler.UploadHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	meHandler      *handler.MeHandler
	messageHandler *handler.MessageHandler
	rosterHandler  *handler.RosterHandler
	designHandler  *handler.DesignHandler
	schoolHandler  *handler.SchoolHandler
	storeHandler   *handler.StoreHandler
	contactHandler *handler.ContactHandler
	uploadHandler  *handler.UploadHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		meHandler:      params.MeHandler,
		messageHandler: params.MessageHandler,
		rosterHandler:  params.RosterHandler,
		designHandler:  params.DesignHandler,
		schoolHandler:  params.SchoolHandler,
		storeHandler:   params.StoreHandler,
		contactHandler: params.ContactHandler,
		uploadHandler:  params.UploadHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Uploaded media is public so pages can embed it
	publicPrefix := "/" + strings.Trim(r.config.Storage.PublicPrefix, "/")
	e.GET(publicPrefix+"/*", r.uploadHandler.Serve)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/setup", r.authHandler.Setup)
		authGroup.POST("/register/check", r.authHandler.CheckInvitation)
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	apiV1 := e.Group("/api/v1")

	// Public storefront and contact form
	storeGroup := apiV1.Group("/store")
	{
		storeGroup.GET("/products", r.storeHandler.ListProducts)
		storeGroup.GET("/products/:id", r.storeHandler.GetProduct)
		storeGroup.POST("/checkout", r.storeHandler.Checkout)
		storeGroup.GET("/payment-methods", r.storeHandler.PaymentMethods)
	}
	apiV1.POST("/contact-requests", r.contactHandler.Create)

	// Routes for any authenticated caller
	authed := apiV1.Group("")
	authed.Use(r.authMiddleware.Authenticate)
	{
		authed.POST("/uploads", r.uploadHandler.Upload)
		authed.GET("/yearbooks/:scopeId/preview", r.designHandler.Preview)
		authed.GET("/yearbooks/:scopeId/preview/qr", r.designHandler.PreviewQR)
	}

	// The student's own page, classmates and messages
	meGroup := authed.Group("/me")
	{
		meGroup.GET("", r.meHandler.GetMe)
		meGroup.GET("/page", r.meHandler.GetPage)
		meGroup.PUT("/page", r.meHandler.SavePage)
		meGroup.POST("/page/lock", r.meHandler.LockPage)
		meGroup.GET("/classmates", r.meHandler.ListClassmates)
		meGroup.GET("/orders", r.storeHandler.MyOrders)
		meGroup.GET("/messages/:friendId", r.messageHandler.Conversation)
		meGroup.POST("/messages/:friendId", r.messageHandler.Send)
		meGroup.GET("/messages/:friendId/events", r.messageHandler.Events)
	}

	// Admin routes that require the "admin" role
	adminGroup := authed.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.PUT("/account/password", r.authHandler.ChangePassword)
		adminGroup.GET("/schools", r.schoolHandler.ListSchools)
		adminGroup.POST("/schools", r.schoolHandler.CreateSchool)
		adminGroup.GET("/schools/:id", r.schoolHandler.GetSchool)

		scopeGroup := adminGroup.Group("/scopes/:scopeId")
		scopeGroup.GET("/users", r.rosterHandler.ListUsers)
		scopeGroup.POST("/users/invitations", r.rosterHandler.InviteUsers)
		scopeGroup.GET("/users/events", r.rosterHandler.Events)
		scopeGroup.PATCH("/users/:userId", r.rosterHandler.UpdateUser)
		scopeGroup.DELETE("/users/:userId", r.rosterHandler.DeleteUser)
		scopeGroup.GET("/design", r.designHandler.GetDesign)
		scopeGroup.PUT("/design", r.designHandler.SaveDesign)
		scopeGroup.GET("/invitation-qr", r.designHandler.InvitationQR)

		adminGroup.GET("/products", r.storeHandler.ListProducts)
		adminGroup.POST("/products", r.storeHandler.CreateProduct)
		adminGroup.PUT("/products/:id", r.storeHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.storeHandler.DeleteProduct)
		adminGroup.GET("/orders", r.storeHandler.ListOrders)
		adminGroup.GET("/orders/events", r.storeHandler.OrderEvents)
		adminGroup.PATCH("/orders/:id/status", r.storeHandler.UpdateOrderStatus)
		adminGroup.GET("/settings/payment", r.storeHandler.GetPaymentSettings)
		adminGroup.PUT("/settings/payment", r.storeHandler.SavePaymentSettings)
		adminGroup.GET("/settings/cargo", r.storeHandler.GetCargoSettings)
		adminGroup.PUT("/settings/cargo", r.storeHandler.SaveCargoSettings)

		adminGroup.GET("/contact-requests", r.contactHandler.List)
		adminGroup.GET("/contact-requests/events", r.contactHandler.Events)
		adminGroup.DELETE("/contact-requests/:id", r.contactHandler.Delete)
	}
}
