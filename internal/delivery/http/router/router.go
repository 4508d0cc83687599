// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskbox/internal/delivery/http/middleware"
	"taskbox/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	TodoHandler    *handler.TodoHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	todoHandler    *handler.TodoHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		todoHandler:    params.TodoHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/logout", r.accountHandler.Logout)
		authGroup.GET("/me", r.accountHandler.Me, r.authMiddleware.Authenticate)
	}

	// Todo routes, all owner-scoped and authenticated
	todoGroup := e.Group("/todos")
	todoGroup.Use(r.authMiddleware.RequireAuth)
	{
		todoGroup.GET("", r.todoHandler.List)
		todoGroup.POST("", r.todoHandler.Create)
		todoGroup.GET("/:id", r.todoHandler.Get)
		todoGroup.PATCH("/:id", r.todoHandler.Update)
		todoGroup.DELETE("/:id", r.todoHandler.Delete)
	}
}
