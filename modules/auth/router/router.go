package router

import (
	"go-activity-planner/core/middleware"
	"go-activity-planner/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles auth routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers auth routes
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public")
	authPublic := publicRoutes.Group("/auth")
	authPublic.POST("/register", r.AuthController.Register)
	authPublic.POST("/login", r.AuthController.Login)
	authPublic.GET("/google", r.AuthController.GoogleAuth)
	authPublic.GET("/google/callback", r.AuthController.GoogleCallback)

	privateRoutes := v1.Group("/private")
	authPrivate := privateRoutes.Group("/auth", mw.AuthMiddleware())
	authPrivate.GET("/me", r.AuthController.GetMe)
}
