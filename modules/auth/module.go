package auth

import (
	"go-activity-planner/core/database"
	"go-activity-planner/core/middleware"
	"go-activity-planner/modules/auth/controller"
	"go-activity-planner/modules/auth/repository"
	"go-activity-planner/modules/auth/router"
	"go-activity-planner/modules/auth/service"
	calsvc "go-activity-planner/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, db database.Database, calendarService calsvc.CalendarService, mw *middleware.Middleware) service.AuthServiceInterface {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, calendarService)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
