package notification

import (
	"go-activity-planner/core/database"
	"go-activity-planner/core/middleware"
	"go-activity-planner/modules/notification/controller"
	"go-activity-planner/modules/notification/repository"
	"go-activity-planner/modules/notification/router"
	"go-activity-planner/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
