package activity

import (
	"go-activity-planner/core/database"
	"go-activity-planner/core/middleware"
	"go-activity-planner/modules/activity/controller"
	"go-activity-planner/modules/activity/repository"
	"go-activity-planner/modules/activity/router"
	"go-activity-planner/modules/activity/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the activity module and registers routes. The returned
// service is shared with the invitation and suggestion modules.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.ActivityServiceInterface {
	repo := repository.NewActivityRepository(db)
	svc := service.NewActivityService(repo)
	ctrl := controller.NewActivityController(svc)
	rtr := router.NewActivityRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
