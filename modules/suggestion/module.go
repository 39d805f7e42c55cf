package suggestion

import (
	"go-activity-planner/core/middleware"
	activitysvc "go-activity-planner/modules/activity/service"
	availsvc "go-activity-planner/modules/availability/service"
	"go-activity-planner/modules/suggestion/controller"
	"go-activity-planner/modules/suggestion/router"
	"go-activity-planner/modules/suggestion/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the suggestion module and registers routes
func Init(e *echo.Echo, activityService activitysvc.ActivityServiceInterface, availabilityService availsvc.AvailabilityServiceInterface, mw *middleware.Middleware) service.SuggestionServiceInterface {
	svc := service.NewSuggestionService(activityService, availabilityService)
	ctrl := controller.NewSuggestionController(svc)
	rtr := router.NewSuggestionRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
