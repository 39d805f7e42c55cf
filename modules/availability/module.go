package availability

import (
	"go-activity-planner/core/middleware"
	"go-activity-planner/modules/availability/controller"
	"go-activity-planner/modules/availability/router"
	"go-activity-planner/modules/availability/service"
	calsvc "go-activity-planner/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes. The
// returned service is shared with the suggestion module.
func Init(e *echo.Echo, calendarService calsvc.CalendarService, mw *middleware.Middleware) service.AvailabilityServiceInterface {
	svc := service.NewAvailabilityService(calendarService)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
