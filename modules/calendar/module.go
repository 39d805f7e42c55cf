package calendar

import (
	"go-activity-planner/core/database"
	"go-activity-planner/core/middleware"
	"go-activity-planner/modules/calendar/controller"
	"go-activity-planner/modules/calendar/repository"
	"go-activity-planner/modules/calendar/router"
	"go-activity-planner/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and registers routes. The returned
// service is shared with the availability and auth modules; participants
// receives connect/disconnect updates for activity membership rows.
func Init(e *echo.Echo, db database.Database, participants service.ParticipantFlagSync, mw *middleware.Middleware) service.CalendarService {
	repo := repository.NewCalendarRepository(db)
	svc := service.NewCalendarService(repo, participants)
	ctrl := controller.NewCalendarController(svc)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
