package invitation

import (
	"go-activity-planner/core/database"
	"go-activity-planner/core/middleware"
	activitysvc "go-activity-planner/modules/activity/service"
	calsvc "go-activity-planner/modules/calendar/service"
	"go-activity-planner/modules/invitation/controller"
	"go-activity-planner/modules/invitation/repository"
	"go-activity-planner/modules/invitation/router"
	"go-activity-planner/modules/invitation/service"
	notifService "go-activity-planner/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the invitation module and registers routes
func Init(e *echo.Echo, db database.Database, activityService activitysvc.ActivityServiceInterface, calendarService calsvc.CalendarService, notificationService *notifService.NotificationService, mw *middleware.Middleware) *service.InvitationService {
	repo := repository.NewInvitationRepository(db)
	svc := service.NewInvitationService(repo, activityService, calendarService, notificationService)
	ctrl := controller.NewInvitationController(svc)
	rtr := router.NewInvitationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
