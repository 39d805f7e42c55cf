package router

import (
	"go-activity-planner/core/middleware"
	"go-activity-planner/modules/activity/controller"

	"github.com/labstack/echo/v4"
)

// ActivityRouter handles activity routes
type ActivityRouter struct {
	ActivityController *controller.ActivityController
}

func NewActivityRouter(activityController *controller.ActivityController) *ActivityRouter {
	return &ActivityRouter{
		ActivityController: activityController,
	}
}

// Setup registers activity routes
func (r *ActivityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	activityRoutes := privateRoutes.Group("/activities", mw.AuthMiddleware())
	activityRoutes.POST("", r.ActivityController.CreateActivity)
	activityRoutes.GET("", r.ActivityController.ListActivities)
	activityRoutes.GET("/slug/:slug", r.ActivityController.GetActivityBySlug)
	activityRoutes.GET("/:id", r.ActivityController.GetActivity)
	activityRoutes.PUT("/:id", r.ActivityController.UpdateActivity)
	activityRoutes.GET("/:id/deadline", r.ActivityController.GetDeadlineStatus)
	activityRoutes.PUT("/:id/deadline", r.ActivityController.OverrideDeadline)
	activityRoutes.POST("/:id/finalize", r.ActivityController.FinalizeActivity)
}
