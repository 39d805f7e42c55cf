package router

import (
	"go-activity-planner/core/middleware"
	"go-activity-planner/modules/invitation/controller"

	"github.com/labstack/echo/v4"
)

// InvitationRouter handles invitation routes
type InvitationRouter struct {
	InvitationController *controller.InvitationController
}

func NewInvitationRouter(invitationController *controller.InvitationController) *InvitationRouter {
	return &InvitationRouter{
		InvitationController: invitationController,
	}
}

// Setup registers invitation routes
func (r *InvitationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	invitationRoutes := privateRoutes.Group("/invitations", mw.AuthMiddleware())
	invitationRoutes.POST("", r.InvitationController.CreateInvitations)
	invitationRoutes.GET("/pending", r.InvitationController.GetPendingInvitations)
	invitationRoutes.GET("/pending/count", r.InvitationController.CountPending)
	invitationRoutes.POST("/:id/accept", r.InvitationController.AcceptInvitation)
	invitationRoutes.POST("/:id/decline", r.InvitationController.DeclineInvitation)
}
