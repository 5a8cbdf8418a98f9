package http

import (
	"context"
	"net/http"

	"github.com/nimbus-hr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/nimbus-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/nimbus-hr/hrms-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
}

type overviewProvider interface {
	Overview(ctx context.Context, userID string) (dashboard.Overview, error)
}

type dashboardHandlerImpl struct {
	dashboardService overviewProvider
}

func NewDashboardHandler(dashboardService overviewProvider) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Overview implements DashboardHandler.
func (h *dashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Overview(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
