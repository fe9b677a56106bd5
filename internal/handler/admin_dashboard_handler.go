package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/dashboardのHTTP
type AdminDashboardHandler struct {
	uc *usecase.DashboardUsecase
}

// DI
func NewAdminDashboardHandler(uc *usecase.DashboardUsecase) *AdminDashboardHandler {
	return &AdminDashboardHandler{uc: uc}
}

func (h *AdminDashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/dashboard")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.get)
}

func (h *AdminDashboardHandler) get(c echo.Context) error {
	out, err := h.uc.GetDashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
