package api

import (
	"github.com/labstack/echo/v4"

	"storefront-service/internal/service"
)

type AdminHandler struct {
	statsService *service.StatsService
}

func NewAdminHandler(statsService *service.StatsService) *AdminHandler {
	return &AdminHandler{statsService: statsService}
}

// Dashboard serves the admin landing numbers --> GET /admin/dashboard
func (h *AdminHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.statsService.GetDashboard(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, dashboard)
}

// Statistics serves the revenue chart buckets
// --> GET /admin/statistics?type=daily|monthly
func (h *AdminHandler) Statistics(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		buckets []service.PeriodBucket
		err     error
	)
	switch c.QueryParam("type") {
	case "monthly":
		buckets, err = h.statsService.MonthlyStats(ctx)
	case "", "daily":
		buckets, err = h.statsService.DailyStats(ctx)
	default:
		return badRequest(c, "type must be daily or monthly")
	}
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, buckets)
}
