package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Permuta-api/internal/application/analytics"
	"github.com/jhoicas/Permuta-api/internal/application/usecase"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Totales de la plataforma
// @Description  Conteos históricos de usuarios, permutas activas y completadas, sectores y tasa de completitud.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// ActivityHandler feed público de actividad.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Actividad reciente
// @Tags         activities
// @Produce      json
// @Param        limit  query     int  false  "máximo de resultados"
// @Success      200    {array}   dto.ActivityResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}
