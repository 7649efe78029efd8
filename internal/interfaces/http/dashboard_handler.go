package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/reports"
)

// DashboardHandler KPIs del panel principal.
type DashboardHandler struct {
	kpis *reports.KPIUseCase
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(kpis *reports.KPIUseCase) *DashboardHandler {
	return &DashboardHandler{kpis: kpis}
}

// KPIs godoc
// @Summary      KPIs del período con tendencia respecto al mes anterior
// @Tags         dashboard
// @Produce      json
// @Param        year   query  int  false  "año del período"
// @Param        month  query  int  false  "mes del período (1-12)"
// @Success      200  {object}  dto.Envelope{data=[]dto.KPIDTO}
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	p, ok := queryPeriod(c)
	if !ok {
		return badRequest(c, "período inválido")
	}
	kpis, err := h.kpis.Get(c.Context(), resolveCooperativeID(c), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(kpis))
}
