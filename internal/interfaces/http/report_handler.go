package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/reports"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// ReportHandler consulta y exportación de los estados financieros.
type ReportHandler struct {
	balance  *reports.BalanceUseCase
	cashFlow *reports.CashFlowUseCase
	fees     *reports.FeesUseCase
	ratios   *reports.RatiosUseCase
	export   *reports.ExportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(
	balance *reports.BalanceUseCase,
	cashFlow *reports.CashFlowUseCase,
	fees *reports.FeesUseCase,
	ratios *reports.RatiosUseCase,
	export *reports.ExportUseCase,
) *ReportHandler {
	return &ReportHandler{balance: balance, cashFlow: cashFlow, fees: fees, ratios: ratios, export: export}
}

// BalanceSheet godoc
// @Summary      Balance general del período
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.BalanceSheetDTO}
// @Router       /api/balance-sheet [get]
func (h *ReportHandler) BalanceSheet(c *fiber.Ctx) error {
	p, ok := queryPeriod(c)
	if !ok {
		return badRequest(c, "período inválido")
	}
	report, err := h.balance.Get(c.Context(), resolveCooperativeID(c), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(report))
}

// CashFlow devuelve el estado de flujo de efectivo del período.
func (h *ReportHandler) CashFlow(c *fiber.Ctx) error {
	p, ok := queryPeriod(c)
	if !ok {
		return badRequest(c, "período inválido")
	}
	report, err := h.cashFlow.Get(c.Context(), resolveCooperativeID(c), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(report))
}

// CashFlowHistory devuelve la serie mensual para los gráficos.
func (h *ReportHandler) CashFlowHistory(c *fiber.Ctx) error {
	history, err := h.cashFlow.History(c.Context(), resolveCooperativeID(c), c.QueryInt("months", 6))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(history))
}

// MembershipFees devuelve los aportes del período con filtros search y status.
func (h *ReportHandler) MembershipFees(c *fiber.Ctx) error {
	p, ok := queryPeriod(c)
	if !ok {
		return badRequest(c, "período inválido")
	}
	report, err := h.fees.Get(c.Context(), resolveCooperativeID(c), p, c.Query("search"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(report))
}

// MyFees devuelve el historial de aportes del socio autenticado.
func (h *ReportHandler) MyFees(c *fiber.Ctx) error {
	fees, err := h.fees.ForMember(c.Context(), GetCooperativeID(c), GetUserID(c), c.QueryInt("limit", 12))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fees))
}

// Ratios devuelve los indicadores del período con tendencia e histórico.
func (h *ReportHandler) Ratios(c *fiber.Ctx) error {
	p, ok := queryPeriod(c)
	if !ok {
		return badRequest(c, "período inválido")
	}
	ratios, err := h.ratios.Get(c.Context(), resolveCooperativeID(c), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(ratios))
}

// RatiosHistory devuelve la serie mensual de indicadores.
func (h *ReportHandler) RatiosHistory(c *fiber.Ctx) error {
	history, err := h.ratios.History(c.Context(), resolveCooperativeID(c), c.QueryInt("months", 6))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(history))
}

// Export descarga el módulo como archivo. Responde binario (no el sobre JSON):
// XLSX por defecto; el balance general acepta ?format=pdf.
func (h *ReportHandler) Export(module string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := queryPeriod(c)
		if !ok {
			return badRequest(c, "período inválido")
		}
		file, err := h.export.Module(c.Context(), module, resolveCooperativeID(c), p, c.Query("format"))
		if err != nil {
			return respondError(c, err)
		}
		return sendFile(c, file)
	}
}

// ExportFullData descarga el libro completo con una hoja por módulo.
func (h *ReportHandler) ExportFullData(c *fiber.Ctx) error {
	p, ok := queryPeriod(c)
	if !ok {
		return badRequest(c, "período inválido")
	}
	file, err := h.export.FullData(c.Context(), resolveCooperativeID(c), p)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *reports.ExportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.FileName+`"`)
	return c.Send(file.Content)
}

// exportableModules rutas de exportación registradas en el router.
var exportableModules = []string{
	entity.ModuleBalanceSheet,
	entity.ModuleCashFlow,
	entity.ModuleMembershipFees,
	entity.ModuleRatios,
}
