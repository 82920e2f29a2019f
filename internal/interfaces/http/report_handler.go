package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler expone los indicadores del tablero principal.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetSummary(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportHandler expone estados de cuenta, existencias, libros de tesorería y conciliación.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// statementKinds tipos de tercero cuyo estado de cuenta puede leer el rol:
// ventas ve clientes, bodega ve proveedores, finanzas ve ambos.
func statementKinds(role string) []string {
	switch role {
	case entity.RoleVendedor:
		return []string{entity.PartyKindCustomer}
	case entity.RoleBodeguero:
		return []string{entity.PartyKindSupplier}
	case entity.RoleAdmin, entity.RoleContador:
		return []string{entity.PartyKindCustomer, entity.PartyKindSupplier}
	}
	return nil
}

// PartyStatement godoc
// @Summary      Estado de cuenta de cliente o proveedor
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del tercero"
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.PartyStatementDTO
// @Router       /api/reports/parties/{id}/statement [get]
func (h *ReportHandler) PartyStatement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	kinds := statementKinds(GetRole(c))
	if kinds == nil {
		return reject(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin acceso a estados de cuenta")
	}
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.PartyStatement(c.UserContext(), companyID, c.Params("id"), rng, kinds...)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportPartyStatement godoc
// @Summary      Estado de cuenta en Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id    path   string  true   "ID del tercero"
// @Router       /api/reports/parties/{id}/statement.xlsx [get]
func (h *ReportHandler) ExportPartyStatement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	kinds := statementKinds(GetRole(c))
	if kinds == nil {
		return reject(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin acceso a estados de cuenta")
	}
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	data, err := h.uc.ExportPartyStatement(c.UserContext(), companyID, c.Params("id"), rng, kinds...)
	if err != nil {
		return respondError(c, err)
	}
	return sendXLSX(c, "estado-cuenta", data)
}

// StockReport godoc
// @Summary      Reporte de existencias valorizado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        low_only  query  bool  false  "Solo productos bajo el mínimo"
// @Success      200  {object}  dto.StockReportDTO
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.StockReport(c.UserContext(), companyID, c.QueryBool("low_only", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReportHandler) ExportStockReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	data, err := h.uc.ExportStockReport(c.UserContext(), companyID, c.QueryBool("low_only", false))
	if err != nil {
		return respondError(c, err)
	}
	return sendXLSX(c, "existencias", data)
}

// AccountLedger godoc
// @Summary      Libro de caja / banco con saldo corrido
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID de la cuenta"
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.AccountLedgerDTO
// @Router       /api/reports/accounts/{id}/ledger [get]
func (h *ReportHandler) AccountLedger(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.AccountLedger(c.UserContext(), companyID, c.Params("id"), rng)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// IntegrityCheck godoc
// @Summary      Conciliación de stock y saldos contra sus libros
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IntegrityReportDTO
// @Router       /api/reports/integrity [get]
func (h *ReportHandler) IntegrityCheck(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.IntegrityCheck(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func sendXLSX(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
