package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// InvoiceHandler atiende facturas de venta o de compra según kind.
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	kind string
}

// NewInvoiceHandler construye el handler para entity.InvoiceKindSales o entity.InvoiceKindPurchase.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, kind string) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, kind: kind}
}

func (h *InvoiceHandler) documentType() string {
	if h.kind == entity.InvoiceKindPurchase {
		return entity.DocumentPurchaseInvoice
	}
	return entity.DocumentSalesInvoice
}

// Create godoc
// @Summary      Crear factura
// @Description  Inserta encabezado y líneas, mueve inventario y, si paid_amount > 0, registra el recibo o egreso en la cuenta indicada. Todo en una transacción.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/invoices [post]
// @Router       /api/purchases/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var (
		out *dto.InvoiceResponse
		err error
	)
	if h.kind == entity.InvoiceKindPurchase {
		out, err = h.uc.CreatePurchase(c.UserContext(), companyID, GetUserID(c), in)
	} else {
		out, err = h.uc.CreateSales(c.UserContext(), companyID, GetUserID(c), in)
	}
	if err != nil {
		return respondError(c, err)
	}
	documentCreated(c, h.documentType())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con líneas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/invoices/{id} [get]
// @Router       /api/purchases/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), companyID, h.kind, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        party_id  query  string  false  "Cliente o proveedor"
// @Param        from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/sales/invoices [get]
// @Router       /api/purchases/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.List(c.UserContext(), companyID, h.kind, dto.InvoiceFilter{
		PartyID:     c.Query("party_id"),
		DateRange:   rng,
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Description  Rechazada si tiene devoluciones. Revierte inventario y comprobantes vinculados.
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales/invoices/{id} [delete]
// @Router       /api/purchases/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var err error
	if h.kind == entity.InvoiceKindPurchase {
		err = h.uc.DeletePurchase(c.UserContext(), companyID, c.Params("id"))
	} else {
		err = h.uc.DeleteSales(c.UserContext(), companyID, c.Params("id"))
	}
	if err != nil {
		return respondError(c, err)
	}
	documentDeleted(c, h.documentType())
	return c.SendStatus(fiber.StatusNoContent)
}
