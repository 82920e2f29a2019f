package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// ReturnHandler atiende devoluciones de venta o de compra según kind.
type ReturnHandler struct {
	uc   *billing.ReturnUseCase
	kind string
}

// NewReturnHandler construye el handler; kind toma los valores de Invoice.Kind.
func NewReturnHandler(uc *billing.ReturnUseCase, kind string) *ReturnHandler {
	return &ReturnHandler{uc: uc, kind: kind}
}

func (h *ReturnHandler) documentType() string {
	if h.kind == entity.InvoiceKindPurchase {
		return entity.DocumentPurchaseReturn
	}
	return entity.DocumentSalesReturn
}

// Create godoc
// @Summary      Crear devolución
// @Description  Las cantidades no pueden superar lo pendiente por devolver de cada línea. refund_amount > 0 exige account_id.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "Devolución"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/returns [post]
// @Router       /api/purchases/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateReturnRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var (
		out *dto.ReturnResponse
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
// @Summary      Obtener devolución
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Router       /api/sales/returns/{id} [get]
// @Router       /api/purchases/returns/{id} [get]
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar devoluciones
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        invoice_id  query  string  false  "Factura original"
// @Success      200  {object}  dto.ReturnListResponse
// @Router       /api/sales/returns [get]
// @Router       /api/purchases/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), companyID, h.kind, dto.ReturnFilter{
		InvoiceID:   c.Query("invoice_id"),
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar devolución
// @Tags         returns
// @Security     Bearer
// @Param        id   path  string  true  "ID de la devolución"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales/returns/{id} [delete]
// @Router       /api/purchases/returns/{id} [delete]
func (h *ReturnHandler) Delete(c *fiber.Ctx) error {
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

// Returnable godoc
// @Summary      Cantidades pendientes por devolver de una factura
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {array}   dto.ReturnableItemResponse
// @Router       /api/sales/invoices/{id}/returnable [get]
// @Router       /api/purchases/invoices/{id}/returnable [get]
func (h *ReturnHandler) Returnable(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ReturnableQuantities(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
