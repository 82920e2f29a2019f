package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// InventoryHandler expone ajustes manuales y el libro de movimientos.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateAdjustment godoc
// @Summary      Registrar ajuste de inventario
// @Description  Cantidad con signo: positiva entra, negativa sale. La salida no puede dejar stock negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "Ajuste"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateAdjustmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateAdjustment(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	documentCreated(c, entity.DocumentAdjustment)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteAdjustment godoc
// @Summary      Anular ajuste de inventario
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento de ajuste"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id} [delete]
func (h *InventoryHandler) DeleteAdjustment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.DeleteAdjustment(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	documentDeleted(c, entity.DocumentAdjustment)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMovement godoc
// @Summary      Obtener movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetMovement(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        type        query  string  false  "PURCHASE, SALE, PURCHASE_RETURN, SALE_RETURN, ADJUSTMENT"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.ListMovements(c.UserContext(), companyID, dto.MovementFilter{
		ProductID:   c.Query("product_id"),
		Type:        c.Query("type"),
		DateRange:   rng,
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
