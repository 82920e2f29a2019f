package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// PartyHandler atiende clientes o proveedores según kind; se monta una vez por tipo.
type PartyHandler struct {
	uc   *usecase.PartyUseCase
	kind string
}

// NewPartyHandler construye el handler para entity.PartyKindCustomer o entity.PartyKindSupplier.
func NewPartyHandler(uc *usecase.PartyUseCase, kind string) *PartyHandler {
	return &PartyHandler{uc: uc, kind: kind}
}

// Create godoc
// @Summary      Crear cliente / proveedor
// @Tags         parties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "Datos del tercero"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
// @Router       /api/suppliers [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreatePartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var (
		out *dto.PartyResponse
		err error
	)
	if h.kind == entity.PartyKindSupplier {
		out, err = h.uc.CreateSupplier(c.UserContext(), companyID, in)
	} else {
		out, err = h.uc.CreateCustomer(c.UserContext(), companyID, in)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tercero con saldo
// @Tags         parties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tercero"
// @Success      200  {object}  dto.PartyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
// @Router       /api/suppliers/{id} [get]
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar terceros
// @Tags         parties
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Código, nombre o NIT"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Desplazamiento"  default(0)
// @Success      200  {object}  dto.PartyListResponse
// @Router       /api/customers [get]
// @Router       /api/suppliers [get]
func (h *PartyHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), companyID, h.kind, c.Query("search"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tercero
// @Tags         parties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del tercero"
// @Param        body  body  dto.UpdatePartyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PartyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
// @Router       /api/suppliers/{id} [put]
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdatePartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), companyID, h.kind, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tercero sin documentos
// @Tags         parties
// @Security     Bearer
// @Param        id   path  string  true  "ID del tercero"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
// @Router       /api/suppliers/{id} [delete]
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), companyID, h.kind, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
