package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// AccountHandler atiende cajas o bancos según kind.
type AccountHandler struct {
	uc   *treasury.AccountUseCase
	kind string
}

func NewAccountHandler(uc *treasury.AccountUseCase, kind string) *AccountHandler {
	return &AccountHandler{uc: uc, kind: kind}
}

// Create godoc
// @Summary      Crear caja / banco
// @Tags         treasury
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "Cuenta"
// @Success      201   {object}  dto.AccountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/treasury/safes [post]
// @Router       /api/treasury/banks [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateAccountRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var (
		out *dto.AccountResponse
		err error
	)
	if h.kind == entity.AccountKindBank {
		out, err = h.uc.CreateBank(c.UserContext(), companyID, in)
	} else {
		out, err = h.uc.CreateSafe(c.UserContext(), companyID, in)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cajas / bancos
// @Tags         treasury
// @Security     Bearer
// @Produce      json
// @Param        include_inactive  query  bool  false  "Incluir inactivas"
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/treasury/safes [get]
// @Router       /api/treasury/banks [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), companyID, h.kind, c.QueryBool("include_inactive", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out.Kind != h.kind {
		return reject(c, fiber.StatusNotFound, "NOT_FOUND", "cuenta no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos de caja / banco (nunca el saldo)
// @Tags         treasury
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AccountResponse
// @Router       /api/treasury/safes/{id} [put]
// @Router       /api/treasury/banks/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateAccountRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar caja / banco con saldo cero
// @Tags         treasury
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/treasury/safes/{id} [delete]
// @Router       /api/treasury/banks/{id} [delete]
func (h *AccountHandler) Deactivate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Deactivate(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VoucherHandler atiende recibos de caja o comprobantes de egreso según kind.
type VoucherHandler struct {
	uc   *treasury.VoucherUseCase
	kind string
}

func NewVoucherHandler(uc *treasury.VoucherUseCase, kind string) *VoucherHandler {
	return &VoucherHandler{uc: uc, kind: kind}
}

func (h *VoucherHandler) documentType() string {
	if h.kind == entity.VoucherKindPayment {
		return entity.DocumentPayment
	}
	return entity.DocumentReceipt
}

// Create godoc
// @Summary      Registrar recibo de caja / comprobante de egreso
// @Tags         treasury
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVoucherRequest  true  "Comprobante"
// @Success      201   {object}  dto.VoucherResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/treasury/receipts [post]
// @Router       /api/treasury/payments [post]
func (h *VoucherHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateVoucherRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var (
		out *dto.VoucherResponse
		err error
	)
	if h.kind == entity.VoucherKindPayment {
		out, err = h.uc.CreatePayment(c.UserContext(), companyID, GetUserID(c), in)
	} else {
		out, err = h.uc.CreateReceipt(c.UserContext(), companyID, GetUserID(c), in)
	}
	if err != nil {
		return respondError(c, err)
	}
	documentCreated(c, h.documentType())
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *VoucherHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar comprobantes
// @Tags         treasury
// @Security     Bearer
// @Produce      json
// @Param        party_id    query  string  false  "Tercero"
// @Param        account_id  query  string  false  "Caja o banco"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.VoucherListResponse
// @Router       /api/treasury/receipts [get]
// @Router       /api/treasury/payments [get]
func (h *VoucherHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.List(c.UserContext(), companyID, h.kind, dto.VoucherFilter{
		PartyID:     c.Query("party_id"),
		AccountID:   c.Query("account_id"),
		DateRange:   rng,
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular comprobante
// @Tags         treasury
// @Security     Bearer
// @Param        id   path  string  true  "ID del comprobante"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/treasury/receipts/{id} [delete]
// @Router       /api/treasury/payments/{id} [delete]
func (h *VoucherHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var err error
	if h.kind == entity.VoucherKindPayment {
		err = h.uc.DeletePayment(c.UserContext(), companyID, c.Params("id"))
	} else {
		err = h.uc.DeleteReceipt(c.UserContext(), companyID, c.Params("id"))
	}
	if err != nil {
		return respondError(c, err)
	}
	documentDeleted(c, h.documentType())
	return c.SendStatus(fiber.StatusNoContent)
}

// TransferHandler atiende traslados entre cuentas.
type TransferHandler struct {
	uc *treasury.TransferUseCase
}

func NewTransferHandler(uc *treasury.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Trasladar fondos entre cuentas
// @Tags         treasury
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Traslado"
// @Success      201   {object}  dto.TransferResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/treasury/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateTransferRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	documentCreated(c, "TRANSFER")
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *TransferHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), companyID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular traslado
// @Tags         treasury
// @Security     Bearer
// @Param        id   path  string  true  "ID del traslado"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/treasury/transfers/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	documentDeleted(c, "TRANSFER")
	return c.SendStatus(fiber.StatusNoContent)
}
