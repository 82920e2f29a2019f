package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
)

// localErrorCode guarda el código de rechazo para el middleware de métricas.
const localErrorCode = "error_code"

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInactive, fiber.StatusUnprocessableEntity, "INACTIVE"},
	{domain.ErrInsufficientStock, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
	{domain.ErrInsufficientBalance, fiber.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
	{domain.ErrReturnExceeded, fiber.StatusUnprocessableEntity, "RETURN_EXCEEDED"},
}

// respondError traduce un error de caso de uso a status HTTP + dto.ErrorResponse.
// Los errores que no son de dominio se registran y se ocultan al cliente.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return reject(c, m.status, m.code, err.Error())
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("error no controlado")
	c.Locals(localErrorCode, "INTERNAL")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno, intente más tarde"})
}

// reject responde un error de negocio o de entrada y lo marca para métricas.
func reject(c *fiber.Ctx, status int, code, message string) error {
	c.Locals(localErrorCode, code)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func unauthorized(c *fiber.Ctx) error {
	return reject(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "company_id requerido")
}

func invalidBody(c *fiber.Ctx) error {
	return reject(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}
