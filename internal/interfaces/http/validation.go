package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator devuelve el validador compartido. decimal.Decimal se valida como float64
// para que gt/gte/lte apliquen a montos y cantidades.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			switch v := field.Interface().(type) {
			case decimal.Decimal:
				return v.InexactFloat64()
			case *decimal.Decimal:
				if v == nil {
					return nil
				}
				return v.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// parseBody decodifica y valida el cuerpo. Si falla ya respondió y ok es false.
func parseBody(c *fiber.Ctx, out interface{}) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, invalidBody(c)
	}
	if err := Validator().Struct(out); err != nil {
		return false, validationError(c, err)
	}
	return true, nil
}

func validationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return reject(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe.Namespace())] = describe(fe)
	}
	c.Locals(localErrorCode, "VALIDATION")
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Fields:  fields,
	})
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "uuid":
		return "debe ser un UUID"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual que " + fe.Param()
	case "min":
		return "longitud o cantidad mínima " + fe.Param()
	case "max":
		return "longitud máxima " + fe.Param()
	case "len":
		return "longitud exacta " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "nefield":
		return "no puede ser igual a " + fe.Param()
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}
