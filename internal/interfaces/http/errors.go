package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
)

// Códigos de error propios del transporte (los de dominio usan domain.Kind).
const (
	CodeInvalidBody     = "INVALID_BODY"
	CodeInvalidID       = "INVALID_ID"
	CodeValidation      = "VALIDATION"
	CodeInvalidCurrency = "INVALID_CURRENCY"
)

const unknownErrorMessage = "ocurrió un error inesperado, intente más tarde"

// StatusForKind traduce el tipo de error de dominio al código HTTP.
func StatusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindCategoryAssigned,
		domain.KindParentCategoryDoesNotExist,
		domain.KindCategoryIDIsNull,
		domain.KindIDUpdateForbidden,
		domain.KindIDAssignmentForbidden:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con el cuerpo {code, message}. Los errores ajenos al dominio se
// registran completos y se devuelven con un mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		if de.Kind == domain.KindConversionFailed {
			zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("conversión de precio fallida")
		}
		return c.Status(StatusForKind(de.Kind)).JSON(dto.ErrorResponse{Code: string(de.Kind), Message: de.Detail})
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    string(domain.KindUnknown),
		Message: unknownErrorMessage,
	})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// ErrorHandler es el manejador de errores de Fiber: rutas inexistentes, métodos no
// permitidos y cualquier error que un handler devuelva sin responder.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		if fe.Code == fiber.StatusNotFound {
			code = "ROUTE_NOT_FOUND"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
