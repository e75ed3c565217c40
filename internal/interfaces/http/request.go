package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// validate es seguro para uso concurrente y cachea la metadata de cada struct.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// decimal.Decimal se valida como número (gte, lte...).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validateStruct valida in y arma un mensaje legible "campo: regla".
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// decodeBody parsea y normaliza el JSON. Si falla ya respondió 400 y devuelve ok=false.
func decodeBody(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, CodeInvalidBody, "cuerpo inválido")
	}
	if n, ok := out.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	return true, nil
}

// checkBody aplica las reglas de struct tags. Si falla ya respondió 400 y devuelve ok=false.
func checkBody(c *fiber.Ctx, in any) (ok bool, err error) {
	if err := validateStruct(in); err != nil {
		return false, badRequest(c, CodeValidation, err.Error())
	}
	return true, nil
}

// idAssigned e idMismatch anticipan las reglas de ID que el caso de uso evalúa antes que
// cualquier otro campo; si el cuerpo ya las incumple se omite checkBody y responde el caso de uso.
func idAssigned(bodyID *int64) bool { return bodyID != nil }

func idMismatch(pathID int64, bodyID *int64) bool { return bodyID == nil || *bodyID != pathID }

// paramID lee un ID entero de la ruta. Los no positivos llegan al caso de uso (NotFound).
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// queryCurrency lee ?currency=; vacío significa "sin conversión".
func queryCurrency(c *fiber.Ctx) (*entity.Currency, error) {
	raw := c.Query("currency")
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	cur, err := entity.ParseCurrency(raw)
	if err != nil {
		return nil, err
	}
	return &cur, nil
}
