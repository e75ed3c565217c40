package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	if !idAssigned(in.ID) {
		if ok, err := checkBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Add(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Description  Con ?currency= el precio se devuelve convertido (truncado a 2 decimales).
// @Tags         products
// @Produce      json
// @Param        id        path   int     true   "ID del producto"
// @Param        currency  query  string  false  "Moneda ISO 4217 destino"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, CodeInvalidID, "id debe ser un entero")
	}
	target, err := queryCurrency(c)
	if err != nil {
		return badRequest(c, CodeInvalidCurrency, "currency debe ser un código ISO 4217")
	}
	out, err := h.uc.Get(c.UserContext(), id, target)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetFull godoc
// @Summary      Producto con su cadena de categorías
// @Tags         products
// @Produce      json
// @Param        id        path   int     true   "ID del producto"
// @Param        currency  query  string  false  "Moneda ISO 4217 destino"
// @Success      200  {object}  dto.FullProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/full [get]
func (h *ProductHandler) GetFull(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, CodeInvalidID, "id debe ser un entero")
	}
	target, err := queryCurrency(c)
	if err != nil {
		return badRequest(c, CodeInvalidCurrency, "currency debe ser un código ISO 4217")
	}
	out, err := h.uc.GetFull(c.UserContext(), id, target)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sheet godoc
// @Summary      Ficha PDF del producto
// @Tags         products
// @Produce      application/pdf
// @Param        id        path   int     true   "ID del producto"
// @Param        currency  query  string  false  "Moneda ISO 4217 destino"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sheet [get]
func (h *ProductHandler) Sheet(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, CodeInvalidID, "id debe ser un entero")
	}
	target, err := queryCurrency(c)
	if err != nil {
		return badRequest(c, CodeInvalidCurrency, "currency debe ser un código ISO 4217")
	}
	pdf, err := h.uc.Sheet(c.UserContext(), id, target)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="producto-%d.pdf"`, id))
	return c.Send(pdf)
}

// ListByCategory godoc
// @Summary      Listar productos de una categoría
// @Tags         products
// @Produce      json
// @Param        category_id  query  int  true  "ID de la categoría"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseInt(c.Query("category_id"), 10, 64)
	if err != nil {
		return badRequest(c, CodeInvalidID, "category_id es requerido y debe ser un entero")
	}
	out, err := h.uc.ListByCategory(c.UserContext(), categoryID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  El "id" del cuerpo debe coincidir con el de la ruta.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, CodeInvalidID, "id debe ser un entero")
	}
	var in dto.ProductRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	if !idMismatch(id, in.ID) {
		if ok, err := checkBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, CodeInvalidID, "id debe ser un entero")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
