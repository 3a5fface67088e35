package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biciros/internal/application/dto"
	"github.com/jhoicas/biciros/internal/application/products"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP del inventario (protegido).
type ProductHandler struct {
	hook *products.Hook
}

// NewProductHandler construye el handler.
func NewProductHandler(hook *products.Hook) *ProductHandler {
	return &ProductHandler{hook: hook}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q               query  string  false  "Texto en nombre, marca o modelo"
// @Param        disponibilidad  query  string  false  "todos | disponible | no_disponible | destacado"
// @Param        categoria       query  string  false  "Categoría o todos"
// @Success      200             {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list := products.Filter(h.hook.Records(), products.Criteria{
		Query:        c.Query("q"),
		Availability: c.Query("disponibilidad"),
		Category:     c.Query("categoria"),
	})
	return c.JSON(dto.ToProductList(list, feedState(h.hook.Loading(), h.hook.Err())))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, ok := h.hook.Find(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.ToProductResponse(p))
}

// Stats resumen del inventario.
// GET /api/products/stats
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(dto.ToProductStatsDTO(products.Summarize(h.hook.Records())))
}

// Stream envía el listado completo en cada cambio (Server-Sent Events).
// GET /api/products/stream
func (h *ProductHandler) Stream(c *fiber.Ctx) error {
	return streamSnapshots[entity.Product](c, h.hook, func(list []entity.Product) any {
		return dto.ToProductList(list, dto.FeedState{})
	})
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	id, err := h.hook.Add(c.UserContext(), in.ToEntity())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Stock 0 o negativo marca el producto como no disponible.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	if err := h.hook.Update(c.UserContext(), c.Params("id"), in.ToEntity()); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete elimina el producto. Solo admin.
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.hook.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
