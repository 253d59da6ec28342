package catalog

import (
	"errors"

	"tag-manager/core/linkage"
	"tag-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/next-model", h.HandleNextModel)
	group.Get("/:no", h.HandleGet)
	group.Put("/:no", h.HandleUpdate)
	group.Delete("/:no", h.HandleDelete)
}

// HandleList returns one page of the custom catalog.
// @Summary List custom catalog
// @Tags catalog
// @Produce json
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} Report "Catalog page"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/catalog [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.List(c.Context(), c.QueryInt("skip", 0), c.QueryInt("limit", 0))
	if err != nil {
		l.Error("Catalog listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(report)
}

// HandleGet returns one entry by sequence number.
// @Summary Get catalog entry
// @Tags catalog
// @Produce json
// @Param no path string true "Entry sequence number"
// @Success 200 {object} map[string]interface{} "Entry"
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /api/catalog/{no} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entry, err := h.service.Get(c.Context(), c.Params("no"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, fiber.StatusNotFound, err)
		}
		l.Error("Catalog lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"success": true, "item": entry})
}

// HandleCreate adds a catalog entry.
// @Summary Create catalog entry
// @Tags catalog
// @Accept json
// @Produce json
// @Param entry body linkage.Entry true "Entry to create"
// @Success 201 {object} map[string]interface{} "Created entry"
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Failure 409 {object} map[string]interface{} "Duplicate model"
// @Router /api/catalog [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var entry linkage.Entry
	if err := c.BodyParser(&entry); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	created, err := h.service.Create(c.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrDuplicateModel) {
			return fail(c, fiber.StatusConflict, err)
		}
		l.Error("Catalog create failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "item": created})
}

// HandleUpdate applies a partial update to an entry.
// @Summary Update catalog entry
// @Tags catalog
// @Accept json
// @Produce json
// @Param no path string true "Entry sequence number"
// @Param update body EntryUpdate true "Fields to update"
// @Success 200 {object} map[string]interface{} "Updated entry"
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Failure 409 {object} map[string]interface{} "Duplicate model"
// @Router /api/catalog/{no} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var upd EntryUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	updated, err := h.service.Update(c.Context(), c.Params("no"), upd)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fail(c, fiber.StatusNotFound, err)
		case errors.Is(err, ErrDuplicateModel):
			return fail(c, fiber.StatusConflict, err)
		}
		l.Error("Catalog update failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"success": true, "item": updated})
}

// HandleDelete removes an entry.
// @Summary Delete catalog entry
// @Tags catalog
// @Produce json
// @Param no path string true "Entry sequence number"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Router /api/catalog/{no} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Delete(c.Context(), c.Params("no")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, fiber.StatusNotFound, err)
		}
		l.Error("Catalog delete failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleNextModel returns the next free custom model number.
// @Summary Next custom model number
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Next model number"
// @Router /api/catalog/next-model [get]
func (h *Handler) HandleNextModel(c *fiber.Ctx) error {
	model, err := h.service.NextModelNumber()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"success": true, "model": model})
}

func fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
