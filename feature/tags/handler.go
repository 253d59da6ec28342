package tags

import (
	"errors"

	"tag-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for tags.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the tag routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tags")
	group.Get("/", h.HandleListAll)
	group.Get("/boxes", h.HandleListBoxes)
	group.Get("/box/:boxId", h.HandleListForBox)
	group.Get("/box/:boxId/last-played", h.HandleLastPlayed)
	group.Post("/link", h.HandleLink)
}

// HandleListAll returns the reconciled view over every persisted tag.
// @Summary List all tags
// @Tags tags
// @Produce json
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} Report "Tag report"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/tags [get]
func (h *Handler) HandleListAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.ListAll(c.Context(), c.QueryInt("skip", 0), c.QueryInt("limit", 0))
	if err != nil {
		l.Error("Tag listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(report)
}

// HandleListBoxes returns all registered boxes.
// @Summary List boxes
// @Tags tags
// @Produce json
// @Success 200 {object} map[string]interface{} "Boxes"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/tags/boxes [get]
func (h *Handler) HandleListBoxes(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	boxes, err := h.service.ListBoxes()
	if err != nil {
		l.Error("Box listing failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"success": true, "items": boxes, "total_count": len(boxes)})
}

// HandleListForBox returns the filtered tag view of one box.
// @Summary List tags for a box
// @Description Returns the most recently played tag plus all setup candidates for one box.
// @Tags tags
// @Produce json
// @Param boxId path string true "Box certificate id"
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} Report "Tag report"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/tags/box/{boxId} [get]
func (h *Handler) HandleListForBox(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.ListForBox(c.Context(), c.Params("boxId"), c.QueryInt("skip", 0), c.QueryInt("limit", 0))
	if err != nil {
		l.Error("Box tag listing failed", zap.String("box_id", c.Params("boxId")), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(report)
}

// HandleLastPlayed returns the most recently played tag uid of a box.
// @Summary Last played tag
// @Tags tags
// @Produce json
// @Param boxId path string true "Box certificate id"
// @Success 200 {object} map[string]interface{} "Last played uid"
// @Router /api/tags/box/{boxId}/last-played [get]
func (h *Handler) HandleLastPlayed(c *fiber.Ctx) error {
	uid, ok := h.service.LastPlayed(c.Context(), c.Params("boxId"))
	return c.JSON(fiber.Map{"success": true, "uid": uid, "found": ok})
}

// HandleLink assigns a catalog model and content path to a tag.
// @Summary Link a tag
// @Description Partially updates one tag state file with the given model and content path.
// @Tags tags
// @Accept json
// @Produce json
// @Param request body LinkRequest true "Link request"
// @Success 200 {object} map[string]interface{} "Resolved source"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Tag state file not found"
// @Failure 500 {object} map[string]interface{} "Write failure"
// @Router /api/tags/link [post]
func (h *Handler) HandleLink(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	source, err := h.service.Link(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUID), errors.Is(err, ErrInvalidPath):
			return fail(c, fiber.StatusBadRequest, err)
		case errors.Is(err, ErrTagFileNotFound):
			return fail(c, fiber.StatusNotFound, err)
		}
		l.Error("Tag link failed", zap.String("uid", req.TagUID), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"success": true, "source": source})
}

func fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
