package history

import (
	"tag-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the link history.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleList)
}

// HandleList returns one page of link events, newest first.
// @Summary List link history
// @Tags history
// @Produce json
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} Report "Link events"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/history [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.List(c.Context(), c.QueryInt("skip", 0), c.QueryInt("limit", 0))
	if err != nil {
		l.Error("History listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(report)
}
