package library

import (
	"tag-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the library view.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library")
	group.Get("/", h.HandleListLinkage)
}

// HandleListLinkage returns the content-centric linkage view.
// @Summary List library linkage
// @Description Lists every library content file joined to its catalog entry, orphans included.
// @Tags library
// @Accept json
// @Produce json
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size" default(50)
// @Param refresh query bool false "Drop the cached scan first"
// @Success 200 {object} Report "Linkage report"
// @Failure 500 {object} map[string]interface{} "Internal Server Error"
// @Router /api/library [get]
func (h *Handler) HandleListLinkage(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 0)
	refresh := c.QueryBool("refresh", false)
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.ListLinkage(c.Context(), skip, limit, refresh)
	if err != nil {
		l.Error("Library linkage listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(report)
}
