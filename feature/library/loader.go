package library

import (
	"tag-manager/core/cache"
	"tag-manager/core/teddycloud"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the library feature around a shared scanner.
func NewFeature(scanner *Scanner, api teddycloud.API, c *cache.Cache, logger *zap.Logger) *Feature {
	svc := NewService(scanner, api, c, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "library"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service for cross-feature wiring.
func (f *Feature) Service() *Service {
	return f.service
}
