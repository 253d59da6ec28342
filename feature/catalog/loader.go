package catalog

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

// NewFeature creates the catalog feature. backups may be nil when off-site
// backups are disabled.
func NewFeature(manager *Manager, api teddycloud.API, c *cache.Cache, backups *BackupStore, logger *zap.Logger) *Feature {
	svc := NewService(manager, api, c, backups, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
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
