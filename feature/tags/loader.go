package tags

import (
	"tag-manager/core/teddycloud"
	"tag-manager/feature/library"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature wires the tags feature: box registry over the config volume,
// tag state store over the content volume, linkage through the shared
// library service. recorder may be nil.
func NewFeature(api teddycloud.API, configPath, contentPath string, lib *library.Service, recorder LinkRecorder, logger *zap.Logger) *Feature {
	registry := NewRegistry(configPath, contentPath, logger)
	store := NewStateStore(contentPath, api, registry, logger)
	svc := NewService(api, registry, store, lib, recorder, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "tags"
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
