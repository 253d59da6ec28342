package catalog

import (
	"context"

	"tag-manager/core/cache"
	"tag-manager/core/linkage"
	"tag-manager/core/teddycloud"
	"tag-manager/core/utils"

	"go.uber.org/zap"
)

// Report is the paginated catalog listing.
type Report struct {
	Success    bool            `json:"success"`
	Error      string          `json:"error,omitempty"`
	Items      []linkage.Entry `json:"items"`
	TotalCount int             `json:"total_count"`
	utils.PageInfo
}

// Service exposes read and mutate operations over the custom catalog.
// Reads go through the device API and are cached; mutations go to the
// on-disk file, then the device is asked to reload.
type Service struct {
	manager *Manager
	api     teddycloud.API
	cache   *cache.Cache
	backups *BackupStore
	logger  *zap.Logger
}

// NewService creates a catalog service. backups may be nil when off-site
// backups are disabled.
func NewService(manager *Manager, api teddycloud.API, c *cache.Cache, backups *BackupStore, logger *zap.Logger) *Service {
	return &Service{
		manager: manager,
		api:     api,
		cache:   c,
		backups: backups,
		logger:  logger,
	}
}

const customCatalogKey = "custom"

// List returns one page of the custom catalog.
func (s *Service) List(ctx context.Context, skip, limit int) (*Report, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	page, info := utils.Paginate(entries, skip, limit)
	return &Report{
		Success:    true,
		Items:      page,
		TotalCount: len(entries),
		PageInfo:   info,
	}, nil
}

// Get returns the entry with the given sequence number.
func (s *Service) Get(ctx context.Context, no string) (*linkage.Entry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if string(entries[i].No) == no {
			return &entries[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) entries(ctx context.Context) ([]linkage.Entry, error) {
	v, err := s.cache.Fetch(ctx, cache.NamespaceCatalog, customCatalogKey, func(ctx context.Context) (any, error) {
		return s.api.CustomCatalog(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]linkage.Entry), nil
}

// Create adds a catalog entry and propagates the change to the device.
func (s *Service) Create(ctx context.Context, entry linkage.Entry) (*linkage.Entry, error) {
	created, err := s.manager.Create(entry, s.snapshotFn(ctx))
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx)
	return created, nil
}

// Update applies a partial update to an entry.
func (s *Service) Update(ctx context.Context, no string, upd EntryUpdate) (*linkage.Entry, error) {
	updated, err := s.manager.Update(no, upd, s.snapshotFn(ctx))
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx)
	return updated, nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, no string) error {
	if err := s.manager.Delete(no, s.snapshotFn(ctx)); err != nil {
		return err
	}
	s.afterMutation(ctx)
	return nil
}

// NextModelNumber returns the next free custom model number.
func (s *Service) NextModelNumber() (string, error) {
	return s.manager.NextModelNumber()
}

// snapshotFn returns the pre-save hook uploading the previous catalog file
// to the backup store, or nil when backups are disabled.
func (s *Service) snapshotFn(ctx context.Context) func(prev []byte) {
	if s.backups == nil {
		return nil
	}
	return func(prev []byte) {
		if err := s.backups.Upload(ctx, prev); err != nil {
			s.logger.Warn("Off-site catalog backup failed", zap.Error(err))
		}
	}
}

// afterMutation drops cached catalog views and asks the device to reload.
// The reload is best effort; the file on disk is already consistent.
func (s *Service) afterMutation(ctx context.Context) {
	s.cache.InvalidatePrefix(cache.NamespaceCatalog + ":")
	if err := s.api.TriggerConfigReload(ctx); err != nil {
		s.logger.Warn("Device catalog reload failed", zap.Error(err))
	}
}
