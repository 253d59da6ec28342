package library

import (
	"context"
	"sort"
	"strings"

	"tag-manager/core/cache"
	"tag-manager/core/linkage"
	"tag-manager/core/teddycloud"
	"tag-manager/core/utils"

	"go.uber.org/zap"
)

// Item is one row of the content-centric linkage view: a content file
// joined to at most one catalog entry.
type Item struct {
	ContentFile
	IsLinked bool           `json:"is_linked"`
	Linked   *linkage.Entry `json:"linked_entry,omitempty"`
}

// Report is the paginated content-centric view. The counts cover the full
// unfiltered file set, not just the returned page.
type Report struct {
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	Items         []Item `json:"items"`
	TotalCount    int    `json:"total_count"`
	LinkedCount   int    `json:"linked_count"`
	OrphanedCount int    `json:"orphaned_count"`
	utils.PageInfo
}

// Service builds the content-centric linkage view.
type Service struct {
	scanner *Scanner
	api     teddycloud.API
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewService creates a library service.
func NewService(scanner *Scanner, api teddycloud.API, c *cache.Cache, logger *zap.Logger) *Service {
	return &Service{
		scanner: scanner,
		api:     api,
		cache:   c,
		logger:  logger,
	}
}

const combinedCatalogKey = "combined"

// CombinedCatalog returns the custom and official catalogs concatenated,
// custom entries first so they win index ties. Cached under the catalog
// namespace.
func (s *Service) CombinedCatalog(ctx context.Context) ([]linkage.Entry, error) {
	v, err := s.cache.Fetch(ctx, cache.NamespaceCatalog, combinedCatalogKey, func(ctx context.Context) (any, error) {
		custom, err := s.api.CustomCatalog(ctx)
		if err != nil {
			return nil, err
		}
		official, err := s.api.OfficialCatalog(ctx)
		if err != nil {
			return nil, err
		}
		combined := make([]linkage.Entry, 0, len(custom)+len(official))
		combined = append(combined, custom...)
		combined = append(combined, official...)
		return combined, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]linkage.Entry), nil
}

// ListLinkage matches every content file against the catalog and returns
// the requested page. Matching priority is audio id, then content hash;
// files matching neither are orphaned. Linked items sort first, then
// alphabetically by display name.
func (s *Service) ListLinkage(ctx context.Context, skip, limit int, refresh bool) (*Report, error) {
	if refresh {
		dropped := s.scanner.Invalidate()
		s.logger.Debug("Library cache invalidated", zap.Int("entries", dropped))
	}

	files, err := s.scanner.Files(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.CombinedCatalog(ctx)
	if err != nil {
		return nil, err
	}

	ix := linkage.BuildIndex(entries, s.logger)

	items := make([]Item, 0, len(files))
	linked := 0
	for _, f := range files {
		entry := linkage.FirstMatch(
			linkage.Candidate{AudioID: f.AudioID, Hash: f.Hash},
			ix.MatchAudioID,
			ix.MatchHash,
		)
		item := Item{ContentFile: f, IsLinked: entry != nil, Linked: entry}
		if item.IsLinked {
			linked++
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsLinked != items[j].IsLinked {
			return items[i].IsLinked
		}
		return strings.ToLower(displayName(&items[i])) < strings.ToLower(displayName(&items[j]))
	})

	page, info := utils.Paginate(items, skip, limit)
	return &Report{
		Success:       true,
		Items:         page,
		TotalCount:    len(items),
		LinkedCount:   linked,
		OrphanedCount: len(items) - linked,
		PageInfo:      info,
	}, nil
}

func displayName(it *Item) string {
	if it.Linked != nil {
		if name := it.Linked.DisplayName(); name != "" {
			return name
		}
	}
	return it.Name
}

// SourceKeyMap cross-matches content files against the catalog and re-keys
// the result by library source reference. It lets a tag that only carries
// a raw source path resolve to a catalog entry.
func (s *Service) SourceKeyMap(ctx context.Context) (map[string]*linkage.Entry, error) {
	files, err := s.scanner.Files(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.CombinedCatalog(ctx)
	if err != nil {
		return nil, err
	}
	ix := linkage.BuildIndex(entries, s.logger)

	bySource := make(map[string]*linkage.Entry)
	for _, f := range files {
		entry := linkage.FirstMatch(
			linkage.Candidate{AudioID: f.AudioID, Hash: f.Hash},
			ix.MatchAudioID,
			ix.MatchHash,
		)
		if entry == nil {
			continue
		}
		key := linkage.FormatSource(f.Path)
		if _, taken := bySource[key]; !taken {
			bySource[key] = entry
		}
	}
	return bySource, nil
}
