package tags

import (
	"context"
	"sort"
	"strings"

	"tag-manager/core/linkage"
	"tag-manager/core/teddycloud"
	"tag-manager/core/utils"
	"tag-manager/feature/library"

	"go.uber.org/zap"
)

// TagView is one reconciled tag: device or persisted state joined to at
// most one catalog entry, with the status derived, never stored.
type TagView struct {
	UID        string         `json:"uid"`
	BoxID      string         `json:"box_id,omitempty"`
	Model      string         `json:"model,omitempty"`
	Source     string         `json:"source,omitempty"`
	NoCloud    bool           `json:"nocloud"`
	Status     linkage.Status `json:"status"`
	Category   string         `json:"category,omitempty"`
	Series     string         `json:"series,omitempty"`
	Episode    string         `json:"episode,omitempty"`
	Picture    string         `json:"picture,omitempty"`
	IsLinked   bool           `json:"is_linked"`
	LastPlayed bool           `json:"last_played"`
}

// Report is a paginated tag view. For the box view the counts cover the
// filtered set (last played plus setup candidates), for the all-tags view
// the full set.
type Report struct {
	Success           bool      `json:"success"`
	Error             string    `json:"error,omitempty"`
	Items             []TagView `json:"items"`
	TotalCount        int       `json:"total_count"`
	AssignedCount     int       `json:"assigned_count"`
	UnassignedCount   int       `json:"unassigned_count"`
	UnconfiguredCount int       `json:"unconfigured_count"`
	utils.PageInfo
}

// LinkRequest is the payload of the link-write operation.
type LinkRequest struct {
	TagUID      string `json:"tag_uid"`
	BoxID       string `json:"box_id"`
	Model       string `json:"model"`
	ContentPath string `json:"content_path"`
}

// LinkRecorder receives successful link writes for auditing. Recording is
// best effort and must never fail the link.
type LinkRecorder interface {
	Record(ctx context.Context, uid, boxID, model, source string)
}

// Service builds the tag-centric reconciliation views and performs the
// link write.
type Service struct {
	api      teddycloud.API
	registry *Registry
	store    *StateStore
	library  *library.Service
	recorder LinkRecorder
	logger   *zap.Logger
}

// NewService creates a tags service. recorder may be nil when link history
// is disabled.
func NewService(api teddycloud.API, registry *Registry, store *StateStore, lib *library.Service, recorder LinkRecorder, logger *zap.Logger) *Service {
	return &Service{
		api:      api,
		registry: registry,
		store:    store,
		library:  lib,
		recorder: recorder,
		logger:   logger,
	}
}

// ListBoxes returns all registered boxes, sorted by display name.
func (s *Service) ListBoxes() ([]Box, error) {
	return s.registry.Boxes()
}

// LastPlayed resolves the most recently played tag of a box.
func (s *Service) LastPlayed(ctx context.Context, certID string) (string, bool) {
	return s.store.LastPlayed(ctx, certID)
}

// ListForBox returns the reconciled tag view of one box, filtered to the
// most recently played tag plus every setup candidate (unconfigured or
// unassigned). Fully assigned tags that were not played last are excluded;
// the counts cover the filtered set.
func (s *Service) ListForBox(ctx context.Context, certID string, skip, limit int) (*Report, error) {
	deviceTags, err := s.api.TagIndex(ctx, certID)
	if err != nil {
		// A dead device degrades to an empty view rather than an error.
		s.logger.Warn("Tag index unavailable, returning empty view",
			zap.String("box_id", certID), zap.Error(err))
		deviceTags = nil
	}

	ix, bySource := s.matchers(ctx)
	lastPlayed, _ := s.store.LastPlayed(ctx, certID)

	views := make([]TagView, 0, len(deviceTags))
	for _, tag := range deviceTags {
		view := s.reconcile(tag, certID, ix, bySource)
		view.LastPlayed = view.UID == lastPlayed
		if !view.LastPlayed && view.Status == linkage.StatusAssigned {
			continue
		}
		views = append(views, view)
	}

	sortViews(views)
	return buildReport(views, skip, limit), nil
}

// ListAll returns the reconciled view over every persisted tag state file
// across all box directories. Counts cover the full set.
func (s *Service) ListAll(ctx context.Context, skip, limit int) (*Report, error) {
	boxes, err := s.registry.Boxes()
	if err != nil {
		return nil, err
	}

	ix, bySource := s.matchers(ctx)

	var views []TagView
	seen := make(map[string]bool)
	for _, box := range boxes {
		if seen[box.ContentDirectoryID] {
			continue
		}
		seen[box.ContentDirectoryID] = true

		states, err := s.store.TagStates(box.ContentDirectoryID)
		if err != nil {
			s.logger.Warn("Tag state listing failed",
				zap.String("box_dir", box.ContentDirectoryID), zap.Error(err))
			continue
		}
		for _, st := range states {
			tag := teddycloud.Tag{
				RUID:    st.UID,
				Source:  st.Source,
				NoCloud: st.NoCloud,
				TonieInfo: teddycloud.TonieInfo{
					Model: st.Model,
				},
			}
			views = append(views, s.reconcile(tag, box.CertificateID, ix, bySource))
		}
	}

	sortViews(views)
	return buildReport(views, skip, limit), nil
}

// Link validates and performs the link write, then records it.
func (s *Service) Link(ctx context.Context, req LinkRequest) (string, error) {
	uid := strings.ToLower(req.TagUID)
	if err := ValidateUID(uid); err != nil {
		return "", err
	}
	if err := ValidateContentPath(req.ContentPath); err != nil {
		return "", err
	}

	source, err := s.store.LinkTag(uid, req.BoxID, req.Model, req.ContentPath)
	if err != nil {
		return "", err
	}
	if s.recorder != nil {
		s.recorder.Record(ctx, uid, req.BoxID, req.Model, source)
	}
	return source, nil
}

// matchers builds the catalog index and the source-key map. Both degrade
// to empty on upstream failure; tags then keep their device-provided info.
func (s *Service) matchers(ctx context.Context) (*linkage.Index, map[string]*linkage.Entry) {
	entries, err := s.library.CombinedCatalog(ctx)
	if err != nil {
		s.logger.Warn("Catalog unavailable, tags keep device info", zap.Error(err))
		entries = nil
	}
	ix := linkage.BuildIndex(entries, s.logger)

	bySource, err := s.library.SourceKeyMap(ctx)
	if err != nil {
		s.logger.Warn("Source map unavailable", zap.Error(err))
		bySource = map[string]*linkage.Entry{}
	}
	return ix, bySource
}

// reconcile joins one device-reported tag with the catalog. A successful
// relink overwrites the view's model and forces assigned status, because
// device data may be stale; persisted state is never touched here.
func (s *Service) reconcile(tag teddycloud.Tag, certID string, ix *linkage.Index, bySource map[string]*linkage.Entry) TagView {
	uid := strings.ToLower(tag.RUID)
	model := tag.TonieInfo.Model

	view := TagView{
		UID:     uid,
		BoxID:   certID,
		Model:   model,
		Source:  tag.Source,
		NoCloud: tag.NoCloud,
		Status:  linkage.DeriveStatus(model, tag.Source),
	}

	entry := linkage.FirstMatch(
		linkage.Candidate{Model: model, Source: tag.Source},
		ix.MatchModel,
		linkage.SourceMatcher(bySource),
	)
	if entry != nil {
		view.IsLinked = true
		view.Model = entry.Model
		view.Status = linkage.StatusAssigned
		view.Series = entry.Series
		view.Episode = entry.Episodes
		view.Picture = entry.Pic
		if entry.IsCustom() {
			view.Category = linkage.CategoryCustom
		} else {
			view.Category = linkage.CategoryOfficial
		}
		return view
	}

	// No catalog match: keep the device's descriptive info verbatim.
	view.Series = tag.TonieInfo.Series
	view.Episode = tag.TonieInfo.Episode
	view.Picture = tag.TonieInfo.Picture
	if strings.HasPrefix(model, linkage.CustomModelPrefix) {
		view.Category = linkage.CategoryCustom
	} else if model != "" {
		view.Category = linkage.CategoryOfficial
	}
	return view
}

func sortViews(views []TagView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].LastPlayed != views[j].LastPlayed {
			return views[i].LastPlayed
		}
		return views[i].UID < views[j].UID
	})
}

func buildReport(views []TagView, skip, limit int) *Report {
	report := &Report{Success: true, TotalCount: len(views)}
	for _, v := range views {
		switch v.Status {
		case linkage.StatusAssigned:
			report.AssignedCount++
		case linkage.StatusUnassigned:
			report.UnassignedCount++
		case linkage.StatusUnconfigured:
			report.UnconfiguredCount++
		}
	}
	report.Items, report.PageInfo = utils.Paginate(views, skip, limit)
	return report
}
