package history

import (
	"context"

	"tag-manager/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report is the paginated link-event listing, newest first.
type Report struct {
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	Items      []LinkEvent `json:"items"`
	TotalCount int         `json:"total_count"`
	utils.PageInfo
}

// Service records and lists link events. The database is optional: with a
// nil connection, recording is a no-op and listing returns empty.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a history service. db may be nil.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Enabled reports whether a database connection is available.
func (s *Service) Enabled() bool {
	return s.db != nil
}

// Migrate creates the link_events table if needed.
func (s *Service) Migrate() error {
	if s.db == nil {
		return nil
	}
	return s.db.AutoMigrate(&LinkEvent{})
}

// Record persists one link event. Failures are logged, never propagated;
// auditing must not break the link operation itself.
func (s *Service) Record(ctx context.Context, uid, boxID, model, source string) {
	if s.db == nil {
		return
	}
	event := LinkEvent{TagUID: uid, BoxID: boxID, Model: model, Source: source}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		s.logger.Warn("Failed to record link event", zap.String("uid", uid), zap.Error(err))
	}
}

// List returns one page of link events, newest first.
func (s *Service) List(ctx context.Context, skip, limit int) (*Report, error) {
	skip, limit = utils.ClampPage(skip, limit)

	if s.db == nil {
		return &Report{
			Success: true,
			Items:   []LinkEvent{},
			PageInfo: utils.PageInfo{
				Page:     (skip / limit) + 1,
				PageSize: limit,
			},
		}, nil
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&LinkEvent{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var events []LinkEvent
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return &Report{
		Success:    true,
		Items:      events,
		TotalCount: int(total),
		PageInfo: utils.PageInfo{
			Page:     (skip / limit) + 1,
			PageSize: limit,
			HasNext:  skip+limit < int(total),
			HasPrev:  skip > 0,
		},
	}, nil
}
