package history

import "time"

// LinkEvent is one recorded link write: which tag was pointed at which
// model and source, and when.
type LinkEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TagUID    string    `json:"tag_uid" gorm:"size:16;index"`
	BoxID     string    `json:"box_id" gorm:"size:64"`
	Model     string    `json:"model" gorm:"size:32"`
	Source    string    `json:"source" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the explicit table name.
func (LinkEvent) TableName() string {
	return "link_events"
}
