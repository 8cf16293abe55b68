package timeline

import (
	"time"
)

// Entry categories. Staff post announcements and set times from the
// dashboard; other categories (check-ins and the like) are written by the
// mobile clients into the same table.
const (
	CategoryAnnouncement = "announcement"
	CategorySetTime      = "set_time"
)

// ============================
// 🔷 GORM Timeline Entry Model
type TimelineEntry struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	EventID       uint       `gorm:"column:event_id;not null;index" json:"event_id"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	EventCategory string     `gorm:"column:event_category;type:varchar(50);not null" json:"event_category"`
	ScheduledFor  *time.Time `gorm:"column:scheduled_for" json:"scheduled_for,omitempty"` // set_time entries only
	IsScheduled   bool       `gorm:"column:is_scheduled;default:false" json:"is_scheduled"`
	UserID        *uint      `gorm:"column:user_id;index" json:"user_id,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (TimelineEntry) TableName() string {
	return "timeline_events"
}

// ============================
// 🔷 GORM Reaction Model (written by mobile clients)
type Reaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TimelineEventID uint      `gorm:"column:timeline_event_id;not null;index" json:"timeline_event_id"`
	UserID          *uint     `gorm:"column:user_id;index" json:"user_id,omitempty"`
	Reaction        string    `gorm:"type:varchar(50);not null" json:"reaction"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Reaction) TableName() string {
	return "timeline_event_reactions"
}

// ReactionTally maps a reaction label to how many users posted it.
// Derived on every aggregation pass, never persisted.
type ReactionTally map[string]int

// EntryKey is the value-equality reconciliation key renderers use for list
// diffing. A struct rather than a formatted string so two entries can never
// collide through concatenation.
type EntryKey struct {
	ID        uint  `json:"id"`
	CreatedAt int64 `json:"created_at"`
}

// Entry is a timeline entry with its derived reaction tally attached.
type Entry struct {
	TimelineEntry
	Reactions     ReactionTally `json:"reactions"`
	CreatedAtUnix int64         `json:"created_at_ts"`
	Key           EntryKey      `json:"key"`
}

// ============================
// 🟡 Requests
type AddAnnouncementRequest struct {
	EventID     uint   `json:"event_id" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type AddSetTimeRequest struct {
	EventID       uint   `json:"event_id" binding:"required"`
	Description   string `json:"description" binding:"required"`    // DJ / artist name
	ScheduledTime string `json:"scheduled_time" binding:"required"` // 🛠 string format: "15:04"
}

type UpdateEntryRequest struct {
	Description   string `json:"description" binding:"required"`
	ScheduledTime string `json:"scheduled_time,omitempty"` // only meaningful for set_time entries
}
