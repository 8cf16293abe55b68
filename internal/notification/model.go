package notification

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationLog - each push broadcast actually attempted
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     *uint          `gorm:"index" json:"user_id,omitempty"` // staff sender, nil for kafka-driven sends
	EventID    *uint          `gorm:"index" json:"event_id,omitempty"`
	Channel    string         `gorm:"size:20;not null" json:"channel"` // push
	Title      string         `gorm:"size:255;not null" json:"title"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"` // device token array
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

// PushRequest is the payload accepted over HTTP and on the Kafka topic.
type PushRequest struct {
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body" binding:"required"`
	EventID *uint  `json:"event_id,omitempty"`
}
