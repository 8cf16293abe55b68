package event

import (
	"time"

	"gorm.io/datatypes"
)

// ============================
// 🔷 GORM Event Model
//
// Column names follow the shared platform schema; the mobile apps read the
// same tables.
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventName   string         `gorm:"column:event_name;type:varchar(255);not null" json:"event_name"`
	EventDate   time.Time      `gorm:"column:event_date;not null;index" json:"event_date"`
	Location    string         `gorm:"type:text" json:"location"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    *string        `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	Lineup      datatypes.JSON `gorm:"type:jsonb" json:"lineup"`                          // ordered performer names
	PriceTiers  datatypes.JSON `gorm:"column:price_tiers;type:jsonb" json:"price_tiers"`  // tier label -> price
	DressCode   *string        `gorm:"column:dress_code;type:varchar(100)" json:"dress_code,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	EventName   string             `json:"event_name" binding:"required"`
	EventDate   string             `json:"event_date" binding:"required"` // 🛠 string format: "2006-01-02"
	EventTime   string             `json:"event_time,omitempty"`          // 🛠 string format: "15:04"
	Location    string             `json:"location" binding:"required"`
	Description string             `json:"description"`
	ImageURL    *string            `json:"image_url,omitempty"`
	Lineup      []string           `json:"lineup"`
	PriceTiers  map[string]float64 `json:"price_tiers"`
	DressCode   *string            `json:"dress_code,omitempty"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	EventName   string             `json:"event_name" binding:"required"`
	EventDate   string             `json:"event_date" binding:"required"`
	EventTime   string             `json:"event_time,omitempty"`
	Location    string             `json:"location" binding:"required"`
	Description string             `json:"description"`
	ImageURL    *string            `json:"image_url,omitempty"`
	Lineup      []string           `json:"lineup"`
	PriceTiers  map[string]float64 `json:"price_tiers"`
	DressCode   *string            `json:"dress_code,omitempty"`
}
