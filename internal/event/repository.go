package event

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 List All Events, earliest first
func (r *Repository) ListEvents() ([]Event, error) {
	var events []Event
	err := r.DB.Order("event_date ASC").Find(&events).Error
	return events, err
}

// ===========================
// 📆 Get Upcoming Events
func (r *Repository) GetUpcomingEvents(now time.Time) ([]Event, error) {
	var events []Event
	err := r.DB.
		Where("event_date >= ?", now).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Event
func (r *Repository) DeleteEvent(id uint) error {
	res := r.DB.Delete(&Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
