package checkin

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ListGuestsByEvent returns the checked-in guest list for an event,
// newest check-in first.
func (r *Repository) ListGuestsByEvent(eventID uint) ([]Guest, error) {
	var guests []Guest
	err := r.DB.Table("checkins").
		Select("checkins.id AS checkin_id, checkins.user_id, users.email, users.first_name, users.last_name, checkins.created_at AS checked_in").
		Joins("JOIN users ON users.id = checkins.user_id").
		Where("checkins.event_id = ?", eventID).
		Order("checkins.created_at DESC").
		Scan(&guests).Error
	return guests, err
}

func (r *Repository) CountByEvent(eventID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&Checkin{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
