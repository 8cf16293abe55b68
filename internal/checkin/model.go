package checkin

import "time"

// Checkin records that a user checked in at an event. Rows are written by
// the mobile app; the dashboard reads them for the live guest list.
type Checkin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"index;not null" json:"event_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Checkin) TableName() string {
	return "checkins"
}

// Guest is a check-in joined with the user it belongs to.
type Guest struct {
	CheckinID uint      `json:"checkin_id"`
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	CheckedIn time.Time `json:"checked_in_at"`
}

// DisplayName joins the guest's name parts, falling back to empty when the
// profile has no name yet.
func (g Guest) DisplayName() string {
	switch {
	case g.FirstName != nil && g.LastName != nil:
		return *g.FirstName + " " + *g.LastName
	case g.FirstName != nil:
		return *g.FirstName
	case g.LastName != nil:
		return *g.LastName
	default:
		return ""
	}
}
