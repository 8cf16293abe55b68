package user

import "time"

// User is a registered mobile-app user. Rows are created by the app at
// sign-up; the dashboard only reads and curates them.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName      *string    `gorm:"size:255" json:"first_name,omitempty"`
	LastName       *string    `gorm:"size:255" json:"last_name,omitempty"`
	Phone          *string    `gorm:"size:32" json:"phone,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	EventsAttended int        `gorm:"default:0" json:"events_attended"`
	AvatarURL      *string    `gorm:"size:512" json:"avatar_url,omitempty"`
	PushToken      *string    `gorm:"size:512" json:"push_token,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

type UpdateUserRequest struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	AvatarURL   *string    `json:"avatar_url"`
	PushToken   *string    `json:"push_token"`
}

// FullName joins the name parts for display and exports; empty when the
// user has not filled their profile in yet.
func (u User) FullName() string {
	switch {
	case u.FirstName != nil && u.LastName != nil:
		return *u.FirstName + " " + *u.LastName
	case u.FirstName != nil:
		return *u.FirstName
	case u.LastName != nil:
		return *u.LastName
	default:
		return ""
	}
}
