package allowlist

import "time"

// ApprovedEmail is an allowlisted address that may sign into the mobile app.
type ApprovedEmail struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	AddedBy   *uint     `json:"added_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ApprovedEmail) TableName() string {
	return "approved_emails"
}

type AddEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required"`
}
