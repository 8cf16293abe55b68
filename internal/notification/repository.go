package notification

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) CreateLog(l *NotificationLog) error {
	return r.DB.Create(l).Error
}

func (r *Repository) UpdateLog(l *NotificationLog) error {
	return r.DB.Save(l).Error
}

func (r *Repository) ListLogs(limit int) ([]NotificationLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var logs []NotificationLog
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
