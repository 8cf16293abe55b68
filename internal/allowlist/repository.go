package allowlist

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListEmails() ([]ApprovedEmail, error) {
	var emails []ApprovedEmail
	err := r.DB.Order("email ASC").Find(&emails).Error
	return emails, err
}

func (r *Repository) CreateEmail(e *ApprovedEmail) error {
	return r.DB.Create(e).Error
}

func (r *Repository) GetByEmail(email string) (*ApprovedEmail, error) {
	var e ApprovedEmail
	if err := r.DB.Where("email = ?", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) GetByID(id uint) (*ApprovedEmail, error) {
	var e ApprovedEmail
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) UpdateEmail(e *ApprovedEmail) error {
	return r.DB.Save(e).Error
}

func (r *Repository) DeleteEmail(id uint) error {
	res := r.DB.Delete(&ApprovedEmail{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
