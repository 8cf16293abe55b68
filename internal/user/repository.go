package user

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListUsers() ([]User, error) {
	var users []User
	err := r.DB.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *Repository) GetUserByID(id uint) (*User, error) {
	var u User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetUserByEmail(email string) (*User, error) {
	var u User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) UpdateUser(u *User) error {
	return r.DB.Save(u).Error
}

func (r *Repository) DeleteUser(id uint) error {
	res := r.DB.Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPushTokens returns every non-empty push token across all users.
func (r *Repository) ListPushTokens() ([]string, error) {
	var tokens []string
	err := r.DB.Model(&User{}).
		Where("push_token IS NOT NULL AND push_token <> ''").
		Pluck("push_token", &tokens).Error
	return tokens, err
}
