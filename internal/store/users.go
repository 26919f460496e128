package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
)

// CreateUser persists a new active user.
func (s *Store) CreateUser(user *models.User) error {
	user.IsActive = true
	return s.db.Create(user).Error
}

// GetUser loads one user by id.
func (s *Store) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByPhone loads one active user by phone number.
func (s *Store) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "phone = ? AND is_active = ?", phone, true).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads one active user by email.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ? AND is_active = ?", email, true).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies profile field updates; reports whether a row matched.
func (s *Store) UpdateUser(id uuid.UUID, updates map[string]interface{}) (bool, error) {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected > 0, result.Error
}

// UpdateUserPassword replaces the stored hash for the user with this email.
func (s *Store) UpdateUserPassword(email, passwordHash string) (bool, error) {
	result := s.db.Model(&models.User{}).
		Where("email = ? AND is_active = ?", email, true).
		Update("password_hash", passwordHash)
	return result.RowsAffected > 0, result.Error
}

// DeleteAccount hard-deletes a user and everything keyed to them: orders with
// their items, cards, and reset codes. The cascade runs in one transaction so
// a failed step leaves the account intact.
func (s *Store) DeleteAccount(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		var orderIDs []uuid.UUID
		if err := tx.Model(&models.Order{}).
			Where("user_id = ?", id).
			Pluck("id", &orderIDs).Error; err != nil {
			return err
		}

		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return err
		}

		if user.Email != "" {
			if err := tx.Where("email = ?", user.Email).
				Delete(&models.PasswordResetCode{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}
