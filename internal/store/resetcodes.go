package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
)

// LatestResetCode returns the most recently created code for an email,
// used or not. Nil when none exists.
func (s *Store) LatestResetCode(email string) (*models.PasswordResetCode, error) {
	var record models.PasswordResetCode
	err := s.db.Where("email = ?", email).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ActiveResetCode returns the unused, unexpired code for an email, or nil.
func (s *Store) ActiveResetCode(email string) (*models.PasswordResetCode, error) {
	var record models.PasswordResetCode
	err := s.db.Where("email = ? AND is_used = ? AND expires_at > ?",
		email, false, time.Now()).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// DeleteResetCodes removes every code for an email.
func (s *Store) DeleteResetCodes(email string) error {
	return s.db.Where("email = ?", email).
		Delete(&models.PasswordResetCode{}).Error
}

// CreateResetCode persists a new code record.
func (s *Store) CreateResetCode(record *models.PasswordResetCode) error {
	return s.db.Create(record).Error
}

// SaveResetCode writes back a mutated code record.
func (s *Store) SaveResetCode(record *models.PasswordResetCode) error {
	return s.db.Save(record).Error
}

// DeleteExpiredResetCodes garbage-collects records past their expiry.
func (s *Store) DeleteExpiredResetCodes() (int64, error) {
	result := s.db.Where("expires_at <= ?", time.Now()).
		Delete(&models.PasswordResetCode{})
	return result.RowsAffected, result.Error
}
