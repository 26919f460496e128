package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
)

// ListCards returns a user's stored cards, oldest first.
func (s *Store) ListCards(userID uuid.UUID) ([]models.Card, error) {
	var cards []models.Card
	err := s.db.Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&cards).Error
	return cards, err
}

// GetCard loads a card by id scoped to its owner.
func (s *Store) GetCard(id, userID uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := s.db.First(&card, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateCard inserts a card. A default insert first clears is_default on the
// user's existing cards so at most one card per user stays default.
func (s *Store) CreateCard(card *models.Card) error {
	if card.IsDefault {
		if err := s.clearDefault(s.db, card.UserID, nil); err != nil {
			return err
		}
	}
	return s.db.Create(card).Error
}

// UpdateCard applies the patch to a card scoped to its owner. Setting
// is_default true clears it on every other card of the same user first.
// Reports whether the card existed.
func (s *Store) UpdateCard(id, userID uuid.UUID, updates map[string]interface{}) (bool, error) {
	var card models.Card
	if err := s.db.First(&card, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	if isDefault, ok := updates["is_default"].(bool); ok && isDefault {
		if err := s.clearDefault(s.db, userID, &card.ID); err != nil {
			return false, err
		}
	}

	result := s.db.Model(&models.Card{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}

// DeleteCard removes a card matched by both id and owner. Deleting the
// default card never promotes a sibling.
func (s *Store) DeleteCard(id, userID uuid.UUID) (bool, error) {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Card{})
	return result.RowsAffected > 0, result.Error
}

func (s *Store) clearDefault(tx *gorm.DB, userID uuid.UUID, except *uuid.UUID) error {
	query := tx.Model(&models.Card{}).Where("user_id = ?", userID)
	if except != nil {
		query = query.Where("id <> ?", *except)
	}
	return query.Update("is_default", false).Error
}
