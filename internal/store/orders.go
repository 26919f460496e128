package store

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
)

// ErrTerminalStatus is returned when an order in a terminal state receives a
// further status update.
var ErrTerminalStatus = fmt.Errorf("order is in a terminal status")

// CreateOrder persists a checkout as an auto-confirmed order with a fresh
// 9-digit order number.
func (s *Store) CreateOrder(order *models.Order) error {
	if order.OrderNumber == "" {
		number, err := generateOrderNumber()
		if err != nil {
			return err
		}
		order.OrderNumber = number
	}

	now := time.Now()
	order.Status = models.StatusConfirmed
	order.ConfirmedAt = &now

	return s.db.Create(order).Error
}

// ListOrders returns orders, newest first, optionally filtered by status.
// A non-positive limit disables pagination.
func (s *Store) ListOrders(status *models.OrderStatus, limit, offset int) ([]models.Order, error) {
	query := s.db.Model(&models.Order{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var orders []models.Order
	err := query.Preload("Items").Order("created_at desc").Find(&orders).Error
	return orders, err
}

// GetOrder loads one order by storage id.
func (s *Store) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByNumber loads one order by its customer-facing order number.
func (s *Store) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrdersByUser returns a user's orders, newest first.
func (s *Store) ListOrdersByUser(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus moves an order to the given status and stamps the
// status-specific timestamp. Delivered and cancelled orders are terminal;
// every other transition is accepted. Reports whether the order existed.
func (s *Store) UpdateOrderStatus(id uuid.UUID, status models.OrderStatus) (bool, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	if order.Status.Terminal() {
		return true, ErrTerminalStatus
	}

	updates := map[string]interface{}{"status": status}
	if column := status.TimestampColumn(); column != "" {
		updates[column] = time.Now()
	}

	err := s.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
	return true, err
}

func generateOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000000), nil
}
