package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/store"
	"github.com/example/grocery/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	store *store.Store
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(st *store.Store) *OrderHandler {
	return &OrderHandler{store: st}
}

type orderItemRequest struct {
	ProductID string  `json:"product_id"`
	BundleID  string  `json:"bundle_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type createOrderRequest struct {
	UserID          string             `json:"user_id"`
	Items           []orderItemRequest `json:"items"`
	TotalAmount     float64            `json:"total_amount"`
	OriginalAmount  float64            `json:"original_amount"`
	Savings         float64            `json:"savings"`
	PaymentMethod   string             `json:"payment_method"`
	DeliveryAddress string             `json:"delivery_address"`
}

// CreateOrder places an order from a checked-out cart. Orders are
// auto-confirmed on creation.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "items are required")
	}

	order := models.Order{
		TotalAmount:     req.TotalAmount,
		OriginalAmount:  req.OriginalAmount,
		Savings:         req.Savings,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
	}

	if req.UserID != "" {
		if id, err := uuid.Parse(req.UserID); err == nil {
			order.UserID = &id
		}
	}

	for _, item := range req.Items {
		lineTotal := item.LineTotal
		if lineTotal == 0 {
			lineTotal = item.UnitPrice * float64(item.Quantity)
		}

		orderItem := models.OrderItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		}

		if item.ProductID != "" {
			if id, err := uuid.Parse(item.ProductID); err == nil {
				orderItem.ProductID = &id
			}
		}
		if item.BundleID != "" {
			if id, err := uuid.Parse(item.BundleID); err == nil {
				orderItem.BundleID = &id
			}
		}

		order.Items = append(order.Items, orderItem)
	}

	if err := h.store.CreateOrder(&order); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "order created successfully",
		"data":    order,
	})
}

// ListOrders returns orders with an optional status filter, paginated.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	var status *models.OrderStatus
	if v := c.QueryInt("status", -1); v >= 0 {
		s := models.OrderStatus(v)
		if !s.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "invalid status")
		}
		status = &s
	}

	page := utils.ParsePagination(c)

	orders, err := h.store.ListOrders(status, page.Limit, page.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"count":   len(orders),
		"page":    page.Page,
		"limit":   page.Limit,
	})
}

// GetOrder returns one order by storage id.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.store.GetOrder(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// GetOrderByNumber returns one order by its customer-facing number.
func (h *OrderHandler) GetOrderByNumber(c *fiber.Ctx) error {
	order, err := h.store.GetOrderByNumber(c.Params("orderId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type updateOrderStatusRequest struct {
	Status int `json:"status"`
}

// UpdateOrderStatus moves an order through its lifecycle.
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	found, err := h.store.UpdateOrderStatus(id, status)
	if err != nil {
		if err == store.ErrTerminalStatus {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "order status updated successfully"})
}

// ListUserOrders returns a user's orders.
func (h *OrderHandler) ListUserOrders(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	orders, err := h.store.ListOrdersByUser(userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"count":   len(orders),
		"user_id": userID,
	})
}
