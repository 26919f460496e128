package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/services"
)

// PaymentHandler relays hosted-checkout sessions and processor webhooks.
type PaymentHandler struct {
	stripe *services.StripeService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(stripe *services.StripeService) *PaymentHandler {
	return &PaymentHandler{stripe: stripe}
}

// CreatePaymentLink creates a hosted checkout session and returns its
// redirect URL. The amount arrives in minor currency units and is forwarded
// as-is.
func (h *PaymentHandler) CreatePaymentLink(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 || req.Amount == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "items and amount are required")
	}

	session, err := h.stripe.CreateCheckoutSession(req)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create payment link")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "payment link created successfully",
		"data": fiber.Map{
			"payment_url": session.URL,
			"session_id":  session.SessionID,
			"status":      session.Status,
		},
	})
}

// Webhook classifies processor events. It does not drive order state.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var event services.WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event payload")
	}

	result := h.stripe.HandleWebhookEvent(event)

	return c.JSON(fiber.Map{"success": true, "data": result})
}
