package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/store"
)

// CardHandler manages stored payment cards per user.
type CardHandler struct {
	store *store.Store
}

// NewCardHandler constructs CardHandler.
func NewCardHandler(st *store.Store) *CardHandler {
	return &CardHandler{store: st}
}

// ListCards returns all cards for a user.
func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	cards, err := h.store.ListCards(userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    cards,
		"count":   len(cards),
	})
}

type cardRequest struct {
	CardNumber      string `json:"card_number"`
	ExpiryDate      string `json:"expiry_date"`
	HolderName      string `json:"holder_name"`
	CVV             string `json:"cvv"`
	BackgroundImage string `json:"background_image"`
	IsDefault       bool   `json:"is_default"`
}

// AddCard stores a new card. A default card displaces any existing default.
func (h *CardHandler) AddCard(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var req cardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.CardNumber == "" || req.ExpiryDate == "" || req.HolderName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "card_number, expiry_date, and holder_name are required")
	}

	card := models.Card{
		UserID:          userID,
		CardNumber:      req.CardNumber,
		ExpiryDate:      req.ExpiryDate,
		HolderName:      req.HolderName,
		CVV:             req.CVV,
		BackgroundImage: req.BackgroundImage,
		IsDefault:       req.IsDefault,
	}

	if err := h.store.CreateCard(&card); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "card added successfully",
		"data":    card,
	})
}

type updateCardRequest struct {
	CardNumber      *string `json:"card_number"`
	ExpiryDate      *string `json:"expiry_date"`
	HolderName      *string `json:"holder_name"`
	CVV             *string `json:"cvv"`
	BackgroundImage *string `json:"background_image"`
	IsDefault       *bool   `json:"is_default"`
}

// UpdateCard patches a card. Setting it default clears the flag on every
// sibling first.
func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	cardID, err := uuid.Parse(c.Params("cardId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid card id")
	}

	var req updateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.CardNumber != nil {
		updates["card_number"] = *req.CardNumber
	}
	if req.ExpiryDate != nil {
		updates["expiry_date"] = *req.ExpiryDate
	}
	if req.HolderName != nil {
		updates["holder_name"] = *req.HolderName
	}
	if req.CVV != nil {
		updates["cvv"] = *req.CVV
	}
	if req.BackgroundImage != nil {
		updates["background_image"] = *req.BackgroundImage
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}

	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	found, err := h.store.UpdateCard(cardID, userID, updates)
	if err != nil {
		return err
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "card not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "card updated successfully"})
}

// DeleteCard removes a card matched by both card and user id.
func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	cardID, err := uuid.Parse(c.Params("cardId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid card id")
	}

	deleted, err := h.store.DeleteCard(cardID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "card not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "card deleted successfully"})
}
