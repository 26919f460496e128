package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/services"
	"github.com/example/grocery/internal/store"
	"github.com/example/grocery/internal/utils"
)

// PasswordResetHandler manages the three-step forgot-password flow.
type PasswordResetHandler struct {
	store        *store.Store
	verification *services.VerificationService
	email        *services.EmailService
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(st *store.Store, verification *services.VerificationService, email *services.EmailService) *PasswordResetHandler {
	return &PasswordResetHandler{store: st, verification: verification, email: email}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a verification code and emails it. Unknown emails get
// a success response without a code, so the endpoint does not reveal which
// accounts exist.
func (h *PasswordResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	if _, err := h.store.GetUserByEmail(req.Email); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{
				"success": true,
				"message": "If an account with this email exists, you will receive a password reset code.",
			})
		}
		return err
	}

	code, err := h.verification.IssueCode(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
		}
		return err
	}

	receipt, err := h.email.SendVerificationCode(req.Email, code)
	if err != nil {
		// The code stays valid; the caller retries via the resend path.
		log.Printf("failed to send verification email to %s: %v", req.Email, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to send verification email")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "verification code sent to your email",
		"debug": fiber.Map{
			"code":        code,
			"preview_url": receipt.PreviewURL,
		},
	})
}

type verifyResetCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyResetCode checks a submitted code without consuming it.
func (h *PasswordResetHandler) VerifyResetCode(c *fiber.Ctx) error {
	var req verifyResetCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and verification code are required")
	}

	valid, err := h.verification.VerifyCode(req.Email, req.Code)
	if err != nil {
		return err
	}

	if !valid {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or expired verification code")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "verification code is valid",
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ResetPassword re-verifies the code, updates the password, then consumes the
// code.
func (h *PasswordResetHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email, verification code, and new password are required")
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	valid, err := h.verification.VerifyCode(req.Email, req.Code)
	if err != nil {
		return err
	}
	if !valid {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or expired verification code")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	updated, err := h.store.UpdateUserPassword(req.Email, hash)
	if err != nil {
		return err
	}
	if !updated {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update password")
	}

	if err := h.verification.ConsumeCode(req.Email, req.Code); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "password reset successfully",
	})
}

// PurgeExpiredCodes deletes expired reset codes on demand.
func (h *PasswordResetHandler) PurgeExpiredCodes(c *fiber.Ctx) error {
	purged, err := h.verification.PurgeExpired()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"purged": purged},
	})
}
