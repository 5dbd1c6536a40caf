package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ruchitara/internal/config"
	"github.com/example/ruchitara/internal/middleware"
	"github.com/example/ruchitara/internal/models"
	"github.com/example/ruchitara/internal/otp"
	"github.com/example/ruchitara/internal/services"
	"github.com/example/ruchitara/internal/utils"
)

// AuthHandler bundles dependencies for the OTP login endpoints.
type AuthHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	store    otp.Store
	verifier otp.Verifier
	sms      services.Sender
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, store otp.Store, verifier otp.Verifier, sms services.Sender) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, store: store, verifier: verifier, sms: sms}
}

type sendOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// SendOTP issues a login code, auto-provisioning the user profile.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.PhoneNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number is required")
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter a valid 10-digit phone number")
	}

	user, err := h.ensureUser(phone)
	if err != nil {
		return err
	}

	code, err := h.issueChallenge(c.Context(), phone)
	if err != nil {
		return err
	}

	resp := fiber.Map{
		"success":          true,
		"message":          "OTP sent successfully",
		"phone_number":     phone,
		"is_existing_user": true,
		"has_profile":      user.ProfileComplete(),
	}
	if h.cfg.OTPBypass {
		resp["otp"] = code
		resp["test_mode"] = true
		resp["bypass_info"] = "Any OTP will be accepted"
	}

	return c.JSON(resp)
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

// VerifyOTP checks the submitted code and logs the user in.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.PhoneNumber == "" || req.OTP == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number and OTP are required")
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter a valid 10-digit phone number")
	}

	if err := h.verifier.Verify(c.Context(), phone, req.OTP); err != nil {
		return challengeError(err)
	}

	user, err := h.ensureUser(phone)
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, phone, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	resp := fiber.Map{
		"success":                true,
		"message":                "Login successful",
		"user":                   user,
		"token":                  token,
		"requires_profile_setup": !user.ProfileComplete(),
	}
	if h.cfg.OTPBypass {
		resp["test_mode"] = true
		resp["bypass_used"] = true
	}

	return c.JSON(resp)
}

// ResendOTP replaces any pending challenge with a fresh code.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.PhoneNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number is required")
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter a valid 10-digit phone number")
	}

	code, err := h.issueChallenge(c.Context(), phone)
	if err != nil {
		return err
	}

	resp := fiber.Map{
		"success": true,
		"message": "OTP resent successfully",
	}
	if h.cfg.OTPBypass {
		resp["otp"] = code
		resp["test_mode"] = true
		resp["bypass_info"] = "Any OTP will be accepted"
	}

	return c.JSON(resp)
}

// BypassLogin logs a user in without any code exchange. Testing only.
func (h *AuthHandler) BypassLogin(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.PhoneNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number is required")
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter a valid 10-digit phone number")
	}

	log.Printf("[Auth] bypass login for %s", phone)

	user, err := h.ensureUser(phone)
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, phone, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success":                true,
		"message":                "Login successful (bypassed)",
		"user":                   user,
		"token":                  token,
		"requires_profile_setup": !user.ProfileComplete(),
		"bypassed":               true,
	})
}

// Me returns the profile of the token's owner.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	phone, ok := middleware.GetCurrentPhone(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.Where("phone_number = ?", phone).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// issueChallenge generates a code, dispatches it and stores the challenge.
// Dispatch happens first so a failed send never leaves an active challenge
// behind. In bypass mode the fixed test code is stored and nothing is sent.
func (h *AuthHandler) issueChallenge(ctx context.Context, phone string) (string, error) {
	code := h.cfg.OTPTestCode
	if !h.cfg.OTPBypass {
		var err error
		code, err = otp.GenerateCode(otp.CodeLength)
		if err != nil {
			return "", fiber.NewError(fiber.StatusInternalServerError, "failed to generate verification code")
		}

		if err := h.sms.Send(phone, services.OTPMessage(code)); err != nil {
			return "", fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	if err := h.store.Issue(ctx, phone, code); err != nil {
		return "", err
	}

	return code, nil
}

// ensureUser is an idempotent get-or-create on the canonical phone number.
func (h *AuthHandler) ensureUser(phone string) (models.User, error) {
	var user models.User
	err := h.db.Where("phone_number = ?", phone).First(&user).Error
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return user, err
	}

	user = models.User{PhoneNumber: phone}
	if err := h.db.Create(&user).Error; err != nil {
		return user, err
	}
	log.Printf("[Auth] created user profile for %s", phone)
	return user, nil
}

func challengeError(err error) error {
	var mismatch *otp.MismatchError
	switch {
	case errors.Is(err, otp.ErrNoChallenge):
		return fiber.NewError(fiber.StatusBadRequest, "No OTP request found. Please request a new OTP.")
	case errors.Is(err, otp.ErrExpired):
		return fiber.NewError(fiber.StatusBadRequest, "OTP has expired. Please request a new one.")
	case errors.Is(err, otp.ErrTooManyAttempts):
		return fiber.NewError(fiber.StatusBadRequest, "Too many failed attempts. Please request a new OTP.")
	case errors.As(err, &mismatch):
		plural := "s"
		if mismatch.Remaining == 1 {
			plural = ""
		}
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Invalid OTP. %d attempt%s remaining.", mismatch.Remaining, plural))
	}
	return err
}
