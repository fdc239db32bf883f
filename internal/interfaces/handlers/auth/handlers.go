package auth

import (
	"errors"

	authsvc "foodshare-backend/internal/application/auth"
	"foodshare-backend/internal/pkg/response"
	"foodshare-backend/internal/realtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service  *authsvc.Service
	Hub      *realtime.Hub
	Validate *validator.Validate
}

// RegisterRequest body. All fields required; role must be one of the four
// enumerated roles. No format validation beyond that, matching the source.
type RegisterRequest struct {
	Email            string `json:"email" validate:"required"`
	Password         string `json:"password" validate:"required"`
	Role             string `json:"role" validate:"required,oneof=donor recipient admin analyst"`
	OrganizationName string `json:"organizationName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /api/auth/register — 201 {message}, 400 on missing fields or
// duplicate email. The credential is never echoed or logged.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Please provide all required fields.")
	}
	if err := h.Validate.Struct(req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Please provide all required fields.")
	}

	_, err := h.Service.Register(c.Context(), authsvc.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		Role:             req.Role,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		if errors.Is(err, authsvc.ErrEmailExists) {
			return response.Message(c, fiber.StatusBadRequest, err.Error())
		}
		return response.ServerError(c, "Server error during registration.", err)
	}

	h.Hub.Broadcast(c.Context())
	return response.Message(c, fiber.StatusCreated, "User registered successfully!")
}

// Login POST /api/auth/login — 200 {message, user} or 400. Unknown email and
// wrong password are indistinguishable to the caller.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Please provide email and password.")
	}
	if req.Email == "" || req.Password == "" {
		return response.Message(c, fiber.StatusBadRequest, "Please provide email and password.")
	}

	user, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			return response.Message(c, fiber.StatusBadRequest, err.Error())
		}
		return response.ServerError(c, "Server error during login.", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful!",
		"user": fiber.Map{
			"id":               user.ID,
			"role":             user.Role,
			"organizationName": user.OrganizationName,
			"email":            user.Email,
		},
	})
}
