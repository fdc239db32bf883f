package middleware

import (
	"encoding/json"
	"errors"

	"foodshare-backend/internal/domain"
	"foodshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const accessDeniedMessage = "Access denied: Insufficient permissions."

// RequireRole resolves the caller-supplied subject identifier (body keys
// userId/donorId/recipientId, then query userId) and rejects the call unless
// that account's role is in the allowed set.
//
// The identifier is trusted as presented; there is no session or token
// verification. That is the source trust model, kept deliberately. One
// tightening over the source: a missing identifier is rejected instead of
// waving the call through.
func RequireRole(db *gorm.DB, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := subjectID(c)
		if id == "" {
			return response.Message(c, fiber.StatusForbidden, accessDeniedMessage)
		}
		uid, err := uuid.Parse(id)
		if err != nil {
			return response.Message(c, fiber.StatusForbidden, accessDeniedMessage)
		}

		var user domain.User
		if err := db.WithContext(c.Context()).Where("id = ?", uid).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Message(c, fiber.StatusForbidden, accessDeniedMessage)
			}
			return response.ServerError(c, "Error verifying user role.", err)
		}
		for _, role := range allowed {
			if user.Role == role {
				return c.Next()
			}
		}
		return response.Message(c, fiber.StatusForbidden, accessDeniedMessage)
	}
}

// subjectID picks the first identifier the client supplied, body before query.
func subjectID(c *fiber.Ctx) string {
	var body struct {
		UserID      string `json:"userId"`
		DonorID     string `json:"donorId"`
		RecipientID string `json:"recipientId"`
	}
	_ = json.Unmarshal(c.Body(), &body)
	switch {
	case body.UserID != "":
		return body.UserID
	case body.DonorID != "":
		return body.DonorID
	case body.RecipientID != "":
		return body.RecipientID
	}
	return c.Query("userId")
}
