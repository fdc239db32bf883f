package listings

import (
	"encoding/json"
	"time"

	listsvc "foodshare-backend/internal/application/listings"
	"foodshare-backend/internal/pkg/response"
	"foodshare-backend/internal/realtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Handlers struct {
	Service  *listsvc.Service
	Hub      *realtime.Hub
	Validate *validator.Validate
}

// CreateRequest body. Location is optional and stored opaquely.
type CreateRequest struct {
	DonorID    string          `json:"donorId" validate:"required"`
	ItemName   string          `json:"itemName" validate:"required"`
	Quantity   string          `json:"quantity" validate:"required"`
	ExpiryDate string          `json:"expiryDate" validate:"required"`
	Location   json.RawMessage `json:"location"`
}

// Create POST /api/listings — role-gated to donor by the router. 201 with the
// created listing; status is always Available.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Please provide all required fields.")
	}
	if err := h.Validate.Struct(req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Please provide all required fields.")
	}
	donorID, err := uuid.Parse(req.DonorID)
	if err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid donorId.")
	}
	expiry, err := parseDate(req.ExpiryDate)
	if err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid expiryDate.")
	}

	listing, err := h.Service.Create(c.Context(), listsvc.CreateInput{
		DonorID:    donorID,
		ItemName:   req.ItemName,
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
		Location:   datatypes.JSON(req.Location),
	})
	if err != nil {
		return response.ServerError(c, "Error creating listing", err)
	}

	h.Hub.Broadcast(c.Context())
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// Available GET /api/listings — Available listings, donor org joined, newest first.
func (h *Handlers) Available(c *fiber.Ctx) error {
	rows, err := h.Service.Available(c.Context())
	if err != nil {
		return response.ServerError(c, "Error fetching listings", err)
	}
	return c.JSON(rows)
}

// ByDonor GET /api/listings/donor/:donorId — all of a donor's listings.
func (h *Handlers) ByDonor(c *fiber.Ctx) error {
	donorID, err := uuid.Parse(c.Params("donorId"))
	if err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid donorId.")
	}
	rows, err := h.Service.ByDonor(c.Context(), donorID)
	if err != nil {
		return response.ServerError(c, "Error fetching donor listings", err)
	}
	return c.JSON(rows)
}

// parseDate accepts the date-picker format and full timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
