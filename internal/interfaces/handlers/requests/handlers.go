package requests

import (
	"errors"

	reqsvc "foodshare-backend/internal/application/requests"
	"foodshare-backend/internal/pkg/response"
	"foodshare-backend/internal/realtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service  *reqsvc.Service
	Hub      *realtime.Hub
	Validate *validator.Validate
}

type CreateRequest struct {
	ListingID    string `json:"listingId" validate:"required"`
	RecipientID  string `json:"recipientId" validate:"required"`
	ContactName  string `json:"contactName" validate:"required"`
	ContactPhone string `json:"contactPhone" validate:"required"`
	Notes        string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create POST /api/requests — role-gated to recipient by the router. 404 if
// the listing does not exist; nothing is persisted in that case.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Please provide all required fields.")
	}
	if err := h.Validate.Struct(req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Please provide all required fields.")
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid listingId.")
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid recipientId.")
	}

	request, err := h.Service.Create(c.Context(), reqsvc.CreateInput{
		ListingID:    listingID,
		RecipientID:  recipientID,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, reqsvc.ErrListingNotFound) {
			return response.Message(c, fiber.StatusNotFound, err.Error())
		}
		return response.ServerError(c, "Error creating request", err)
	}

	h.Hub.Broadcast(c.Context())
	return c.Status(fiber.StatusCreated).JSON(request)
}

// UpdateStatus PUT /api/requests/:id — moves the request through the workflow.
// A Claimed target also flips the linked listing, in the same transaction.
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid request id.")
	}
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Please provide a status.")
	}
	if req.Status == "" {
		return response.Message(c, fiber.StatusBadRequest, "Please provide a status.")
	}

	request, err := h.Service.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, reqsvc.ErrRequestNotFound):
			return response.Message(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, reqsvc.ErrUnknownStatus):
			return response.Message(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, reqsvc.ErrIllegalTransition):
			return response.Message(c, fiber.StatusConflict, err.Error())
		}
		return response.ServerError(c, "Error updating request", err)
	}

	h.Hub.Broadcast(c.Context())
	return c.JSON(request)
}

// ForDonor GET /api/requests/donor/:donorId
func (h *Handlers) ForDonor(c *fiber.Ctx) error {
	donorID, err := uuid.Parse(c.Params("donorId"))
	if err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid donorId.")
	}
	rows, err := h.Service.ForDonor(c.Context(), donorID)
	if err != nil {
		return response.ServerError(c, "Error fetching donor requests", err)
	}
	return c.JSON(rows)
}

// ForRecipient GET /api/requests/recipient/:recipientId
func (h *Handlers) ForRecipient(c *fiber.Ctx) error {
	recipientID, err := uuid.Parse(c.Params("recipientId"))
	if err != nil {
		return response.Message(c, fiber.StatusBadRequest, "Invalid recipientId.")
	}
	rows, err := h.Service.ForRecipient(c.Context(), recipientID)
	if err != nil {
		return response.ServerError(c, "Error fetching recipient requests", err)
	}
	return c.JSON(rows)
}
