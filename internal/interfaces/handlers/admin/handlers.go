package admin

import (
	anlsvc "foodshare-backend/internal/application/analytics"
	"foodshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the admin and analyst dashboard reads. Both are unguarded,
// matching the source; the data is the same the role dashboards already see.
type Handlers struct {
	Service *anlsvc.Service
}

// AllData GET /api/admin/all-data — {users, listings, requests}, full tables.
func (h *Handlers) AllData(c *fiber.Ctx) error {
	data, err := h.Service.AllData(c.Context())
	if err != nil {
		return response.ServerError(c, "Error fetching admin data", err)
	}
	return c.JSON(data)
}

// Summary GET /api/analytics/summary — four independent counts.
func (h *Handlers) Summary(c *fiber.Ctx) error {
	summary, err := h.Service.Summary(c.Context())
	if err != nil {
		return response.ServerError(c, "Error fetching summary", err)
	}
	return c.JSON(summary)
}
