package listings

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	listsvc "foodshare-backend/internal/application/listings"
	"foodshare-backend/internal/domain"
	"foodshare-backend/internal/realtime"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupListingsApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Listing{}))

	h := &Handlers{
		Service:  &listsvc.Service{DB: db},
		Hub:      realtime.NewHub(nil),
		Validate: validator.New(),
	}
	app := fiber.New()
	app.Post("/api/listings", h.Create)
	app.Get("/api/listings", h.Available)
	app.Get("/api/listings/donor/:donorId", h.ByDonor)
	return app, db
}

func seedDonor(t *testing.T, db *gorm.DB) *domain.User {
	u := &domain.User{Email: "d@x.com", PasswordHash: "h", Role: domain.RoleDonor, OrganizationName: "Acme"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreate_SetsAvailableAndKeepsLocation(t *testing.T) {
	app, db := setupListingsApp(t)
	donor := seedDonor(t, db)

	body, _ := json.Marshal(map[string]interface{}{
		"donorId":    donor.ID.String(),
		"itemName":   "Bread",
		"quantity":   "10",
		"expiryDate": "2025-01-01",
		"location":   map[string]interface{}{"lat": 1.5, "lng": 2.5, "address": "Main St"},
	})
	req := httptest.NewRequest("POST", "/api/listings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "Available", out["status"])
	assert.Equal(t, "Bread", out["itemName"])
	loc, _ := out["location"].(map[string]interface{})
	require.NotNil(t, loc)
	assert.Equal(t, "Main St", loc["address"])
}

func TestCreate_MissingField(t *testing.T) {
	app, db := setupListingsApp(t)
	donor := seedDonor(t, db)

	body, _ := json.Marshal(map[string]interface{}{
		"donorId":  donor.ID.String(),
		"itemName": "Bread",
	})
	req := httptest.NewRequest("POST", "/api/listings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreate_BadDate(t *testing.T) {
	app, db := setupListingsApp(t)
	donor := seedDonor(t, db)

	body, _ := json.Marshal(map[string]interface{}{
		"donorId":    donor.ID.String(),
		"itemName":   "Bread",
		"quantity":   "10",
		"expiryDate": "soon",
	})
	req := httptest.NewRequest("POST", "/api/listings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAvailable_ExcludesClaimed(t *testing.T) {
	app, db := setupListingsApp(t)
	donor := seedDonor(t, db)

	require.NoError(t, db.Create(&domain.Listing{DonorID: donor.ID, ItemName: "Bread",
		Quantity: "1", Status: domain.ListingAvailable}).Error)
	require.NoError(t, db.Create(&domain.Listing{DonorID: donor.ID, ItemName: "Milk",
		Quantity: "1", Status: domain.ListingClaimed}).Error)

	req := httptest.NewRequest("GET", "/api/listings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Bread", rows[0]["itemName"])
	d, _ := rows[0]["donor"].(map[string]interface{})
	require.NotNil(t, d)
	assert.Equal(t, "Acme", d["organizationName"])
}

func TestByDonor_InvalidID(t *testing.T) {
	app, _ := setupListingsApp(t)
	req := httptest.NewRequest("GET", "/api/listings/donor/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestByDonor_ReturnsAllStatuses(t *testing.T) {
	app, db := setupListingsApp(t)
	donor := seedDonor(t, db)
	require.NoError(t, db.Create(&domain.Listing{DonorID: donor.ID, ItemName: "Bread",
		Quantity: "1", Status: domain.ListingAvailable}).Error)
	require.NoError(t, db.Create(&domain.Listing{DonorID: donor.ID, ItemName: "Milk",
		Quantity: "1", Status: domain.ListingClaimed}).Error)
	require.NoError(t, db.Create(&domain.Listing{DonorID: uuid.New(), ItemName: "Rice",
		Quantity: "1", Status: domain.ListingAvailable}).Error)

	req := httptest.NewRequest("GET", "/api/listings/donor/"+donor.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rows))
	assert.Len(t, rows, 2)
}
