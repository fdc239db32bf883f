package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"foodshare-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGuardApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	app := fiber.New()
	app.Post("/guarded", RequireRole(db, domain.RoleDonor), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, db
}

func postGuarded(t *testing.T, app *fiber.App, payload interface{}) int {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/guarded", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireRole_MissingIdentifierFailsClosed(t *testing.T) {
	app, _ := setupGuardApp(t)
	assert.Equal(t, fiber.StatusForbidden, postGuarded(t, app, map[string]string{}))
}

func TestRequireRole_UnknownUser(t *testing.T) {
	app, _ := setupGuardApp(t)
	assert.Equal(t, fiber.StatusForbidden, postGuarded(t, app, map[string]string{
		"donorId": uuid.New().String(),
	}))
}

func TestRequireRole_WrongRole(t *testing.T) {
	app, db := setupGuardApp(t)
	u := &domain.User{Email: "r@x.com", PasswordHash: "h", Role: domain.RoleRecipient, OrganizationName: "Shelter"}
	require.NoError(t, db.Create(u).Error)
	assert.Equal(t, fiber.StatusForbidden, postGuarded(t, app, map[string]string{
		"userId": u.ID.String(),
	}))
}

func TestRequireRole_AllowedRolePasses(t *testing.T) {
	app, db := setupGuardApp(t)
	u := &domain.User{Email: "d@x.com", PasswordHash: "h", Role: domain.RoleDonor, OrganizationName: "Acme"}
	require.NoError(t, db.Create(u).Error)
	assert.Equal(t, fiber.StatusOK, postGuarded(t, app, map[string]string{
		"donorId": u.ID.String(),
	}))
}

func TestRequireRole_QueryIdentifier(t *testing.T) {
	app, db := setupGuardApp(t)
	u := &domain.User{Email: "d@x.com", PasswordHash: "h", Role: domain.RoleDonor, OrganizationName: "Acme"}
	require.NoError(t, db.Create(u).Error)

	req := httptest.NewRequest("POST", "/guarded?userId="+u.ID.String(), bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
