package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mission-ledger-system/services"
	"mission-ledger-system/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminRequest(t *testing.T, app *fiber.App, roles string, body interface{}, path string) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "admin-1")
	if roles != "" {
		req.Header.Set("X-User-Roles", roles)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(payload) > 0 {
		require.NoError(t, json.Unmarshal(payload, &decoded))
	}
	return resp, decoded
}

func TestAdminRoutes(t *testing.T) {
	store := storage.NewMemStore()
	catalog := services.NewCatalogService(store)

	app := fiber.New()
	SetupAdminRoutes(app, catalog)

	t.Run("NonAdminForbidden", func(t *testing.T) {
		resp, _ := adminRequest(t, app, "user", fiber.Map{}, "/s/admin/tokens")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("RegisterToken", func(t *testing.T) {
		resp, body := adminRequest(t, app, "admin", fiber.Map{
			"symbol":   "JBC",
			"name":     "JIB Coin",
			"chain_id": 8899,
			"decimals": "18",
		}, "/s/admin/tokens")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, body["id"])
	})

	t.Run("CreateMissionWithReward", func(t *testing.T) {
		resp, token := adminRequest(t, app, "admin", fiber.Map{
			"symbol":   "KUB",
			"name":     "Bitkub Coin",
			"chain_id": 96,
			"decimals": "18",
		}, "/s/admin/tokens")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body := adminRequest(t, app, "admin", fiber.Map{
			"title":           "Weekly Checkin",
			"reward_type":     "token",
			"reward_token_id": token["id"],
			"reward_amount":   "3",
		}, "/s/admin/missions")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "weekly-checkin", body["slug"])
	})

	t.Run("MissionValidationSurfaces", func(t *testing.T) {
		resp, body := adminRequest(t, app, "admin", fiber.Map{
			"title":       "Bad Mission",
			"reward_type": "token",
		}, "/s/admin/missions")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})
}
