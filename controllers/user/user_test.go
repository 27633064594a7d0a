package userControllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"civicvoice/middleware"
	"civicvoice/models"
	"civicvoice/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syncWith(t *testing.T, app *fiber.App, firstName string) *http.Response {
	t.Helper()

	token, err := middleware.GenerateIdentityToken("ext-42", "resident@example.com", firstName, "Rivera", "https://img.example.com/a.png")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSyncUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t)

	t.Run("first sync creates the user", func(t *testing.T) {
		resp := syncWith(t, app, "Alex")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := testutil.DecodeBody(t, resp)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "ext-42", user["externalId"])
		assert.Equal(t, "Alex", user["firstName"])

		var count int64
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("second sync updates in place, latest profile wins", func(t *testing.T) {
		resp := syncWith(t, app, "Alexandra")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := testutil.DecodeBody(t, resp)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "Alexandra", user["firstName"])

		var count int64
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		var stored models.User
		require.NoError(t, db.Where("external_id = ?", "ext-42").First(&stored).Error)
		require.NotNil(t, stored.FirstName)
		assert.Equal(t, "Alexandra", *stored.FirstName)
	})

	t.Run("no token gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
