package registry

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(setupTestDB(t), zap.NewNop(), Config{})).RegisterRoutes(app)
	return app
}

func postName(t *testing.T, app *fiber.App, path, body string) int {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestHandleRegister(t *testing.T) {
	app := setupTestApp(t)

	assert.Equal(t, 201, postName(t, app, "/registry/clients", `{"name":"Acme"}`))
	assert.Equal(t, 409, postName(t, app, "/registry/clients", `{"name":"Acme"}`))
	assert.Equal(t, 400, postName(t, app, "/registry/clients", `{"name":"  "}`))
	assert.Equal(t, 400, postName(t, app, "/registry/clients", `{`))
	assert.Equal(t, 404, postName(t, app, "/registry/orders", `{"name":"x"}`))
}

func TestHandleList(t *testing.T) {
	app := setupTestApp(t)
	require.Equal(t, 201, postName(t, app, "/registry/models", `{"name":"BAL-30"}`))

	resp, err := app.Test(httptest.NewRequest("GET", "/registry/models", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Kind  string   `json:"kind"`
		Names []string `json:"names"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "model", body.Kind)
	assert.Equal(t, []string{"BAL-30"}, body.Names)
}
