package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"traceability/core/config"
	"traceability/core/database"
	"traceability/core/middleware/auth"
	"traceability/feature/calibration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
)

func setupRuntime(t *testing.T, apiKey string) *runtime {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), database.DriverSQLite, 0)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.ApiKey = apiKey
	cfg.Calibration = calibration.Config{SheetName: "Calibracao", TemplateFile: "calibration_template.xlsx"}

	rt, err := wire(context.Background(), cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(rt.Close)
	return rt
}

func workbookBody(t *testing.T, serials ...string) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Calibracao")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Calibracao", "A1", &[]any{"Origin_Serial", "Local_Serial", "Max_Load"}))
	for i, s := range serials {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, f.SetSheetRow("Calibracao", cell, &[]any{s, "BR-" + s, "30kg"}))
	}
	var xlsx bytes.Buffer
	require.NoError(t, f.Write(&xlsx))

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("client_name", "Acme"))
	require.NoError(t, w.WriteField("order_reference", "PED-100"))
	part, err := w.CreateFormFile("file", "lote.xlsx")
	require.NoError(t, err)
	_, err = io.Copy(part, &xlsx)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestNewAppAuth(t *testing.T) {
	app := newApp(setupRuntime(t, "secret"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/inventory", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	req.Header.Set(auth.Header, "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewAppTraceabilityFlow(t *testing.T) {
	app := newApp(setupRuntime(t, ""))

	req := httptest.NewRequest(http.MethodPost, "/registry/models", strings.NewReader(`{"name":"BAL-30"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/intake", strings.NewReader(
		`{"batch_label":"LOTE-A","import_reference":"DI-1","model_name":"BAL-30","serials":"SN-1\nSN-2\nSN-3"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, contentType := workbookBody(t, "SN-1", "SN-3", "SN-9")
	req = httptest.NewRequest(http.MethodPost, "/calibration/", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var calibrated struct {
		Succeeded int      `json:"success_count"`
		Unmatched []string `json:"unmatched"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&calibrated))
	assert.Equal(t, 2, calibrated.Succeeded)
	assert.Equal(t, []string{"SN-9"}, calibrated.Unmatched)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/inventory?q=PED-100", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Count int `json:"count"`
		Units []struct {
			SerialOrigin string `json:"serial_origin"`
			SerialLocal  string `json:"serial_local"`
			Status       string `json:"status"`
		} `json:"units"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Equal(t, 2, listed.Count)
	assert.Equal(t, "SN-1", listed.Units[0].SerialOrigin)
	assert.Equal(t, "BR-SN-1", listed.Units[0].SerialLocal)
	assert.Equal(t, "Finalized", listed.Units[1].Status)
}
