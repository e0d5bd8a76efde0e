package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"soroban/internal/common/config"
	"soroban/internal/engine"
	"soroban/internal/server"
	"soroban/internal/server/repository"
	"soroban/internal/server/service"
)

var testConfig = fiber.TestConfig{Timeout: 15 * time.Second, FailOnTimeout: true}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "soroban.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	migrations := filepath.Join("..", "..", "migrations", "001_init.sql")
	require.NoError(t, repo.Init(context.Background(), migrations))

	cfg := &config.Config{
		Port:         "0",
		Environment:  "test",
		ReadTimeout:  10,
		WriteTimeout: 10,
		DecksDir:     t.TempDir(),
	}
	return server.New(cfg, repo, service.NewRegistry(0))
}

type testResponse struct {
	Code int
	Body string
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) testResponse {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, testConfig)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testResponse{Code: resp.StatusCode, Body: string(data)}
}

func postJSON(t *testing.T, app *fiber.App, path, body string) testResponse {
	t.Helper()
	return doRequest(t, app, "POST", path, body)
}

func decodeJSON(t *testing.T, resp testResponse, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(resp.Body), out))
}

func TestHealthRoutes(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "GET", "/health/live", "")
	assert.Equal(t, 200, resp.Code)
	assert.Contains(t, resp.Body, "alive")

	resp = doRequest(t, app, "GET", "/health/ready", "")
	assert.Equal(t, 200, resp.Code)
	assert.Contains(t, resp.Body, "ready")
}

func TestAPIIndex(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "GET", "/", "")
	assert.Equal(t, 200, resp.Code)
	assert.Contains(t, resp.Body, "Soroban Card Service")
	assert.Contains(t, resp.Body, "/render")
}

// ============================================================
// Render & Convert
// ============================================================

func TestRenderEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/render", strings.NewReader(`{"number": 172, "columns": 3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	svg := string(data)
	assert.Contains(t, svg, `data-value="172"`)
	assert.Contains(t, svg, `id="bead-p2-earth-0"`)
}

func TestRenderEndpointJSONFormat(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/render?format=json", `{"number": "42"}`)
	require.Equal(t, 200, resp.Code)

	var body struct {
		Number     string             `json:"number"`
		Columns    int                `json:"columns"`
		State      engine.AbacusState `json:"state"`
		Dimensions struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"dimensions"`
		SVG string `json:"svg"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "42", body.Number)
	assert.Equal(t, 2, body.Columns)
	require.Len(t, body.State, 2)
	assert.Equal(t, 2, body.State[0].EarthActive)
	assert.Greater(t, body.Dimensions.Width, 0.0)
	assert.Contains(t, body.SVG, "<svg")
}

func TestRenderEndpointFromState(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/render?format=json", `{"state": [{"heavenActive": true, "earthActive": 2}]}`)
	require.Equal(t, 200, resp.Code)

	var body struct {
		Number string `json:"number"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "7", body.Number)
}

func TestRenderEndpointErrors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		body   string
		status int
		text   string
	}{
		{"empty body", "", 400, "body required"},
		{"bad json", "{", 400, "invalid JSON payload"},
		{"no source", `{"columns": 3}`, 400, "number or state required"},
		{"both sources", `{"number": 1, "state": [{"earthActive": 1}]}`, 400, "mutually exclusive"},
		{"overflow", `{"number": 123456, "columns": 5}`, 422, "99999"},
		{"negative", `{"number": "-5"}`, 422, "negative values are not supported"},
		{"bad state", `{"state": [{"earthActive": 9}]}`, 422, "out of range"},
		{"bad shape", `{"number": 1, "beadShape": "hexagon"}`, 400, "hexagon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/render", tt.body)
			assert.Equal(t, tt.status, resp.Code)
			assert.Contains(t, resp.Body, tt.text)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	app := newTestApp(t)

	rendered := postJSON(t, app, "/render", `{"number": "98765432109876543210"}`)
	require.Equal(t, 200, rendered.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "card.svg")
	require.NoError(t, err)
	_, err = part.Write([]byte(rendered.Body))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, testConfig)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Number  string `json:"number"`
		Columns int    `json:"columns"`
		Digits  []int  `json:"digits"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "98765432109876543210", body.Number)
	assert.Equal(t, 20, body.Columns)
	require.Len(t, body.Digits, 20)
	assert.Equal(t, 0, body.Digits[0])
	assert.Equal(t, 9, body.Digits[19])
}

func TestConvertErrors(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/convert", "plain body")
	assert.Equal(t, 400, resp.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "card.svg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not svg at all"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	badResp, err := app.Test(req, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 422, badResp.StatusCode)
}

// ============================================================
// Diff & Validate
// ============================================================

func TestDiffEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/diff", `{"from": 5, "to": 15}`)
	require.Equal(t, 200, resp.Code)

	var result engine.DiffResult
	decodeJSON(t, resp, &result)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, 1, result.Changes[0].PlaceValue)
	assert.Equal(t, engine.BeadEarth, result.Changes[0].Type)
	assert.Equal(t, engine.Activate, result.Changes[0].Direction)
	assert.True(t, result.HasChanges)
	assert.Equal(t, "add 1 earth bead in tens column", result.Summary)
}

func TestDiffEndpointErrors(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/diff", `{"from": 5}`)
	assert.Equal(t, 400, resp.Code)

	resp = postJSON(t, app, "/diff", `{"from": 5, "to": 123456, "columns": 5}`)
	assert.Equal(t, 422, resp.Code)
	assert.Contains(t, resp.Body, "99999")
}

func TestDiffEndpointAutoColumns(t *testing.T) {
	app := newTestApp(t)

	// Шесть разрядов: колонки расширяются под большее значение.
	resp := postJSON(t, app, "/diff", `{"from": 0, "to": 100000}`)
	require.Equal(t, 200, resp.Code)

	var result engine.DiffResult
	decodeJSON(t, resp, &result)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, 5, result.Changes[0].PlaceValue)
}

func TestValidateEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/validate", `{"value": 123456, "columns": 5}`)
	require.Equal(t, 200, resp.Code)

	var result engine.Validation
	decodeJSON(t, resp, &result)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Error, "99999")

	resp = postJSON(t, app, "/validate", `{"value": 99999, "columns": 5}`)
	require.Equal(t, 200, resp.Code)
	result = engine.Validation{}
	decodeJSON(t, resp, &result)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Error)
}

// ============================================================
// Decks
// ============================================================

func TestGenerateAndFetchDeck(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/generate", `{"range": "0-9", "name": "Starter"}`)
	require.Equal(t, 201, resp.Code)

	var created struct {
		DeckID    string   `json:"deckId"`
		Name      string   `json:"name"`
		CardCount int      `json:"cardCount"`
		Numbers   []string `json:"numbers"`
		Truncated bool     `json:"truncated"`
	}
	decodeJSON(t, resp, &created)
	assert.NotEmpty(t, created.DeckID)
	assert.Equal(t, "Starter", created.Name)
	assert.Equal(t, 10, created.CardCount)
	assert.Len(t, created.Numbers, 10)
	assert.False(t, created.Truncated)

	deckResp := doRequest(t, app, "GET", "/decks/"+created.DeckID, "")
	assert.Equal(t, 200, deckResp.Code)
	assert.Contains(t, deckResp.Body, created.DeckID)

	cardReq := httptest.NewRequest("GET", "/decks/"+created.DeckID+"/cards/0", nil)
	cardResp, err := app.Test(cardReq, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 200, cardResp.StatusCode)
	assert.Equal(t, "image/svg+xml", cardResp.Header.Get("Content-Type"))

	galleryResp := doRequest(t, app, "GET", "/decks/"+created.DeckID+"/gallery", "")
	assert.Equal(t, 200, galleryResp.Code)
	assert.Contains(t, galleryResp.Body, "<!DOCTYPE html>")

	deleteResp := doRequest(t, app, "DELETE", "/decks/"+created.DeckID, "")
	assert.Equal(t, 204, deleteResp.Code)

	missingResp := doRequest(t, app, "GET", "/decks/"+created.DeckID, "")
	assert.Equal(t, 404, missingResp.Code)
}

func TestGeneratePersist(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/generate", `{"range": "0-3", "persist": true}`)
	require.Equal(t, 201, resp.Code)

	var created struct {
		DeckID string `json:"deckId"`
		Path   string `json:"path"`
	}
	decodeJSON(t, resp, &created)
	require.NotEmpty(t, created.Path)
	assert.Equal(t, created.DeckID, filepath.Base(created.Path))

	for _, name := range []string{"card_000.svg", "card_003.svg", "index.html", "deck.json"} {
		_, err := os.Stat(filepath.Join(created.Path, name))
		assert.NoError(t, err, name)
	}
}

func TestGeneratePreviewTruncated(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/generate", `{"range": "0-100"}`)
	require.Equal(t, 201, resp.Code)

	var created struct {
		CardCount int      `json:"cardCount"`
		Numbers   []string `json:"numbers"`
		Truncated bool     `json:"truncated"`
	}
	decodeJSON(t, resp, &created)
	assert.Equal(t, 101, created.CardCount)
	assert.Len(t, created.Numbers, 100)
	assert.True(t, created.Truncated)
}

func TestGenerateErrors(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/generate", `{"range": "10-5"}`)
	assert.Equal(t, 422, resp.Code)
	assert.Contains(t, resp.Body, "start greater than end")

	resp = postJSON(t, app, "/generate", `{"range": "0-9", "bead_shape"`)
	assert.Equal(t, 400, resp.Code)

	resp = doRequest(t, app, "GET", "/decks/missing/cards/zero", "")
	assert.Equal(t, 404, resp.Code)
}

// ============================================================
// Presets
// ============================================================

func TestPresetsSeeded(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "GET", "/presets", "")
	require.Equal(t, 200, resp.Code)

	var presets []repository.Preset
	decodeJSON(t, resp, &presets)
	require.Len(t, presets, 3)

	names := map[string]bool{}
	for _, preset := range presets {
		names[preset.Name] = true
	}
	assert.True(t, names["single-digits"])
	assert.True(t, names["double-digits"])
	assert.True(t, names["fives-practice"])
}

func TestPresetCRUD(t *testing.T) {
	app := newTestApp(t)

	body := `{"name": "hundreds", "config": {"range": "100-999", "columns": 3, "colorScheme": "place-value"}}`
	resp := postJSON(t, app, "/presets", body)
	require.Equal(t, 201, resp.Code)

	var created repository.Preset
	decodeJSON(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "hundreds", created.Name)
	assert.Equal(t, "100-999", created.Config.Range)
	assert.Equal(t, 3, created.Config.Columns.Count)

	getResp := doRequest(t, app, "GET", "/presets/"+created.ID, "")
	assert.Equal(t, 200, getResp.Code)

	update := `{"name": "hundreds-shuffled", "config": {"range": "100-999", "shuffle": true}}`
	updateResp := doRequest(t, app, "PUT", "/presets/"+created.ID, update)
	require.Equal(t, 200, updateResp.Code)

	var updated repository.Preset
	decodeJSON(t, updateResp, &updated)
	assert.Equal(t, "hundreds-shuffled", updated.Name)
	assert.True(t, updated.Config.Shuffle)
	assert.True(t, updated.Config.Columns.Auto)

	deleteResp := doRequest(t, app, "DELETE", "/presets/"+created.ID, "")
	assert.Equal(t, 204, deleteResp.Code)

	missingResp := doRequest(t, app, "GET", "/presets/"+created.ID, "")
	assert.Equal(t, 404, missingResp.Code)
}

func TestPresetErrors(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/presets", `{"config": {"range": "0-9"}}`)
	assert.Equal(t, 400, resp.Code)
	assert.Contains(t, resp.Body, "name required")

	resp = postJSON(t, app, "/presets", `{"name": "broken", "config": {"range": "0-9", "scaleFactor": 9}}`)
	assert.Equal(t, 422, resp.Code)

	resp = postJSON(t, app, "/presets", `{"name": "single-digits", "config": {"range": "0-9"}}`)
	assert.Equal(t, 409, resp.Code)

	resp = doRequest(t, app, "DELETE", "/presets/missing", "")
	assert.Equal(t, 404, resp.Code)
}
