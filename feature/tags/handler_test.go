package tags

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTagsApp(f *serviceFixture) *fiber.App {
	app := fiber.New()
	NewHandler(f.svc).RegisterRoutes(app)
	return app
}

func TestHandleLink(t *testing.T) {
	t.Run("Success Returns Resolved Source", func(t *testing.T) {
		f := newServiceFixture(t)
		f.writeState(t, "BOX1", "1A2B3C4D", map[string]any{"cloud_ruid": "1A2B3C4D5E6F7890"})
		app := newTagsApp(f)

		body, _ := json.Marshal(map[string]any{
			"tag_uid":      "1A2B3C4D5E6F7890",
			"box_id":       "BOX1",
			"model":        "900002",
			"content_path": "folder/file.taf",
		})
		req := httptest.NewRequest("POST", "/tags/link", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(raw, &payload))
		assert.Equal(t, "lib://folder/file.taf", payload["source"])
	})

	t.Run("Malformed UID Is 400", func(t *testing.T) {
		f := newServiceFixture(t)
		app := newTagsApp(f)

		body, _ := json.Marshal(map[string]any{"tag_uid": "nope", "content_path": "a.taf"})
		req := httptest.NewRequest("POST", "/tags/link", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown Tag Is 404", func(t *testing.T) {
		f := newServiceFixture(t)
		app := newTagsApp(f)

		body, _ := json.Marshal(map[string]any{
			"tag_uid":      "1a2b3c4d5e6f7890",
			"box_id":       "BOX1",
			"model":        "900002",
			"content_path": "a.taf",
		})
		req := httptest.NewRequest("POST", "/tags/link", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleListBoxes(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(f.configPath, RegistryFileName),
		[]byte("overlay.CERT1.boxName=Kitchen\n"), 0o644))
	app := newTagsApp(f)

	resp, err := app.Test(httptest.NewRequest("GET", "/tags/boxes", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var payload struct {
		Success    bool  `json:"success"`
		Items      []Box `json:"items"`
		TotalCount int   `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.True(t, payload.Success)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Kitchen", payload.Items[0].Name)
}
