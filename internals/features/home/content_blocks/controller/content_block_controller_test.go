package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"university_backend/internals/constants"
	"university_backend/internals/features/home/content_blocks/model"
	"university_backend/internals/features/home/content_blocks/route"
	orderingController "university_backend/internals/features/ordering/controller"
	"university_backend/internals/features/ordering/service"
	helperAuth "university_backend/internals/helpers/auth"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ContentBlockModel{}))

	userID := uuid.NewString()
	app := fiber.New()
	admin := app.Group("/api/a", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, userID)
		c.Locals(helperAuth.LocRole, constants.RoleTeacher)
		return c.Next()
	})
	route.ContentBlockAdminRoutes(admin, db, orderingController.NewReorderController(db, service.SynchronizerOptions{DisableBulk: true}, nil))
	route.AllContentBlockRoutes(app.Group("/api/public"), db)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, json.RawMessage) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env.Data
}

func createBlock(t *testing.T, app *fiber.App, page, title string, published bool) {
	t.Helper()
	status, _ := call(t, app, http.MethodPost, "/api/a/content-blocks", map[string]any{
		"content_block_page":         page,
		"content_block_kind":         "paragraph",
		"content_block_title":        title,
		"content_block_is_published": published,
	})
	require.Equal(t, http.StatusCreated, status)
}

func titles(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var rows []struct {
		Title string `json:"content_block_title"`
		Order int    `json:"content_block_order"`
	}
	require.NoError(t, json.Unmarshal(raw, &rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Title)
	}
	return out
}

func TestContentBlocks_ReorderIsScopedToPage(t *testing.T) {
	app := newApp(t)
	createBlock(t, app, "home", "Welcome", true)
	createBlock(t, app, "home", "News", true)
	createBlock(t, app, "home", "Draft", false)
	createBlock(t, app, "about", "History", true)

	status, _ := call(t, app, http.MethodPatch, "/api/a/content-blocks/pages/home/reorder", map[string]any{"from_index": 2, "to_index": 0})
	require.Equal(t, http.StatusOK, status)

	status, raw := call(t, app, http.MethodGet, "/api/a/content-blocks/pages/home", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Draft", "Welcome", "News"}, titles(t, raw))

	status, raw = call(t, app, http.MethodGet, "/api/public/content-blocks?page=home", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Welcome", "News"}, titles(t, raw))

	status, raw = call(t, app, http.MethodGet, "/api/public/content-blocks?page=about", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"History"}, titles(t, raw))
}

func TestContentBlocks_OrderPerPageStartsAtOne(t *testing.T) {
	app := newApp(t)
	createBlock(t, app, "home", "A", true)
	createBlock(t, app, "home", "B", true)
	createBlock(t, app, "admissions", "C", true)

	_, raw := call(t, app, http.MethodGet, "/api/a/content-blocks/pages/admissions", nil)
	var rows []struct {
		Order int `json:"content_block_order"`
	}
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Order)
}

func TestContentBlocks_MetadataRequiredPerKind(t *testing.T) {
	app := newApp(t)

	status, _ := call(t, app, http.MethodPost, "/api/a/content-blocks", map[string]any{
		"content_block_page":     "home",
		"content_block_kind":     "image",
		"content_block_metadata": map[string]any{"src": "https://cdn.example/campus.jpg"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = call(t, app, http.MethodPost, "/api/a/content-blocks", map[string]any{
		"content_block_page":     "home",
		"content_block_kind":     "image",
		"content_block_metadata": map[string]any{"src": "https://cdn.example/campus.jpg", "alt": "Campus"},
	})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, http.MethodPost, "/api/a/content-blocks", map[string]any{
		"content_block_page": "Home Page",
		"content_block_kind": "heading",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestContentBlocks_InvalidPageParam(t *testing.T) {
	app := newApp(t)

	status, _ := call(t, app, http.MethodGet, "/api/a/content-blocks/pages/bad--page/order", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
