package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"unitrade_backend/config"
	"unitrade_backend/internal/imagestore"
	"unitrade_backend/models"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "unitrade.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.ResetAndMigrate(db))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiration:    7 * 24 * time.Hour,
		CORSAllowOrigins: []string{"*"},
		CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}
	return &testEnv{
		app: NewApp(cfg, db, imagestore.NewDisk(filepath.Join(dir, "uploads"))),
		db:  db,
		cfg: cfg,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]json.RawMessage{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func productIDs(products []models.Product) []uint {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := e.do(t, "POST", "/api/auth/login", "", models.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, status)
	return decode[string](t, body["token"])
}

func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()
	status, _ := e.do(t, "POST", "/api/auth/register", "", models.RegisterRequest{Name: name, Email: email, Password: "longenough"})
	require.Equal(t, http.StatusCreated, status)
	return e.login(t, email, "longenough")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", decode[string](t, body["status"]))
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "POST", "/api/auth/register", "", models.RegisterRequest{Name: "Ben", Email: "Ben@Campus.edu", Password: "longenough"})
	require.Equal(t, http.StatusCreated, status)
	user := decode[models.User](t, body["user"])
	assert.Equal(t, "ben@campus.edu", user.Email)
	assert.Empty(t, user.PasswordHash)

	status, body = env.do(t, "POST", "/api/auth/register", "", models.RegisterRequest{Name: "Ben", Email: "ben@campus.edu", Password: "longenough"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", decode[string](t, body["error"]))

	status, _ = env.do(t, "POST", "/api/auth/register", "", models.RegisterRequest{Name: "Short", Email: "s@campus.edu", Password: "1234567"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, "POST", "/api/auth/login", "", models.LoginRequest{Email: "ben@campus.edu", Password: "longenough"})
	require.Equal(t, http.StatusOK, status)
	token := decode[string](t, body["token"])
	loggedIn := decode[models.User](t, body["user"])
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotNil(t, loggedIn.LastLogin)

	status, body = env.do(t, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID, decode[models.User](t, body["user"]).ID)

	status, _ = env.do(t, "POST", "/api/auth/login", "", models.LoginRequest{Email: "ben@campus.edu", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, "GET", "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListProductsFilters(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "GET", "/api/products", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []uint{1, 5, 2, 3, 4}, productIDs(decode[[]models.Product](t, body["products"])))

	_, body = env.do(t, "GET", "/api/products?category=electronics", "", nil)
	assert.Equal(t, []uint{1, 5}, productIDs(decode[[]models.Product](t, body["products"])))

	_, body = env.do(t, "GET", "/api/products?search=CALCULUS", "", nil)
	assert.Equal(t, []uint{2}, productIDs(decode[[]models.Product](t, body["products"])))

	_, body = env.do(t, "GET", "/api/products?condition=excellent&condition=like-new", "", nil)
	assert.Equal(t, []uint{1, 5}, productIDs(decode[[]models.Product](t, body["products"])))

	_, body = env.do(t, "GET", "/api/products?condition=like-new&condition=good,poor", "", nil)
	assert.Equal(t, []uint{5, 2, 3, 4}, productIDs(decode[[]models.Product](t, body["products"])))

	_, body = env.do(t, "GET", "/api/products?sort=price-low&max_price=80", "", nil)
	assert.Equal(t, []uint{2, 4, 3}, productIDs(decode[[]models.Product](t, body["products"])))

	_, body = env.do(t, "GET", "/api/products?min_price=500&max_price=10", "", nil)
	assert.Empty(t, decode[[]models.Product](t, body["products"]))

	_, body = env.do(t, "GET", "/api/products?sort=popular&limit=2&page=2", "", nil)
	assert.Equal(t, []uint{4, 2}, productIDs(decode[[]models.Product](t, body["products"])))
	meta := decode[models.PaginationMeta](t, body["meta"])
	assert.Equal(t, int64(5), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestListProductsPaginationBounds(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "GET", "/api/products?page=4611686018427387904&limit=4", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]models.Product](t, body["products"]))

	status, body = env.do(t, "GET", "/api/products?page=3&limit=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []uint{4}, productIDs(decode[[]models.Product](t, body["products"])))

	_, body = env.do(t, "GET", "/api/products?limit=100000", "", nil)
	assert.Len(t, decode[[]models.Product](t, body["products"]), 5)
	assert.Equal(t, 100, decode[models.PaginationMeta](t, body["meta"]).PerPage)
}

func TestGetProductCountsViews(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "GET", "/api/products/2", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(88), decode[models.Product](t, body["product"]).ViewCount)

	_, body = env.do(t, "GET", "/api/products/2", "", nil)
	assert.Equal(t, int64(89), decode[models.Product](t, body["product"]).ViewCount)

	status, body = env.do(t, "GET", "/api/products/404", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", decode[string](t, body["error"]))

	status, _ = env.do(t, "GET", "/api/products/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ben", "ben@campus.edu")

	req := models.CreateProductRequest{
		Title:       "Desk lamp",
		Description: "Warm light",
		Price:       1250,
		Category:    models.CategoryFurniture,
		Condition:   models.ConditionGood,
		Location:    "North Dorm",
		Images:      []string{"/uploads/products/lamp.jpg"},
	}

	status, _ := env.do(t, "POST", "/api/products", "", req)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := env.do(t, "POST", "/api/products", token, req)
	require.Equal(t, http.StatusCreated, status)
	created := decode[models.Product](t, body["product"])
	assert.Equal(t, "Ben", created.SellerName)
	assert.Equal(t, models.StatusActive, created.Status)
	assert.False(t, created.ExpiresAt.Before(created.CreatedAt))
	assert.Equal(t, []string{"/uploads/products/lamp.jpg"}, created.Images)

	status, body = env.do(t, "POST", "/api/products", token, models.CreateProductRequest{Price: -1})
	assert.Equal(t, http.StatusBadRequest, status)
	errs := decode[[]models.ErrorDetail](t, body["errors"])
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"title", "description", "price", "category", "condition", "location"} {
		assert.True(t, fields[f], f)
	}

	_, body = env.do(t, "GET", "/api/my-products", token, nil)
	assert.Equal(t, []uint{created.ID}, productIDs(decode[[]models.Product](t, body["products"])))
}

func TestUpdateAndMarkSold(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "maria.garcia@unitrade.test", config.SeedPassword)
	other := env.register(t, "Ben", "ben@campus.edu")

	update := models.CreateProductRequest{
		Title:       "Calculus (8th Edition)",
		Description: "Textbook",
		Price:       1299,
		Category:    models.CategoryBooks,
		Condition:   models.ConditionFair,
		Location:    "Library",
	}
	status, _ := env.do(t, "PUT", "/api/products/2", other, update)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := env.do(t, "PUT", "/api/products/2", owner, update)
	require.Equal(t, http.StatusOK, status)
	updated := decode[models.Product](t, body["product"])
	assert.Equal(t, int64(1299), updated.Price)
	assert.Len(t, updated.Images, 1, "images are kept when not sent")

	status, _ = env.do(t, "POST", "/api/products/2/sold", owner, nil)
	require.Equal(t, http.StatusOK, status)

	_, body = env.do(t, "GET", "/api/products?category=books", "", nil)
	assert.Empty(t, decode[[]models.Product](t, body["products"]), "sold listings leave the browse view")

	status, body = env.do(t, "GET", "/api/products/2", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[models.Product](t, body["product"]).IsSold)
}

func TestPlaceBid(t *testing.T) {
	env := newTestEnv(t)
	bidder := env.register(t, "Ben", "ben@campus.edu")

	status, body := env.do(t, "POST", "/api/products/4/bids", bidder, models.BidRequest{Amount: 3999})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, int64(3999), decode[int64](t, body["current_bid"]))
	assert.Equal(t, int64(4000), decode[int64](t, body["minimum_bid"]))

	status, body = env.do(t, "POST", "/api/products/4/bids", bidder, models.BidRequest{Amount: 4000})
	require.Equal(t, http.StatusOK, status)
	p := decode[models.Product](t, body["product"])
	require.NotNil(t, p.CurrentBid)
	assert.Equal(t, int64(4000), *p.CurrentBid)
	assert.Equal(t, int64(4), p.BidCount)

	// a client still showing the old bid is rejected by the stored one
	status, body = env.do(t, "POST", "/api/products/4/bids", bidder, models.BidRequest{Amount: 4000})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, int64(4000), decode[int64](t, body["current_bid"]))

	status, _ = env.do(t, "POST", "/api/products/4/bids", "", models.BidRequest{Amount: 9000})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, "POST", "/api/products/4/bids", bidder, models.BidRequest{Amount: 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, "POST", "/api/products/999/bids", bidder, models.BidRequest{Amount: 9000})
	assert.Equal(t, http.StatusNotFound, status)

	seller := env.login(t, "sophie.williams@unitrade.test", config.SeedPassword)
	status, _ = env.do(t, "POST", "/api/products/4/bids", seller, models.BidRequest{Amount: 9000})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, "POST", "/api/products/4/sold", seller, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, "POST", "/api/products/4/bids", bidder, models.BidRequest{Amount: 9000})
	assert.Equal(t, http.StatusConflict, status)
}

func TestPlaceBidLosesRace(t *testing.T) {
	env := newTestEnv(t)
	bidder := env.register(t, "Ben", "ben@campus.edu")

	// another bidder lands 50.00 after the rule check passed but before the conditional update runs
	var outbid atomic.Bool
	require.NoError(t, env.db.Callback().Update().Before("gorm:update").Register("test:outbid", func(db *gorm.DB) {
		if db.Statement.Table != "products" || !outbid.CompareAndSwap(false, true) {
			return
		}
		assert.NoError(t, db.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE products SET current_bid = ?, bid_count = bid_count + 1 WHERE id = ?", 5000, 4).Error)
	}))

	status, body := env.do(t, "POST", "/api/products/4/bids", bidder, models.BidRequest{Amount: 4500})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, int64(5000), decode[int64](t, body["current_bid"]))
	assert.Equal(t, int64(5001), decode[int64](t, body["minimum_bid"]))
	assert.True(t, outbid.Load())

	var stored models.Product
	require.NoError(t, env.db.First(&stored, 4).Error)
	require.NotNil(t, stored.CurrentBid)
	assert.Equal(t, int64(5000), *stored.CurrentBid)
	assert.Equal(t, int64(4), stored.BidCount)
}

func TestCategoriesAndHome(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "GET", "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, status)
	categories := decode[[]models.Category](t, body["categories"])
	require.Len(t, categories, 8)
	assert.Equal(t, models.CategoryElectronics, categories[0].ID)
	assert.Equal(t, int64(2), categories[0].Count)
	assert.Equal(t, int64(0), categories[4].Count)

	status, body = env.do(t, "GET", "/api/home", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []uint{1, 5}, productIDs(decode[[]models.Product](t, body["featured"])))
	assert.Equal(t, []uint{4, 2, 1, 5}, productIDs(decode[[]models.Product](t, body["recent"])))
}

func TestSellerProfile(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "GET", "/api/sellers/5", "", nil)
	require.Equal(t, http.StatusOK, status)
	seller := decode[models.PublicUser](t, body["seller"])
	assert.Equal(t, "James Rodriguez", seller.Name)
	assert.Equal(t, []uint{5}, productIDs(decode[[]models.Product](t, body["products"])))

	status, _ = env.do(t, "GET", "/api/sellers/77", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ben", "ben@campus.edu")

	upload := func(filename string) (int, map[string]json.RawMessage) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG fake"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest("POST", "/api/uploads", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		out := map[string]json.RawMessage{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}

	status, body := upload("photo.png")
	require.Equal(t, http.StatusCreated, status)
	url := decode[string](t, body["url"])
	assert.Regexp(t, `^/uploads/products/[0-9a-z]+\.png$`, url)

	resp, err := env.app.Test(httptest.NewRequest("GET", url, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, _ = upload("notes.pdf")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, "GET", "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "error")
}
