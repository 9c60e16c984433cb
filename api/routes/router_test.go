package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	internalAuth "github.com/lumierebeauty/lumiere-backend/internal/auth"
	"github.com/lumierebeauty/lumiere-backend/internal/customers"
	"github.com/lumierebeauty/lumiere-backend/internal/franchise"
	"github.com/lumierebeauty/lumiere-backend/internal/giftsets"
	"github.com/lumierebeauty/lumiere-backend/internal/orders"
	"github.com/lumierebeauty/lumiere-backend/internal/products"
	"github.com/lumierebeauty/lumiere-backend/internal/settings"
	"github.com/lumierebeauty/lumiere-backend/internal/users"
	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
	"github.com/lumierebeauty/lumiere-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:         "dev",
			Port:        "8080",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "lumiere",
			ExpirationMinutes: 1440,
		},
		Password: config.PasswordConfig{BcryptCost: 4},
		Admin: config.AdminConfig{
			Email:    "ops@lumierebeauty.com",
			Password: "operator-secret",
			Name:     "Store Operator",
		},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// The in-memory database lives per connection; cap the pool at one.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Product{},
		&models.GiftSet{},
		&models.Order{},
		&models.FranchiseApplication{},
		&models.Setting{},
	))

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	customersSvc, err := customers.NewService(customers.ServiceParams{Repo: customers.NewRepo(conn), Logger: logg})
	require.NoError(t, err)
	productsSvc, err := products.NewService(products.ServiceParams{Repo: products.NewRepo(conn), Logger: logg})
	require.NoError(t, err)
	giftSetsSvc, err := giftsets.NewService(giftsets.ServiceParams{Repo: giftsets.NewRepo(conn), Logger: logg})
	require.NoError(t, err)
	ordersSvc, err := orders.NewService(orders.ServiceParams{Repo: orders.NewRepo(conn), Customers: customersSvc, Logger: logg})
	require.NoError(t, err)
	franchiseSvc, err := franchise.NewService(franchise.ServiceParams{Repo: franchise.NewRepo(conn), Logger: logg})
	require.NoError(t, err)
	settingsSvc, err := settings.NewService(settings.ServiceParams{Repo: settings.NewRepo(conn), Logger: logg})
	require.NoError(t, err)
	authSvc, err := internalAuth.NewService(internalAuth.ServiceParams{
		Users:    users.NewRepo(conn),
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Admin:    cfg.Admin,
		Logger:   logg,
	})
	require.NoError(t, err)

	return New(Deps{
		Config:    cfg,
		Logger:    logg,
		DB:        stubPinger{},
		Auth:      authSvc,
		Products:  productsSvc,
		GiftSets:  giftSetsSvc,
		Customers: customersSvc,
		Orders:    ordersSvc,
		Franchise: franchiseSvc,
		Settings:  settingsSvc,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, handler http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Shopper",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Token
}

func operatorToken(t *testing.T, handler http.Handler) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "ops@lumierebeauty.com",
		"password": "operator-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Token
}

func TestRegisterThenDuplicate(t *testing.T) {
	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "A", "email": "a@b.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "user", created.User.Role)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "A", "email": "a@b.com", "password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "DUPLICATE_EMAIL", body.Code)
}

func TestListProductsEmptyIsArray(t *testing.T) {
	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	handler := testRouter(t)

	payload := map[string]any{"name": "Serum", "category": "serums", "price": 10}

	rec := doJSON(t, handler, http.MethodPost, "/api/products", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userToken := registerUser(t, handler, "shopper@example.com")
	rec = doJSON(t, handler, http.MethodPost, "/api/products", userToken, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := operatorToken(t, handler)
	rec = doJSON(t, handler, http.MethodPost, "/api/products", admin, payload)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestOrderStatusUpdateAuthz(t *testing.T) {
	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/orders", "", map[string]any{
		"items": []map[string]any{{"id": 1, "name": "Serum", "price": 10, "quantity": 1}},
		"total": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))

	userToken := registerUser(t, handler, "shopper@example.com")
	rec = doJSON(t, handler, http.MethodPut, "/api/orders/1", userToken, map[string]any{"status": "Shipped"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := operatorToken(t, handler)
	rec = doJSON(t, handler, http.MethodPut, "/api/orders/1", admin, map[string]any{"status": "Shipped"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated struct {
		Status string  `json:"status"`
		Notes  *string `json:"notes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, "Shipped", updated.Status)
	assert.Nil(t, updated.Notes)
}

func TestSettingsPublicReadAdminWrite(t *testing.T) {
	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var values map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&values))
	assert.Equal(t, "Lumière", values["storeName"])

	rec = doJSON(t, handler, http.MethodPut, "/api/settings", "", map[string]string{"storeName": "X"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	admin := operatorToken(t, handler)
	rec = doJSON(t, handler, http.MethodPut, "/api/settings", admin, map[string]string{"storeName": "Lumière Paris"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&values))
	assert.Equal(t, "Lumière Paris", values["storeName"])
}

func TestGuestCheckoutAndAdminList(t *testing.T) {
	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/orders", "", map[string]any{
		"items":    []map[string]any{{"id": 1, "name": "Serum", "price": 10, "quantity": 2}},
		"total":    20,
		"customer": map[string]any{"name": "Guest", "email": "guest@example.com"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	admin := operatorToken(t, handler)
	rec = doJSON(t, handler, http.MethodGet, "/api/orders", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	assert.Len(t, rows, 1)
}

func TestFranchisePublicCreateAdminList(t *testing.T) {
	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/franchise", "", map[string]any{
		"name":  "Hopeful Franchisee",
		"email": "lead@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodGet, "/api/franchise", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	admin := operatorToken(t, handler)
	rec = doJSON(t, handler, http.MethodGet, "/api/franchise", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMyOrdersReturnsOwnOrdersOnly(t *testing.T) {
	handler := testRouter(t)

	token := registerUser(t, handler, "shopper@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/orders", token, map[string]any{
		"items": []map[string]any{{"id": 1, "name": "Serum", "price": 10, "quantity": 1}},
		"total": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// A guest order that should not appear for the signed-in shopper.
	rec = doJSON(t, handler, http.MethodPost, "/api/orders", "", map[string]any{
		"items": []map[string]any{{"id": 2, "name": "Cream", "price": 5, "quantity": 1}},
		"total": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/auth/me/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	assert.Len(t, rows, 1)
}

func TestHealthEndpoints(t *testing.T) {
	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownStatusRejected(t *testing.T) {
	handler := testRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/orders", "", map[string]any{
		"items": []map[string]any{{"id": 1, "name": "Serum", "price": 10, "quantity": 1}},
		"total": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	admin := operatorToken(t, handler)
	rec = doJSON(t, handler, http.MethodPut, "/api/orders/1", admin, map[string]any{"status": "Vanished"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
