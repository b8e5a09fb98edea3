package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apphttp "github.com/binhminh2409/WebXeDapApi/internal/http"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/comments"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/orders"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/payments"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/products"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/users"
	"github.com/binhminh2409/WebXeDapApi/internal/storage"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&products.Category{},
		&products.Brand{},
		&products.Product{},
		&products.Stock{},
		&comments.Comment{},
		&orders.Order{},
		&orders.OrderItem{},
		&payments.Payment{},
	))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewLocal(t.TempDir(), "/uploads")
	return apphttp.NewRouter(logger, db, store), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func seedCheckout(t *testing.T, db *gorm.DB, total string) (users.User, orders.Order) {
	t.Helper()
	u := users.User{Name: "Minh", Email: fmt.Sprintf("%s@example.com", uuid.NewString()), PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)

	now := time.Now()
	o := orders.Order{
		No:          "ORD-" + uuid.NewString()[:12],
		UserID:      u.ID,
		ShipName:    "Minh",
		ShipAddress: "1 Test Street",
		Status:      orders.StatusCreated,
		Guid:        uuid.NewString(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(&o).Error)

	amt := decimal.RequireFromString(total)
	it := orders.OrderItem{
		OrderNo:     o.No,
		ProductID:   1,
		ProductName: "Talon 29",
		Quantity:    1,
		UnitPrice:   amt,
		LineTotal:   amt,
		CreatedAt:   now,
	}
	require.NoError(t, db.Create(&it).Error)
	return u, o
}

func TestHealthz(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentLifecycleOverHTTP(t *testing.T) {
	r, db := setupRouter(t)
	u, o := seedCheckout(t, db, "149.75")

	// create
	w := doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"user_id":     u.ID,
		"order_id":    o.ID,
		"total_price": "149.75",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created payments.DTO
	decodeData(t, w, &created)
	assert.Equal(t, string(payments.StatusProcessing), created.Status)

	// replay with a stale amount returns the same payment
	w = doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"user_id":     u.ID,
		"order_id":    o.ID,
		"total_price": "999.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var replayed payments.DTO
	decodeData(t, w, &replayed)
	assert.Equal(t, created.ID, replayed.ID)
	assert.True(t, replayed.TotalPrice.Equal(decimal.RequireFromString("149.75")))

	// confirm
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/payments/%d/confirm", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var confirmed payments.DTO
	decodeData(t, w, &confirmed)
	assert.Equal(t, string(payments.StatusConfirmed), confirmed.Status)

	var ord orders.Order
	require.NoError(t, db.First(&ord, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusPaid, ord.Status)
}

func TestCreatePaymentAmountMismatchOverHTTP(t *testing.T) {
	r, db := setupRouter(t)
	u, o := seedCheckout(t, db, "100.00")

	w := doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"user_id":     u.ID,
		"order_id":    o.ID,
		"total_price": "90.00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "does not match")
	assert.Contains(t, w.Body.String(), "request_id")
}

func TestCreatePaymentUnknownOrderOverHTTP(t *testing.T) {
	r, db := setupRouter(t)
	u, _ := seedCheckout(t, db, "10.00")

	w := doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"user_id":     u.ID,
		"order_id":    9999,
		"total_price": "10.00",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmUnknownPaymentOverHTTP(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/payments/777/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePaymentStatusOverHTTP(t *testing.T) {
	r, db := setupRouter(t)
	u, o := seedCheckout(t, db, "50.00")

	w := doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"user_id":     u.ID,
		"order_id":    o.ID,
		"total_price": "50.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created payments.DTO
	decodeData(t, w, &created)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/payments/%d/status", created.ID), gin.H{"status": "failed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated payments.DTO
	decodeData(t, w, &updated)
	assert.Equal(t, string(payments.StatusFailed), updated.Status)

	// unknown status name is a validation error, not a silent fallback
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/payments/%d/status", created.ID), gin.H{"status": "paid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPaymentsOverHTTP(t *testing.T) {
	r, db := setupRouter(t)
	u, o := seedCheckout(t, db, "25.00")

	w := doJSON(t, r, http.MethodPost, "/api/payments", gin.H{
		"user_id":     u.ID,
		"order_id":    o.ID,
		"total_price": "25.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []payments.DTO
	decodeData(t, w, &all)
	assert.Len(t, all, 1)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d/payments", u.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []payments.DTO
	decodeData(t, w, &mine)
	assert.Len(t, mine, 1)

	w = doJSON(t, r, http.MethodGet, "/api/users/12345/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var none []payments.DTO
	decodeData(t, w, &none)
	assert.Empty(t, none)
}

func TestRegisterAndCommentOverHTTP(t *testing.T) {
	r, db := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"name":     "Minh",
		"email":    "minh@example.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var u struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &u)

	now := time.Now()
	p := products.Product{
		Name: "Talon 29", Price: decimal.RequireFromString("749.00"),
		Status: products.StatusAvailable, CategoryID: 1, CategoryName: "Mountain Bikes",
		BrandID: 1, BrandName: "Giant", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(&p).Error)

	w = doJSON(t, r, http.MethodPost, "/api/comments", gin.H{
		"user_id":     u.ID,
		"product_id":  p.ID,
		"description": "great bike",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d/comments", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []comments.Comment
	decodeData(t, w, &list)
	assert.Len(t, list, 1)
}
