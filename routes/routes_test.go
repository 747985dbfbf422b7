package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/auth"
	"github.com/Bishesh-P/coffee-alpico-sub000/catalog"
	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	orderControllers "github.com/Bishesh-P/coffee-alpico-sub000/controllers/order"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/Bishesh-P/coffee-alpico-sub000/sessions"
	"github.com/Bishesh-P/coffee-alpico-sub000/storage"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const apiKey = "admin-key"

type app struct {
	router *gin.Engine
	orders *storage.OrderStore
}

func setupApp(t *testing.T) app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "shop.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	kv := storage.NewRedisStore(client, time.Hour)

	cat, err := catalog.New([]models.Product{
		{ID: 1, Name: "Ilam Estate", Category: "beans", Price: decimal.NewFromInt(950), Variants: []models.Variant{
			{ID: "250", Name: "250g", Price: decimal.NewFromInt(950)},
			{ID: "500", Name: "500g", Price: decimal.NewFromInt(1800)},
		}},
		{ID: 2, Name: "Cold Brew", Category: "ready-to-drink", Price: decimal.NewFromInt(650)},
	})
	require.NoError(t, err)

	orders := storage.NewOrderStore(db)
	hub := orderControllers.NewHub(nil)
	svc := checkout.NewService(checkout.Deps{
		Orders:    orders,
		Receipts:  storage.NewDiskReceiptStore(t.TempDir(), "http://shop.test"),
		Snapshots: kv,
		Customers: kv,
		Notifier:  hub,
	})

	r := gin.New()
	SetupRoutes(r, Deps{
		Catalog:   cat,
		Sessions:  sessions.NewRegistry(time.Hour, nil),
		Checkout:  svc,
		Orders:    orders,
		Hub:       hub,
		Guests:    auth.NewGuestIssuer("secret", time.Hour),
		APIKey:    apiKey,
		StoreName: "Alpico Coffee",
	})
	return app{router: r, orders: orders}
}

func (a app) guestToken(t *testing.T) string {
	t.Helper()
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/guest", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Token
}

func (a app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func view(t *testing.T, w *httptest.ResponseRecorder) checkout.View {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var v checkout.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func shippingBody(city string) gin.H {
	return gin.H{
		"first_name": "Asha", "last_name": "Shrestha", "email": "asha@example.com",
		"phone": "9800000000", "address": "Jhamsikhel", "city": city,
		"state": "Bagmati", "occupation": "Barista", "save_info": true,
	}
}

func TestShopperRoutesRequireToken(t *testing.T) {
	a := setupApp(t)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/cart", "", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/products", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/admin/orders", "", nil).Code)
}

func TestOnlinePaymentCheckout(t *testing.T) {
	a := setupApp(t)
	token := a.guestToken(t)

	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 1, "quantity": 1}).Code)

	v := view(t, a.do(t, http.MethodPost, "/checkout", token, nil))
	assert.Equal(t, checkout.StepVariants, v.Step)
	assert.Equal(t, http.StatusConflict, a.do(t, http.MethodPost, "/checkout/continue", token, nil).Code)

	view(t, a.do(t, http.MethodPost, "/checkout/variants", token, gin.H{"product_id": 1, "variant_id": "500"}))
	v = view(t, a.do(t, http.MethodPost, "/checkout/continue", token, nil))
	assert.Equal(t, checkout.StepShipping, v.Step)

	w := a.do(t, http.MethodPost, "/checkout/shipping", token, gin.H{"first_name": "Asha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	v = view(t, a.do(t, http.MethodPost, "/checkout/shipping", token, shippingBody("Pokhara")))
	assert.Equal(t, checkout.StepConfirmation, v.Step)
	assert.True(t, v.Pricing.Total.Equal(decimal.NewFromInt(1800+150)))
	orderID := v.OrderID
	require.NotEmpty(t, orderID)

	view(t, a.do(t, http.MethodPost, "/checkout/confirm", token, nil))
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/checkout/platform", token, gin.H{"platform": "paypal"}).Code)
	v = view(t, a.do(t, http.MethodPost, "/checkout/platform", token, gin.H{"platform": "esewa"}))
	assert.Equal(t, checkout.StepPayment, v.Step)
	v = view(t, a.do(t, http.MethodPost, "/checkout/payment", token, nil))
	assert.Equal(t, checkout.StepReceipt, v.Step)

	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/checkout/receipt", token, nil).Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "receipt.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG fake image"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/checkout/receipt", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	v = view(t, w)
	assert.Equal(t, checkout.StepSuccess, v.Step)
	assert.Contains(t, v.ReceiptURL, "http://shop.test/uploads/receipts/"+orderID)

	w = a.do(t, http.MethodGet, "/checkout/success", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap models.OrderSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, orderID, snap.OrderID)
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(1950)))

	w = a.do(t, http.MethodGet, "/checkout/success.pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	order, err := a.orders.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "esewa", order.Platform)
	assert.Equal(t, models.PaymentStatusSubmitted, order.PaymentStatus)
	assert.Equal(t, v.ReceiptURL, order.ReceiptURL)

	w = a.do(t, http.MethodGet, "/customer-info", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"city":"Pokhara"`)
	require.Equal(t, http.StatusOK, a.do(t, http.MethodDelete, "/customer-info", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/customer-info", token, nil).Code)

	cart := a.do(t, http.MethodGet, "/cart", token, nil)
	assert.Contains(t, cart.Body.String(), `"count":0`)
}

func TestCashOnDeliveryCheckout(t *testing.T) {
	a := setupApp(t)
	token := a.guestToken(t)

	a.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 2, "quantity": 4})
	v := view(t, a.do(t, http.MethodPost, "/checkout", token, nil))
	assert.Equal(t, checkout.StepShipping, v.Step)

	v = view(t, a.do(t, http.MethodPost, "/checkout/shipping", token, shippingBody(" kathmandu ")))
	assert.True(t, v.Pricing.Shipping.IsZero(), "valley city above the threshold ships free")

	v = view(t, a.do(t, http.MethodPost, "/checkout/back", token, nil))
	assert.Equal(t, checkout.StepShipping, v.Step)
	view(t, a.do(t, http.MethodPost, "/checkout/shipping", token, shippingBody("Kathmandu")))
	view(t, a.do(t, http.MethodPost, "/checkout/confirm", token, nil))

	v = view(t, a.do(t, http.MethodPost, "/checkout/platform", token, gin.H{"platform": "cashondelivery"}))
	assert.Equal(t, checkout.StepSuccess, v.Step)

	w := a.do(t, http.MethodGet, "/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("X-API-KEY", apiKey)
	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1, "resubmitting shipping keeps a single order row")
	assert.Equal(t, v.OrderID, orders[0].OrderID)
	assert.Equal(t, "cashondelivery", orders[0].Platform)
	assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(2600)))
}

func TestCartEditDuringCheckoutStartsOver(t *testing.T) {
	a := setupApp(t)
	token := a.guestToken(t)

	a.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 2, "quantity": 4})
	view(t, a.do(t, http.MethodPost, "/checkout", token, nil))
	view(t, a.do(t, http.MethodPost, "/checkout/shipping", token, shippingBody("Kathmandu")))
	view(t, a.do(t, http.MethodPost, "/checkout/confirm", token, nil))
	v := view(t, a.do(t, http.MethodPost, "/checkout/platform", token, gin.H{"platform": "khalti"}))
	require.Equal(t, checkout.StepPayment, v.Step)

	w := a.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 1, "quantity": 1, "variant_id": "250"})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodPost, "/checkout/payment", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/checkout/success", token, nil).Code)

	view(t, a.do(t, http.MethodPost, "/checkout", token, nil))
	view(t, a.do(t, http.MethodPost, "/checkout/shipping", token, shippingBody("Kathmandu")))
	view(t, a.do(t, http.MethodPost, "/checkout/confirm", token, nil))
	v = view(t, a.do(t, http.MethodPost, "/checkout/platform", token, gin.H{"platform": "cashondelivery"}))
	require.Equal(t, checkout.StepSuccess, v.Step)

	w = a.do(t, http.MethodGet, "/checkout/success", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap models.OrderSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(2600+950)))
	assert.Len(t, snap.CartItems, 2)

	order, err := a.orders.GetOrder(context.Background(), v.OrderID)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(snap.Total))
	assert.Len(t, order.Items, 2)
}
