package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/catalog"
	"github.com/Bishesh-P/coffee-alpico-sub000/middleware"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/Bishesh-P/coffee-alpico-sub000/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.New([]models.Product{
		{ID: 1, Name: "Ilam Estate", Price: decimal.NewFromInt(900), Variants: []models.Variant{
			{ID: "250", Name: "250g", Price: decimal.NewFromInt(950)},
			{ID: "500", Name: "500g", Price: decimal.NewFromInt(1800)},
		}},
		{ID: 2, Name: "V60 Dripper", Price: decimal.NewFromInt(2400)},
	})
	require.NoError(t, err)
	reg := sessions.NewRegistry(time.Hour, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.SessionKey, c.GetHeader("X-Session")) })
	r.GET("/cart", GetCart(reg))
	r.POST("/cart/items", AddCartItem(cat, reg))
	r.PATCH("/cart/items/:product_id", UpdateCartItem(cat, reg))
	r.DELETE("/cart/items/:product_id", DeleteCartItem(reg))
	r.DELETE("/cart", ClearCart(reg))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, session string, body any) (int, cartResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session", session)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp cartResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func TestCartLifecycle(t *testing.T) {
	r := setupRouter(t)

	code, resp := do(t, r, http.MethodPost, "/cart/items", "s1", CartItemInput{ProductID: 1, Quantity: 1})
	require.Equal(t, http.StatusCreated, code)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].NeedsVariant())

	code, resp = do(t, r, http.MethodPatch, "/cart/items/1", "s1", gin.H{"variant": "500", "machine": "Moka Pot"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "500", resp.Items[0].VariantID())
	assert.Equal(t, "Moka Pot", resp.Items[0].Machine)

	_, resp = do(t, r, http.MethodPost, "/cart/items", "s1", CartItemInput{ProductID: 2, Quantity: 1})
	assert.Equal(t, 2, resp.Count)
	assert.True(t, resp.Pricing.Total.Equal(decimal.NewFromInt(1800+2400+150)), "no city yet, flat fee applies")

	_, resp = do(t, r, http.MethodGet, "/cart?city=Lalitpur", "s1", nil)
	assert.True(t, resp.Pricing.Shipping.IsZero())
	_, resp = do(t, r, http.MethodGet, "/cart?city=Pokhara", "s1", nil)
	assert.True(t, resp.Pricing.Shipping.Equal(decimal.NewFromInt(150)))

	_, resp = do(t, r, http.MethodPatch, "/cart/items/1?variant_id=500", "s1", gin.H{"quantity": 0})
	assert.Len(t, resp.Items, 1)

	_, resp = do(t, r, http.MethodDelete, "/cart/items/2", "s1", nil)
	assert.Empty(t, resp.Items)
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	r := setupRouter(t)
	do(t, r, http.MethodPost, "/cart/items", "a", CartItemInput{ProductID: 2, Quantity: 3})

	_, resp := do(t, r, http.MethodGet, "/cart", "b", nil)
	assert.Zero(t, resp.Count)

	do(t, r, http.MethodDelete, "/cart", "a", nil)
	_, resp = do(t, r, http.MethodGet, "/cart", "a", nil)
	assert.Zero(t, resp.Count)
}

func TestAddCartItemRejectsUnknownTargets(t *testing.T) {
	r := setupRouter(t)

	code, _ := do(t, r, http.MethodPost, "/cart/items", "s1", CartItemInput{ProductID: 99})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, r, http.MethodPost, "/cart/items", "s1", CartItemInput{ProductID: 1, VariantID: "1kg"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodPatch, "/cart/items/x", "s1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
}
