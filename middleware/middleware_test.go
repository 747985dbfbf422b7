package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestValidateToken(t *testing.T) {
	issuer := auth.NewGuestIssuer("secret", time.Hour)
	r := gin.New()
	r.GET("/me", ValidateToken(issuer), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SessionKey))
	})

	token, _, err := issuer.Issue("sess-1")
	require.NoError(t, err)

	for _, header := range []string{token, "Bearer " + token} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sess-1", w.Body.String())
	}

	for _, header := range []string{"", "Bearer nonsense"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestValidateAPIKey(t *testing.T) {
	r := gin.New()
	r.GET("/admin", ValidateAPIKey("k3y"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	cases := map[string]int{"k3y": http.StatusNoContent, "wrong": http.StatusUnauthorized, "": http.StatusUnauthorized}
	for key, want := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-API-KEY", key)
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "key %q", key)
	}
}
