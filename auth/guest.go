package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const RoleGuest = "guest"

// GuestClaims identify one anonymous shopper. The session id keys the cart,
// the checkout and the saved customer info.
type GuestClaims struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type GuestIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewGuestIssuer(secret string, ttl time.Duration) *GuestIssuer {
	return &GuestIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for sessionID and returns it with its expiry.
func (g *GuestIssuer) Issue(sessionID string) (string, time.Time, error) {
	now := g.now()
	expires := now.Add(g.ttl)
	claims := GuestClaims{
		SessionID: sessionID,
		Role:      RoleGuest,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	return token, expires, err
}

// Parse validates a signed guest token and returns its claims.
func (g *GuestIssuer) Parse(tokenString string) (*GuestClaims, error) {
	claims := &GuestClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(g.now))
	if err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// POST /auth/guest
func CreateGuestSession(issuer *GuestIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := uuid.NewString()

		token, expiresAt, err := issuer.Issue(sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": sessionID,
			"token":      token,
			"expires_at": expiresAt,
		})
	}
}
