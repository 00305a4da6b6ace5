package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/kinlabs/kin-paymaster/internal/db"
	"github.com/kinlabs/kin-paymaster/internal/logger"
)

// Context keys set by the middleware for downstream handlers.
const (
	ContextRelayerID      = "relayer_id"
	ContextRelayerAddress = "relayer_address"
	ContextRole           = "role"
)

// AdminClaims is the expected structure of an operator bearer token.
type AdminClaims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// validateAPIKey resolves an API key to its relayer. It checks that the key
// exists, has not expired, and that the relayer is still active.
func validateAPIKey(c *gin.Context, queries db.Querier, apiKey string) (db.GetAPIKeyByKeyRow, error) {
	key, err := queries.GetAPIKeyByKey(c.Request.Context(), apiKey)
	if err != nil {
		return db.GetAPIKeyByKeyRow{}, ErrInvalidAPIKey
	}

	if key.ExpiresAt.Valid && key.ExpiresAt.Time.Before(time.Now()) {
		return db.GetAPIKeyByKeyRow{}, fmt.Errorf("%w: expired", ErrInvalidAPIKey)
	}

	if !key.RelayerActive {
		return db.GetAPIKeyByKeyRow{}, ErrRelayerInactive
	}

	return key, nil
}

// ValidateAdminToken validates an operator HMAC bearer token signed with
// PAYMASTER_JWT_SECRET.
func ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		jwtSecret := os.Getenv("PAYMASTER_JWT_SECRET")
		if jwtSecret == "" {
			return nil, fmt.Errorf("PAYMASTER_JWT_SECRET not set")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// EnsureValidAPIKeyOrToken authenticates the request either as a relayer
// (X-API-Key header) or as an operator (Authorization bearer token) and
// stores the resolved identity on the gin context.
func EnsureValidAPIKeyOrToken(queries db.Querier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
			key, err := validateAPIKey(c, queries, apiKey)
			if err != nil {
				logger.Debug("API key rejected", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
				return
			}
			c.Set(ContextRelayerID, key.RelayerID)
			c.Set(ContextRelayerAddress, key.RelayerAddress)
			c.Set(ContextRole, key.Role)
			c.Next()
			return
		}

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			claims, err := ValidateAdminToken(authHeader)
			if err != nil {
				logger.Debug("Bearer token rejected", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.Set(ContextRole, claims.Role)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
}

// RequireRoles restricts a route group to the listed roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// RelayerAddress returns the authenticated relayer address from the context,
// or false when the caller is not a relayer.
func RelayerAddress(c *gin.Context) (string, bool) {
	address := c.GetString(ContextRelayerAddress)
	if address == "" {
		return "", false
	}
	return address, true
}

// RequireRelayer rejects callers that did not authenticate with a relayer
// API key (operator tokens have no ledger identity to act as).
func RequireRelayer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := RelayerAddress(c); !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "relayer API key required"})
			return
		}
		c.Next()
	}
}
