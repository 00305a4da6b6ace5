package auth_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kinlabs/kin-paymaster/internal/auth"
	"github.com/kinlabs/kin-paymaster/internal/constants"
	"github.com/kinlabs/kin-paymaster/internal/db"
	"github.com/kinlabs/kin-paymaster/internal/logger"
	"github.com/kinlabs/kin-paymaster/internal/mocks"
)

const testJWTSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger()
	os.Setenv("PAYMASTER_JWT_SECRET", testJWTSecret)
	os.Exit(m.Run())
}

func signAdminToken(t *testing.T, role string, expiresAt time.Time) string {
	t.Helper()

	claims := auth.AdminClaims{
		Sub:  "operator",
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(querier db.Querier) *gin.Engine {
	router := gin.New()
	router.Use(auth.EnsureValidAPIKeyOrToken(querier))
	router.GET("/ok", func(c *gin.Context) {
		address, _ := auth.RelayerAddress(c)
		c.JSON(http.StatusOK, gin.H{"relayer": address})
	})
	return router
}

func activeKeyRow(relayerAddress string) db.GetAPIKeyByKeyRow {
	return db.GetAPIKeyByKeyRow{
		ID:             uuid.New(),
		RelayerID:      uuid.New(),
		Key:            "pk_test",
		Role:           constants.RoleRelayer,
		ExpiresAt:      pgtype.Timestamptz{Time: time.Now().Add(time.Hour), Valid: true},
		RelayerAddress: relayerAddress,
		RelayerActive:  true,
	}
}

func TestEnsureValidAPIKeyOrToken(t *testing.T) {
	relayerAddress := "0x00000000000000000000000000000000000000cc"

	t.Run("accepts a valid API key and sets the relayer identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		querier := mocks.NewMockQuerier(ctrl)
		querier.EXPECT().
			GetAPIKeyByKey(gomock.Any(), "pk_test").
			Return(activeKeyRow(relayerAddress), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-API-Key", "pk_test")
		newAuthRouter(querier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), relayerAddress)
	})

	t.Run("rejects an unknown API key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		querier := mocks.NewMockQuerier(ctrl)
		querier.EXPECT().
			GetAPIKeyByKey(gomock.Any(), "pk_bogus").
			Return(db.GetAPIKeyByKeyRow{}, pgx.ErrNoRows)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-API-Key", "pk_bogus")
		newAuthRouter(querier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an expired API key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		querier := mocks.NewMockQuerier(ctrl)
		row := activeKeyRow(relayerAddress)
		row.ExpiresAt = pgtype.Timestamptz{Time: time.Now().Add(-time.Hour), Valid: true}
		querier.EXPECT().
			GetAPIKeyByKey(gomock.Any(), "pk_test").
			Return(row, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-API-Key", "pk_test")
		newAuthRouter(querier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a key belonging to a deactivated relayer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		querier := mocks.NewMockQuerier(ctrl)
		row := activeKeyRow(relayerAddress)
		row.RelayerActive = false
		querier.EXPECT().
			GetAPIKeyByKey(gomock.Any(), "pk_test").
			Return(row, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-API-Key", "pk_test")
		newAuthRouter(querier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts a valid admin bearer token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		querier := mocks.NewMockQuerier(ctrl)

		token := signAdminToken(t, constants.RoleAdmin, time.Now().Add(time.Hour))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newAuthRouter(querier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects an expired bearer token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		querier := mocks.NewMockQuerier(ctrl)

		token := signAdminToken(t, constants.RoleAdmin, time.Now().Add(-time.Hour))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newAuthRouter(querier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an unauthenticated request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		querier := mocks.NewMockQuerier(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		newAuthRouter(querier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextRole, constants.RoleRelayer)
	})
	router.GET("/admin", auth.RequireRoles(constants.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRelayer(t *testing.T) {
	t.Run("blocks operator tokens from relayer operations", func(t *testing.T) {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextRole, constants.RoleAdmin)
		})
		router.POST("/claims", auth.RequireRelayer(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/claims", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("passes relayer-authenticated requests through", func(t *testing.T) {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextRelayerAddress, "0x00000000000000000000000000000000000000cc")
		})
		router.POST("/claims", auth.RequireRelayer(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/claims", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
