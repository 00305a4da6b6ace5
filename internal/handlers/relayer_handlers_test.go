package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kinlabs/kin-paymaster/internal/constants"
	"github.com/kinlabs/kin-paymaster/internal/db"
	"github.com/kinlabs/kin-paymaster/internal/handlers"
	"github.com/kinlabs/kin-paymaster/internal/mocks"
)

func newRelayerRouter(t *testing.T) (*gin.Engine, *mocks.MockQuerier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	handler := handlers.NewRelayerHandler(handlers.NewCommonServices(mocks.NewTestStore(querier), nil))

	router := gin.New()
	router.POST("/relayers", handler.CreateRelayer)
	router.GET("/relayers", handler.ListRelayers)
	router.GET("/relayers/:id", handler.GetRelayer)
	router.PUT("/relayers/:id/active", handler.SetRelayerActive)
	router.POST("/relayers/:id/api-keys", handler.CreateAPIKey)
	return router, querier
}

func TestCreateRelayer(t *testing.T) {
	t.Run("registers a new relayer as active", func(t *testing.T) {
		router, querier := newRelayerRouter(t)

		querier.EXPECT().
			GetRelayerByAddress(gomock.Any(), relayerAddr.Hex()).
			Return(db.Relayer{}, pgx.ErrNoRows)
		querier.EXPECT().
			CreateRelayer(gomock.Any(), db.CreateRelayerParams{
				Address: relayerAddr.Hex(),
				Name:    "fast-lane",
				Active:  true,
			}).
			Return(db.Relayer{
				ID:      uuid.New(),
				Address: relayerAddr.Hex(),
				Name:    "fast-lane",
				Active:  true,
			}, nil)

		w := postJSON(router, "/relayers", handlers.CreateRelayerRequest{
			Address: relayerAddr.Hex(),
			Name:    "fast-lane",
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var resp handlers.RelayerResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, relayerAddr.Hex(), resp.Address)
		assert.True(t, resp.Active)
	})

	t.Run("rejects a duplicate address", func(t *testing.T) {
		router, querier := newRelayerRouter(t)

		querier.EXPECT().
			GetRelayerByAddress(gomock.Any(), relayerAddr.Hex()).
			Return(db.Relayer{ID: uuid.New(), Address: relayerAddr.Hex()}, nil)

		w := postJSON(router, "/relayers", handlers.CreateRelayerRequest{
			Address: relayerAddr.Hex(),
			Name:    "fast-lane",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects a malformed address", func(t *testing.T) {
		router, _ := newRelayerRouter(t)

		w := postJSON(router, "/relayers", handlers.CreateRelayerRequest{
			Address: "bogus",
			Name:    "fast-lane",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSetRelayerActive(t *testing.T) {
	router, querier := newRelayerRouter(t)

	id := uuid.New()
	querier.EXPECT().
		SetRelayerActive(gomock.Any(), db.SetRelayerActiveParams{ID: id, Active: false}).
		Return(db.Relayer{ID: id, Address: relayerAddr.Hex(), Active: false}, nil)

	active := false
	w := postPut(router, "/relayers/"+id.String()+"/active", handlers.SetActiveRequest{Active: &active})

	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.RelayerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Active)
}

func TestCreateAPIKey(t *testing.T) {
	t.Run("issues a relayer-scoped key", func(t *testing.T) {
		router, querier := newRelayerRouter(t)

		id := uuid.New()
		querier.EXPECT().
			GetRelayer(gomock.Any(), id).
			Return(db.Relayer{ID: id, Address: relayerAddr.Hex(), Active: true}, nil)
		querier.EXPECT().
			CreateAPIKey(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.CreateAPIKeyParams) (db.ApiKey, error) {
				assert.Equal(t, id, arg.RelayerID)
				assert.Equal(t, constants.RoleRelayer, arg.Role)
				assert.NotEmpty(t, arg.Key)
				return db.ApiKey{
					ID:        uuid.New(),
					RelayerID: id,
					Key:       arg.Key,
					Role:      arg.Role,
					ExpiresAt: arg.ExpiresAt,
				}, nil
			})

		w := postJSON(router, "/relayers/"+id.String()+"/api-keys", nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp handlers.APIKeyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Key, "pk_")
		assert.Equal(t, constants.RoleRelayer, resp.Role)
	})

	t.Run("404s for an unknown relayer", func(t *testing.T) {
		router, querier := newRelayerRouter(t)

		id := uuid.New()
		querier.EXPECT().
			GetRelayer(gomock.Any(), id).
			Return(db.Relayer{}, pgx.ErrNoRows)

		w := postJSON(router, "/relayers/"+id.String()+"/api-keys", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func postPut(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}
