package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pkg/errors"

	"github.com/kinlabs/kin-paymaster/internal/constants"
	"github.com/kinlabs/kin-paymaster/internal/db"
	"github.com/kinlabs/kin-paymaster/internal/helpers"
)

// RelayerHandler handles admin-side relayer registration and key issuance
type RelayerHandler struct {
	common *CommonServices
}

// NewRelayerHandler creates a new RelayerHandler instance
func NewRelayerHandler(common *CommonServices) *RelayerHandler {
	return &RelayerHandler{common: common}
}

// CreateRelayerRequest registers a relayer address with the service
type CreateRelayerRequest struct {
	Address string `json:"address" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// RelayerResponse is the API shape of a registered relayer
type RelayerResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Address   string `json:"address"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt int64  `json:"created_at"`
}

// APIKeyResponse is returned once at issuance; the key is not retrievable
// afterwards.
type APIKeyResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Key       string `json:"key"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// SetActiveRequest toggles whether a relayer may call forward operations
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// CreateRelayer godoc
// @Summary Register a relayer
// @Tags relayers
// @Accept json
// @Produce json
// @Param request body CreateRelayerRequest true "Relayer details"
// @Success 201 {object} RelayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/relayers [post]
func (h *RelayerHandler) CreateRelayer(c *gin.Context) {
	var req CreateRelayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !helpers.IsAddressValid(req.Address) {
		sendError(c, http.StatusBadRequest, "Invalid relayer address", nil)
		return
	}

	address := common.HexToAddress(req.Address).Hex()
	if _, err := h.common.db.GetRelayerByAddress(c.Request.Context(), address); err == nil {
		sendError(c, http.StatusConflict, "Relayer already registered", nil)
		return
	}

	relayer, err := h.common.db.CreateRelayer(c.Request.Context(), db.CreateRelayerParams{
		Address: address,
		Name:    req.Name,
		Active:  true,
	})
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to create relayer", err)
		return
	}

	sendSuccess(c, http.StatusCreated, toRelayerResponse(relayer))
}

// ListRelayers godoc
// @Summary List registered relayers
// @Tags relayers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/relayers [get]
func (h *RelayerHandler) ListRelayers(c *gin.Context) {
	relayers, err := h.common.db.ListRelayers(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list relayers", err)
		return
	}

	items := make([]RelayerResponse, 0, len(relayers))
	for _, r := range relayers {
		items = append(items, toRelayerResponse(r))
	}
	sendList(c, items)
}

// GetRelayer godoc
// @Summary Get a relayer by ID
// @Tags relayers
// @Produce json
// @Param id path string true "Relayer ID"
// @Success 200 {object} RelayerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/relayers/{id} [get]
func (h *RelayerHandler) GetRelayer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid relayer ID", err)
		return
	}

	relayer, err := h.common.db.GetRelayer(c.Request.Context(), id)
	if err != nil {
		handleDBError(c, err, "Relayer not found")
		return
	}

	sendSuccess(c, http.StatusOK, toRelayerResponse(relayer))
}

// SetRelayerActive godoc
// @Summary Activate or deactivate a relayer
// @Description Inactive relayers keep their accrued credits but cannot call forward or claim operations
// @Tags relayers
// @Accept json
// @Produce json
// @Param id path string true "Relayer ID"
// @Param request body SetActiveRequest true "Desired state"
// @Success 200 {object} RelayerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/relayers/{id}/active [put]
func (h *RelayerHandler) SetRelayerActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid relayer ID", err)
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	relayer, err := h.common.db.SetRelayerActive(c.Request.Context(), db.SetRelayerActiveParams{
		ID:     id,
		Active: *req.Active,
	})
	if err != nil {
		handleDBError(c, err, "Relayer not found")
		return
	}

	sendSuccess(c, http.StatusOK, toRelayerResponse(relayer))
}

// CreateAPIKey godoc
// @Summary Issue an API key for a relayer
// @Description The raw key is returned once and cannot be retrieved again
// @Tags relayers
// @Produce json
// @Param id path string true "Relayer ID"
// @Success 201 {object} APIKeyResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/relayers/{id}/api-keys [post]
func (h *RelayerHandler) CreateAPIKey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid relayer ID", err)
		return
	}

	if _, err := h.common.db.GetRelayer(c.Request.Context(), id); err != nil {
		handleDBError(c, err, "Relayer not found")
		return
	}

	key, err := generateAPIKey()
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to generate API key", err)
		return
	}

	created, err := h.common.db.CreateAPIKey(c.Request.Context(), db.CreateAPIKeyParams{
		RelayerID: id,
		Key:       key,
		Role:      constants.RoleRelayer,
		ExpiresAt: pgtype.Timestamptz{Time: time.Now().AddDate(1, 0, 0), Valid: true},
	})
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to create API key", err)
		return
	}

	resp := APIKeyResponse{
		ID:     created.ID.String(),
		Object: "api_key",
		Key:    created.Key,
		Role:   created.Role,
	}
	if created.ExpiresAt.Valid {
		resp.ExpiresAt = created.ExpiresAt.Time.Unix()
	}
	sendSuccess(c, http.StatusCreated, resp)
}

func generateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}
	return "pk_" + hex.EncodeToString(buf), nil
}

func toRelayerResponse(r db.Relayer) RelayerResponse {
	resp := RelayerResponse{
		ID:      r.ID.String(),
		Object:  "relayer",
		Address: r.Address,
		Name:    r.Name,
		Active:  r.Active,
	}
	if r.CreatedAt.Valid {
		resp.CreatedAt = r.CreatedAt.Time.Unix()
	}
	return resp
}
