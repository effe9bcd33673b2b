// internal/api/handlers/restock_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
	"github.com/koncoweb/petnexus-sub000/internal/service"
)

type RestockHandler struct {
	restockService *service.RestockService
}

func NewRestockHandler(restockService *service.RestockService) *RestockHandler {
	return &RestockHandler{restockService: restockService}
}

// GetAnalysis runs a restock analysis for one store, or for a
// comma-separated list of stores via store_ids.
func (h *RestockHandler) GetAnalysis(c *gin.Context) {
	storeID := c.Query("store_id")
	storeIDs := splitParam(c.Query("store_ids"))
	supplierID := c.Query("supplier_id")

	if storeID == "" && len(storeIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id or store_ids is required"})
		return
	}

	if len(storeIDs) > 0 {
		results, err := h.restockService.AnalyzeStores(c.Request.Context(), storeIDs, supplierID)
		if err != nil {
			respondAnalysisError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
		return
	}

	result, err := h.restockService.Analyze(c.Request.Context(), domain.AnalysisScope{
		StoreID:    storeID,
		SupplierID: supplierID,
	})
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSuppliers returns suppliers matching the optional search term.
func (h *RestockHandler) GetSuppliers(c *gin.Context) {
	search := c.Query("search")
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	suppliers, err := h.restockService.GetSuppliers(c.Request.Context(), search, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch suppliers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch suppliers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

func respondAnalysisError(c *gin.Context, err error) {
	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": invalid.Error()})
		return
	}

	log.Error().Err(err).Msg("restock analysis failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
