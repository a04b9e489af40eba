package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	portssvc "github.com/SscSPs/asset_depreciation/internal/core/ports/services"
	"github.com/SscSPs/asset_depreciation/internal/dto"
	"github.com/SscSPs/asset_depreciation/internal/middleware"
	"github.com/gin-gonic/gin"
)

// depreciationHandler handles HTTP requests for depreciation runs and ledgers.
type depreciationHandler struct {
	depreciationService portssvc.DepreciationSvcFacade
}

// newDepreciationHandler creates a new depreciationHandler.
func newDepreciationHandler(ds portssvc.DepreciationSvcFacade) *depreciationHandler {
	return &depreciationHandler{
		depreciationService: ds,
	}
}

// registerDepreciationRoutes registers routes related to depreciation.
// runGuards wrap the manual run endpoint only.
func registerDepreciationRoutes(rg *gin.RouterGroup, ds portssvc.DepreciationSvcFacade, runGuards ...gin.HandlerFunc) {
	h := newDepreciationHandler(ds)

	runs := rg.Group("/depreciation/runs")
	{
		runs.POST("", append(runGuards, h.createRun)...)
	}

	assets := rg.Group("/assets")
	{
		assets.GET("/:assetID/depreciation", h.listAssetEntries)
	}
}

// createRun godoc
// @Summary Run depreciation now
// @Description Processes every active asset in the given mode. catch_up clears all outstanding periods; current_period records at most the latest one.
// @Tags depreciation
// @Accept  json
// @Produce  json
// @Param   run body dto.CreateRunRequest true "Run mode"
// @Success 200 {object} dto.RunResultResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} dto.RunResultResponse "Run aborted"
// @Router /depreciation/runs [post]
func (h *depreciationHandler) createRun(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to run depreciation", slog.String("mode", req.Mode))
	result, err := h.depreciationService.RunOnce(c.Request.Context(), domain.RunMode(req.Mode))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Depreciation run failed", slog.String("error", err.Error()))
		if result != nil {
			c.JSON(http.StatusInternalServerError, dto.ToRunResultResponse(result))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run depreciation"})
		return
	}

	logger.Info("Depreciation run finished",
		slog.String("run_id", result.RunID),
		slog.Int("periods_processed", result.TotalPeriodsProcessed))
	c.JSON(http.StatusOK, dto.ToRunResultResponse(result))
}

// listAssetEntries godoc
// @Summary List an asset's depreciation ledger
// @Description Retrieves the recorded depreciation entries of an asset ordered by period
// @Tags depreciation
// @Produce  json
// @Param   assetID path string true "Asset ID"
// @Param   from query string false "First period, inclusive (YYYY-MM)"
// @Param   to query string false "Last period, inclusive (YYYY-MM)"
// @Success 200 {object} dto.AssetLedgerResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Router /assets/{assetID}/depreciation [get]
func (h *depreciationHandler) listAssetEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	assetID := c.Param("assetID")

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("asset_id", assetID))
	entries, err := h.depreciationService.ListAssetEntries(c.Request.Context(), assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Asset not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetLedgerResponse(assetID, entries, params))
}
