package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	portssvc "github.com/SscSPs/asset_depreciation/internal/core/ports/services"
	"github.com/SscSPs/asset_depreciation/internal/dto"
	"github.com/SscSPs/asset_depreciation/internal/middleware"
	"github.com/gin-gonic/gin"
)

type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
}

func newScheduleHandler(ss portssvc.ScheduleSvcFacade) *scheduleHandler {
	return &scheduleHandler{scheduleService: ss}
}

// registerScheduleRoutes registers the read-only schedule routes.
func registerScheduleRoutes(rg *gin.RouterGroup, ss portssvc.ScheduleSvcFacade) {
	h := newScheduleHandler(ss)

	schedules := rg.Group("/schedules")
	{
		schedules.GET("/:name", h.getSchedule)
		schedules.GET("/:name/due", h.diagnose)
	}
}

// getSchedule godoc
// @Summary Get a schedule
// @Description Retrieves a schedule configuration including its last run result
// @Tags schedules
// @Produce  json
// @Param   name path string true "Schedule name"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} map[string]string "Schedule not found"
// @Failure 500 {object} map[string]string "Failed to retrieve schedule"
// @Router /schedules/{name} [get]
func (h *scheduleHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	cfg, err := h.scheduleService.GetSchedule(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			logger.Error("Failed to get schedule", slog.String("schedule", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(cfg))
}

// diagnose godoc
// @Summary Explain whether a schedule is due
// @Description Evaluates the schedule at the current instant without triggering a run. Configuration errors are reported in the body.
// @Tags schedules
// @Produce  json
// @Param   name path string true "Schedule name"
// @Success 200 {object} dto.DueResponse
// @Failure 404 {object} map[string]string "Schedule not found"
// @Failure 500 {object} map[string]string "Failed to evaluate schedule"
// @Router /schedules/{name}/due [get]
func (h *scheduleHandler) diagnose(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	_, decision, err := h.scheduleService.Diagnose(c.Request.Context(), name)
	if err != nil && !errors.Is(err, apperrors.ErrConfiguration) {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			logger.Error("Failed to diagnose schedule", slog.String("schedule", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDueResponse(name, decision, err))
}
