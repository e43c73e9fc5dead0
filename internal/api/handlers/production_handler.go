package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/alimenta-labs/prodplan/backend-go/internal/forecast"
	"github.com/alimenta-labs/prodplan/backend-go/internal/service"
)

type ProductionHandler struct {
	service *service.ProductionService
}

func NewProductionHandler(service *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: service}
}

type computePlanRequest struct {
	Snapshots       []snapshotPayload `json:"snapshots"`
	CoverageDays    int               `json:"coverage_days"`
	SafetyBuffer    int               `json:"safety_buffer_days"`
	HolidayLeadDays int               `json:"holiday_lead_days"`
}

func (h *ProductionHandler) ComputePlan(c *gin.Context) {
	var req computePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snapshots, err := toSnapshots(req.Snapshots)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CoverageDays < 0 || req.SafetyBuffer < 0 || req.HolidayLeadDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planning parameters must not be negative"})
		return
	}

	plan, err := h.service.ComputePlan(c.Request.Context(), snapshots, forecast.PlanningConfig{
		CoverageDays:    req.CoverageDays,
		SafetyBuffer:    req.SafetyBuffer,
		HolidayLeadDays: req.HolidayLeadDays,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to compute production plan")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute production plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *ProductionHandler) ListRuns(c *gin.Context) {
	limit := 30
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	runs, err := h.service.ListRuns(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list production runs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list production runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *ProductionHandler) GetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	plan, err := h.service.GetRun(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to fetch production run")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch production run"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "production run not found"})
		return
	}

	c.JSON(http.StatusOK, plan)
}
