package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/alimenta-labs/prodplan/backend-go/internal/service"
)

type ReorderHandler struct {
	service *service.ReorderService
}

func NewReorderHandler(service *service.ReorderService) *ReorderHandler {
	return &ReorderHandler{service: service}
}

type analyzeRequest struct {
	Snapshots []snapshotPayload `json:"snapshots"`
	Year      int               `json:"year"`
}

func (h *ReorderHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snapshots, err := toSnapshots(req.Snapshots)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Year < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), snapshots, req.Year)
	if err != nil {
		log.Error().Err(err).Msg("failed to run reorder analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run reorder analysis"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *ReorderHandler) GetLatest(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = parsed
	}

	analysis, err := h.service.GetLatest(c.Request.Context(), year)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch latest analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch latest analysis"})
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis available"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
