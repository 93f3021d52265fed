package controllers

import (
	"net/http"
	"strconv"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/utils"

	"github.com/gin-gonic/gin"
)

const maxHistoryLimit = 500

// listHistory returns recent query attempts
// @Summary Query history
// @Description Lists recent query attempts, newest first, optionally filtered by pool
// @Tags History
// @Produce json
// @Param pool query string false "Pool name filter"
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {object} HistoryListResponse "History entries"
// @Failure 400 {object} ErrorResponse "Invalid limit"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/history [get]
func listHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			logger.Warnf("Invalid history limit: %s", raw)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"message": "limit must be a positive integer",
			})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	poolName := c.Query("pool")
	entries, err := connectionSrv.History(c.Request.Context(), poolName, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"history": entries,
		"count":   len(entries),
	})
}

// RegisterHistoryRoutes registers HTTP endpoints for the query history log.
func RegisterHistoryRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", listHistory)
}
