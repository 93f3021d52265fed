package controllers

import (
	"net/http"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/pkg/metrics"
	"dbconnectorapi/services/dto"

	"github.com/gin-gonic/gin"
)

// executeQuery runs a statement against a registered connection
// @Summary Execute query
// @Description Runs the statement on a fresh backend session for the named pool and returns the result table. Every attempt is recorded in the query history.
// @Tags Queries
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param pool path string true "Pool name"
// @Param params body dto.QueryRequest true "Statement to execute"
// @Success 200 {object} dto.QueryOutcome "Result table"
// @Failure 400 {object} ErrorResponse "Empty query"
// @Failure 404 {object} ErrorResponse "Pool not registered in this session"
// @Failure 422 {object} ErrorResponse "Backend rejected the statement"
// @Failure 429 {object} ErrorResponse "Session query rate exceeded"
// @Failure 502 {object} ErrorResponse "Backend unreachable"
// @Router /api/queries/{pool} [post]
func executeQuery(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	poolName := c.Param("pool")

	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if !sess.AllowQuery() {
		metrics.RateLimited.Inc()
		logger.Warnf("Query rate exceeded for pool %s", poolName)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":   "rate_limited",
			"message": "too many queries in this session, try again shortly",
		})
		return
	}

	outcome, err := connectionSrv.Execute(c.Request.Context(), sess.Registry, poolName, req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Infof("Query on %s returned %d row(s) in %dms", poolName, outcome.RowCount, outcome.DurationMs)
	c.JSON(http.StatusOK, outcome)
}

// RegisterQueryRoutes registers HTTP endpoints for query execution.
func RegisterQueryRoutes(rg *gin.RouterGroup) {
	rg.POST("/queries/:pool", executeQuery)
}
