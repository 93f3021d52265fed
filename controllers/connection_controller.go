package controllers

import (
	"net/http"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/services/connector"
	"dbconnectorapi/services/dto"
	"dbconnectorapi/utils"

	"github.com/gin-gonic/gin"
)

// createConnection tests and registers a connection in the caller's session
// @Summary Connect and save
// @Description Tests the connection and, only when the test passes, registers it under its pool name in the session
// @Tags Connections
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id; a new session is started when absent or expired"
// @Param params body dto.ConnectRequest true "Connection parameters"
// @Success 201 {object} ConnectionCreatedResponse "Connection registered"
// @Failure 400 {object} ErrorResponse "Invalid request, unknown backend, missing credential or malformed host"
// @Failure 502 {object} ErrorResponse "Backend unreachable or rejected the credentials"
// @Router /api/connections [post]
func createConnection(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	summary, err := connectionSrv.Connect(c.Request.Context(), sess.Registry, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Infof("Connection %s (%s) saved in session", summary.PoolName, summary.Kind)
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Connection successful",
		"connection": summary,
	})
}

// testConnection checks connectivity without registering anything
// @Summary Test connection
// @Description Opens a session against the backend, runs its probe statement and closes it
// @Tags Connections
// @Accept json
// @Produce json
// @Param params body dto.ConnectRequest true "Connection parameters"
// @Success 200 {object} dto.TestResult "Connection test passed"
// @Failure 400 {object} TestFailureResponse "Invalid request, unknown backend, missing credential or malformed host"
// @Failure 502 {object} TestFailureResponse "Backend unreachable or rejected the credentials"
// @Router /api/connections/test [post]
func testConnection(c *gin.Context) {
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := connectionSrv.Test(c.Request.Context(), req)
	if err != nil {
		status, label := errorStatus(err)
		_, message := connector.Outcome(err)
		logger.Warnf("Connection test for %s failed: %v", req.PoolName, err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   label,
			"message": message,
		})
		return
	}
	c.JSON(http.StatusOK, dto.TestResult{Success: true, Message: "Connection successful"})
}

// listConnections lists the connections registered in the session
// @Summary List session connections
// @Description Returns non-secret summaries of the connections registered in the caller's session, in registration order
// @Tags Connections
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} ConnectionListResponse "Session connections"
// @Router /api/connections [get]
func listConnections(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	summaries := connectionSrv.Connections(sess.Registry)
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"connections": summaries,
		"count":       len(summaries),
	})
}

// listSavedConnections lists connection metadata kept in the metadata store
// @Summary List saved connection metadata
// @Description Returns connection metadata (no secrets) persisted across sessions
// @Tags Connections
// @Produce json
// @Success 200 {object} SavedConnectionListResponse "Saved connection metadata"
// @Failure 503 {object} ErrorResponse "Metadata store disabled"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/connections/saved [get]
func listSavedConnections(c *gin.Context) {
	saved, err := connectionSrv.SavedConnections(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"connections": saved,
		"count":       len(saved),
	})
}

// listQuickQueries returns canned statements for a registered connection
// @Summary Quick queries for a connection
// @Description Returns the probe, sample and record count statements for the backend of a registered pool
// @Tags Connections
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param pool path string true "Pool name"
// @Success 200 {object} QuickQueryListResponse "Quick queries"
// @Failure 404 {object} ErrorResponse "Pool not registered in this session"
// @Router /api/connections/{pool}/quick-queries [get]
func listQuickQueries(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	poolName := c.Param("pool")
	queries, err := connectionSrv.QuickQueries(sess.Registry, poolName)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"pool_name":     poolName,
		"quick_queries": queries,
	})
}

func badRequest(c *gin.Context, err error) {
	logger.Warnf("Invalid request body: %v", err)
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation_error",
		"message": err.Error(),
	})
}

// RegisterConnectionRoutes registers HTTP endpoints for session connections.
func RegisterConnectionRoutes(rg *gin.RouterGroup) {
	connections := rg.Group("/connections")
	{
		connections.POST("", createConnection)
		connections.GET("", listConnections)
		connections.POST("/test", testConnection)
		connections.GET("/saved", listSavedConnections)
		connections.GET("/:pool/quick-queries", listQuickQueries)
	}
}
