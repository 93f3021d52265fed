package controllers

import (
	"net/http"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/services"
	"dbconnectorapi/utils"

	"github.com/gin-gonic/gin"
)

var connectionSrv services.ConnectionService

// SetConnectionService sets the service used by every connector endpoint.
// Used for dependency injection in tests to provide mock implementations.
func SetConnectionService(s services.ConnectionService) {
	connectionSrv = s
}

// listBackends returns every supported backend kind
// @Summary List supported backends
// @Description Returns the template of each supported backend kind with native library availability
// @Tags Backends
// @Produce json
// @Success 200 {object} BackendListResponse "Backend templates"
// @Router /api/backends [get]
func listBackends(c *gin.Context) {
	templates := connectionSrv.Backends()
	logger.Debugf("Listing %d backend templates", len(templates))
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"backends": templates,
		"count":    len(templates),
	})
}

// getBackend returns one backend template with its quick queries
// @Summary Get backend template
// @Description Returns the template for a backend kind (case-insensitive) and its quick query statements
// @Tags Backends
// @Produce json
// @Param kind path string true "Backend kind" Enums(JDE, SAP, Salesforce)
// @Success 200 {object} BackendDetailResponse "Backend template"
// @Failure 400 {object} ErrorResponse "Unknown backend kind"
// @Router /api/backends/{kind} [get]
func getBackend(c *gin.Context) {
	tmpl, err := connectionSrv.Backend(c.Param("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"backend":       tmpl,
		"quick_queries": tmpl.QuickQueries(),
	})
}

// RegisterBackendRoutes registers HTTP endpoints for the backend catalogue.
func RegisterBackendRoutes(rg *gin.RouterGroup) {
	backends := rg.Group("/backends")
	{
		backends.GET("", listBackends)
		backends.GET("/:kind", getBackend)
	}
}
