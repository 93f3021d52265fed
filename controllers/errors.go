package controllers

import (
	"errors"
	"net/http"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/repository"
	"dbconnectorapi/services"
	"dbconnectorapi/services/backend"
	"dbconnectorapi/services/connector"

	"github.com/gin-gonic/gin"
)

// errorStatus maps a service or connector error to an HTTP status and an error label.
func errorStatus(err error) (int, string) {
	if cat := connector.CategoryOf(err); cat != "" {
		switch cat {
		case connector.CategoryConnection:
			return http.StatusBadGateway, string(cat)
		case connector.CategoryQuery:
			return http.StatusUnprocessableEntity, string(cat)
		default:
			return http.StatusBadRequest, string(cat)
		}
	}

	switch {
	case errors.Is(err, backend.ErrUnknownBackend):
		return http.StatusBadRequest, string(connector.CategoryUnknownBackend)
	case errors.Is(err, services.ErrInvalidRequest), errors.Is(err, services.ErrEmptyQuery):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, services.ErrPoolNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrMetadataDisabled):
		return http.StatusServiceUnavailable, "metadata_disabled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// respondError writes the standard error body for err.
func respondError(c *gin.Context, err error) {
	status, label := errorStatus(err)
	_, message := connector.Outcome(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("API Error (%d): %v", status, err)
	} else {
		logger.Warnf("API Error (%d): %v", status, err)
	}
	c.JSON(status, gin.H{
		"error":   label,
		"message": message,
	})
}
