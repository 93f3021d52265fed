package utils

import (
	"time"

	"dbconnectorapi/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InitLoggerWithConfig initializes the global logger from string-typed config values.
func InitLoggerWithConfig(filePath, level string, maxSize, maxBackups, maxAge int, compress bool) {
	logLevel := logger.ParseLogLevel(level)
	logger.InitWithConfig(filePath, logLevel, maxSize, maxBackups, maxAge, compress)
	logger.Infof("Logger initialized with level %s at: %s", level, filePath)
}

// LoggerMiddleware logs one line per request, leveled by response status.
// The query string is redacted since it may carry credentials.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + logger.Redact(raw)
		}

		if status >= 500 {
			logger.Errorf("HTTP %s %s - Status: %d, Duration: %v, IP: %s",
				c.Request.Method, path, status, elapsed, c.ClientIP())
		} else if status >= 400 {
			logger.Warnf("HTTP %s %s - Status: %d, Duration: %v, IP: %s",
				c.Request.Method, path, status, elapsed, c.ClientIP())
		} else {
			logger.Infof("HTTP %s %s - Status: %d, Duration: %v, IP: %s",
				c.Request.Method, path, status, elapsed, c.ClientIP())
		}
	}
}

// JSONResponse sends a JSON response with the specified HTTP status code.
func JSONResponse(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
