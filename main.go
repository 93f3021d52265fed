package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dbconnectorapi/bootstrap"
	"dbconnectorapi/config"
	"dbconnectorapi/controllers"
	_ "dbconnectorapi/docs"
	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/pkg/metrics"
	"dbconnectorapi/repository"
	"dbconnectorapi/services"
	"dbconnectorapi/services/backend"
	"dbconnectorapi/services/connector"
	"dbconnectorapi/services/history"
	"dbconnectorapi/services/pool"
	"dbconnectorapi/services/warehouse"
	"dbconnectorapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           dbconnectorapi
// @version         1.0
// @description     Multi-backend query connector API (JDE/Oracle, SAP HANA, Salesforce)

// @BasePath  /

func main() {
	// 1) Load config
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("LoadConfig error: %v", err)
	}

	// 2) Init structured logger with config
	utils.InitLoggerWithConfig(
		config.Cfg.LogFile,
		config.Cfg.LogLevel,
		config.Cfg.LogMaxSize,
		config.Cfg.LogMaxBackups,
		config.Cfg.LogMaxAge,
		config.Cfg.LogCompress,
	)
	logger.Infof("Starting dbconnectorapi in %s mode", config.Cfg.ConnectorMode)

	// 3) Metadata store (GORM), optional
	var (
		metaRepo repository.ConnectionMetadataRepository
		mirror   pool.Mirror
		hist     history.Store
	)
	if config.Cfg.MetadataStoreEnabled {
		if err := config.ConnectDB(); err != nil {
			logger.Fatalf("ConnectDB error: %v", err)
		}
		if config.DB == nil {
			logger.Fatalf("Database is nil after ConnectDB")
		}
		metaRepo = repository.NewConnectionMetadataRepository()
		mirror = services.NewMetadataMirror(metaRepo)
		hist = history.NewRepositoryStore(repository.NewQueryHistoryRepository())
	} else {
		logger.Warnf("Metadata store disabled, query history kept in memory (limit %d)", config.Cfg.HistoryMemoryLimit)
		hist = history.NewMemoryStore(config.Cfg.HistoryMemoryLimit)
	}

	// 4) Backends and connector
	backends, dialer, err := newConnectorBackends()
	if err != nil {
		logger.Fatalf("Connector setup error: %v", err)
	}
	if err := bootstrap.LoadData(backends, metaRepo); err != nil {
		logger.Fatalf("Load data error: %v", err)
	}
	conn := connector.New(backends, dialer, connector.WithTimeout(config.Cfg.QueryTimeout))

	controllers.SetConnectionService(services.NewConnectionService(backends, conn, hist, metaRepo))
	controllers.SetSessionStore(pool.NewStore(pool.StoreConfig{
		TTL:              config.Cfg.SessionTTL,
		QueriesPerMinute: config.Cfg.QueryRatePerMinute,
		Burst:            config.Cfg.QueryRateBurst,
	}, mirror))

	metrics.Register(prometheus.DefaultRegisterer)

	// 5) Setup Gin
	router := gin.Default()
	router.Use(utils.LoggerMiddleware())

	v1 := router.Group("/api", controllers.SessionMiddleware())
	{
		controllers.RegisterBackendRoutes(v1)
		controllers.RegisterConnectionRoutes(v1)
		controllers.RegisterQueryRoutes(v1)
		controllers.RegisterHistoryRoutes(v1)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": config.Cfg.ConnectorMode})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 6) Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 7) Run with graceful shutdown
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.Cfg.Port,
		Handler: router,
	}
	go func() {
		logger.Infof("Starting server at port %s", config.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Infof("Received shutdown signal, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	logger.Infof("Application shutdown complete")
}

// newConnectorBackends builds the backend catalogue and the dialer for the configured mode.
// In native mode availability also reflects client settings such as the Salesforce connected app.
func newConnectorBackends() (*backend.Registry, connector.Dialer, error) {
	if config.Cfg.ConnectorMode == config.ModeManaged {
		backends := backend.NewRegistry(connector.LibraryAvailable)
		dialer, err := warehouse.NewDialer(warehouse.Config{
			Account:   config.Cfg.SnowflakeAccount,
			User:      config.Cfg.SnowflakeUser,
			Password:  config.Cfg.SnowflakePassword,
			Database:  config.Cfg.SnowflakeDatabase,
			Schema:    config.Cfg.SnowflakeSchema,
			Warehouse: config.Cfg.SnowflakeWarehouse,
			Role:      config.Cfg.SnowflakeRole,
			Statements: warehouse.Statements{
				AddFunction:   config.Cfg.WarehouseAddFunction,
				QueryFunction: config.Cfg.WarehouseQueryFunction,
				Bind:          config.Cfg.WarehouseBindParameters,
			},
		}, backends)
		if err != nil {
			return nil, nil, err
		}
		return backends, dialer, nil
	}

	dialer := connector.NewNativeDialer(connector.Options{
		SalesforceDomain:         config.Cfg.SalesforceDomain,
		SalesforceConsumerKey:    config.Cfg.SalesforceConsumerKey,
		SalesforceConsumerSecret: config.Cfg.SalesforceConsumerSecret,
	})
	return backend.NewRegistry(dialer.Available), dialer, nil
}
