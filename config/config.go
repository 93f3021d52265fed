package config

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Connector modes select how backend sessions are opened.
const (
	ModeNative  = "native"
	ModeManaged = "managed"
)

var functionNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$.]*$`)

// AppConfig holds application configuration loaded from environment variables and .env file.
type AppConfig struct {
	Port string

	// Metadata store (connection metadata and query history)
	MetadataStoreEnabled bool
	DBHost               string
	DBPort               int
	DBUser               string
	DBPass               string
	DBName               string

	// Logging config
	LogLevel      string
	LogFile       string
	LogMaxSize    int // MB
	LogMaxBackups int
	LogMaxAge     int // days
	LogCompress   bool

	// Connector config
	ConnectorMode string
	QueryTimeout  time.Duration // 0 leaves timing to the driver

	// Session config
	SessionTTL         time.Duration
	QueryRatePerMinute int
	QueryRateBurst     int
	HistoryMemoryLimit int

	// Salesforce native client
	SalesforceDomain         string
	SalesforceConsumerKey    string
	SalesforceConsumerSecret string

	// Managed execution through the warehouse
	SnowflakeAccount        string
	SnowflakeUser           string
	SnowflakePassword       string
	SnowflakeDatabase       string
	SnowflakeSchema         string
	SnowflakeWarehouse      string
	SnowflakeRole           string
	WarehouseAddFunction    string
	WarehouseQueryFunction  string
	WarehouseBindParameters bool
}

// Cfg is the global application configuration instance.
var Cfg AppConfig

// LoadConfig loads and validates application configuration from .env file and environment variables.
func LoadConfig() error {
	err := godotenv.Load()
	if err != nil {
		// Use standard log here since logger is not initialized yet
		log.Printf("[WARN] .env file not found or cannot be loaded: %v", err)
	} else {
		log.Printf("[INFO] .env file loaded successfully")
	}

	Cfg = fromEnv()
	if err := Cfg.Validate(); err != nil {
		return err
	}

	log.Printf("[INFO] Config loaded - Port: %s, Mode: %s, MetadataStore: %t, LogLevel: %s",
		Cfg.Port, Cfg.ConnectorMode, Cfg.MetadataStoreEnabled, Cfg.LogLevel)
	if Cfg.MetadataStoreEnabled {
		log.Printf("[INFO] Metadata store - DB: %s@%s:%d/%s", Cfg.DBUser, Cfg.DBHost, Cfg.DBPort, Cfg.DBName)
	}
	log.Printf("[INFO] Session config - TTL: %v, QueryRate: %d/min (burst %d), QueryTimeout: %v",
		Cfg.SessionTTL, Cfg.QueryRatePerMinute, Cfg.QueryRateBurst, Cfg.QueryTimeout)
	if Cfg.ConnectorMode == ModeNative && (Cfg.SalesforceConsumerKey == "" || Cfg.SalesforceConsumerSecret == "") {
		log.Printf("[WARN] SALESFORCE_CONSUMER_KEY/SALESFORCE_CONSUMER_SECRET not set, Salesforce backend will be unavailable")
	}
	if Cfg.ConnectorMode == ModeManaged {
		log.Printf("[INFO] Warehouse config - Account: %s, Database: %s.%s, Functions: %s/%s, Bind: %t",
			Cfg.SnowflakeAccount, Cfg.SnowflakeDatabase, Cfg.SnowflakeSchema,
			Cfg.WarehouseAddFunction, Cfg.WarehouseQueryFunction, Cfg.WarehouseBindParameters)
	}

	return nil
}

func fromEnv() AppConfig {
	var c AppConfig

	c.Port = getEnv("PORT", "8080")

	c.MetadataStoreEnabled = getEnvBool("METADATA_STORE_ENABLED", true)
	c.DBHost = getEnv("DB_HOST", "127.0.0.1")
	c.DBPort = getEnvInt("DB_PORT", 3306)
	c.DBUser = getEnv("DB_USER", "root")
	c.DBPass = getEnv("DB_PASS", "")
	c.DBName = getEnv("DB_NAME", "dbconnector")

	c.LogLevel = getEnv("LOG_LEVEL", "INFO")
	c.LogFile = getEnv("LOG_FILE", "/var/log/dbconnector/dbconnectorapi.log")
	c.LogMaxSize = getEnvInt("LOG_MAX_SIZE", 10)
	c.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", 3)
	c.LogMaxAge = getEnvInt("LOG_MAX_AGE", 28)
	c.LogCompress = getEnvBool("LOG_COMPRESS", true)

	c.ConnectorMode = strings.ToLower(getEnv("CONNECTOR_MODE", ModeNative))
	c.QueryTimeout = getEnvDuration("QUERY_TIMEOUT", 0)

	c.SessionTTL = getEnvDuration("SESSION_TTL", 8*time.Hour)
	c.QueryRatePerMinute = getEnvInt("QUERY_RATE_PER_MINUTE", 30)
	c.QueryRateBurst = getEnvInt("QUERY_RATE_BURST", 5)
	c.HistoryMemoryLimit = getEnvInt("HISTORY_MEMORY_LIMIT", 1000)

	c.SalesforceDomain = getEnv("SALESFORCE_DOMAIN", "https://login.salesforce.com")
	c.SalesforceConsumerKey = getEnv("SALESFORCE_CONSUMER_KEY", "")
	c.SalesforceConsumerSecret = getEnv("SALESFORCE_CONSUMER_SECRET", "")

	c.SnowflakeAccount = getEnv("SNOWFLAKE_ACCOUNT", "")
	c.SnowflakeUser = getEnv("SNOWFLAKE_USER", "")
	c.SnowflakePassword = getEnv("SNOWFLAKE_PASSWORD", "")
	c.SnowflakeDatabase = getEnv("SNOWFLAKE_DATABASE", "")
	c.SnowflakeSchema = getEnv("SNOWFLAKE_SCHEMA", "PUBLIC")
	c.SnowflakeWarehouse = getEnv("SNOWFLAKE_WAREHOUSE", "")
	c.SnowflakeRole = getEnv("SNOWFLAKE_ROLE", "")
	c.WarehouseAddFunction = getEnv("WAREHOUSE_ADD_FUNCTION", "datasource_add")
	c.WarehouseQueryFunction = getEnv("WAREHOUSE_QUERY_FUNCTION", "datasource_query")
	c.WarehouseBindParameters = getEnvBool("WAREHOUSE_BIND_PARAMETERS", true)

	return c
}

// Validate checks cross-field constraints that cannot be expressed as defaults.
func (c AppConfig) Validate() error {
	switch c.ConnectorMode {
	case ModeNative:
	case ModeManaged:
		if c.SnowflakeAccount == "" {
			return fmt.Errorf("SNOWFLAKE_ACCOUNT is required when CONNECTOR_MODE=%s", ModeManaged)
		}
		for _, fn := range []string{c.WarehouseAddFunction, c.WarehouseQueryFunction} {
			if !functionNamePattern.MatchString(fn) {
				return fmt.Errorf("invalid warehouse function name %q", fn)
			}
		}
	default:
		return fmt.Errorf("unsupported CONNECTOR_MODE %q (expected %s or %s)", c.ConnectorMode, ModeNative, ModeManaged)
	}

	if c.QueryRatePerMinute <= 0 {
		return fmt.Errorf("QUERY_RATE_PER_MINUTE must be positive, got %d", c.QueryRatePerMinute)
	}
	if c.QueryRateBurst <= 0 {
		return fmt.Errorf("QUERY_RATE_BURST must be positive, got %d", c.QueryRateBurst)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go duration strings ("90s", "8h") or plain seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
