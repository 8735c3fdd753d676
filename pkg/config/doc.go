// Package config provides application configuration from environment
// variables with sensible defaults.
//
// Server settings:
//
//	RALLY_HOST="0.0.0.0"
//	RALLY_PORT="8080"
//	RALLY_READ_TIMEOUT="15s"
//	RALLY_WRITE_TIMEOUT="15s"
//	RALLY_IDLE_TIMEOUT="60s"
//	RALLY_SHUTDOWN_TIMEOUT="30s"
//	RALLY_MAX_BODY_BYTES="1048576"
//	RALLY_CORS_ORIGINS="*"
//
// Authentication settings:
//
//	RALLY_JWT_SECRET="..."     # required, never logged
//	RALLY_TOKEN_TTL="0"        # 0 = non-expiring tokens
//	RALLY_BCRYPT_COST="0"      # 0 = bcrypt default cost
//
// Storage settings:
//
//	RALLY_STORAGE_TYPE="sqlite"  # memory, sqlite, postgres
//	RALLY_SQLITE_PATH="rally.db"
//	RALLY_POSTGRES_URL="postgres://localhost/rally"
//
// Observability settings:
//
//	RALLY_LOG_LEVEL="info"  # debug, info, warn, error
//	RALLY_METRICS_ENABLED="true"
package config
