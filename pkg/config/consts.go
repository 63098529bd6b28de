package config

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "ELECTRO"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "ELECTRO_APP_ENV"
	EnvPort                   = "ELECTRO_APP_PORT"
	EnvDBDSN                  = "ELECTRO_DB_DSN"
	EnvDBHost                 = "ELECTRO_DB_HOST"
	EnvDBUser                 = "ELECTRO_DB_USER"
	EnvDBName                 = "ELECTRO_DB_NAME"
	EnvRedisURL               = "ELECTRO_REDIS_URL"
	EnvJWTSecret              = "ELECTRO_JWT_SECRET"
	EnvJWTIssuer              = "ELECTRO_JWT_ISSUER"
	EnvJWTExpMins             = "ELECTRO_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "ELECTRO_REFRESH_TOKEN_TTL_MINUTES"
	EnvSMTPHost               = "ELECTRO_SMTP_HOST"
	EnvSMTPFromEmail          = "ELECTRO_SMTP_FROM_EMAIL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
