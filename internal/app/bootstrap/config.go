// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CampusHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_issuer, etc.
//   - Environment variables: CAMPUSHUB_MONGO_URI, CAMPUSHUB_JWT_ISSUER, etc.
//   - Command-line flags: --mongo_uri, --jwt_issuer, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "campushub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// JWT verification
	{Name: "jwt_signing_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "JWT HMAC signing key (must be strong in production)"},
	{Name: "jwt_issuer", Default: "campus-identity", Desc: "Expected JWT issuer claim"},

	// Registration rate limiting
	{Name: "redis_addr", Default: "", Desc: "Redis address for rate limiting (blank disables the limiter)"},
	{Name: "register_rate_per_minute", Default: 10, Desc: "Registration attempts allowed per caller per minute"},

	// Base URL for receipts and links
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL of this deployment"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CAMPUSHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAMPUSHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSigningKey: appValues.String("jwt_signing_key"),
		JWTIssuer:     appValues.String("jwt_issuer"),

		RedisAddr:             appValues.String("redis_addr"),
		RegisterRatePerMinute: appValues.Int("register_rate_per_minute"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// CampusHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and refuses to run in
// production with the development JWT key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTSigningKey == "" {
		return fmt.Errorf("jwt_signing_key must be set")
	}
	if coreCfg.Env == "prod" && appCfg.JWTSigningKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("jwt_signing_key must be changed from the development default in production")
	}

	if appCfg.RegisterRatePerMinute < 1 {
		return fmt.Errorf("register_rate_per_minute must be at least 1")
	}

	return nil
}
