// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to CampusHub lives: the Mongo
// connection, the JWT verification parameters, and the Redis-backed
// rate limit applied to team registration.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// JWT verification. Tokens are issued by the campus identity
	// service; this app only verifies them.
	JWTSigningKey string // HMAC signing key shared with the identity service
	JWTIssuer     string // Expected iss claim

	// Registration rate limiting. An empty RedisAddr disables the
	// limiter entirely.
	RedisAddr             string // Redis address (e.g., localhost:6379)
	RegisterRatePerMinute int    // Allowed registration attempts per caller per minute

	// Base URL of this deployment, used in receipts and links.
	BaseURL string // e.g., "https://events.campus.edu"
}
