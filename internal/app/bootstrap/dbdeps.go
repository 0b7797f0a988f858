// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/campusconnect/campushub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// Extend this struct as your app evolves.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Limiter guards the registration endpoint. It is connected here
	// so Shutdown can close its Redis client alongside Mongo.
	Limiter *ratelimit.Limiter
}
