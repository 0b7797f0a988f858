// internal/app/features/events/handler.go
package events

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the events feature.
// It holds the Mongo database and the logger so the lifecycle handlers
// (create, list, start, attendance, delete) share the same core
// dependencies.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs an events Handler. It is typically called from
// the bootstrap BuildHandler function, where the application's DB and
// logger are already initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}
