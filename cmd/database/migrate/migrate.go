package migration

import (
	"context"
	"fmt"

	"foodbank-backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Migrate creates the indexes the repositories rely on. Re-running it is a
// no-op when the indexes already exist.
func Migrate(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(entities.UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uid_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users.uid index: %w", err)
	}

	log.Info("Database migration complete")
	return nil
}
