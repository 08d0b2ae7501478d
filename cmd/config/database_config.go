package config

import (
	"context"
	"fmt"
	"net/url"

	"foodbank-backend/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoURI returns MONGO_URI when set, otherwise an SRV URI assembled from
// the DB_* credentials.
func MongoURI() string {
	if uri := utils.GetConfig("MONGO_URI"); uri != "" {
		return uri
	}
	return buildSRVURI(
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_KEY"),
		utils.GetConfig("DB_CLUSTER"),
		utils.GetConfig("DB_APP_NAME"),
	)
}

func buildSRVURI(user, key, cluster, appName string) string {
	return fmt.Sprintf(
		"mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		url.QueryEscape(user),
		url.QueryEscape(key),
		cluster,
		url.QueryEscape(appName),
	)
}

// ConnectDB creates the shared client. An unreachable cluster at startup is
// logged only; the driver keeps reconnecting in the background.
func ConnectDB(ctx context.Context) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true)
	opts := options.Client().
		ApplyURI(MongoURI()).
		SetServerAPIOptions(serverAPI).
		SetTimeout(utils.GetDurationConfig("DB_TIMEOUT"))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, utils.GetDurationConfig("DB_TIMEOUT"))
	defer cancel()
	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		log.Errorf("Database ping failed: %v", err)
	} else {
		log.Info("Pinged your deployment. You successfully connected to MongoDB!")
	}

	return client, nil
}
