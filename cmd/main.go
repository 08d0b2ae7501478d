package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodbank-backend/cmd/config"
	migration "foodbank-backend/cmd/database/migrate"
	"foodbank-backend/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	utils.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		client *mongo.Client
		db     *mongo.Database
	)
	if utils.GetConfig("DB_DRIVER") != "memory" {
		var err error
		client, err = config.ConnectDB(ctx)
		if err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		db = client.Database(utils.GetConfig("DB_NAME"))

		migrateCtx, cancel := context.WithTimeout(ctx, utils.GetDurationConfig("DB_TIMEOUT"))
		if err := migration.Migrate(migrateCtx, db); err != nil {
			log.Errorf("Database migration failed: %v", err)
		}
		cancel()
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	go func() {
		if err := app.Listen(":" + utils.GetConfig("PORT")); err != nil {
			log.Errorf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
	if client != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Errorf("Database disconnect failed: %v", err)
		}
	}
}
