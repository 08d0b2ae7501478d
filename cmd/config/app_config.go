package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"foodbank-backend/internal/api/handlers"
	"foodbank-backend/internal/api/routes"
	"foodbank-backend/internal/metrics"
	"foodbank-backend/internal/middleware"
	"foodbank-backend/internal/utils"
	"foodbank-backend/internal/utils/mailing"
	"foodbank-backend/internal/utils/storage"
	"foodbank-backend/pkg/food"
	"foodbank-backend/pkg/jwt"
	"foodbank-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrJWTSecretMissing = errors.New("JWT_SECRET must be set")

// NewApp wires the application. A nil db selects the in-memory repositories.
func NewApp(db *mongo.Database) (*fiber.App, error) {
	jwtSecret := utils.GetConfig("JWT_SECRET")
	if jwtSecret == "" {
		return nil, ErrJWTSecretMissing
	}

	utils.InitValidator()
	app := fiber.New(routes.FiberConfig())
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOW_ORIGINS"))
	validator := utils.Validate

	// setting up logging and limiter
	logOutput, err := openLogOutput(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, err
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     logOutput,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetIntConfig("RATE_LIMIT_MAX"),
		Expiration: 1 * time.Second,
	}))

	// metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)
	app.Use(collector.Middleware())

	// utils
	s3, err := newStorage()
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	var (
		foodRepository food.FoodRepository
		userRepository user.UserRepository
	)
	if db == nil {
		log.Warn("No database configured, using in-memory repositories")
		foodRepository = food.NewMemoryFoodRepository()
		userRepository = user.NewMemoryUserRepository()
	} else {
		timeout := utils.GetDurationConfig("DB_TIMEOUT")
		foodRepository = food.NewFoodRepository(db, timeout)
		userRepository = user.NewUserRepository(db, timeout)
	}

	// Service
	jwtService := jwt.NewJWTService(jwtSecret, utils.GetConfig("JWT_ISSUER"))
	foodService := food.NewFoodService(foodRepository, s3)
	userService := user.NewUserService(userRepository, foodRepository, jwtService, mailer, utils.GetConfig("APP_URL"))

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	userHandler := handlers.NewUserHandler(userService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		FoodHandler:    foodHandler,
		UserHandler:    userHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
		MetricsHandler: metrics.Handler(registry),
	}
	routesConfig.Setup()
	return app, nil
}

func openLogOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(os.Stdout, file), nil
}

// newStorage returns a nil AwsS3 when no bucket is configured; image uploads
// then answer 503.
func newStorage() (storage.AwsS3, error) {
	if utils.GetConfig("AWS_S3_BUCKET") == "" {
		log.Warn("AWS_S3_BUCKET not set, image uploads are disabled")
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return storage.NewAwsS3(ctx)
}
