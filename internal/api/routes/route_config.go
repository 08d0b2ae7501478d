package routes

import (
	"foodbank-backend/domain"
	"foodbank-backend/internal/api/handlers"
	"foodbank-backend/internal/api/presenters"
	"foodbank-backend/internal/middleware"
	"foodbank-backend/internal/utils"
	"foodbank-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	FoodHandler    handlers.FoodHandler
	UserHandler    handlers.UserHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
	MetricsHandler fiber.Handler
}

// FiberConfig is shared by the server and the handler tests so both decode
// bodies the same way.
func FiberConfig() fiber.Config {
	return fiber.Config{
		AppName:      "Foodbank",
		BodyLimit:    domain.MaxFoodImageSize + 1<<20,
		JSONDecoder:  utils.StrictJSONDecode,
		ErrorHandler: presenters.ErrorHandler,
	}
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Foods()
	c.Users()
}

func (c *Config) GuestRoute() {
	c.App.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString(domain.MessageServerAlive)
	})
	if c.MetricsHandler != nil {
		c.App.Get("/metrics", c.MetricsHandler)
	}
}

func (c *Config) Foods() {
	foods := c.App.Group("/foods")

	foods.Post("", c.FoodHandler.CreateFood)
	foods.Get("", c.FoodHandler.GetFoods)
	foods.Post("/image", c.FoodHandler.UploadFoodImage)
	foods.Get("/:id", c.FoodHandler.GetFoodDetails)
	foods.Put("/:id", c.FoodHandler.UpdateFood)
	foods.Delete("/:id", c.FoodHandler.DeleteFood)
}

func (c *Config) Users() {
	users := c.App.Group("/users")

	users.Post("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.UpsertUser)
	users.Get("/:uid/favorites", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetFavorites)
	users.Post("/:uid/favorites", c.UserHandler.AddFavorite)
	users.Delete("/:uid/favorites/:foodId", c.UserHandler.RemoveFavorite)
}
