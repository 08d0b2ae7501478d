package handlers

import (
	"foodbank-backend/domain"
	"foodbank-backend/internal/api/presenters"
	"foodbank-backend/pkg/food"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		CreateFood(c *fiber.Ctx) error
		GetFoods(c *fiber.Ctx) error
		GetFoodDetails(c *fiber.Ctx) error
		UpdateFood(c *fiber.Ctx) error
		DeleteFood(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func (h *foodHandler) CreateFood(c *fiber.Ctx) error {
	req := new(domain.CreateFoodRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFood, err)
	}

	res, err := h.foodService.CreateFood(c.Context(), *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCreateFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFood)
}

func (h *foodHandler) GetFoods(c *fiber.Ctx) error {
	foods, err := h.foodService.GetFoods(c.Context())
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetFoods, err)
	}

	return presenters.SuccessResponse(c, foods, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) GetFoodDetails(c *fiber.Ctx) error {
	res, err := h.foodService.GetFoodByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetFoodDetails, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoodDetails)
}

func (h *foodHandler) UpdateFood(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.UpdateFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFood, err)
	}

	res, err := h.foodService.UpdateFood(c.Context(), id, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFood)
}

func (h *foodHandler) DeleteFood(c *fiber.Ctx) error {
	res, err := h.foodService.DeleteFood(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedDeleteFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteFood)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadFoodImageRequest{Image: image}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFoodImage, err)
	}

	res, err := h.foodService.UploadFoodImage(c.Context(), req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUploadFoodImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadFoodImage)
}
