package handlers

import (
	"foodbank-backend/domain"
	"foodbank-backend/internal/api/presenters"
	"foodbank-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		UpsertUser(c *fiber.Ctx) error
		GetFavorites(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

// UpsertUser trusts the uid in the body unless a bearer token came with the
// request, in which case the token subject must match it.
func (h *userHandler) UpsertUser(c *fiber.Ctx) error {
	req := new(domain.UpsertUserRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertUser, err)
	}

	callerID, _ := c.Locals("user_id").(string)
	res, err := h.userService.UpsertUser(c.Context(), callerID, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpsertUser, err)
	}

	if res.Result == domain.UserResultCreated {
		return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateUser)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateUser)
}

// GetFavorites expects AuthMiddleware in front of it.
func (h *userHandler) GetFavorites(c *fiber.Ctx) error {
	uid := c.Params("uid")
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
	}
	if userID != uid {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, domain.ErrUserNotAllowed)
	}

	foods, err := h.userService.GetFavorites(c.Context(), uid)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, foods, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

func (h *userHandler) AddFavorite(c *fiber.Ctx) error {
	uid := c.Params("uid")
	req := new(domain.AddFavoriteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFavorite, err)
	}

	res, err := h.userService.AddFavorite(c.Context(), uid, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddFavorite)
}

func (h *userHandler) RemoveFavorite(c *fiber.Ctx) error {
	uid := c.Params("uid")
	foodID := c.Params("foodId")
	if err := h.validator.Var(foodID, "required,mongodb"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveFavorite, domain.ErrInvalidObjectID)
	}

	if err := h.userService.RemoveFavorite(c.Context(), uid, foodID); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedRemoveFavorite, err)
	}

	return presenters.SuccessResponse(c, domain.FavoriteResponse{UID: uid, FoodID: foodID}, fiber.StatusOK, domain.MessageSuccessRemoveFavorite)
}
