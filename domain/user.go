package domain

import "errors"

const (
	UserResultCreated = "created"
	UserResultUpdated = "updated"
)

var (
	MessageSuccessCreateUser     = "user created successfully"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessGetFavorites   = "favorites retrieved successfully"
	MessageSuccessAddFavorite    = "food added to favorites"
	MessageSuccessRemoveFavorite = "food removed from favorites"

	MessageFailedUpsertUser     = "failed to save user"
	MessageFailedGetFavorites   = "failed to fetch favorites"
	MessageFailedAddFavorite    = "failed to add favorite"
	MessageFailedRemoveFavorite = "failed to remove favorite"

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrNoFavorites       = errors.New("user has no favorites")
	ErrFavoriteNotFound  = errors.New("food is not in favorites")
)

type (
	UpsertUserRequest struct {
		UID         string `json:"uid" validate:"required,max=128"`
		Email       string `json:"email" validate:"required,email"`
		DisplayName string `json:"displayName" validate:"omitempty,max=120"`
		PhotoURL    string `json:"photoURL" validate:"omitempty,max=2048"`
	}

	UpsertUserResponse struct {
		UID    string `json:"uid"`
		Result string `json:"result"`
		Token  string `json:"token"`
	}

	AddFavoriteRequest struct {
		FoodID string `json:"foodId" validate:"required,mongodb"`
	}

	FavoriteResponse struct {
		UID    string `json:"uid"`
		FoodID string `json:"foodId"`
	}
)
