package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	FoodStatusAvailable = "available"
	FoodStatusRequested = "requested"
	FoodStatusClaimed   = "claimed"
	FoodStatusDelivered = "delivered"

	MaxFoodImageSize = 5 << 20
)

var (
	MessageSuccessCreateFood      = "food created successfully"
	MessageSuccessGetFoods        = "foods retrieved successfully"
	MessageSuccessGetFoodDetails  = "food details retrieved successfully"
	MessageSuccessUpdateFood      = "food updated successfully"
	MessageSuccessDeleteFood      = "food deleted successfully"
	MessageSuccessUploadFoodImage = "food image uploaded successfully"

	MessageFailedCreateFood      = "failed to insert food"
	MessageFailedGetFoods        = "failed to fetch foods"
	MessageFailedGetFoodDetails  = "error fetching food details"
	MessageFailedUpdateFood      = "error updating food details"
	MessageFailedDeleteFood      = "failed to delete food"
	MessageFailedUploadFoodImage = "failed to upload food image"

	ErrFoodNotFound       = errors.New("food not found")
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrImageTooLarge      = errors.New("image exceeds the maximum allowed size")
)

type (
	CreateFoodRequest struct {
		FoodName        string    `json:"foodName" validate:"required,max=120"`
		FoodImage       string    `json:"foodImage" validate:"omitempty,url"`
		FoodQuantity    int       `json:"foodQuantity" validate:"required,min=1"`
		PickupLocation  string    `json:"pickupLocation" validate:"required,max=255"`
		ExpiredDateTime time.Time `json:"expiredDateTime" validate:"required"`
		AdditionalNotes string    `json:"additionalNotes" validate:"omitempty,max=1000"`
		FoodStatus      string    `json:"foodStatus" validate:"omitempty,oneof=available requested claimed delivered"`
		DonatorName     string    `json:"donatorName" validate:"omitempty,max=120"`
		DonatorEmail    string    `json:"donatorEmail" validate:"omitempty,email"`
		DonatorImage    string    `json:"donatorImage" validate:"omitempty,url"`
	}

	// UpdateFoodRequest carries exactly the fields a PUT replaces.
	UpdateFoodRequest struct {
		FoodName        string    `json:"foodName" validate:"required,max=120"`
		FoodImage       string    `json:"foodImage" validate:"omitempty,url"`
		FoodQuantity    int       `json:"foodQuantity" validate:"required,min=1"`
		PickupLocation  string    `json:"pickupLocation" validate:"required,max=255"`
		ExpiredDateTime time.Time `json:"expiredDateTime" validate:"required"`
		AdditionalNotes string    `json:"additionalNotes" validate:"omitempty,max=1000"`
		FoodStatus      string    `json:"foodStatus" validate:"required,oneof=available requested claimed delivered"`
	}

	UploadFoodImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodResponse struct {
		ID              string    `json:"_id"`
		FoodName        string    `json:"foodName"`
		FoodImage       string    `json:"foodImage"`
		FoodQuantity    int       `json:"foodQuantity"`
		PickupLocation  string    `json:"pickupLocation"`
		ExpiredDateTime time.Time `json:"expiredDateTime"`
		AdditionalNotes string    `json:"additionalNotes"`
		FoodStatus      string    `json:"foodStatus"`
		DonatorName     string    `json:"donatorName,omitempty"`
		DonatorEmail    string    `json:"donatorEmail,omitempty"`
		DonatorImage    string    `json:"donatorImage,omitempty"`
	}

	CreateFoodResponse struct {
		InsertedID string `json:"insertedId"`
	}

	DeleteFoodResponse struct {
		DeletedCount int64 `json:"deletedCount"`
	}

	UploadFoodImageResponse struct {
		URL string `json:"url"`
	}
)
