package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const FoodCollection = "foods"

type Food struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FoodName        string             `bson:"foodName" json:"foodName"`
	FoodImage       string             `bson:"foodImage" json:"foodImage"`
	FoodQuantity    int                `bson:"foodQuantity" json:"foodQuantity"`
	PickupLocation  string             `bson:"pickupLocation" json:"pickupLocation"`
	ExpiredDateTime time.Time          `bson:"expiredDateTime" json:"expiredDateTime"`
	AdditionalNotes string             `bson:"additionalNotes" json:"additionalNotes"`
	FoodStatus      string             `bson:"foodStatus" json:"foodStatus"` // "available", "requested", "claimed", "delivered"

	// Written on create only, never touched by updates.
	DonatorName  string `bson:"donatorName,omitempty" json:"donatorName,omitempty"`
	DonatorEmail string `bson:"donatorEmail,omitempty" json:"donatorEmail,omitempty"`
	DonatorImage string `bson:"donatorImage,omitempty" json:"donatorImage,omitempty"`
}

// FoodFields is the set of fields a full update replaces.
type FoodFields struct {
	FoodName        string
	FoodImage       string
	FoodQuantity    int
	PickupLocation  string
	ExpiredDateTime time.Time
	AdditionalNotes string
	FoodStatus      string
}
