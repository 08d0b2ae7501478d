package entities

import "go.mongodb.org/mongo-driver/bson/primitive"

const UserCollection = "users"

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UID         string             `bson:"uid" json:"uid"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	PhotoURL    string             `bson:"photoURL" json:"photoURL"`
	Favorites   []string           `bson:"favorites" json:"favorites"` // food ids as hex, no duplicates
}
