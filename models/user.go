package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName       string             `bson:"first_name" json:"first_name"`
	LastName        string             `bson:"last_name" json:"last_name"`
	Phone           string             `bson:"phone" json:"phone"`
	Email           string             `bson:"email" json:"email"`
	Role            string             `bson:"role" json:"role"`
	Password        string             `bson:"password,omitempty" json:"password,omitempty"`
	RecoveryCode    string             `bson:"recovery_code,omitempty" json:"recoveryCode,omitempty"`
	RecoveryExpires time.Time          `bson:"recovery_expires,omitempty" json:"recoveryExpires,omitempty"`
}

type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Role      string             `bson:"role"`
	IP        string             `bson:"ip"`
	Device    string             `bson:"device"`
	Timestamp time.Time          `bson:"timestamp"`
}
