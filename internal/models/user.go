package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP is the outstanding login challenge for a user. It is present only
// between request-otp and a successful (or expired) verification.
type OTP struct {
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	OTP        *OTP               `bson:"otp,omitempty"`
	IsVerified bool               `bson:"isVerified"`
	LastLogin  time.Time          `bson:"lastLogin"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}
