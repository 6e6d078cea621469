// Package models - model tài khoản mạng xã hội (SocialAccount) thuộc domain social.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialAccount định nghĩa tài khoản mạng xã hội của user.
// Độc lập với Post: post tham chiếu platform theo giá trị, không theo khóa ngoại.
type SocialAccount struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Platform    string             `json:"platform" bson:"platform"`
	AccountName string             `json:"accountName" bson:"accountName"`
	IsConnected bool               `json:"isConnected" bson:"isConnected"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
