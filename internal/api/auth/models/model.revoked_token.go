package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevokedToken lưu token đã bị thu hồi khi user logout.
// Worker dọn dẹp sẽ xóa các token đã quá hạn (ExpiresAt < now) để collection không phình to.
type RevokedToken struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Token     string             `json:"token" bson:"token"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	ExpiresAt int64              `json:"expiresAt" bson:"expiresAt"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
}
