// Package models - model cấu hình sinh nội dung (ContentPreference) thuộc domain preferences.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentPreference định nghĩa cấu hình sinh nội dung của một user (mỗi user một document).
// Topics và Hashtags là tập hợp không trùng lặp, giữ nguyên thứ tự thêm vào.
// Hashtags luôn được chuẩn hóa bắt đầu bằng "#".
type ContentPreference struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	Topics        []string           `json:"topics" bson:"topics"`
	Hashtags      []string           `json:"hashtags" bson:"hashtags"`
	PostingStyle  string             `json:"postingStyle" bson:"postingStyle"`
	Tone          string             `json:"tone" bson:"tone"`
	ContentLength string             `json:"contentLength" bson:"contentLength"`
	IncludeEmojis bool               `json:"includeEmojis" bson:"includeEmojis"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
