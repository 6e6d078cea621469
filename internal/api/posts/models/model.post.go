// Package models - model bài đăng (Post) thuộc domain posts.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái của Post. State machine chỉ đi tiến:
// draft → scheduled → published, hoặc draft → published trực tiếp.
// published là trạng thái cuối, không có transition lùi.
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

// Post định nghĩa mô hình bài đăng.
// ScheduledTime chỉ có giá trị khi post đã từng được lên lịch (invariant:
// scheduledTime != nil ⇒ status ∈ {scheduled, published}).
// IsPublished là giá trị dẫn xuất, luôn đúng bằng (status == published).
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	Content       string             `json:"content" bson:"content"`
	Hashtags      []string           `json:"hashtags" bson:"hashtags"`
	Platforms     []string           `json:"platforms" bson:"platforms"`
	Status        string             `json:"status" bson:"status"`
	ScheduledTime *int64             `json:"scheduledTime,omitempty" bson:"scheduledTime,omitempty"`
	IsPublished   bool               `json:"isPublished" bson:"isPublished"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
