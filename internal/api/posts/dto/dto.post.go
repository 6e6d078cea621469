// Package dto - các DTO cho domain posts.
package dto

import (
	"github.com/Alqudimi/SocialSparkAI/internal/api/posts/models"
	"github.com/Alqudimi/SocialSparkAI/internal/publisher"
)

// PostCreateInput dữ liệu đầu vào khi tạo bài đăng mới từ bản nháp.
// ScheduledTime (UnixMilli) là tùy chọn: nếu có và ở tương lai, post được tạo
// với trạng thái scheduled luôn thay vì draft.
type PostCreateInput struct {
	Content       string   `json:"content" validate:"required"`
	Hashtags      []string `json:"hashtags" validate:"dive,no_xss"`
	Platforms     []string `json:"platforms" validate:"required,min=1,dive,platform"`
	ScheduledTime *int64   `json:"scheduledTime,omitempty" validate:"omitempty,gt=0"`
}

// PostUpdateInput dữ liệu đầu vào khi cập nhật bài đăng (PATCH, chỉ field không nil).
// Status không bao giờ được set trực tiếp qua PATCH: mọi chuyển trạng thái
// phải đi qua schedule/publish để state machine được bảo toàn.
type PostUpdateInput struct {
	Content   *string   `json:"content,omitempty"`
	Hashtags  *[]string `json:"hashtags,omitempty" validate:"omitempty,dive,no_xss"`
	Platforms *[]string `json:"platforms,omitempty" validate:"omitempty,min=1,dive,platform"`
}

// PostScheduleInput dữ liệu đầu vào khi lên lịch đăng bài (UnixMilli)
type PostScheduleInput struct {
	ScheduledTime int64 `json:"scheduledTime" validate:"required,gt=0"`
}

// PostPublishResponse kết quả publish: post sau khi chuyển trạng thái
// kèm kết quả đăng mô phỏng trên từng nền tảng
type PostPublishResponse struct {
	Post    models.Post        `json:"post"`
	Results []publisher.Result `json:"results"`
}
