// Package dto - các DTO cho domain preferences.
package dto

// ContentPreferenceUpdateInput dữ liệu đầu vào khi cập nhật toàn bộ cấu hình (PUT thay thế, không merge)
type ContentPreferenceUpdateInput struct {
	Topics        []string `json:"topics" validate:"dive,no_xss"`
	Hashtags      []string `json:"hashtags" validate:"dive,no_xss"`
	PostingStyle  string   `json:"postingStyle" validate:"required,posting_style"`
	Tone          string   `json:"tone" validate:"required,tone"`
	ContentLength string   `json:"contentLength" validate:"required,content_length"`
	IncludeEmojis bool     `json:"includeEmojis"`
}

// TopicInput dữ liệu đầu vào khi thêm một chủ đề
type TopicInput struct {
	Topic string `json:"topic" validate:"required,no_xss"`
}

// HashtagInput dữ liệu đầu vào khi thêm một hashtag
type HashtagInput struct {
	Hashtag string `json:"hashtag" validate:"required,no_xss"`
}
