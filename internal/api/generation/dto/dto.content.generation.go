// Package dto - các DTO cho domain generation.
package dto

// GenerateContentRequest dữ liệu đầu vào khi yêu cầu sinh nội dung
type GenerateContentRequest struct {
	Topic        string `json:"topic" validate:"required,no_xss"`
	Platform     string `json:"platform" validate:"required,platform"`
	CustomPrompt string `json:"customPrompt,omitempty" validate:"omitempty,no_xss"`
}

// GenerateContentResponse bản nháp nội dung trả về từ engine sinh nội dung.
// Bản nháp không được lưu trữ: mỗi lần sinh mới thay thế hoàn toàn bản trước đó.
type GenerateContentResponse struct {
	Content     string   `json:"content"`
	Hashtags    []string `json:"hashtags"`
	GeneratedAt int64    `json:"generatedAt"`
}
