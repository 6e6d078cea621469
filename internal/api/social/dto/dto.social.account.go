// Package dto - các DTO cho domain social.
package dto

// SocialAccountCreateInput dữ liệu đầu vào khi kết nối tài khoản mạng xã hội mới
type SocialAccountCreateInput struct {
	Platform    string `json:"platform" validate:"required,platform"`
	AccountName string `json:"account_name" validate:"required,no_xss"`
}

// SocialAccountUpdateInput dữ liệu đầu vào khi cập nhật tài khoản mạng xã hội
type SocialAccountUpdateInput struct {
	AccountName *string `json:"account_name,omitempty" validate:"omitempty,no_xss"`
}
