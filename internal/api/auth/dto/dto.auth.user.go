// Package dto - các DTO cho domain auth.
package dto

// UserRegisterInput dữ liệu đầu vào khi đăng ký tài khoản mới
type UserRegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
}

// UserLoginInput dữ liệu đầu vào khi đăng nhập
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdateProfileInput dữ liệu đầu vào khi cập nhật thông tin cá nhân
type UserUpdateProfileInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=100,no_xss"`
}

// UserChangePasswordInput dữ liệu đầu vào khi đổi mật khẩu
type UserChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// UserLoginResponse kết quả trả về sau khi đăng nhập/đăng ký thành công
type UserLoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
