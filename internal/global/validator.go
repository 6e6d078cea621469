package global

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Các giá trị hợp lệ cho thuộc tính nội dung.
// Dùng chung cho validator và giá trị mặc định của preferences.
var (
	ValidPlatforms      = []string{"twitter", "facebook", "instagram", "linkedin"}
	ValidPostingStyles  = []string{"professional", "casual", "humorous", "inspirational", "educational"}
	ValidTones          = []string{"friendly", "formal", "enthusiastic", "authoritative", "conversational"}
	ValidContentLengths = []string{"short", "medium", "long"}
	ValidPostStatuses   = []string{"draft", "scheduled", "published"}
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("strong_password", validateStrongPassword)
	_ = Validate.RegisterValidation("platform", makeEnumValidator(ValidPlatforms))
	_ = Validate.RegisterValidation("posting_style", makeEnumValidator(ValidPostingStyles))
	_ = Validate.RegisterValidation("tone", makeEnumValidator(ValidTones))
	_ = Validate.RegisterValidation("content_length", makeEnumValidator(ValidContentLengths))
	_ = Validate.RegisterValidation("post_status", makeEnumValidator(ValidPostStatuses))
}

// makeEnumValidator tạo validator kiểm tra giá trị string nằm trong danh sách cho phép.
// Giá trị rỗng được chấp nhận (dùng kèm omitempty cho field tùy chọn).
func makeEnumValidator(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}
}

// IsValidEnum kiểm tra value nằm trong danh sách allowed (dùng ngoài context validator)
func IsValidEnum(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerHTML",
		"fromCharCode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateStrongPassword kiểm tra mật khẩu mạnh
func validateStrongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	// Kiểm tra độ dài tối thiểu
	if len(value) < 8 {
		return false
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range value {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	// Yêu cầu ít nhất 3 trong 4 điều kiện
	conditions := 0
	if hasUpper {
		conditions++
	}
	if hasLower {
		conditions++
	}
	if hasNumber {
		conditions++
	}
	if hasSpecial {
		conditions++
	}

	return conditions >= 3
}
