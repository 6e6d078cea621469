package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValidators(t *testing.T) {
	InitValidator()
	require.NotNil(t, Validate)

	tests := []struct {
		tag   string
		value string
		valid bool
	}{
		{"platform", "twitter", true},
		{"platform", "linkedin", true},
		{"platform", "myspace", false},
		{"posting_style", "professional", true},
		{"posting_style", "sarcastic", false},
		{"tone", "friendly", true},
		{"tone", "authoritative", true},
		{"tone", "angry", false},
		{"content_length", "short", true},
		{"content_length", "gigantic", false},
		{"post_status", "draft", true},
		{"post_status", "archived", false},
	}

	for _, tt := range tests {
		err := Validate.Var(tt.value, tt.tag)
		if tt.valid {
			assert.NoError(t, err, "%s=%q phải hợp lệ", tt.tag, tt.value)
		} else {
			assert.Error(t, err, "%s=%q phải bị từ chối", tt.tag, tt.value)
		}
	}
}

func TestIsValidEnum(t *testing.T) {
	assert.True(t, IsValidEnum("twitter", ValidPlatforms))
	assert.False(t, IsValidEnum("tiktok", ValidPlatforms))
	assert.False(t, IsValidEnum("", ValidPlatforms))
}

func TestValidateStrongPassword(t *testing.T) {
	InitValidator()

	tests := []struct {
		password string
		valid    bool
	}{
		{"Abcdef12", true},     // hoa + thường + số
		{"abcdef1!", true},     // thường + số + ký tự đặc biệt
		{"short1!", false},     // dưới 8 ký tự
		{"abcdefgh", false},    // chỉ 1 loại ký tự
		{"Str0ng!Pass", true},  // đủ cả 4 loại
		{"12345678", false},    // chỉ số
	}

	for _, tt := range tests {
		err := Validate.Var(tt.password, "strong_password")
		if tt.valid {
			assert.NoError(t, err, "mật khẩu %q phải hợp lệ", tt.password)
		} else {
			assert.Error(t, err, "mật khẩu %q phải bị từ chối", tt.password)
		}
	}
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Var("bài viết về công nghệ", "no_xss"))
	assert.Error(t, Validate.Var("<script>alert(1)</script>", "no_xss"))
	assert.Error(t, Validate.Var("javascript:void(0)", "no_xss"))
	assert.Error(t, Validate.Var("<IFRAME src=x>", "no_xss"))
}
