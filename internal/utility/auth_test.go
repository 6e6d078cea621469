package utility

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alqudimi/SocialSparkAI/internal/common"
)

func TestCreateAndParseToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := CreateToken(secret, "507f1f77bcf86cd799439011", "user@example.com", 60)
	require.NoError(t, err, "CreateToken không được trả về lỗi")
	require.NotEmpty(t, token)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err, "ParseToken phải parse được token vừa tạo")
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user@example.com", claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := CreateToken("secret-a", "507f1f77bcf86cd799439011", "user@example.com", 60)
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	assert.Error(t, err, "token ký bằng secret khác phải bị từ chối")
	assert.True(t, errors.Is(err, common.ErrTokenInvalid))
}

func TestParseToken_Expired(t *testing.T) {
	// expireMinutes âm tạo token đã hết hạn
	token, err := CreateToken("test-secret", "507f1f77bcf86cd799439011", "user@example.com", -10)
	require.NoError(t, err)

	_, err = ParseToken("test-secret", token)
	assert.True(t, errors.Is(err, common.ErrTokenExpired), "token hết hạn phải trả về ErrTokenExpired")
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("test-secret", "not-a-jwt")
	assert.True(t, errors.Is(err, common.ErrTokenInvalid))
}

func TestHashAndComparePassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash := HashPassword("MyP@ssw0rd!", salt)
	require.NotEmpty(t, hash)

	assert.True(t, ComparePassword("MyP@ssw0rd!", salt, hash), "mật khẩu đúng phải so khớp")
	assert.False(t, ComparePassword("WrongPassword", salt, hash), "mật khẩu sai không được so khớp")
	assert.False(t, ComparePassword("MyP@ssw0rd!", "deadbeef", hash), "salt sai không được so khớp")
}

func TestGenerateSalt_Unique(t *testing.T) {
	a, err := GenerateSalt()
	require.NoError(t, err)
	b, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "hai salt liên tiếp không được trùng nhau")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "user@example.com", NormalizeEmail("user@example.com"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b", "c"}, "b"))
	assert.False(t, Contains([]string{"a", "b", "c"}, "d"))
	assert.False(t, Contains([]string{}, "a"))
}

func TestCache_SetGetExpire(t *testing.T) {
	cache := NewCache(50*time.Millisecond, time.Minute)
	defer cache.Stop()

	cache.Set("key", "value")
	got, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get("key")
	assert.False(t, ok, "entry quá TTL phải bị coi là hết hạn")
}
