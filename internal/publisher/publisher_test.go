package publisher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_Success(t *testing.T) {
	result := Publish(context.Background(), "twitter", "hello world", true)

	require.True(t, result.Success)
	assert.Equal(t, "twitter", result.Platform)
	assert.True(t, strings.HasPrefix(result.PostID, "twitter_"), "post id giả phải có prefix nền tảng, nhận được: %s", result.PostID)
	assert.Empty(t, result.Error)
	assert.Contains(t, result.Message, "simulated")
}

func TestPublish_NotConnected(t *testing.T) {
	result := Publish(context.Background(), "facebook", "hello", false)

	require.False(t, result.Success)
	assert.Equal(t, "facebook", result.Platform)
	assert.Equal(t, "account not connected", result.Error)
	assert.Empty(t, result.PostID)
}

func TestPublish_UnsupportedPlatform(t *testing.T) {
	result := Publish(context.Background(), "myspace", "hello", true)

	require.False(t, result.Success)
	assert.Equal(t, "unsupported platform", result.Error)
	assert.Empty(t, result.PostID)
}

func TestPublish_AllSupportedPlatforms(t *testing.T) {
	for _, platform := range []string{"twitter", "facebook", "instagram", "linkedin"} {
		result := Publish(context.Background(), platform, "content", true)
		assert.True(t, result.Success, "nền tảng %s phải được hỗ trợ", platform)
	}
}
