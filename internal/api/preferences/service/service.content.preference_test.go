package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/Alqudimi/SocialSparkAI/internal/api/base/service"
	"github.com/Alqudimi/SocialSparkAI/internal/api/preferences/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/preferences/models"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
)

// newUnbackedPreferenceService tạo service không có collection: chỉ dùng được
// cho các đường đi validation trả về trước khi chạm database.
func newUnbackedPreferenceService() *PreferenceService {
	return &PreferenceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ContentPreference](nil),
	}
}

func TestDefaultPreferences(t *testing.T) {
	userID := primitive.NewObjectID()
	prefs := DefaultPreferences(userID)

	assert.Equal(t, userID, prefs.UserID)
	assert.Equal(t, "professional", prefs.PostingStyle)
	assert.Equal(t, "friendly", prefs.Tone)
	assert.Equal(t, "medium", prefs.ContentLength)
	assert.True(t, prefs.IncludeEmojis)

	// Mặc định phải là slice rỗng, không phải nil, để JSON serialize thành []
	require.NotNil(t, prefs.Topics)
	require.NotNil(t, prefs.Hashtags)
	assert.Len(t, prefs.Topics, 0)
	assert.Len(t, prefs.Hashtags, 0)
}

func TestNormalizeHashtag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"golang", "#golang"},
		{"#golang", "#golang"},
		{"  golang  ", "#golang"},
		{"  #golang", "#golang"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHashtag(tt.in), "NormalizeHashtag(%q)", tt.in)
	}
}

func TestNormalizeHashtag_Idempotent(t *testing.T) {
	once := NormalizeHashtag("marketing")
	twice := NormalizeHashtag(once)
	assert.Equal(t, once, twice, "chuẩn hóa hai lần phải cho cùng kết quả")
}

func TestDedupeStrings_PreservesOrder(t *testing.T) {
	got := dedupeStrings([]string{"ai", "tech", "ai", "startup", "tech"})
	assert.Equal(t, []string{"ai", "tech", "startup"}, got)
}

func TestAddTopic_EmptyRejected(t *testing.T) {
	svc := newUnbackedPreferenceService()

	for _, topic := range []string{"", "   "} {
		_, err := svc.AddTopic(context.Background(), primitive.NewObjectID(), topic)
		require.Error(t, err, "AddTopic(%q) phải bị từ chối", topic)

		var customErr *common.Error
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, common.ErrCodeValidationInput, customErr.Code)
		assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
	}
}

func TestAddHashtag_EmptyRejected(t *testing.T) {
	svc := newUnbackedPreferenceService()

	// Sau chuẩn hóa chỉ còn "#" (hoặc rỗng) đều không phải hashtag hợp lệ
	for _, tag := range []string{"", "   ", "#"} {
		_, err := svc.AddHashtag(context.Background(), primitive.NewObjectID(), tag)
		require.Error(t, err, "AddHashtag(%q) phải bị từ chối", tag)

		var customErr *common.Error
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, common.ErrCodeValidationInput, customErr.Code)
		assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
	}
}

func TestRejectDuplicate(t *testing.T) {
	err := rejectDuplicate([]string{"ai", "tech"}, "ai", "Chủ đề")
	require.Error(t, err, "phần tử đã có trong danh sách phải bị từ chối")

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.StatusConflict, customErr.StatusCode)
	assert.Contains(t, customErr.Message, "ai")

	// So sánh chính xác, phân biệt hoa thường
	assert.NoError(t, rejectDuplicate([]string{"ai", "tech"}, "AI", "Chủ đề"))
	assert.NoError(t, rejectDuplicate(nil, "ai", "Chủ đề"))
}

func TestReplace_InvalidHashtagRejected(t *testing.T) {
	svc := newUnbackedPreferenceService()

	_, err := svc.Replace(context.Background(), primitive.NewObjectID(), &dto.ContentPreferenceUpdateInput{
		Hashtags:      []string{"golang", "  "},
		PostingStyle:  "professional",
		Tone:          "friendly",
		ContentLength: "medium",
	})
	require.Error(t, err, "hashtag rỗng sau chuẩn hóa phải chặn toàn bộ thao tác thay thế")

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.ErrCodeValidationInput, customErr.Code)
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
}
