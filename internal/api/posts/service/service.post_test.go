package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/Alqudimi/SocialSparkAI/internal/api/base/service"
	"github.com/Alqudimi/SocialSparkAI/internal/api/posts/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/posts/models"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
	"github.com/Alqudimi/SocialSparkAI/internal/utility"
)

// newUnbackedPostService tạo service không có collection: chỉ dùng được cho
// các đường đi validation trả về trước khi chạm database.
func newUnbackedPostService() *PostService {
	return &PostService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Post](nil),
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{models.PostStatusDraft, models.PostStatusScheduled, true},
		{models.PostStatusDraft, models.PostStatusPublished, true},
		{models.PostStatusScheduled, models.PostStatusPublished, true},
		// Chỉ đi tiến, không bao giờ quay lui
		{models.PostStatusScheduled, models.PostStatusDraft, false},
		{models.PostStatusPublished, models.PostStatusDraft, false},
		{models.PostStatusPublished, models.PostStatusScheduled, false},
		{models.PostStatusPublished, models.PostStatusPublished, false},
		{models.PostStatusDraft, models.PostStatusDraft, false},
		{"unknown", models.PostStatusPublished, false},
	}

	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		assert.Equal(t, tt.want, got, "CanTransition(%q, %q)", tt.from, tt.to)
	}
}

func TestPostsOnDate(t *testing.T) {
	// 2026-03-15 10:30 UTC
	onDate := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC).UnixMilli()
	// 2026-03-15 23:59 UTC (sát biên ngày)
	lateOnDate := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC).UnixMilli()
	// 2026-03-16 00:00 UTC (đã sang ngày khác)
	nextDay := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC).UnixMilli()

	posts := []models.Post{
		{Content: "a", ScheduledTime: &onDate},
		{Content: "b", ScheduledTime: &lateOnDate},
		{Content: "c", ScheduledTime: &nextDay},
		{Content: "d", ScheduledTime: nil}, // draft chưa lên lịch
	}

	got := PostsOnDate(posts, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Content)
	assert.Equal(t, "b", got[1].Content)
}

func TestPostsOnDate_QueryDateNormalizedToUTC(t *testing.T) {
	onDate := time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC).UnixMilli()
	posts := []models.Post{{Content: "a", ScheduledTime: &onDate}}

	// Ngày truy vấn ở múi giờ +07:00, cùng ngày lịch UTC
	loc := time.FixedZone("ICT", 7*3600)
	got := PostsOnDate(posts, time.Date(2026, 3, 15, 20, 0, 0, 0, loc))
	assert.Len(t, got, 1, "so sánh phải theo ngày lịch UTC của cả hai vế")
}

func TestPostsOnDate_Empty(t *testing.T) {
	got := PostsOnDate(nil, time.Now())
	require.NotNil(t, got, "kết quả rỗng phải là slice rỗng, không phải nil")
	assert.Len(t, got, 0)
}

func TestCreateFromDraft_EmptyPlatforms(t *testing.T) {
	svc := newUnbackedPostService()

	_, err := svc.CreateFromDraft(context.Background(), primitive.NewObjectID(), &dto.PostCreateInput{
		Content:   "Bài viết về AI",
		Platforms: []string{},
	})
	require.Error(t, err, "bài đăng không có nền tảng nào phải bị từ chối")

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.ErrCodeValidationInput, customErr.Code)
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
}

func TestCreateFromDraft_EmptyContent(t *testing.T) {
	svc := newUnbackedPostService()

	_, err := svc.CreateFromDraft(context.Background(), primitive.NewObjectID(), &dto.PostCreateInput{
		Content:   "   ",
		Platforms: []string{"twitter"},
	})
	require.Error(t, err)

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.ErrCodeValidationInput, customErr.Code)
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
}

func TestCreateFromDraft_PastScheduledTime(t *testing.T) {
	svc := newUnbackedPostService()
	past := utility.CurrentTimeInMilli() - 1000

	_, err := svc.CreateFromDraft(context.Background(), primitive.NewObjectID(), &dto.PostCreateInput{
		Content:       "Bài viết về AI",
		Platforms:     []string{"twitter"},
		ScheduledTime: &past,
	})
	require.Error(t, err, "lịch đăng trong quá khứ phải bị từ chối")

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
}

func TestTransitionError(t *testing.T) {
	var customErr *common.Error

	// Trạng thái hiện tại không cho phép chuyển: lỗi nghiệp vụ, nêu rõ cả hai trạng thái
	err := transitionError(models.PostStatusPublished, models.PostStatusScheduled)
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.ErrCodeBusinessState, customErr.Code)
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
	assert.Contains(t, customErr.Message, models.PostStatusPublished)
	assert.Contains(t, customErr.Message, models.PostStatusScheduled)

	// Trạng thái đọc lại vẫn cho phép chuyển: document đổi giữa hai lần đọc, trả Conflict
	err = transitionError(models.PostStatusDraft, models.PostStatusScheduled)
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.StatusConflict, customErr.StatusCode)
}

func TestValidateFutureTime(t *testing.T) {
	future := utility.CurrentTimeInMilli() + int64(time.Hour/time.Millisecond)
	assert.NoError(t, validateFutureTime(future))

	past := utility.CurrentTimeInMilli() - 1000
	assert.Error(t, validateFutureTime(past), "thời gian trong quá khứ phải bị từ chối")

	assert.Error(t, validateFutureTime(utility.CurrentTimeInMilli()), "thời gian hiện tại cũng bị từ chối")
}

func TestDedupeStrings(t *testing.T) {
	got := dedupeStrings([]string{"twitter", "facebook", "twitter", "linkedin", "facebook"})
	assert.Equal(t, []string{"twitter", "facebook", "linkedin"}, got, "giữ nguyên thứ tự xuất hiện đầu tiên")

	assert.Empty(t, dedupeStrings(nil))
}
