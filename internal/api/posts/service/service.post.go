// Package service - business logic cho domain posts: quản lý vòng đời bài đăng.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirupsen/logrus"

	basesvc "github.com/Alqudimi/SocialSparkAI/internal/api/base/service"
	"github.com/Alqudimi/SocialSparkAI/internal/api/posts/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/posts/models"
	socialmodels "github.com/Alqudimi/SocialSparkAI/internal/api/social/models"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
	"github.com/Alqudimi/SocialSparkAI/internal/logger"
	"github.com/Alqudimi/SocialSparkAI/internal/publisher"
	"github.com/Alqudimi/SocialSparkAI/internal/utility"
)

// PostService là cấu trúc chứa các phương thức quản lý vòng đời bài đăng.
// Mọi chuyển trạng thái đều là một thao tác Mongo nguyên tử có điều kiện trên
// {_id, status}: hai mutation trên cùng một post không thể xen kẽ nhau,
// các post khác nhau độc lập hoàn toàn.
type PostService struct {
	*basesvc.BaseServiceMongoImpl[models.Post]
	socialAccountService *basesvc.BaseServiceMongoImpl[socialmodels.SocialAccount]
}

// NewPostService tạo mới PostService
func NewPostService() (*PostService, error) {
	postCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Posts)
	if !exist {
		return nil, fmt.Errorf("failed to get posts collection: %v", common.ErrNotFound)
	}

	socialCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SocialAccounts)
	if !exist {
		return nil, fmt.Errorf("failed to get social_accounts collection: %v", common.ErrNotFound)
	}

	return &PostService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Post](postCollection),
		socialAccountService: basesvc.NewBaseServiceMongo[socialmodels.SocialAccount](socialCollection),
	}, nil
}

// CanTransition kiểm tra chuyển trạng thái from → to có hợp lệ không.
// State machine chỉ đi tiến: draft → scheduled → published, draft → published.
func CanTransition(from string, to string) bool {
	switch from {
	case models.PostStatusDraft:
		return to == models.PostStatusScheduled || to == models.PostStatusPublished
	case models.PostStatusScheduled:
		return to == models.PostStatusPublished
	default:
		return false
	}
}

// CreateFromDraft tạo bài đăng mới từ bản nháp đã sinh.
// Content rỗng hoặc platforms rỗng bị từ chối với lỗi validation.
// Nếu input có scheduledTime (phải ở tương lai), post được tạo với trạng thái scheduled luôn.
func (s *PostService) CreateFromDraft(ctx context.Context, userID primitive.ObjectID, input *dto.PostCreateInput) (models.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return models.Post{}, common.NewError(
			common.ErrCodeValidationInput,
			"Nội dung bài đăng không được để trống",
			common.StatusBadRequest,
			nil,
		)
	}

	platforms := dedupeStrings(input.Platforms)
	if len(platforms) == 0 {
		return models.Post{}, common.NewError(
			common.ErrCodeValidationInput,
			"Bài đăng phải có ít nhất một nền tảng",
			common.StatusBadRequest,
			nil,
		)
	}

	hashtags := input.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}

	post := models.Post{
		UserID:    userID,
		Content:   content,
		Hashtags:  hashtags,
		Platforms: platforms,
		Status:    models.PostStatusDraft,
	}

	if input.ScheduledTime != nil {
		if err := validateFutureTime(*input.ScheduledTime); err != nil {
			return models.Post{}, err
		}
		post.Status = models.PostStatusScheduled
		post.ScheduledTime = input.ScheduledTime
	}

	return s.InsertOne(ctx, post)
}

// Schedule lên lịch đăng bài, chỉ hợp lệ từ trạng thái draft.
// Thời gian lên lịch phải ở tương lai so với thời điểm gọi.
func (s *PostService) Schedule(ctx context.Context, userID primitive.ObjectID, postID primitive.ObjectID, scheduledTime int64) (models.Post, error) {
	if err := validateFutureTime(scheduledTime); err != nil {
		return models.Post{}, err
	}

	// Filter có điều kiện status để mutation là nguyên tử: post phải đang ở draft
	filter := bson.M{"_id": postID, "userId": userID, "status": models.PostStatusDraft}
	update := bson.M{"$set": bson.M{
		"status":        models.PostStatusScheduled,
		"scheduledTime": scheduledTime,
		"updatedAt":     utility.CurrentTimeInMilli(),
	}}

	post, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Post{}, s.resolveStateError(ctx, userID, postID, models.PostStatusScheduled)
		}
		return models.Post{}, err
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"post_id":        postID.Hex(),
		"scheduled_time": scheduledTime,
	}).Info("📅 [POSTS] Post scheduled")

	return post, nil
}

// Publish chuyển bài đăng sang trạng thái published (không thể đảo ngược),
// hợp lệ từ draft hoặc scheduled. Sau khi chuyển trạng thái thành công,
// chạy publisher mô phỏng trên từng nền tảng và trả về kết quả từng nền tảng.
func (s *PostService) Publish(ctx context.Context, userID primitive.ObjectID, postID primitive.ObjectID) (*dto.PostPublishResponse, error) {
	filter := bson.M{
		"_id":    postID,
		"userId": userID,
		"status": bson.M{"$in": []string{models.PostStatusDraft, models.PostStatusScheduled}},
	}
	update := bson.M{"$set": bson.M{
		"status":      models.PostStatusPublished,
		"isPublished": true,
		"updatedAt":   utility.CurrentTimeInMilli(),
	}}

	post, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, s.resolveStateError(ctx, userID, postID, models.PostStatusPublished)
		}
		return nil, err
	}

	// Chạy publisher mô phỏng cho từng nền tảng của post
	connected := s.connectedPlatforms(ctx, userID)
	results := make([]publisher.Result, 0, len(post.Platforms))
	for _, platform := range post.Platforms {
		results = append(results, publisher.Publish(ctx, platform, post.Content, connected[platform]))
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"post_id":   postID.Hex(),
		"platforms": post.Platforms,
	}).Info("✅ [POSTS] Post published")

	return &dto.PostPublishResponse{Post: post, Results: results}, nil
}

// Update cập nhật nội dung/hashtags/platforms của bài đăng (PATCH, chỉ field không nil).
// Bài đã published không thể chỉnh sửa. Status không bao giờ được set qua đây.
func (s *PostService) Update(ctx context.Context, userID primitive.ObjectID, postID primitive.ObjectID, input *dto.PostUpdateInput) (models.Post, error) {
	setMap := bson.M{}

	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return models.Post{}, common.NewError(
				common.ErrCodeValidationInput,
				"Nội dung bài đăng không được để trống",
				common.StatusBadRequest,
				nil,
			)
		}
		setMap["content"] = content
	}
	if input.Hashtags != nil {
		setMap["hashtags"] = *input.Hashtags
	}
	if input.Platforms != nil {
		platforms := dedupeStrings(*input.Platforms)
		if len(platforms) == 0 {
			return models.Post{}, common.NewError(
				common.ErrCodeValidationInput,
				"Bài đăng phải có ít nhất một nền tảng",
				common.StatusBadRequest,
				nil,
			)
		}
		setMap["platforms"] = platforms
	}

	if len(setMap) == 0 {
		return s.FindOne(ctx, bson.M{"_id": postID, "userId": userID}, nil)
	}
	setMap["updatedAt"] = utility.CurrentTimeInMilli()

	filter := bson.M{
		"_id":    postID,
		"userId": userID,
		"status": bson.M{"$in": []string{models.PostStatusDraft, models.PostStatusScheduled}},
	}

	post, err := s.FindOneAndUpdate(ctx, filter, bson.M{"$set": setMap}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Post{}, s.resolveEditError(ctx, userID, postID)
		}
		return models.Post{}, err
	}
	return post, nil
}

// Delete xóa bài đăng ở bất kỳ trạng thái nào, nguyên tử trong một thao tác.
// Xóa lần thứ hai trên cùng một id trả về NotFound, không phải crash.
func (s *PostService) Delete(ctx context.Context, userID primitive.ObjectID, postID primitive.ObjectID) error {
	post, err := s.FindOneAndDelete(ctx, bson.M{"_id": postID, "userId": userID}, nil)
	if err != nil {
		return err
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"post_id": postID.Hex(),
		"status":  post.Status,
	}).Info("✅ [POSTS] Post deleted")
	return nil
}

// List trả về tất cả bài đăng của user, mới nhất trước
func (s *PostService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{"userId": userID}, opts)
}

// PostsOnDate là hàm thuần chiếu tập bài đăng lên một ngày lịch.
// So sánh theo ngày lịch UTC cho cả hai vế (cùng một múi giờ cho timestamp đã lưu
// và ngày truy vấn, tránh lệch một ngày ở biên múi giờ).
// Post không có scheduledTime không bao giờ xuất hiện trong kết quả.
func PostsOnDate(posts []models.Post, date time.Time) []models.Post {
	y, m, d := date.UTC().Date()

	result := make([]models.Post, 0)
	for _, post := range posts {
		if post.ScheduledTime == nil {
			continue
		}
		py, pm, pd := time.UnixMilli(*post.ScheduledTime).UTC().Date()
		if py == y && pm == m && pd == d {
			result = append(result, post)
		}
	}
	return result
}

// Calendar trả về các bài đăng của user có lịch đăng rơi vào ngày chỉ định.
// Tính lại theo yêu cầu, không cache (tập bài đăng nhỏ và thay đổi theo mutation).
func (s *PostService) Calendar(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]models.Post, error) {
	posts, err := s.Find(ctx, bson.M{
		"userId":        userID,
		"scheduledTime": bson.M{"$exists": true},
	}, nil)
	if err != nil {
		return nil, err
	}
	return PostsOnDate(posts, date), nil
}

// connectedPlatforms trả về map các nền tảng user đang có tài khoản kết nối.
// Lỗi đọc social accounts không chặn publish: coi như không có kết nối nào.
func (s *PostService) connectedPlatforms(ctx context.Context, userID primitive.ObjectID) map[string]bool {
	connected := make(map[string]bool)

	platforms, err := s.socialAccountService.Distinct(ctx, "platform", bson.M{"userId": userID, "isConnected": true})
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"user_id": userID.Hex(),
			"error":   err.Error(),
		}).Warn("⚠️ [POSTS] Failed to load social accounts for publish")
		return connected
	}

	for _, platform := range platforms {
		if name, ok := platform.(string); ok {
			connected[name] = true
		}
	}
	return connected
}

// resolveStateError phân biệt NotFound và InvalidState khi mutation có điều kiện không khớp
func (s *PostService) resolveStateError(ctx context.Context, userID primitive.ObjectID, postID primitive.ObjectID, targetStatus string) error {
	post, err := s.FindOne(ctx, bson.M{"_id": postID, "userId": userID}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewError(
				common.ErrCodeDatabaseQuery,
				"Không tìm thấy bài đăng",
				common.StatusNotFound,
				nil,
			)
		}
		return err
	}

	return transitionError(post.Status, targetStatus)
}

// transitionError dựng lỗi khi mutation có điều kiện không khớp dù bài đăng tồn tại.
// Trạng thái đọc lại không cho phép chuyển theo state machine thì là lỗi nghiệp vụ.
// Ngược lại document vừa đổi trạng thái giữa hai lần đọc: trả về Conflict để client thử lại.
func transitionError(currentStatus string, targetStatus string) error {
	if CanTransition(currentStatus, targetStatus) {
		return common.NewError(
			common.ErrCodeBusinessState,
			"Bài đăng vừa thay đổi trạng thái, vui lòng thử lại",
			common.StatusConflict,
			nil,
		)
	}

	return common.NewError(
		common.ErrCodeBusinessState,
		fmt.Sprintf("Không thể chuyển bài đăng từ trạng thái '%s' sang '%s'", currentStatus, targetStatus),
		common.StatusBadRequest,
		nil,
	)
}

// resolveEditError phân biệt NotFound và InvalidState khi chỉnh sửa không khớp filter
func (s *PostService) resolveEditError(ctx context.Context, userID primitive.ObjectID, postID primitive.ObjectID) error {
	_, err := s.FindOne(ctx, bson.M{"_id": postID, "userId": userID}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewError(
				common.ErrCodeDatabaseQuery,
				"Không tìm thấy bài đăng",
				common.StatusNotFound,
				nil,
			)
		}
		return err
	}

	return common.NewError(
		common.ErrCodeBusinessState,
		"Không thể chỉnh sửa bài đăng đã published",
		common.StatusBadRequest,
		nil,
	)
}

// validateFutureTime kiểm tra timestamp (UnixMilli) phải ở tương lai
func validateFutureTime(t int64) error {
	if t <= utility.CurrentTimeInMilli() {
		return common.NewError(
			common.ErrCodeValidationInput,
			"Thời gian lên lịch phải ở tương lai",
			common.StatusBadRequest,
			nil,
		)
	}
	return nil
}

// dedupeStrings loại bỏ phần tử trùng lặp, giữ nguyên thứ tự xuất hiện đầu tiên
func dedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}
