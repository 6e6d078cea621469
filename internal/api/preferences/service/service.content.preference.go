// Package service - business logic cho domain preferences.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirupsen/logrus"

	basesvc "github.com/Alqudimi/SocialSparkAI/internal/api/base/service"
	"github.com/Alqudimi/SocialSparkAI/internal/api/preferences/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/preferences/models"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
	"github.com/Alqudimi/SocialSparkAI/internal/logger"
	"github.com/Alqudimi/SocialSparkAI/internal/utility"
)

// PreferenceService là cấu trúc chứa các phương thức liên quan đến cấu hình sinh nội dung
type PreferenceService struct {
	*basesvc.BaseServiceMongoImpl[models.ContentPreference]
}

// NewPreferenceService tạo mới PreferenceService
func NewPreferenceService() (*PreferenceService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentPreferences)
	if !exist {
		return nil, fmt.Errorf("failed to get content_preferences collection: %v", common.ErrNotFound)
	}

	return &PreferenceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ContentPreference](collection),
	}, nil
}

// DefaultPreferences trả về cấu hình mặc định cho user chưa có cấu hình
func DefaultPreferences(userID primitive.ObjectID) models.ContentPreference {
	return models.ContentPreference{
		UserID:        userID,
		Topics:        []string{},
		Hashtags:      []string{},
		PostingStyle:  "professional",
		Tone:          "friendly",
		ContentLength: "medium",
		IncludeEmojis: true,
	}
}

// NormalizeHashtag chuẩn hóa hashtag: thêm "#" vào đầu nếu chưa có.
// Hàm idempotent: chuẩn hóa một hashtag đã có "#" trả về chính nó.
func NormalizeHashtag(raw string) string {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return tag
	}
	if !strings.HasPrefix(tag, "#") {
		return "#" + tag
	}
	return tag
}

// GetOrDefault lấy cấu hình của user, trả về mặc định nếu chưa có.
// Lỗi đọc database không chặn caller: log warning và trả về mặc định.
func (s *PreferenceService) GetOrDefault(ctx context.Context, userID primitive.ObjectID) models.ContentPreference {
	prefs, err := s.FindOne(ctx, bson.M{"userId": userID}, nil)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id": userID.Hex(),
				"error":   err.Error(),
			}).Warn("⚠️ [PREFS] Failed to load preferences, using defaults")
		}
		return DefaultPreferences(userID)
	}
	return prefs
}

// Replace thay thế toàn bộ cấu hình của user (tạo mới nếu chưa có).
// Topics và hashtags được chuẩn hóa và loại bỏ trùng lặp, giữ nguyên thứ tự.
func (s *PreferenceService) Replace(ctx context.Context, userID primitive.ObjectID, input *dto.ContentPreferenceUpdateInput) (models.ContentPreference, error) {
	topics := dedupeStrings(input.Topics)

	hashtags := make([]string, 0, len(input.Hashtags))
	for _, raw := range input.Hashtags {
		tag := NormalizeHashtag(raw)
		if len(tag) <= 1 {
			return models.ContentPreference{}, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Hashtag không hợp lệ: '%s'", raw),
				common.StatusBadRequest,
				nil,
			)
		}
		hashtags = append(hashtags, tag)
	}
	hashtags = dedupeStrings(hashtags)

	prefs := models.ContentPreference{
		UserID:        userID,
		Topics:        topics,
		Hashtags:      hashtags,
		PostingStyle:  input.PostingStyle,
		Tone:          input.Tone,
		ContentLength: input.ContentLength,
		IncludeEmojis: input.IncludeEmojis,
	}

	// Upsert thay thế nguyên tử toàn bộ document theo userId
	return s.Upsert(ctx, bson.M{"userId": userID}, prefs)
}

// AddTopic thêm một chủ đề mới vào cấu hình của user.
// Từ chối nếu chủ đề rỗng sau khi trim hoặc đã tồn tại (so sánh chính xác, phân biệt hoa thường).
func (s *PreferenceService) AddTopic(ctx context.Context, userID primitive.ObjectID, topic string) (models.ContentPreference, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.ContentPreference{}, common.NewError(
			common.ErrCodeValidationInput,
			"Chủ đề không được để trống",
			common.StatusBadRequest,
			nil,
		)
	}

	prefs, err := s.ensureExists(ctx, userID)
	if err != nil {
		return models.ContentPreference{}, err
	}

	if err := rejectDuplicate(prefs.Topics, topic, "Chủ đề"); err != nil {
		return models.ContentPreference{}, err
	}

	return s.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$addToSet": bson.M{"topics": topic}}, nil)
}

// RemoveTopic xóa một chủ đề theo so sánh chính xác. Không lỗi nếu chủ đề không tồn tại.
func (s *PreferenceService) RemoveTopic(ctx context.Context, userID primitive.ObjectID, topic string) (models.ContentPreference, error) {
	prefs, err := s.ensureExists(ctx, userID)
	if err != nil {
		return models.ContentPreference{}, err
	}

	if !utility.Contains(prefs.Topics, topic) {
		return prefs, nil
	}

	return s.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$pull": bson.M{"topics": topic}}, nil)
}

// AddHashtag chuẩn hóa và thêm một hashtag mới.
// Từ chối nếu sau chuẩn hóa chỉ còn "#" hoặc hashtag đã tồn tại.
func (s *PreferenceService) AddHashtag(ctx context.Context, userID primitive.ObjectID, raw string) (models.ContentPreference, error) {
	tag := NormalizeHashtag(raw)
	if len(tag) <= 1 {
		return models.ContentPreference{}, common.NewError(
			common.ErrCodeValidationInput,
			"Hashtag không được để trống",
			common.StatusBadRequest,
			nil,
		)
	}

	prefs, err := s.ensureExists(ctx, userID)
	if err != nil {
		return models.ContentPreference{}, err
	}

	if err := rejectDuplicate(prefs.Hashtags, tag, "Hashtag"); err != nil {
		return models.ContentPreference{}, err
	}

	return s.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$addToSet": bson.M{"hashtags": tag}}, nil)
}

// RemoveHashtag xóa một hashtag theo so sánh chính xác. Không lỗi nếu hashtag không tồn tại.
func (s *PreferenceService) RemoveHashtag(ctx context.Context, userID primitive.ObjectID, tag string) (models.ContentPreference, error) {
	prefs, err := s.ensureExists(ctx, userID)
	if err != nil {
		return models.ContentPreference{}, err
	}

	if !utility.Contains(prefs.Hashtags, tag) {
		return prefs, nil
	}

	return s.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$pull": bson.M{"hashtags": tag}}, nil)
}

// ensureExists lấy cấu hình của user, tạo mới với giá trị mặc định nếu chưa có
func (s *PreferenceService) ensureExists(ctx context.Context, userID primitive.ObjectID) (models.ContentPreference, error) {
	prefs, err := s.FindOne(ctx, bson.M{"userId": userID}, nil)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return models.ContentPreference{}, err
	}
	return s.InsertOne(ctx, DefaultPreferences(userID))
}

// rejectDuplicate trả về lỗi Conflict nếu item đã có trong danh sách (so sánh chính xác)
func rejectDuplicate(existing []string, item string, label string) error {
	if utility.Contains(existing, item) {
		return common.NewError(
			common.ErrCodeDatabaseQuery,
			fmt.Sprintf("%s '%s' đã tồn tại", label, item),
			common.StatusConflict,
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
