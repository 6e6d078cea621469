package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirupsen/logrus"

	gendto "github.com/Alqudimi/SocialSparkAI/internal/api/generation/dto"
	prefmodels "github.com/Alqudimi/SocialSparkAI/internal/api/preferences/models"
	prefsvc "github.com/Alqudimi/SocialSparkAI/internal/api/preferences/service"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
	"github.com/Alqudimi/SocialSparkAI/internal/logger"
	"github.com/Alqudimi/SocialSparkAI/internal/utility"
)

// lengthInstructions hướng dẫn độ dài nội dung theo contentLength của user
var lengthInstructions = map[string]string{
	"short":  "Keep it under 100 characters",
	"medium": "Keep it between 100-200 characters",
	"long":   "Keep it between 200-280 characters",
}

// GenerationService điều phối việc sinh nội dung: đọc cấu hình của user,
// dựng prompt và gọi engine bên ngoài. Không lưu trạng thái, không tự retry:
// người dùng chủ động bấm "Regenerate" khi muốn sinh lại.
type GenerationService struct {
	engine            GenerationEngine
	preferenceService *prefsvc.PreferenceService
}

// NewGenerationService tạo GenerationService với Gemini làm engine mặc định
func NewGenerationService() (*GenerationService, error) {
	preferenceService, err := prefsvc.NewPreferenceService()
	if err != nil {
		return nil, fmt.Errorf("failed to create preference service: %v", err)
	}

	return &GenerationService{
		engine:            NewGeminiClient(global.ServerConfig),
		preferenceService: preferenceService,
	}, nil
}

// NewGenerationServiceWithEngine tạo GenerationService với engine tùy chọn (dùng cho test)
func NewGenerationServiceWithEngine(engine GenerationEngine, preferenceService *prefsvc.PreferenceService) *GenerationService {
	return &GenerationService{
		engine:            engine,
		preferenceService: preferenceService,
	}
}

// Generate sinh bản nháp nội dung cho topic và platform theo cấu hình của user.
// Topic rỗng sau khi trim bị từ chối TRƯỚC khi gọi engine bên ngoài.
// Lỗi engine trả về GenerationError (502) để client hiển thị và cho phép regenerate.
func (s *GenerationService) Generate(ctx context.Context, userID primitive.ObjectID, input *gendto.GenerateContentRequest) (*gendto.GenerateContentResponse, error) {
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Chủ đề không được để trống",
			common.StatusBadRequest,
			nil,
		)
	}

	prefs := s.preferenceService.GetOrDefault(ctx, userID)

	prompt := buildPrompt(topic, input.Platform, &prefs)
	if strings.TrimSpace(input.CustomPrompt) != "" {
		prompt = input.CustomPrompt
	}

	content, err := s.engine.GenerateText(ctx, prompt)
	if err != nil {
		logger.GetAppLogger().WithError(err).WithFields(logrus.Fields{
			"user_id":  userID.Hex(),
			"topic":    topic,
			"platform": input.Platform,
		}).Error("❌ [GENERATION] Engine failed to generate content")
		return nil, common.NewError(
			common.ErrCodeGeneration,
			fmt.Sprintf("Lỗi sinh nội dung: %v", err),
			common.StatusBadGateway,
			err,
		)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.NewError(
			common.ErrCodeGeneration,
			"Engine trả về nội dung rỗng",
			common.StatusBadGateway,
			nil,
		)
	}

	hashtags := s.generateHashtags(ctx, topic, input.Platform, &prefs)

	logger.GetAppLogger().WithFields(logrus.Fields{
		"user_id":  userID.Hex(),
		"topic":    topic,
		"platform": input.Platform,
	}).Info("✅ [GENERATION] Content generated")

	return &gendto.GenerateContentResponse{
		Content:     content,
		Hashtags:    hashtags,
		GeneratedAt: utility.CurrentTimeInMilli(),
	}, nil
}

// generateHashtags sinh hashtags qua engine, fallback về 3 hashtag đầu trong cấu hình nếu engine
// không trả về hashtag nào. Lỗi ở bước này không làm hỏng cả request vì đã có content.
func (s *GenerationService) generateHashtags(ctx context.Context, topic string, platform string, prefs *prefmodels.ContentPreference) []string {
	hashtags := []string{}

	prompt := fmt.Sprintf(
		"Generate 3-5 relevant hashtags for this %s post about %s. Return only the hashtags separated by spaces, starting with #.",
		platform, topic,
	)

	text, err := s.engine.GenerateText(ctx, prompt)
	if err == nil {
		for _, token := range strings.Fields(text) {
			if strings.HasPrefix(token, "#") {
				hashtags = append(hashtags, token)
			}
		}
	}

	if len(hashtags) == 0 && len(prefs.Hashtags) > 0 {
		limit := len(prefs.Hashtags)
		if limit > 3 {
			limit = 3
		}
		for _, tag := range prefs.Hashtags[:limit] {
			hashtags = append(hashtags, prefsvc.NormalizeHashtag(tag))
		}
	}

	return hashtags
}

// buildPrompt dựng prompt sinh nội dung từ topic, platform và cấu hình của user
func buildPrompt(topic string, platform string, prefs *prefmodels.ContentPreference) string {
	lengthInstruction, ok := lengthInstructions[prefs.ContentLength]
	if !ok {
		lengthInstruction = "medium length"
	}

	emojiInstruction := "No emojis"
	if prefs.IncludeEmojis {
		emojiInstruction = "Include relevant emojis"
	}

	return fmt.Sprintf(`Generate a %s %s post about %s.

Style Guidelines:
- Tone: %s
- Length: %s
- %s
- Posting style: %s

Additional requirements:
- Make it engaging and authentic
- Do not include hashtags in the main content
- Focus on providing value to the audience

Generate only the post content without any preamble or explanation.`,
		prefs.PostingStyle, platform, topic,
		prefs.Tone, lengthInstruction, emojiInstruction, prefs.PostingStyle)
}
