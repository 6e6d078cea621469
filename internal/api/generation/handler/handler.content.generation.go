// Package genhdl xử lý các request sinh nội dung.
package genhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Alqudimi/SocialSparkAI/internal/api/base/handler"
	gendto "github.com/Alqudimi/SocialSparkAI/internal/api/generation/dto"
	gensvc "github.com/Alqudimi/SocialSparkAI/internal/api/generation/service"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
)

// GenerationHandler xử lý các request sinh nội dung
type GenerationHandler struct {
	generationService *gensvc.GenerationService
}

// NewGenerationHandler tạo instance mới của GenerationHandler
func NewGenerationHandler() (*GenerationHandler, error) {
	generationService, err := gensvc.NewGenerationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %v", err)
	}
	return &GenerationHandler{
		generationService: generationService,
	}, nil
}

// HandleGenerate sinh bản nháp nội dung cho topic và platform
// @Summary Sinh nội dung bài đăng
// @Description Gọi engine sinh nội dung với topic, platform và cấu hình của user
// @Router /content/generate [post]
func (h *GenerationHandler) HandleGenerate(c fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		basehdl.WriteResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
		return nil
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		basehdl.WriteResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
		return nil
	}

	var input gendto.GenerateContentRequest
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		basehdl.WriteResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		))
		return nil
	}
	if err := global.Validate.Struct(&input); err != nil {
		basehdl.WriteResponse(c, nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		))
		return nil
	}

	result, err := h.generationService.Generate(c.Context(), userID, &input)
	basehdl.WriteResponse(c, result, err)
	return nil
}
