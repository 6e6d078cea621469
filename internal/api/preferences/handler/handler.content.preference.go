// Package prefhdl xử lý các request cấu hình sinh nội dung.
package prefhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Alqudimi/SocialSparkAI/internal/api/base/handler"
	prefdto "github.com/Alqudimi/SocialSparkAI/internal/api/preferences/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/preferences/models"
	prefsvc "github.com/Alqudimi/SocialSparkAI/internal/api/preferences/service"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
)

// PreferenceHandler xử lý các request cấu hình sinh nội dung
type PreferenceHandler struct {
	*basehdl.BaseHandler[models.ContentPreference, prefdto.ContentPreferenceUpdateInput, prefdto.ContentPreferenceUpdateInput]
	preferenceService *prefsvc.PreferenceService
}

// NewPreferenceHandler tạo instance mới của PreferenceHandler
func NewPreferenceHandler() (*PreferenceHandler, error) {
	preferenceService, err := prefsvc.NewPreferenceService()
	if err != nil {
		return nil, fmt.Errorf("failed to create preference service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.ContentPreference, prefdto.ContentPreferenceUpdateInput, prefdto.ContentPreferenceUpdateInput](preferenceService)
	return &PreferenceHandler{
		BaseHandler:       baseHandler,
		preferenceService: preferenceService,
	}, nil
}

// HandleGetPreferences lấy cấu hình sinh nội dung của user đang đăng nhập.
// Trả về cấu hình mặc định nếu user chưa thiết lập.
// @Router /preferences [get]
func (h *PreferenceHandler) HandleGetPreferences(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		prefs := h.preferenceService.GetOrDefault(c.Context(), userID)
		h.HandleResponse(c, prefs, nil)
		return nil
	})
}

// HandleUpdatePreferences thay thế toàn bộ cấu hình sinh nội dung (PUT, không merge)
// @Router /preferences [put]
func (h *PreferenceHandler) HandleUpdatePreferences(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input prefdto.ContentPreferenceUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		prefs, err := h.preferenceService.Replace(c.Context(), userID, &input)
		h.HandleResponse(c, prefs, err)
		return nil
	})
}

// HandleAddTopic thêm một chủ đề vào cấu hình
// @Router /preferences/topics [post]
func (h *PreferenceHandler) HandleAddTopic(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input prefdto.TopicInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		prefs, err := h.preferenceService.AddTopic(c.Context(), userID, input.Topic)
		h.HandleResponse(c, prefs, err)
		return nil
	})
}

// HandleRemoveTopic xóa một chủ đề khỏi cấu hình, topic truyền qua query param
// @Router /preferences/topics [delete]
func (h *PreferenceHandler) HandleRemoveTopic(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		topic := c.Query("topic")
		if topic == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu query param 'topic'",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		prefs, err := h.preferenceService.RemoveTopic(c.Context(), userID, topic)
		h.HandleResponse(c, prefs, err)
		return nil
	})
}

// HandleAddHashtag thêm một hashtag vào cấu hình (tự động thêm "#" nếu thiếu)
// @Router /preferences/hashtags [post]
func (h *PreferenceHandler) HandleAddHashtag(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input prefdto.HashtagInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		prefs, err := h.preferenceService.AddHashtag(c.Context(), userID, input.Hashtag)
		h.HandleResponse(c, prefs, err)
		return nil
	})
}

// HandleRemoveHashtag xóa một hashtag khỏi cấu hình, hashtag truyền qua query param (URL-encoded)
// @Router /preferences/hashtags [delete]
func (h *PreferenceHandler) HandleRemoveHashtag(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tag := c.Query("hashtag")
		if tag == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu query param 'hashtag'",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		prefs, err := h.preferenceService.RemoveHashtag(c.Context(), userID, tag)
		h.HandleResponse(c, prefs, err)
		return nil
	})
}

// requireUserID lấy user ID từ context xác thực
func (h *PreferenceHandler) requireUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID := h.GetUserIDFromContext(c)
	if userID == nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	return *userID, nil
}
