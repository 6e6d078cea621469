// Package socialhdl xử lý các request quản lý tài khoản mạng xã hội.
package socialhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Alqudimi/SocialSparkAI/internal/api/base/handler"
	socialdto "github.com/Alqudimi/SocialSparkAI/internal/api/social/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/social/models"
	socialsvc "github.com/Alqudimi/SocialSparkAI/internal/api/social/service"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
)

// SocialAccountHandler xử lý các request quản lý tài khoản mạng xã hội
type SocialAccountHandler struct {
	*basehdl.BaseHandler[models.SocialAccount, socialdto.SocialAccountCreateInput, socialdto.SocialAccountUpdateInput]
	socialAccountService *socialsvc.SocialAccountService
}

// NewSocialAccountHandler tạo instance mới của SocialAccountHandler
func NewSocialAccountHandler() (*SocialAccountHandler, error) {
	socialAccountService, err := socialsvc.NewSocialAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create social account service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.SocialAccount, socialdto.SocialAccountCreateInput, socialdto.SocialAccountUpdateInput](socialAccountService)
	return &SocialAccountHandler{
		BaseHandler:          baseHandler,
		socialAccountService: socialAccountService,
	}, nil
}

// HandleCreate kết nối tài khoản mạng xã hội mới
// @Router /social-accounts [post]
func (h *SocialAccountHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input socialdto.SocialAccountCreateInput
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

		account, err := h.socialAccountService.Create(c.Context(), userID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.WriteCreatedResponse(c, account)
		return nil
	})
}

// HandleToggle đảo trạng thái kết nối của tài khoản
// @Router /social-accounts/{id}/toggle [patch]
func (h *SocialAccountHandler) HandleToggle(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		accountID, err := h.GetIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		account, err := h.socialAccountService.Toggle(c.Context(), userID, accountID)
		h.HandleResponse(c, account, err)
		return nil
	})
}

// requireUserID lấy user ID từ context xác thực
func (h *SocialAccountHandler) requireUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID := h.GetUserIDFromContext(c)
	if userID == nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	return *userID, nil
}
