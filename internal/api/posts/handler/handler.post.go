// Package posthdl xử lý các request quản lý bài đăng.
package posthdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Alqudimi/SocialSparkAI/internal/api/base/handler"
	postdto "github.com/Alqudimi/SocialSparkAI/internal/api/posts/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/posts/models"
	postsvc "github.com/Alqudimi/SocialSparkAI/internal/api/posts/service"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
)

// PostHandler xử lý các request quản lý bài đăng
type PostHandler struct {
	*basehdl.BaseHandler[models.Post, postdto.PostCreateInput, postdto.PostUpdateInput]
	postService *postsvc.PostService
}

// NewPostHandler tạo instance mới của PostHandler
func NewPostHandler() (*PostHandler, error) {
	postService, err := postsvc.NewPostService()
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Post, postdto.PostCreateInput, postdto.PostUpdateInput](postService)
	return &PostHandler{
		BaseHandler: baseHandler,
		postService: postService,
	}, nil
}

// HandleCreate tạo bài đăng mới từ bản nháp
// @Router /posts [post]
func (h *PostHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input postdto.PostCreateInput
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

		post, err := h.postService.CreateFromDraft(c.Context(), userID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.WriteCreatedResponse(c, post)
		return nil
	})
}

// HandleList liệt kê tất cả bài đăng của user, mới nhất trước
// @Router /posts [get]
func (h *PostHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		posts, err := h.postService.List(c.Context(), userID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if posts == nil {
			posts = []models.Post{}
		}
		h.HandleResponse(c, posts, nil)
		return nil
	})
}

// HandleUpdate cập nhật bài đăng (PATCH, chỉ các field gửi lên).
// Status không thể set qua đây: chuyển trạng thái phải dùng schedule/publish.
// @Router /posts/{id} [patch]
func (h *PostHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		postID, err := h.GetIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input postdto.PostUpdateInput
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

		post, err := h.postService.Update(c.Context(), userID, postID, &input)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleDelete xóa bài đăng ở bất kỳ trạng thái nào
// @Router /posts/{id} [delete]
func (h *PostHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		postID, err := h.GetIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.postService.Delete(c.Context(), userID, postID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleSchedule lên lịch đăng bài (chỉ từ trạng thái draft, thời gian phải ở tương lai)
// @Router /posts/{id}/schedule [post]
func (h *PostHandler) HandleSchedule(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		postID, err := h.GetIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input postdto.PostScheduleInput
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

		post, err := h.postService.Schedule(c.Context(), userID, postID, input.ScheduledTime)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandlePublish chuyển bài đăng sang published và chạy publisher mô phỏng
// @Router /posts/{id}/publish [post]
func (h *PostHandler) HandlePublish(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		postID, err := h.GetIDFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.postService.Publish(c.Context(), userID, postID)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleCalendar trả về các bài đăng có lịch đăng rơi vào ngày chỉ định (UTC).
// Query param: date=YYYY-MM-DD
// @Router /posts/calendar [get]
func (h *PostHandler) HandleCalendar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		dateStr := c.Query("date")
		if dateStr == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu query param 'date' (định dạng YYYY-MM-DD)",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Ngày '%s' không đúng định dạng YYYY-MM-DD", dateStr),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		posts, err := h.postService.Calendar(c.Context(), userID, date)
		h.HandleResponse(c, posts, err)
		return nil
	})
}

// requireUserID lấy user ID từ context xác thực
func (h *PostHandler) requireUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID := h.GetUserIDFromContext(c)
	if userID == nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	return *userID, nil
}
