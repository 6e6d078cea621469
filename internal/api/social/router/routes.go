// Package router đăng ký các route thuộc domain social.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/Alqudimi/SocialSparkAI/internal/api/middleware"
	apirouter "github.com/Alqudimi/SocialSparkAI/internal/api/router"
	socialhdl "github.com/Alqudimi/SocialSparkAI/internal/api/social/handler"
)

// Register đăng ký tất cả route social accounts lên v1.
// Bộ route resource chuẩn (list, paginate, get, patch, delete, count) dùng
// RegisterResourceRoutes; tạo mới và toggle có logic nghiệp vụ riêng nên đăng ký riêng.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	socialHandler, err := socialhdl.NewSocialAccountHandler()
	if err != nil {
		return fmt.Errorf("failed to create social account handler: %w", err)
	}

	config := apirouter.ReadWriteConfig
	config.Create = false // tạo tài khoản có kiểm tra platform trùng, không dùng create chuẩn
	r.RegisterResourceRoutes(v1, "/social-accounts", socialHandler, config)

	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/social-accounts", "POST", "", []fiber.Handler{authMiddleware}, socialHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/social-accounts", "PATCH", "/:id/toggle", []fiber.Handler{authMiddleware}, socialHandler.HandleToggle)

	return nil
}
