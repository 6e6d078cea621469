// Package router đăng ký các route thuộc domain auth.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/Alqudimi/SocialSparkAI/internal/api/auth/handler"
	"github.com/Alqudimi/SocialSparkAI/internal/api/middleware"
	apirouter "github.com/Alqudimi/SocialSparkAI/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	// Route công khai (không cần xác thực)
	v1.Post("/auth/register", userHandler.HandleRegister)
	v1.Post("/auth/login", userHandler.HandleLogin)

	// Route cần xác thực
	authOnlyMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/logout", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/me", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "PUT", "/me", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleUpdateProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "PUT", "/me/password", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleChangePassword)

	return nil
}
