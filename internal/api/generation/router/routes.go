// Package router đăng ký các route thuộc domain generation.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	genhdl "github.com/Alqudimi/SocialSparkAI/internal/api/generation/handler"
	"github.com/Alqudimi/SocialSparkAI/internal/api/middleware"
	apirouter "github.com/Alqudimi/SocialSparkAI/internal/api/router"
)

// Register đăng ký tất cả route generation lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	genHandler, err := genhdl.NewGenerationHandler()
	if err != nil {
		return fmt.Errorf("failed to create generation handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/content", "POST", "/generate", []fiber.Handler{authMiddleware}, genHandler.HandleGenerate)

	return nil
}
