// Package router đăng ký các route thuộc domain preferences.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/Alqudimi/SocialSparkAI/internal/api/middleware"
	prefhdl "github.com/Alqudimi/SocialSparkAI/internal/api/preferences/handler"
	apirouter "github.com/Alqudimi/SocialSparkAI/internal/api/router"
)

// Register đăng ký tất cả route preferences lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	prefHandler, err := prefhdl.NewPreferenceHandler()
	if err != nil {
		return fmt.Errorf("failed to create preference handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/preferences", "GET", "", []fiber.Handler{authMiddleware}, prefHandler.HandleGetPreferences)
	apirouter.RegisterRouteWithMiddleware(v1, "/preferences", "PUT", "", []fiber.Handler{authMiddleware}, prefHandler.HandleUpdatePreferences)
	apirouter.RegisterRouteWithMiddleware(v1, "/preferences", "POST", "/topics", []fiber.Handler{authMiddleware}, prefHandler.HandleAddTopic)
	apirouter.RegisterRouteWithMiddleware(v1, "/preferences", "DELETE", "/topics", []fiber.Handler{authMiddleware}, prefHandler.HandleRemoveTopic)
	apirouter.RegisterRouteWithMiddleware(v1, "/preferences", "POST", "/hashtags", []fiber.Handler{authMiddleware}, prefHandler.HandleAddHashtag)
	apirouter.RegisterRouteWithMiddleware(v1, "/preferences", "DELETE", "/hashtags", []fiber.Handler{authMiddleware}, prefHandler.HandleRemoveHashtag)

	return nil
}
