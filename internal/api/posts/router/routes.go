// Package router đăng ký các route thuộc domain posts.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/Alqudimi/SocialSparkAI/internal/api/middleware"
	posthdl "github.com/Alqudimi/SocialSparkAI/internal/api/posts/handler"
	apirouter "github.com/Alqudimi/SocialSparkAI/internal/api/router"
)

// Register đăng ký tất cả route posts lên v1.
// Path tĩnh (/calendar, /paginate) đăng ký trước /:id để không bị route param nuốt mất.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	postHandler, err := posthdl.NewPostHandler()
	if err != nil {
		return fmt.Errorf("failed to create post handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()

	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "GET", "/calendar", []fiber.Handler{authMiddleware}, postHandler.HandleCalendar)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "GET", "/paginate", []fiber.Handler{authMiddleware}, postHandler.FindWithPagination)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "POST", "", []fiber.Handler{authMiddleware}, postHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "GET", "", []fiber.Handler{authMiddleware}, postHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "GET", "/:id", []fiber.Handler{authMiddleware}, postHandler.FindOneById)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "PATCH", "/:id", []fiber.Handler{authMiddleware}, postHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "DELETE", "/:id", []fiber.Handler{authMiddleware}, postHandler.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "POST", "/:id/schedule", []fiber.Handler{authMiddleware}, postHandler.HandleSchedule)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "POST", "/:id/publish", []fiber.Handler{authMiddleware}, postHandler.HandlePublish)

	return nil
}
