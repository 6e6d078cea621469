package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/Alqudimi/SocialSparkAI/internal/api/auth/models"
	"github.com/Alqudimi/SocialSparkAI/internal/api/auth/service"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
	"github.com/Alqudimi/SocialSparkAI/internal/logger"
	"github.com/Alqudimi/SocialSparkAI/internal/utility"
)

// AuthManager quản lý xác thực người dùng
type AuthManager struct {
	UserCRUD *service.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	userService, err := service.NewUserService()
	if err != nil {
		return nil, err
	}

	return &AuthManager{
		UserCRUD: userService,
		// Cache user với thời gian sống 5 phút và thời gian dọn dẹp 10 phút
		Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// getUser lấy user từ cache hoặc database theo ID (hex string)
func (am *AuthManager) getUser(ctx context.Context, userID string) (models.User, error) {
	cacheKey := "auth_user:" + userID
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(models.User), nil
	}

	user, err := am.UserCRUD.FindOneById(ctx, utility.String2ObjectID(userID))
	if err != nil {
		return models.User{}, err
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// InvalidateUser xóa user khỏi cache, gọi khi thông tin user thay đổi (đổi mật khẩu, khóa tài khoản)
func (am *AuthManager) InvalidateUser(userID string) {
	am.Cache.Delete("auth_user:" + userID)
}

// AuthMiddleware middleware xác thực JWT cho Fiber.
// Parse Bearer token, kiểm tra token chưa bị thu hồi, load user và lưu vào context:
// c.Locals("user_id"), c.Locals("user_email"), c.Locals("user").
func AuthMiddleware() fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Parse và validate JWT token
		claims, err := utility.ParseToken(global.ServerConfig.JwtSecret, token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Invalid or expired token")
			HandleErrorResponse(c, err)
			return nil
		}

		// Kiểm tra token đã bị thu hồi chưa (logout)
		revoked, err := authManager.UserCRUD.IsTokenRevoked(c.Context(), token)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}
		if revoked {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id": claims.UserID,
				"path":    c.Path(),
			}).Warn("❌ [AUTH] Token has been revoked")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Load user (cache 5 phút)
		user, err := authManager.getUser(c.Context(), claims.UserID)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id": claims.UserID,
				"path":    c.Path(),
				"error":   err.Error(),
			}).Warn("❌ [AUTH] User not found for token")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra tài khoản còn hoạt động không
		if !user.IsActive {
			HandleErrorResponse(c, common.ErrUserInactive)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user_email", user.Email)
		c.Locals("user", user)

		return c.Next()
	}
}
