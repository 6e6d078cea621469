// Package service - business logic cho domain auth.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirupsen/logrus"

	"github.com/Alqudimi/SocialSparkAI/internal/api/auth/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/auth/models"
	basesvc "github.com/Alqudimi/SocialSparkAI/internal/api/base/service"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
	"github.com/Alqudimi/SocialSparkAI/internal/logger"
	"github.com/Alqudimi/SocialSparkAI/internal/utility"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
	revokedTokenService *basesvc.BaseServiceMongoImpl[models.RevokedToken]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	revokedTokenCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.RevokedTokens)
	if !exist {
		return nil, fmt.Errorf("failed to get revoked_tokens collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
		revokedTokenService:  basesvc.NewBaseServiceMongo[models.RevokedToken](revokedTokenCollection),
	}, nil
}

// Register đăng ký tài khoản mới và trả về token đăng nhập luôn
func (s *UserService) Register(ctx context.Context, input *dto.UserRegisterInput) (*dto.UserLoginResponse, error) {
	email := utility.NormalizeEmail(input.Email)

	// Kiểm tra email đã được sử dụng chưa
	exists, err := s.DocumentExists(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewError(
			common.ErrCodeDatabaseQuery,
			"Email đã được sử dụng",
			common.StatusConflict,
			nil,
		)
	}

	salt, err := utility.GenerateSalt()
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			"Không thể tạo salt cho mật khẩu",
			common.StatusInternalServerError,
			err,
		)
	}

	user := models.User{
		Name:     input.Name,
		Email:    email,
		Password: utility.HashPassword(input.Password, salt),
		Salt:     salt,
		IsActive: true,
	}

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(&created)
	if err != nil {
		return nil, err
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"user_id": created.ID.Hex(),
		"email":   created.Email,
	}).Info("✅ [AUTH] User registered")

	return &dto.UserLoginResponse{Token: token, User: created}, nil
}

// Login xác thực email/password và trả về JWT token
func (s *UserService) Login(ctx context.Context, input *dto.UserLoginInput) (*dto.UserLoginResponse, error) {
	email := utility.NormalizeEmail(input.Email)

	user, err := s.FindOne(ctx, bson.M{"email": email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Không tiết lộ email có tồn tại hay không
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, common.ErrUserInactive
	}

	if !utility.ComparePassword(input.Password, user.Salt, user.Password) {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"email": email,
		}).Warn("❌ [AUTH] Login failed: wrong password")
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, err
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"user_id": user.ID.Hex(),
	}).Info("✅ [AUTH] User logged in")

	return &dto.UserLoginResponse{Token: token, User: user}, nil
}

// Logout thu hồi token hiện tại của user.
// Token được lưu vào collection revoked_tokens cho đến khi hết hạn tự nhiên.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID, token string) error {
	claims, err := utility.ParseToken(global.ServerConfig.JwtSecret, token)
	if err != nil {
		// Token đã hết hạn hoặc không hợp lệ thì không cần thu hồi
		return nil
	}

	revoked := models.RevokedToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.UnixMilli(),
	}

	_, err = s.revokedTokenService.InsertOne(ctx, revoked)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			// Token đã bị thu hồi trước đó, coi như logout thành công
			return nil
		}
		return err
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"user_id": userID.Hex(),
	}).Info("✅ [AUTH] User logged out")
	return nil
}

// IsTokenRevoked kiểm tra token có nằm trong danh sách thu hồi không
func (s *UserService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	return s.revokedTokenService.DocumentExists(ctx, bson.M{"token": token})
}

// UpdateProfile cập nhật thông tin cá nhân của user
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input *dto.UserUpdateProfileInput) (models.User, error) {
	setMap := bson.M{}
	if input.Name != nil {
		setMap["name"] = *input.Name
	}

	if len(setMap) == 0 {
		return s.FindOneById(ctx, userID)
	}

	return s.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": setMap}, nil)
}

// ChangePassword đổi mật khẩu sau khi xác thực mật khẩu cũ
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *dto.UserChangePasswordInput) error {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if !utility.ComparePassword(input.OldPassword, user.Salt, user.Password) {
		return common.ErrInvalidCredentials
	}

	salt, err := utility.GenerateSalt()
	if err != nil {
		return common.NewError(
			common.ErrCodeInternalServer,
			"Không thể tạo salt cho mật khẩu",
			common.StatusInternalServerError,
			err,
		)
	}

	_, err = s.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"password": utility.HashPassword(input.NewPassword, salt),
		"salt":     salt,
	}}, nil)
	return err
}

// CleanupExpiredTokens xóa các revoked token đã quá hạn, trả về số lượng đã xóa
func (s *UserService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.revokedTokenService.DeleteMany(ctx, bson.M{
		"expiresAt": bson.M{"$lt": utility.CurrentTimeInMilli()},
	})
}

// issueToken tạo JWT token mới cho user
func (s *UserService) issueToken(user *models.User) (string, error) {
	token, err := utility.CreateToken(
		global.ServerConfig.JwtSecret,
		user.ID.Hex(),
		user.Email,
		global.ServerConfig.JwtExpireMinutes,
	)
	if err != nil {
		return "", common.NewError(
			common.ErrCodeInternalServer,
			"Không thể tạo token xác thực",
			common.StatusInternalServerError,
			err,
		)
	}
	return token, nil
}
