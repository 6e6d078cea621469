// Package service - business logic cho domain social.
package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/Alqudimi/SocialSparkAI/internal/api/base/service"
	"github.com/Alqudimi/SocialSparkAI/internal/api/social/dto"
	"github.com/Alqudimi/SocialSparkAI/internal/api/social/models"
	"github.com/Alqudimi/SocialSparkAI/internal/common"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
	"github.com/Alqudimi/SocialSparkAI/internal/utility"
)

// SocialAccountService là cấu trúc chứa các phương thức liên quan đến tài khoản mạng xã hội
type SocialAccountService struct {
	*basesvc.BaseServiceMongoImpl[models.SocialAccount]
}

// NewSocialAccountService tạo mới SocialAccountService
func NewSocialAccountService() (*SocialAccountService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SocialAccounts)
	if !exist {
		return nil, fmt.Errorf("failed to get social_accounts collection: %v", common.ErrNotFound)
	}

	return &SocialAccountService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.SocialAccount](collection),
	}, nil
}

// Create kết nối một tài khoản mạng xã hội mới cho user (mặc định đang kết nối)
func (s *SocialAccountService) Create(ctx context.Context, userID primitive.ObjectID, input *dto.SocialAccountCreateInput) (models.SocialAccount, error) {
	account := models.SocialAccount{
		UserID:      userID,
		Platform:    input.Platform,
		AccountName: input.AccountName,
		IsConnected: true,
	}
	return s.InsertOne(ctx, account)
}

// Toggle đảo trạng thái kết nối của một tài khoản
func (s *SocialAccountService) Toggle(ctx context.Context, userID primitive.ObjectID, accountID primitive.ObjectID) (models.SocialAccount, error) {
	account, err := s.FindOne(ctx, bson.M{"_id": accountID, "userId": userID}, nil)
	if err != nil {
		return models.SocialAccount{}, err
	}

	return s.UpdateOne(ctx, bson.M{"_id": accountID, "userId": userID}, bson.M{"$set": bson.M{
		"isConnected": !account.IsConnected,
		"updatedAt":   utility.CurrentTimeInMilli(),
	}}, nil)
}
