// Package database - Index cho các collection nghiệp vụ (compound, unique) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"github.com/Alqudimi/SocialSparkAI/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes tạo các index cần thiết cho toàn bộ collection.
// Gọi một lần khi khởi động server, sau khi đăng ký collections.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// users: email unique — mỗi email chỉ một tài khoản
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("user_email_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// content_preferences: userId unique — mỗi user một bộ sở thích
	prefs := db.Collection(global.MongoDB_ColNames.ContentPreferences)
	if _, err := prefs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("preference_user_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// posts: (userId, status) — list bài đăng theo trạng thái
	posts := db.Collection(global.MongoDB_ColNames.Posts)
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("post_user_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// posts: (userId, scheduledTime) sparse — query lịch đăng theo ngày
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "scheduledTime", Value: 1},
		},
		Options: options.Index().SetName("post_user_scheduled").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// social_accounts: (userId, platform) — list tài khoản theo nền tảng
	accounts := db.Collection(global.MongoDB_ColNames.SocialAccounts)
	if _, err := accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "platform", Value: 1},
		},
		Options: options.Index().SetName("social_account_user_platform"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// revoked_tokens: token unique — tra cứu token đã logout
	revoked := db.Collection(global.MongoDB_ColNames.RevokedTokens)
	if _, err := revoked.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetName("revoked_token_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// revoked_tokens: expiresAt — worker dọn token hết hạn
	if _, err := revoked.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("revoked_token_expires"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

// isIndexExistsError kiểm tra lỗi index đã tồn tại (không coi là fatal)
func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "IndexOptionsConflict") ||
		strings.Contains(msg, "IndexKeySpecsConflict") ||
		strings.Contains(msg, "already exists")
}
