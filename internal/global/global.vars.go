package global

import (
	"github.com/Alqudimi/SocialSparkAI/config"
	"github.com/Alqudimi/SocialSparkAI/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users              string // Tên collection cho người dùng
	ContentPreferences string // Tên collection cho sở thích nội dung của người dùng
	Posts              string // Tên collection cho bài đăng
	SocialAccounts     string // Tên collection cho tài khoản mạng xã hội đã liên kết
	RevokedTokens      string // Tên collection cho token đã bị thu hồi (logout)
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{ // Tên các collection
	Users:              "users",
	ContentPreferences: "content_preferences",
	Posts:              "posts",
	SocialAccounts:     "social_accounts",
	RevokedTokens:      "revoked_tokens",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
