// Package publisher mô phỏng việc đăng bài lên các nền tảng mạng xã hội.
// Đây là stand-in cho tích hợp thật: không có network call nào được thực hiện,
// nhưng shape của Result giữ nguyên để thay bằng tích hợp thật sau này.
package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Alqudimi/SocialSparkAI/internal/logger"
	"github.com/Alqudimi/SocialSparkAI/internal/utility"
)

// Result kết quả đăng bài trên một nền tảng
type Result struct {
	Success  bool   `json:"success"`
	Platform string `json:"platform"`
	PostID   string `json:"postId,omitempty"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
}

// supportedPlatforms các nền tảng được hỗ trợ đăng bài
var supportedPlatforms = []string{"twitter", "facebook", "instagram", "linkedin"}

// Publish mô phỏng đăng một bài lên nền tảng chỉ định.
// connected cho biết user có tài khoản đang kết nối trên nền tảng đó không.
// Nền tảng không hỗ trợ hoặc chưa kết nối trả về Result thất bại, không phải error.
func Publish(ctx context.Context, platform string, content string, connected bool) Result {
	log := logger.GetAppLogger()

	if !utility.Contains(supportedPlatforms, platform) {
		return Result{
			Success:  false,
			Platform: platform,
			Error:    "unsupported platform",
			Message:  fmt.Sprintf("Nền tảng '%s' không được hỗ trợ", platform),
		}
	}

	if !connected {
		return Result{
			Success:  false,
			Platform: platform,
			Error:    "account not connected",
			Message:  fmt.Sprintf("Chưa kết nối tài khoản %s. Vui lòng kết nối tài khoản trước khi đăng bài.", platform),
		}
	}

	// Mô phỏng: gán post id giả, không gọi network
	fakePostID := fmt.Sprintf("%s_%d", platform, time.Now().UnixNano())

	log.WithFields(logrus.Fields{
		"platform":       platform,
		"post_id":        fakePostID,
		"content_length": len(content),
	}).Info("📤 [PUBLISHER] Simulated publish")

	return Result{
		Success:  true,
		Platform: platform,
		PostID:   fakePostID,
		Message:  fmt.Sprintf("Đã đăng bài lên %s thành công (simulated)", platform),
	}
}
