// Package worker - các background worker chạy định kỳ.
package worker

import (
	"context"
	"time"

	authsvc "github.com/Alqudimi/SocialSparkAI/internal/api/auth/service"
	"github.com/Alqudimi/SocialSparkAI/internal/logger"
)

// TokenCleanupWorker worker định kỳ xóa các revoked token đã quá hạn
// khỏi collection revoked_tokens để collection không phình to theo thời gian.
type TokenCleanupWorker struct {
	userService *authsvc.UserService
	interval    time.Duration // Khoảng thời gian giữa các lần chạy
}

// NewTokenCleanupWorker tạo mới TokenCleanupWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 1 giờ)
//
// Trả về:
//   - *TokenCleanupWorker: Instance mới của TokenCleanupWorker
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewTokenCleanupWorker(interval time.Duration) (*TokenCleanupWorker, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}

	if interval < time.Minute {
		interval = time.Hour // Mặc định 1 giờ
	}

	return &TokenCleanupWorker{
		userService: userService,
		interval:    interval,
	}, nil
}

// Start bắt đầu background worker dọn dẹp token hết hạn.
// Worker chạy định kỳ theo interval, dừng khi context bị cancel.
// Panic trong một lần chạy được recover để không làm chết worker.
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🔄 [TOKEN_CLEANUP] Starting Token Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [TOKEN_CLEANUP] Token Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔄 [TOKEN_CLEANUP] Panic khi dọn dẹp token, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				deletedCount, err := w.userService.CleanupExpiredTokens(ctx)
				if err != nil {
					log.WithError(err).Error("🔄 [TOKEN_CLEANUP] Failed to cleanup expired tokens")
					return
				}

				if deletedCount > 0 {
					log.WithFields(map[string]interface{}{
						"deletedCount": deletedCount,
					}).Info("🔄 [TOKEN_CLEANUP] Cleaned up expired revoked tokens")
				}
				// Nếu deletedCount = 0, không log (giảm log noise)
			}()
		}
	}
}
