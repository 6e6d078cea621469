package events

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Alqudimi/SocialSparkAI/internal/logger"
)

// RegisterAuditLogHandler đăng ký handler ghi mọi mutation CRUD vào audit log.
// Gọi một lần khi khởi động server, sau khi logger đã init.
func RegisterAuditLogHandler() {
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		logger.GetAuditLogger().WithFields(logrus.Fields{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}).Info("📝 [AUDIT] Data changed")
	})
}
