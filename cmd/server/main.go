package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Alqudimi/SocialSparkAI/internal/api/events"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
	"github.com/Alqudimi/SocialSparkAI/internal/logger"
	"github.com/Alqudimi/SocialSparkAI/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Khởi tạo logger với cấu hình mặc định
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Log thông tin khởi tạo bằng logger mới
	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	// Khởi tạo app với cấu hình
	app := InitFiberApp()

	cfg := global.ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	listenConfig := fiber.ListenConfig{}
	if err := app.Listen(address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Đăng ký audit log handler cho các sự kiện thay đổi dữ liệu
	events.RegisterAuditLogHandler()

	log := logger.GetAppLogger()

	// Khởi tạo và chạy Token Cleanup Worker (background worker)
	cleanupWorker, err := worker.NewTokenCleanupWorker(time.Hour)
	if err != nil {
		log.WithError(err).Error("Failed to create token cleanup worker, continuing without cleanup worker")
	} else {
		// Tạo context với cancel để có thể dừng worker khi cần
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Chạy worker trong goroutine riêng với recover
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("🔄 [TOKEN_CLEANUP] Worker goroutine panic")
				}
			}()

			cleanupWorker.Start(ctx)
		}()

		log.Info("🔄 [TOKEN_CLEANUP] Token Cleanup Worker started successfully")
	}

	// Chạy Fiber server trên main thread
	main_thread()
}
