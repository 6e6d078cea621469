package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Alqudimi/SocialSparkAI/config"
	"github.com/Alqudimi/SocialSparkAI/internal/database"
	"github.com/Alqudimi/SocialSparkAI/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo validator
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	logrus.Info("Initialized config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.MongoDB_Session = client
	logrus.Info("Connected to MongoDB")

	// Tạo các index cần thiết cho các collection
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateIndexes(ctx, db); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}
	logrus.Info("Created MongoDB indexes")
}
