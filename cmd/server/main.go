// Package main 是服务端的入口点
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"chatlog-server/internal/cache"
	"chatlog-server/internal/config"
	"chatlog-server/internal/handler"
	"chatlog-server/internal/llm"
	"chatlog-server/internal/middleware"
	"chatlog-server/internal/model"
	"chatlog-server/internal/repository"
	"chatlog-server/internal/service"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// 加载配置
	cfg, err := config.Load("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}

	// 自动迁移数据库表
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 写入种子数据（幂等，已有数据时跳过）
	if err := service.EnsureSampleData(context.Background(), db); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}

	// 初始化 Redis
	// Redis 只承担用户查找缓存，连接失败时降级为直接查库
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
		redisCache = nil
	}

	// 初始化 Repository 层
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// 初始化大模型客户端
	llmClient := llm.NewClient(cfg)

	// 初始化 Service 层
	userService := service.NewUserService(db, userRepo, messageRepo)
	messageService := service.NewMessageService(userRepo, messageRepo, redisCache)
	chatService := service.NewChatService(db, userRepo, messageRepo, redisCache, llmClient)

	// 初始化 Handler 层
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)
	chatHandler := handler.NewChatHandler(chatService)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())                   // 恢复 panic
	router.Use(middleware.RequestIDMiddleware()) // 请求ID
	router.Use(middleware.LoggerMiddleware())    // 请求日志
	router.Use(middleware.CORSMiddleware())      // CORS

	// 注册路由
	registerRoutes(router, userHandler, messageHandler, chatHandler)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // 聊天请求要等待外部大模型返回
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// 创建关闭上下文，设置超时
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// 关闭 Redis 连接
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Printf("Failed to close redis: %v", err)
		}
	}

	log.Println("Server exited")
}

// initDatabase 初始化数据库连接
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	// 构建 DSN (Data Source Name)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.MySQL.Username,
		cfg.MySQL.Password,
		cfg.MySQL.Host,
		cfg.MySQL.Port,
		cfg.MySQL.Database,
		cfg.MySQL.Charset,
	)

	// 配置 GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	// 连接数据库
	// TranslateError 把驱动层的重复键错误翻译成 gorm.ErrDuplicatedKey
	// 服务层依赖它来识别唯一索引冲突
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 获取底层 sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 配置连接池
	sqlDB.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MySQL.MaxLifetime) * time.Second)

	log.Println("Database connected successfully")
	return db, nil
}

// autoMigrate 自动迁移数据库表
func autoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Message{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// registerRoutes 注册所有路由
func registerRoutes(
	router *gin.Engine,
	userHandler *handler.UserHandler,
	messageHandler *handler.MessageHandler,
	chatHandler *handler.ChatHandler,
) {
	// 健康检查
	healthy := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
	router.GET("/", healthy)
	router.GET("/health", healthy)

	// 用户相关
	router.POST("/users", userHandler.Register)

	// 消息相关
	router.POST("/users/:email/messages", messageHandler.CreateMessage)
	router.GET("/users/:email/messages", messageHandler.ListMessages)

	// 聊天
	router.GET("/chat/:email", chatHandler.Chat)
}
