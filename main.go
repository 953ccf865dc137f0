package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TaskNestGo/config"
	"TaskNestGo/controllers"
	"TaskNestGo/middleware"
	"TaskNestGo/routes"
	"TaskNestGo/services"
	"TaskNestGo/sessions"
	"TaskNestGo/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	logger, err := config.InitLogger()
	if err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	// 初始化数据库
	db, err := config.InitDB(conf)
	if err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
	}

	// 初始化Redis
	redisClient, err := config.InitRedis(conf)
	if err != nil {
		log.Fatalf("无法初始化Redis: %v", err)
	}

	// 组装依赖：存储、会话、服务、控制器
	sessionTTL := time.Duration(conf.SessionTTLHours) * time.Hour
	sessionStore := sessions.NewRedisStore(redisClient, sessionTTL)
	userStore := storage.NewUserStore(db)
	taskStore := storage.NewTaskStore(db)

	authService := services.NewAuthService(userStore, sessionStore)
	authController := controllers.NewAuthController(authService, logger, conf.GetSessionTTL(), conf.CookieSecure)
	taskController := controllers.NewTaskController(taskStore, logger)

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.New()

	// 设置中间件
	middleware.SetupMiddleware(r, logger)

	// 注册路由
	routes.RegisterRoutes(r, authService, authController, taskController)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		log.Printf("启动服务器，监听端口: %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	// 关闭Redis连接，会话存储随之收尾
	if err := redisClient.Close(); err != nil {
		log.Printf("关闭Redis连接失败: %v", err)
	}

	log.Println("服务器已关闭")
}
