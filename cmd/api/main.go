package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/library/docs" // swag生成的API文档
	appbook "github.com/xiebiao/library/internal/application/book"
	appborrowing "github.com/xiebiao/library/internal/application/borrowing"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// @title           图书馆借阅服务API
// @version         1.0
// @description     图书目录、读者账号与借阅流转的HTTP API
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire版本）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化Prometheus指标
	metrics.InitMetrics()

	// 5. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	borrowingRepo := mysql.NewBorrowingRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	addBookUseCase := appbook.NewAddBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	borrowBookUseCase := appborrowing.NewBorrowBookUseCase(borrowingRepo, bookRepo, txManager)
	returnBookUseCase := appborrowing.NewReturnBookUseCase(borrowingRepo, bookRepo, txManager)
	getBorrowingUseCase := appborrowing.NewGetBorrowingUseCase(borrowingRepo)
	listBorrowingsUseCase := appborrowing.NewListBorrowingsUseCase(borrowingRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(addBookUseCase, getBookUseCase, updateBookUseCase, deleteBookUseCase, listBooksUseCase)
	borrowingHandler := handler.NewBorrowingHandler(borrowBookUseCase, returnBookUseCase, getBorrowingUseCase, listBorrowingsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 校准业务指标（启动时从数据库回填未归还借阅数）
	if active, err := borrowingRepo.CountActive(context.Background()); err == nil {
		metrics.SetBorrowingsActive(active)
	}

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 8. 注册路由
	registerRoutes(r, userHandler, bookHandler, borrowingHandler, authMiddleware)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	borrowingHandler *handler.BorrowingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register) // 注册(公开)
			users.POST("/login", userHandler.Login)       // 登录(公开)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			// 目录浏览(公开接口,不需要登录)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)

			// 目录维护(馆员专属)
			staffOnly := books.Group("")
			staffOnly.Use(authMiddleware.RequireAuth(), authMiddleware.RequireStaff())
			{
				staffOnly.POST("", bookHandler.AddBook)
				staffOnly.PUT("/:id", bookHandler.UpdateBook)
				staffOnly.DELETE("/:id", bookHandler.DeleteBook)
			}
		}

		// 借阅模块(全部需要登录)
		borrowings := v1.Group("/borrowings")
		borrowings.Use(authMiddleware.RequireAuth())
		{
			borrowings.POST("", borrowingHandler.CreateBorrowing)
			borrowings.GET("", borrowingHandler.ListBorrowings)
			borrowings.GET("/:id", borrowingHandler.GetBorrowing)
			borrowings.POST("/:id/return", borrowingHandler.ReturnBorrowing)
		}
	}
}
