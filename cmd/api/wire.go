//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
)

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,      // 用户仓储
	mysql.NewBookRepository,      // 图书仓储
	mysql.NewBorrowingRepository, // 借阅仓储
	mysql.NewTxManager,           // 事务管理器
	// 借阅用例依赖Transactor接口,由*mysql.TxManager实现
	wire.Bind(new(appborrowing.Transactor), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService, // 用户领域服务
	book.NewService, // 图书领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewListBooksUseCase,
	appborrowing.NewBorrowBookUseCase,
	appborrowing.NewReturnBookUseCase,
	appborrowing.NewGetBorrowingUseCase,
	appborrowing.NewListBorrowingsUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	provideSessionStore,          // Session存储（需要从Redis创建）
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewBorrowingHandler,
)

// provideJWTManager 从配置创建JWT管理器
// config.Config包含多个字段，但jwt.NewManager只需要JWT相关的配置，
// Wire无法自动知道如何从Config提取参数，所以需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册需要所有的Handler和Middleware,Wire会自动注入这些依赖
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	borrowingHandler *handler.BorrowingHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	// 设置运行模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档路由
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	// 生产环境建议禁用Swagger或添加访问控制
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			// 目录浏览(公开)
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

	return r
}

// InitializeApp 初始化整个应用
// wire.Build告诉Wire需要哪些Provider来构建*gin.Engine,
// Wire会在编译期分析依赖关系并按正确顺序生成初始化代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	// 返回值是占位符,实际运行时会被wire_gen.go替代
	return nil, nil
}
