package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/ayabook/bookshop/internal/application/book"
	appcategory "github.com/ayabook/bookshop/internal/application/category"
	apporder "github.com/ayabook/bookshop/internal/application/order"
	appuser "github.com/ayabook/bookshop/internal/application/user"
	"github.com/ayabook/bookshop/internal/domain/book"
	"github.com/ayabook/bookshop/internal/domain/category"
	"github.com/ayabook/bookshop/internal/domain/order"
	"github.com/ayabook/bookshop/internal/domain/user"
	"github.com/ayabook/bookshop/internal/infrastructure/config"
	inframq "github.com/ayabook/bookshop/internal/infrastructure/mq"
	"github.com/ayabook/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/ayabook/bookshop/internal/infrastructure/persistence/redis"
	"github.com/ayabook/bookshop/internal/interface/http/handler"
	"github.com/ayabook/bookshop/internal/interface/http/middleware"
	"github.com/ayabook/bookshop/pkg/jwt"
	"github.com/ayabook/bookshop/pkg/metrics"
	"github.com/ayabook/bookshop/pkg/mq"
	"github.com/ayabook/bookshop/pkg/response"
)

// @title           Bookshop API
// @version         1.0
// @description     网上书店:图书目录、分类、订单与库存一致性
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// main 主程序入口
// 依赖注入链:Repository ← Service ← UseCase ← Handler
// (手动组装,cmd/api/wire.go提供等价的Wire配置)
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

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化MQ(可选,未启用时订单事件走空实现)
	var eventPublisher order.EventPublisher = order.NopEventPublisher{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer publisher.Close()
		eventPublisher = inframq.NewOrderEventPublisher(publisher)
	}

	// 6. 依赖注入（手动组装）

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	catalogCache := redis.NewCatalogCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	categoryService := category.NewService(categoryRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)

	publishBookUseCase := appbook.NewPublishBookUseCase(bookService, categoryRepo, catalogCache)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, categoryRepo, catalogCache)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, catalogCache)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, categoryRepo)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService, categoryRepo)
	featuredUseCase := appbook.NewFeaturedBooksUseCase(bookService, categoryRepo, catalogCache)

	manageCategoryUseCase := appcategory.NewManageCategoryUseCase(categoryService)
	listCategoriesUseCase := appcategory.NewListCategoriesUseCase(categoryService, bookRepo)
	mergeDuplicatesUseCase := appcategory.NewMergeDuplicatesUseCase(categoryRepo, bookRepo, txManager)

	createOrderUseCase := apporder.NewCreateOrderUseCase(orderRepo, bookRepo, txManager, eventPublisher)
	updateStatusUseCase := apporder.NewUpdateOrderStatusUseCase(orderRepo, bookRepo, txManager, eventPublisher)
	getOrderUseCase := apporder.NewGetOrderUseCase(orderRepo)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)
	orderHistoryUseCase := apporder.NewOrderHistoryUseCase(orderRepo, userRepo)
	dashboardUseCase := apporder.NewDashboardUseCase(orderRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, userService)
	bookHandler := handler.NewBookHandler(
		publishBookUseCase, updateBookUseCase, deleteBookUseCase,
		getBookUseCase, listBooksUseCase, featuredUseCase,
	)
	categoryHandler := handler.NewCategoryHandler(manageCategoryUseCase, listCategoriesUseCase, mergeDuplicatesUseCase)
	orderHandler := handler.NewOrderHandler(
		createOrderUseCase, updateStatusUseCase, getOrderUseCase,
		listOrdersUseCase, orderHistoryUseCase, dashboardUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 8. 注册路由
	registerRoutes(r, userHandler, bookHandler, categoryHandler, orderHandler, authMiddleware)

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
	categoryHandler *handler.CategoryHandler,
	orderHandler *handler.OrderHandler,
	auth *middleware.AuthMiddleware,
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

	// Swagger文档(生产环境建议禁用或加访问控制)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", auth.RequireAuth(), userHandler.Logout)
		}
		v1.GET("/profile", auth.RequireAuth(), userHandler.Profile)

		// 图书模块
		books := v1.Group("/books")
		{
			// 公开接口(OptionalAuth:管理员访问列表时默认分页不同)
			books.GET("", auth.OptionalAuth(), bookHandler.ListBooks)
			books.GET("/bestsellers", bookHandler.Bestsellers)
			books.GET("/new-arrivals", bookHandler.NewArrivals)
			books.GET("/:id", bookHandler.GetBook)

			// 管理接口
			admin := books.Group("", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
			{
				admin.POST("", bookHandler.PublishBook)
				admin.PUT("/:id", bookHandler.UpdateBook)
				admin.DELETE("/:id", bookHandler.DeleteBook)
			}
		}

		// 分类模块
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id", categoryHandler.GetCategory)

			admin := categories.Group("", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
			{
				admin.POST("", categoryHandler.CreateCategory)
				admin.PUT("/:id", categoryHandler.UpdateCategory)
				admin.DELETE("/:id", categoryHandler.DeleteCategory)
				admin.POST("/merge-duplicates", categoryHandler.MergeDuplicates)
			}
		}

		// 订单模块(全部需要登录)
		orders := v1.Group("/orders", auth.RequireAuth())
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/history", orderHandler.OrderHistory)
			orders.GET("/user/me", orderHandler.ListMyOrders)
			orders.GET("/:id", orderHandler.GetOrder) // 本人或管理员(用例内鉴权)

			admin := orders.Group("", auth.RequireRole(user.RoleAdmin))
			{
				admin.GET("", orderHandler.ListOrders)
				admin.GET("/stats", orderHandler.OrderStats)
				admin.GET("/recent", orderHandler.RecentOrders)
				admin.PUT("/:id/status", orderHandler.UpdateOrderStatus)
				admin.PATCH("/:id/status", orderHandler.UpdateOrderStatus) // PATCH别名
			}
		}
	}
}
