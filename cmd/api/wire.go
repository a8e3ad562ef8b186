//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// Wire是编译期依赖注入工具:
// Step 1: 编写本文件,定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go,包含完整的依赖创建代码
//
// main.go当前使用手动组装(与本文件等价),切换到Wire时
// 将main.go的组装段替换为InitializeApp()调用即可

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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
	"github.com/ayabook/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCategoryRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	// TxManager同时满足订单与分类用例的事务接口
	wire.Bind(new(apporder.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(appcategory.Transactor), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	category.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewFeaturedBooksUseCase,
	appcategory.NewManageCategoryUseCase,
	appcategory.NewListCategoriesUseCase,
	appcategory.NewMergeDuplicatesUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewUpdateOrderStatusUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewOrderHistoryUseCase,
	apporder.NewDashboardUseCase,
)

// middlewareSet 中间件与横切依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideCatalogCache,
	provideEventPublisher,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewOrderHandler,
)

// provideJWTManager 从配置创建JWT管理器
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

// provideCatalogCache 从Redis客户端创建推荐位缓存
func provideCatalogCache(client *goredis.Client) appbook.FeaturedCache {
	return redis.NewCatalogCache(client)
}

// provideEventPublisher 创建订单事件发布者
// MQ未启用时返回空实现,事件发布变成无操作
func provideEventPublisher(cfg *config.Config) (order.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return order.NopEventPublisher{}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return inframq.NewOrderEventPublisher(publisher), nil
}

// provideGinEngine 创建并配置Gin引擎(复用main.go的registerRoutes)
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	categoryHandler *handler.CategoryHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())
	registerRoutes(r, userHandler, bookHandler, categoryHandler, orderHandler, authMiddleware)
	return r
}

// InitializeApp 初始化整个应用
// Wire在编译期分析依赖链并生成初始化代码(wire_gen.go)
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

	return nil, nil
}
