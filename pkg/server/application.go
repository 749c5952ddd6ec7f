package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"

	"campus-hub/pkg/config"
	"campus-hub/pkg/database"
	"campus-hub/pkg/kafka"
	"campus-hub/pkg/lifecycle"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/middleware"
	"campus-hub/pkg/redis"
	"campus-hub/pkg/telemetry"
)

// Application 应用程序框架
type Application struct {
	serviceName    string
	config         *config.Config
	logger         kratoslog.Logger
	originalLogger logger.Logger
	serverManager  *ServerManager
	lifecycle      *lifecycle.LifecycleManager

	// 基础设施组件
	mongoDB       *database.MongoDB
	postgreSQL    *database.PostgreSQL
	redisClient   *redis.RedisClient
	kafkaProducer *kafka.Producer
	elasticSearch *database.ElasticSearch

	// 中间件
	authMiddleware    *middleware.AuthMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	otelMiddleware    *middleware.OTelMiddleware

	// 注册函数
	httpRouteRegister func(*gin.Engine)
}

// NewApplication 创建应用程序
func NewApplication(serviceName string) *Application {
	cfg := config.LoadConfig(serviceName)

	if err := logger.Init(cfg.App.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	originalLogger := logger.GetLogger()

	kratosLogger := logger.NewKratosStdLogger(cfg.App.Name, cfg.App.Version)

	// 初始化链路追踪
	if err := telemetry.InitGlobal(telemetry.DefaultConfig(serviceName)); err != nil {
		panic(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}

	lifecycleManager := lifecycle.NewLifecycleManager(kratosLogger)
	serverManager := NewServerManager(cfg, kratosLogger)

	authMiddleware := middleware.NewAuthMiddleware(originalLogger, cfg.App.JWTSecret)
	loggingMiddleware := middleware.NewLoggingMiddleware(kratosLogger)
	otelMiddleware := middleware.NewOTelMiddleware(serviceName, originalLogger)

	app := &Application{
		serviceName:       serviceName,
		config:            cfg,
		logger:            kratosLogger,
		originalLogger:    originalLogger,
		serverManager:     serverManager,
		lifecycle:         lifecycleManager,
		authMiddleware:    authMiddleware,
		loggingMiddleware: loggingMiddleware,
		otelMiddleware:    otelMiddleware,
	}

	app.initInfrastructure()

	return app
}

// initInfrastructure 初始化基础设施组件
func (app *Application) initInfrastructure() {
	mongoDB, err := database.NewMongoDB(app.config.Database.MongoDB.URI, app.config.Database.MongoDB.DBName)
	if err != nil {
		app.logger.Log(kratoslog.LevelFatal, "msg", "Failed to connect to MongoDB", "error", err)
		panic(err)
	}
	app.mongoDB = mongoDB

	postgreSQL, err := database.NewPostgreSQL(app.config.Database.PostgreSQL.DSN, app.config.Database.PostgreSQL.DBName)
	if err != nil {
		app.logger.Log(kratoslog.LevelFatal, "msg", "Failed to connect to PostgreSQL", "error", err)
		panic(err)
	}
	app.postgreSQL = postgreSQL

	app.redisClient = redis.NewRedisClient(app.config.Redis.Addr, app.config.Redis.Password, app.config.Redis.DB)

	kafkaProducer, err := kafka.InitProducer(app.config.Kafka.Brokers)
	if err != nil {
		app.logger.Log(kratoslog.LevelFatal, "msg", "Failed to connect to Kafka", "error", err)
		panic(err)
	}
	app.kafkaProducer = kafkaProducer

	// ES不可用时降级运行，搜索接口返回空结果
	if app.config.Database.Elasticsearch.Enabled {
		es, err := database.NewElasticSearch(
			app.config.Database.Elasticsearch.Addr,
			app.config.Database.Elasticsearch.Username,
			app.config.Database.Elasticsearch.Password,
		)
		if err != nil {
			app.logger.Log(kratoslog.LevelWarn, "msg", "ElasticSearch unavailable, search disabled", "error", err)
		} else {
			app.elasticSearch = es
		}
	}
}

// EnableHTTP 启用HTTP服务器
func (app *Application) EnableHTTP() HTTPServer {
	httpServer := app.serverManager.EnableHTTP()

	// 添加中间件
	httpServer.RegisterRoutes(func(engine *gin.Engine) {
		engine.Use(app.otelMiddleware.GinMiddleware())
		engine.Use(app.loggingMiddleware.GinLogging())
		engine.Use(middleware.Recovery(app.originalLogger))
		engine.Use(app.authMiddleware.GinAuth())
	})

	return httpServer
}

// RegisterHTTPRoutes 注册HTTP路由
func (app *Application) RegisterHTTPRoutes(registerFunc func(*gin.Engine)) {
	app.httpRouteRegister = registerFunc
}

// GetMongoDB 获取MongoDB连接
func (app *Application) GetMongoDB() *database.MongoDB {
	return app.mongoDB
}

// GetPostgreSQL 获取PostgreSQL连接
func (app *Application) GetPostgreSQL() *database.PostgreSQL {
	return app.postgreSQL
}

// GetRedisClient 获取Redis客户端
func (app *Application) GetRedisClient() *redis.RedisClient {
	return app.redisClient
}

// GetKafkaProducer 获取Kafka生产者
func (app *Application) GetKafkaProducer() *kafka.Producer {
	return app.kafkaProducer
}

// GetElasticSearch 获取ES连接，可能为nil
func (app *Application) GetElasticSearch() *database.ElasticSearch {
	return app.elasticSearch
}

// GetLogger 获取日志器
func (app *Application) GetLogger() logger.Logger {
	return app.originalLogger
}

// GetKratosLogger 获取Kratos日志器
func (app *Application) GetKratosLogger() kratoslog.Logger {
	return app.logger
}

// GetConfig 获取配置
func (app *Application) GetConfig() *config.Config {
	return app.config
}

// Run 运行应用程序
func (app *Application) Run() error {
	app.registerLifecycleHooks()

	if err := app.lifecycle.Start(); err != nil {
		return fmt.Errorf("failed to start lifecycle: %w", err)
	}

	app.lifecycle.Wait()

	return nil
}

// registerLifecycleHooks 注册生命周期钩子
func (app *Application) registerLifecycleHooks() {
	if app.httpRouteRegister != nil {
		app.serverManager.RegisterHTTPRoutes(app.httpRouteRegister)
	}

	// 服务器启动钩子
	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "servers",
		Priority: 100,
		OnStart: func(ctx context.Context) error {
			return app.serverManager.StartAll(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return app.serverManager.StopAll(ctx)
		},
	})

	// 基础设施清理钩子
	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "infrastructure",
		Priority: 300,
		OnStop: func(ctx context.Context) error {
			if app.kafkaProducer != nil {
				if err := app.kafkaProducer.Close(); err != nil {
					app.logger.Log(kratoslog.LevelError, "msg", "Failed to close Kafka producer", "error", err)
				}
			}
			if app.redisClient != nil {
				if err := app.redisClient.Close(); err != nil {
					app.logger.Log(kratoslog.LevelError, "msg", "Failed to close Redis", "error", err)
				}
			}
			if app.mongoDB != nil {
				if err := app.mongoDB.Close(); err != nil {
					app.logger.Log(kratoslog.LevelError, "msg", "Failed to close MongoDB", "error", err)
				}
			}
			if app.postgreSQL != nil {
				if err := app.postgreSQL.Close(); err != nil {
					app.logger.Log(kratoslog.LevelError, "msg", "Failed to close PostgreSQL", "error", err)
				}
			}
			return telemetry.ShutdownGlobal(ctx)
		},
	})
}
