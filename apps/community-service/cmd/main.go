package main

import (
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"

	"campus-hub/apps/community-service/dao"
	"campus-hub/apps/community-service/handler"
	"campus-hub/apps/community-service/model"
	"campus-hub/apps/community-service/service"
	"campus-hub/pkg/middleware"
	"campus-hub/pkg/server"
)

func main() {
	// 创建应用程序
	app := server.NewApplication("community-service")

	// 启用HTTP服务器
	app.EnableHTTP()

	// 初始化PostgreSQL连接
	postgreSQL := app.GetPostgreSQL()

	// 自动迁移数据库表结构
	if err := postgreSQL.AutoMigrate(
		&model.Topic{},
		&model.Comment{},
		&model.ModerationLog{},
		&model.NewsArticle{},
		&model.NewsStatusLog{},
		&model.Submission{},
		&model.CalendarEvent{},
		&model.Profile{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// ES可选，不可用时搜索降级为空结果
	var esClient *elasticsearch.Client
	if es := app.GetElasticSearch(); es != nil {
		esClient = es.GetClient()
	}

	// 初始化DAO层
	topicDAO := dao.NewTopicDAO(postgreSQL)
	commentDAO := dao.NewCommentDAO(postgreSQL)
	newsDAO := dao.NewNewsDAO(postgreSQL)
	submissionDAO := dao.NewSubmissionDAO(postgreSQL)
	eventDAO := dao.NewEventDAO(postgreSQL)
	profileDAO := dao.NewProfileDAO(postgreSQL)
	auditDAO := dao.NewAuditDAO(app.GetMongoDB())
	searchDAO := dao.NewSearchDAO(esClient, app.GetLogger())

	// 初始化Service层
	svc := service.NewService(
		topicDAO,
		commentDAO,
		newsDAO,
		submissionDAO,
		eventDAO,
		profileDAO,
		auditDAO,
		searchDAO,
		app.GetRedisClient(),
		app.GetKafkaProducer(),
		app.GetLogger(),
	)

	// 写接口限流：每用户每分钟10次
	limiter := middleware.NewRateLimiter(app.GetRedisClient(), app.GetLogger(), 10, time.Minute)

	// 初始化Handler
	httpHandler := handler.NewHTTPHandler(svc, app.GetRedisClient(), limiter, app.GetLogger())

	// 注册HTTP路由
	app.RegisterHTTPRoutes(func(engine *gin.Engine) {
		httpHandler.RegisterRoutes(engine)
	})

	// 运行应用程序
	if err := app.Run(); err != nil {
		panic(err)
	}
}
