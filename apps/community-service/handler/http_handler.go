package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-hub/apps/community-service/converter"
	"campus-hub/apps/community-service/model"
	"campus-hub/apps/community-service/service"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/middleware"
	"campus-hub/pkg/redis"
)

// HTTPHandler HTTP处理器
type HTTPHandler struct {
	svc       *service.Service
	converter *converter.Converter
	redis     *redis.RedisClient
	limiter   *middleware.RateLimiter
	logger    logger.Logger
}

// NewHTTPHandler 创建HTTP处理器
func NewHTTPHandler(svc *service.Service, rds *redis.RedisClient, limiter *middleware.RateLimiter, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:       svc,
		converter: converter.NewConverter(),
		redis:     rds,
		limiter:   limiter,
		logger:    log,
	}
}

// RegisterRoutes 注册路由
func (h *HTTPHandler) RegisterRoutes(engine *gin.Engine) {
	api := engine.Group("/api/v1")
	{
		// 公开内容接口
		api.GET("/news", h.ListNews)
		api.GET("/news/:id", h.GetNews)
		api.GET("/topics", h.ListTopics)
		api.GET("/topics/:id", h.GetTopic)
		api.GET("/comments", h.GetComments)
		api.GET("/sharespeare", h.ListSubmissions)
		api.GET("/events", h.ListEvents)
		api.GET("/search", h.Search)

		// 会员接口
		api.POST("/comments", h.limiter.Limit("comment"), h.CreateComment)
		api.POST("/sharespeare", h.limiter.Limit("submission"), h.CreateSubmission)
		api.GET("/profile", h.GetProfile)
		api.PUT("/profile", h.UpdateProfile)
	}

	// 管理接口，角色校验在服务层完成
	admin := engine.Group("/api/v1/admin")
	{
		admin.POST("/comments/moderate", h.ModerateComments)
		admin.GET("/comments/pending", h.GetPendingComments)
		admin.DELETE("/comments/:id", h.DeleteComment)

		admin.POST("/topics", h.CreateTopic)
		admin.POST("/topics/:id/lock", h.LockTopic)
		admin.POST("/topics/:id/unlock", h.UnlockTopic)
		admin.DELETE("/topics/:id", h.DeleteTopic)

		admin.POST("/news", h.CreateNews)
		admin.PUT("/news/:id", h.UpdateNews)
		admin.POST("/news/:id/publish", h.PublishNews)
		admin.POST("/news/:id/archive", h.ArchiveNews)

		admin.POST("/sharespeare/:id/moderate", h.ModerateSubmission)

		admin.POST("/events", h.CreateEvent)
		admin.PUT("/events/:id", h.UpdateEvent)
		admin.DELETE("/events/:id", h.DeleteEvent)

		admin.GET("/activities", h.ListActivities)
		admin.PUT("/profiles/:id/role", h.ChangeRole)

		admin.GET("/moderation/ws", h.ModerationFeed)
	}
}

// actorFromContext 从gin上下文取请求主体，由认证中间件写入
func (h *HTTPHandler) actorFromContext(c *gin.Context) model.Actor {
	actor := model.Actor{Role: model.RoleMember}

	if userIDVal, exists := c.Get("userID"); exists {
		if userID, ok := userIDVal.(int64); ok {
			actor.UserID = userID
		}
	}
	if roleVal, exists := c.Get("userRole"); exists {
		if role, ok := roleVal.(string); ok {
			actor.Role = model.ParseRole(role)
		}
	}
	if emailVal, exists := c.Get("userEmail"); exists {
		if email, ok := emailVal.(string); ok {
			actor.Email = email
		}
	}

	return actor
}

// parsePage 解析分页查询参数
func parsePage(c *gin.Context) (int32, int32) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 32)
	pageSize, _ := strconv.ParseInt(c.DefaultQuery("page_size", "20"), 10, 32)
	return int32(page), int32(pageSize)
}
