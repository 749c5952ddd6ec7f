package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"campus-hub/apps/community-service/dao"
	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/kafka"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/redis"
)

// Service 社区服务
type Service struct {
	topicDAO      dao.TopicDAO
	commentDAO    dao.CommentDAO
	newsDAO       dao.NewsDAO
	submissionDAO dao.SubmissionDAO
	eventDAO      dao.EventDAO
	profileDAO    dao.ProfileDAO
	auditDAO      dao.AuditDAO
	searchDAO     dao.SearchDAO
	redis         *redis.RedisClient
	producer      *kafka.Producer
	logger        logger.Logger
}

// NewService 创建社区服务实例
func NewService(
	topicDAO dao.TopicDAO,
	commentDAO dao.CommentDAO,
	newsDAO dao.NewsDAO,
	submissionDAO dao.SubmissionDAO,
	eventDAO dao.EventDAO,
	profileDAO dao.ProfileDAO,
	auditDAO dao.AuditDAO,
	searchDAO dao.SearchDAO,
	rds *redis.RedisClient,
	producer *kafka.Producer,
	log logger.Logger,
) *Service {
	return &Service{
		topicDAO:      topicDAO,
		commentDAO:    commentDAO,
		newsDAO:       newsDAO,
		submissionDAO: submissionDAO,
		eventDAO:      eventDAO,
		profileDAO:    profileDAO,
		auditDAO:      auditDAO,
		searchDAO:     searchDAO,
		redis:         rds,
		producer:      producer,
		logger:        log,
	}
}

// moderationEvent 发往Kafka和实时通知频道的审核事件
type moderationEvent struct {
	Type       string `json:"type"`
	ObjectType string `json:"object_type"`
	ObjectID   string `json:"object_id"`
	ActorID    int64  `json:"actor_id"`
	NewStatus  string `json:"new_status,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// publishEvent 发布事件到Kafka，失败只记录日志不影响主流程
func (s *Service) publishEvent(ctx context.Context, topic, eventType, objectType, objectID string, actorID int64, newStatus string) {
	if s.producer == nil {
		return
	}

	go func() {
		event := &moderationEvent{
			Type:       eventType,
			ObjectType: objectType,
			ObjectID:   objectID,
			ActorID:    actorID,
			NewStatus:  newStatus,
			Timestamp:  time.Now().Unix(),
		}

		payload, err := json.Marshal(event)
		if err != nil {
			return
		}

		if err := s.producer.SendMessage(topic, []byte(objectID), payload); err != nil {
			s.logger.Error(context.Background(), "Failed to publish event",
				logger.F("topic", topic),
				logger.F("eventType", eventType),
				logger.F("objectID", objectID),
				logger.F("error", err.Error()))
		}
	}()
}

// notifyModerationFeed 推送审核实时通知到Redis频道
func (s *Service) notifyModerationFeed(ctx context.Context, eventType, objectType, objectID string, actorID int64, newStatus string) {
	if s.redis == nil {
		return
	}

	event := &moderationEvent{
		Type:       eventType,
		ObjectType: objectType,
		ObjectID:   objectID,
		ActorID:    actorID,
		NewStatus:  newStatus,
		Timestamp:  time.Now().Unix(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := s.redis.Publish(ctx, model.ChannelModerationFeed, payload); err != nil {
		s.logger.Warn(ctx, "Failed to publish moderation notice",
			logger.F("eventType", eventType),
			logger.F("error", err.Error()))
	}
}

// recordActivity 写入操作审计，失败只记录日志不影响主流程
func (s *Service) recordActivity(ctx context.Context, actor model.Actor, action, objectType, objectID, detail string) {
	if s.auditDAO == nil {
		return
	}

	activity := &model.Activity{
		ActorID:    actor.UserID,
		ActorRole:  string(actor.Role),
		Action:     action,
		ObjectType: objectType,
		ObjectID:   objectID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}

	if err := s.auditDAO.InsertActivity(ctx, activity); err != nil {
		s.logger.Error(ctx, "Failed to record activity",
			logger.F("action", action),
			logger.F("objectID", objectID),
			logger.F("error", err.Error()))
	}
}

// ListRecentActivities 获取最近操作审计
func (s *Service) ListRecentActivities(ctx context.Context, actor model.Actor, limit int64) ([]*model.Activity, error) {
	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return nil, model.ErrForbidden
	}
	return s.auditDAO.ListRecentActivities(ctx, limit)
}

// clearCommentCache 清除评论相关缓存
func (s *Service) clearCommentCache(ctx context.Context, objectID, objectType string) {
	if s.redis == nil {
		return
	}

	pattern := fmt.Sprintf("%s%s:%s:*", model.CommentListCachePrefix, objectID, objectType)
	keys, err := s.redis.Keys(ctx, pattern)
	if err == nil && len(keys) > 0 {
		s.redis.Del(ctx, keys...)
	}

	queueKeys, err := s.redis.Keys(ctx, model.CommentQueueCachePrefix+"*")
	if err == nil && len(queueKeys) > 0 {
		s.redis.Del(ctx, queueKeys...)
	}
}

// clearTopicCache 清除话题相关缓存
func (s *Service) clearTopicCache(ctx context.Context, topicID string) {
	if s.redis == nil {
		return
	}

	keys, err := s.redis.Keys(ctx, model.TopicListCachePrefix+"*")
	if err == nil && len(keys) > 0 {
		s.redis.Del(ctx, keys...)
	}
	s.redis.Del(ctx, model.TopicDetailCachePrefix+topicID)
}

// clearNewsCache 清除新闻相关缓存
func (s *Service) clearNewsCache(ctx context.Context, newsID string) {
	if s.redis == nil {
		return
	}

	keys, err := s.redis.Keys(ctx, model.NewsListCachePrefix+"*")
	if err == nil && len(keys) > 0 {
		s.redis.Del(ctx, keys...)
	}
	s.redis.Del(ctx, model.NewsDetailCachePrefix+newsID)
}

// projectAuthor 从资料读模型取展示名和头像，资料缺失时回退邮箱前缀
func (s *Service) projectAuthor(ctx context.Context, actor model.Actor) (string, string) {
	if profile, err := s.profileDAO.GetProfile(ctx, actor.UserID); err == nil {
		return profile.DisplayName, profile.AvatarURL
	}
	return defaultDisplayName(actor), ""
}

// defaultDisplayName 缺省展示名
func defaultDisplayName(actor model.Actor) string {
	if actor.Email != "" {
		for i, c := range actor.Email {
			if c == '@' {
				return actor.Email[:i]
			}
		}
		return actor.Email
	}
	return "user-" + strconv.FormatInt(actor.UserID, 10)
}
