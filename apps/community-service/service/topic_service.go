package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/telemetry"
)

// CreateTopic 创建话题，需要审核权限
func (s *Service) CreateTopic(ctx context.Context, actor model.Actor, title, content string) (*model.Topic, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.CreateTopic")
	defer span.End()

	span.SetAttributes(attribute.Int64("actor.id", actor.UserID))

	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return nil, model.ErrForbidden
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, model.ErrEmptyContent
	}

	authorName, _ := s.projectAuthor(ctx, actor)

	topic := &model.Topic{
		ID:         uuid.New().String(),
		Title:      title,
		Content:    content,
		Status:     model.TopicStatusOpen,
		AuthorID:   actor.UserID,
		AuthorName: authorName,
	}

	if err := s.topicDAO.CreateTopic(ctx, topic); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create topic")
		return nil, fmt.Errorf("create topic: %w", err)
	}

	// 开放话题进入搜索索引
	if err := s.searchDAO.IndexTopic(ctx, topic); err != nil {
		s.logger.Warn(ctx, "Failed to index topic",
			logger.F("topicID", topic.ID),
			logger.F("error", err.Error()))
	}

	s.clearTopicCache(ctx, topic.ID)
	s.publishEvent(ctx, model.TopicContentEvents, model.EventTopicCreated,
		model.ObjectTypeTopic, topic.ID, actor.UserID, topic.Status)
	s.recordActivity(ctx, actor, model.ActionCreateTopic, model.ObjectTypeTopic, topic.ID, topic.Title)

	s.logger.Info(ctx, "Topic created",
		logger.F("topicID", topic.ID),
		logger.F("authorID", actor.UserID))

	span.SetStatus(codes.Ok, "topic created")
	return topic, nil
}

// GetTopic 获取话题详情
func (s *Service) GetTopic(ctx context.Context, topicID string) (*model.Topic, error) {
	topic, err := s.topicDAO.GetTopic(ctx, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

// ListTopics 获取话题列表
func (s *Service) ListTopics(ctx context.Context, page, pageSize int32) ([]*model.Topic, int64, error) {
	return s.topicDAO.ListTopics(ctx, "", page, pageSize)
}

// LockTopic 锁定话题，幂等操作，无条件写入
func (s *Service) LockTopic(ctx context.Context, actor model.Actor, topicID string) error {
	return s.setTopicStatus(ctx, actor, topicID, model.TopicStatusLocked,
		model.EventTopicLocked, model.ActionLockTopic)
}

// UnlockTopic 解锁话题
func (s *Service) UnlockTopic(ctx context.Context, actor model.Actor, topicID string) error {
	return s.setTopicStatus(ctx, actor, topicID, model.TopicStatusOpen,
		model.EventTopicUnlocked, model.ActionUnlockTopic)
}

// setTopicStatus 设置话题状态
func (s *Service) setTopicStatus(ctx context.Context, actor model.Actor, topicID, status, eventType, action string) error {
	ctx, span := telemetry.StartSpan(ctx, "community.service.SetTopicStatus")
	defer span.End()

	span.SetAttributes(
		attribute.String("topic.id", topicID),
		attribute.String("topic.status", status),
	)

	if !actor.IsAuthenticated() {
		return model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return model.ErrForbidden
	}

	if err := s.topicDAO.UpdateTopicStatus(ctx, topicID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrTopicNotFound
		}
		span.RecordError(err)
		return fmt.Errorf("update topic status: %w", err)
	}

	s.clearTopicCache(ctx, topicID)
	s.publishEvent(ctx, model.TopicContentEvents, eventType,
		model.ObjectTypeTopic, topicID, actor.UserID, status)
	s.notifyModerationFeed(ctx, eventType, model.ObjectTypeTopic, topicID, actor.UserID, status)
	s.recordActivity(ctx, actor, action, model.ObjectTypeTopic, topicID, "")

	s.logger.Info(ctx, "Topic status changed",
		logger.F("topicID", topicID),
		logger.F("status", status),
		logger.F("actorID", actor.UserID))

	span.SetStatus(codes.Ok, "topic status changed")
	return nil
}

// DeleteTopic 删除话题并级联删除其评论
func (s *Service) DeleteTopic(ctx context.Context, actor model.Actor, topicID string) error {
	ctx, span := telemetry.StartSpan(ctx, "community.service.DeleteTopic")
	defer span.End()

	span.SetAttributes(attribute.String("topic.id", topicID))

	if !actor.IsAuthenticated() {
		return model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return model.ErrForbidden
	}

	if err := s.topicDAO.DeleteTopic(ctx, topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrTopicNotFound
		}
		span.RecordError(err)
		return fmt.Errorf("delete topic: %w", err)
	}

	if err := s.searchDAO.RemoveTopic(ctx, topicID); err != nil {
		s.logger.Warn(ctx, "Failed to remove topic from index",
			logger.F("topicID", topicID),
			logger.F("error", err.Error()))
	}

	s.clearTopicCache(ctx, topicID)
	s.clearCommentCache(ctx, topicID, model.ObjectTypeTopic)
	s.publishEvent(ctx, model.TopicContentEvents, model.EventTopicDeleted,
		model.ObjectTypeTopic, topicID, actor.UserID, "")
	s.recordActivity(ctx, actor, model.ActionDeleteTopic, model.ObjectTypeTopic, topicID, "")

	s.logger.Info(ctx, "Topic deleted",
		logger.F("topicID", topicID),
		logger.F("actorID", actor.UserID))

	span.SetStatus(codes.Ok, "topic deleted")
	return nil
}
