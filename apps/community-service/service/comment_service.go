package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/telemetry"
)

// CreateComment 创建评论，新评论一律进入待审核状态
func (s *Service) CreateComment(ctx context.Context, actor model.Actor, params *model.CreateCommentParams) (*model.Comment, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.CreateComment")
	defer span.End()

	span.SetAttributes(
		attribute.String("comment.object_id", params.ObjectID),
		attribute.String("comment.object_type", params.ObjectType),
		attribute.Int64("comment.author_id", actor.UserID),
		attribute.Int("comment.content_length", len(params.Content)),
	)

	if !actor.IsAuthenticated() {
		span.SetStatus(codes.Error, "unauthenticated")
		return nil, model.ErrUnauthenticated
	}

	if err := s.validateCreateCommentParams(params); err != nil {
		span.SetStatus(codes.Error, "invalid parameters")
		return nil, err
	}

	// 校验评论对象可评论
	switch params.ObjectType {
	case model.ObjectTypeTopic:
		topic, err := s.topicDAO.GetTopic(ctx, params.ObjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, model.ErrTopicNotFound
			}
			return nil, err
		}
		if !topic.IsOpen() {
			span.SetStatus(codes.Error, "topic locked")
			return nil, model.ErrTopicLocked
		}
	case model.ObjectTypeNews:
		news, err := s.newsDAO.GetNews(ctx, params.ObjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, model.ErrNewsNotFound
			}
			return nil, err
		}
		if !news.IsPublished() {
			return nil, model.ErrNewsNotPublished
		}
	}

	// 校验父评论归属
	if params.ParentID > 0 {
		parent, err := s.commentDAO.GetComment(ctx, params.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, model.ErrParentNotFound
			}
			return nil, err
		}
		if parent.ObjectID != params.ObjectID || parent.ObjectType != params.ObjectType {
			return nil, model.ErrParentMismatch
		}
	}

	authorName, authorAvatar := s.projectAuthor(ctx, actor)

	comment := &model.Comment{
		ObjectID:     params.ObjectID,
		ObjectType:   params.ObjectType,
		AuthorID:     actor.UserID,
		AuthorName:   authorName,
		AuthorAvatar: authorAvatar,
		Content:      strings.TrimSpace(params.Content),
		ParentID:     params.ParentID,
		Status:       model.CommentStatusPending,
	}

	if err := s.commentDAO.CreateComment(ctx, comment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create comment")
		return nil, fmt.Errorf("create comment: %w", err)
	}

	span.SetAttributes(attribute.Int64("comment.id", comment.ID))

	s.clearCommentCache(ctx, comment.ObjectID, comment.ObjectType)
	s.publishEvent(ctx, model.TopicModerationEvents, model.EventCommentCreated,
		comment.ObjectType, strconv.FormatInt(comment.ID, 10), actor.UserID, comment.Status)

	s.logger.Info(ctx, "Comment created",
		logger.F("commentID", comment.ID),
		logger.F("authorID", actor.UserID),
		logger.F("objectID", comment.ObjectID))

	span.SetStatus(codes.Ok, "comment created")
	return comment, nil
}

// GetComments 获取某对象下的评论列表，公开访问只返回已通过的评论
func (s *Service) GetComments(ctx context.Context, params *model.GetCommentsParams) ([]*model.Comment, int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.GetComments")
	defer span.End()

	span.SetAttributes(
		attribute.String("comment.object_id", params.ObjectID),
		attribute.String("comment.object_type", params.ObjectType),
	)

	if params.ObjectID == "" {
		return nil, 0, model.ErrObjectIDRequired
	}
	if params.ObjectType != model.ObjectTypeTopic && params.ObjectType != model.ObjectTypeNews {
		return nil, 0, model.ErrInvalidObjectType
	}

	// 公开视图固定为已通过评论
	params.Status = model.CommentStatusApproved

	comments, total, err := s.commentDAO.GetComments(ctx, params)
	if err != nil {
		span.RecordError(err)
		return nil, 0, err
	}

	return buildCommentTree(comments), total, nil
}

// GetPendingComments 获取待审核队列
func (s *Service) GetPendingComments(ctx context.Context, actor model.Actor, page, pageSize int32) ([]*model.Comment, int64, error) {
	if !actor.IsAuthenticated() {
		return nil, 0, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return nil, 0, model.ErrForbidden
	}

	return s.commentDAO.GetPendingComments(ctx, page, pageSize)
}

// ModerateComment 审核单条评论。
// 前置状态检查由存储层的条件更新保证，并发下只会有一次成功写入。
func (s *Service) ModerateComment(ctx context.Context, actor model.Actor, params *model.ModerateCommentParams) (*model.Comment, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.ModerateComment")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("comment.id", params.CommentID),
		attribute.String("comment.new_status", params.NewStatus),
		attribute.Int64("moderator.id", actor.UserID),
	)

	if !actor.IsAuthenticated() {
		span.SetStatus(codes.Error, "unauthenticated")
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		span.SetStatus(codes.Error, "forbidden")
		return nil, model.ErrForbidden
	}

	if err := validateModerationTarget(params.NewStatus, params.Reason); err != nil {
		span.SetStatus(codes.Error, "invalid parameters")
		return nil, err
	}

	comment, err := s.commentDAO.GetComment(ctx, params.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCommentNotFound
		}
		return nil, err
	}

	now := time.Now()
	updated, err := s.commentDAO.UpdateStatusIfPending(ctx, params.CommentID, params.NewStatus, actor.UserID, params.Reason, now)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("moderate comment: %w", err)
	}
	if !updated {
		// 评论存在但已不是pending：另一个审核者先到了
		span.SetStatus(codes.Error, "already moderated")
		return nil, model.ErrCommentModerated
	}

	if err := s.commentDAO.CreateModerationLog(ctx, &model.ModerationLog{
		CommentID:   params.CommentID,
		ModeratorID: actor.UserID,
		OldStatus:   model.CommentStatusPending,
		NewStatus:   params.NewStatus,
		Reason:      params.Reason,
	}); err != nil {
		s.logger.Error(ctx, "Failed to write moderation log",
			logger.F("commentID", params.CommentID),
			logger.F("error", err.Error()))
	}

	comment.Status = params.NewStatus
	comment.ModeratedBy = actor.UserID
	comment.ModeratedAt = &now
	comment.Reason = params.Reason

	commentKey := strconv.FormatInt(params.CommentID, 10)
	s.clearCommentCache(ctx, comment.ObjectID, comment.ObjectType)
	s.publishEvent(ctx, model.TopicModerationEvents, model.EventCommentModerated,
		comment.ObjectType, commentKey, actor.UserID, params.NewStatus)
	s.notifyModerationFeed(ctx, model.EventCommentModerated, comment.ObjectType, commentKey, actor.UserID, params.NewStatus)
	s.recordActivity(ctx, actor, model.ActionModerateComment, comment.ObjectType, commentKey, params.Reason)

	s.logger.Info(ctx, "Comment moderated",
		logger.F("commentID", params.CommentID),
		logger.F("moderatorID", actor.UserID),
		logger.F("newStatus", params.NewStatus))

	span.SetStatus(codes.Ok, "comment moderated")
	return comment, nil
}

// BatchModerateComments 批量审核，全部成功或全部失败
func (s *Service) BatchModerateComments(ctx context.Context, actor model.Actor, params *model.BatchModerateCommentsParams) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.BatchModerateComments")
	defer span.End()

	span.SetAttributes(
		attribute.Int("comment.batch_size", len(params.CommentIDs)),
		attribute.String("comment.new_status", params.NewStatus),
		attribute.Int64("moderator.id", actor.UserID),
	)

	if !actor.IsAuthenticated() {
		return 0, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return 0, model.ErrForbidden
	}

	if len(params.CommentIDs) == 0 || len(params.CommentIDs) > model.MaxBatchSize {
		return 0, model.ErrInvalidBatchSize
	}
	if err := validateModerationTarget(params.NewStatus, params.Reason); err != nil {
		return 0, err
	}

	now := time.Now()
	affected, err := s.commentDAO.BatchUpdateStatusIfPending(ctx, params.CommentIDs, params.NewStatus, actor.UserID, params.Reason, now)
	if err != nil {
		if errors.Is(err, model.ErrBatchMismatch) {
			// 任一评论缺失或已被审核，整体回滚
			span.SetStatus(codes.Error, "batch rolled back")
			return 0, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch update failed")
		return 0, fmt.Errorf("batch moderate comments: %w", err)
	}

	for _, id := range params.CommentIDs {
		if err := s.commentDAO.CreateModerationLog(ctx, &model.ModerationLog{
			CommentID:   id,
			ModeratorID: actor.UserID,
			OldStatus:   model.CommentStatusPending,
			NewStatus:   params.NewStatus,
			Reason:      params.Reason,
		}); err != nil {
			s.logger.Error(ctx, "Failed to write moderation log",
				logger.F("commentID", id),
				logger.F("error", err.Error()))
		}
	}

	batchKey := fmt.Sprintf("batch:%d", len(params.CommentIDs))
	s.publishEvent(ctx, model.TopicModerationEvents, model.EventCommentModerated,
		"comment", batchKey, actor.UserID, params.NewStatus)
	s.notifyModerationFeed(ctx, model.EventCommentModerated, "comment", batchKey, actor.UserID, params.NewStatus)
	s.recordActivity(ctx, actor, model.ActionBatchModerate, "comment", batchKey, params.Reason)

	// 批量涉及多个对象，直接清空待审核队列缓存
	if s.redis != nil {
		if keys, err := s.redis.Keys(ctx, model.CommentQueueCachePrefix+"*"); err == nil && len(keys) > 0 {
			s.redis.Del(ctx, keys...)
		}
		if keys, err := s.redis.Keys(ctx, model.CommentListCachePrefix+"*"); err == nil && len(keys) > 0 {
			s.redis.Del(ctx, keys...)
		}
	}

	s.logger.Info(ctx, "Comments batch moderated",
		logger.F("count", affected),
		logger.F("moderatorID", actor.UserID),
		logger.F("newStatus", params.NewStatus))

	span.SetStatus(codes.Ok, "batch moderated")
	return affected, nil
}

// DeleteComment 删除评论，审核权限即可，无条件写入
func (s *Service) DeleteComment(ctx context.Context, actor model.Actor, commentID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "community.service.DeleteComment")
	defer span.End()

	span.SetAttributes(attribute.Int64("comment.id", commentID))

	if !actor.IsAuthenticated() {
		return model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return model.ErrForbidden
	}

	comment, err := s.commentDAO.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrCommentNotFound
		}
		return err
	}

	if err := s.commentDAO.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrCommentNotFound
		}
		span.RecordError(err)
		return fmt.Errorf("delete comment: %w", err)
	}

	commentKey := strconv.FormatInt(commentID, 10)
	s.clearCommentCache(ctx, comment.ObjectID, comment.ObjectType)
	s.publishEvent(ctx, model.TopicModerationEvents, model.EventCommentDeleted,
		comment.ObjectType, commentKey, actor.UserID, "")
	s.recordActivity(ctx, actor, model.ActionDeleteComment, comment.ObjectType, commentKey, "")

	s.logger.Info(ctx, "Comment deleted",
		logger.F("commentID", commentID),
		logger.F("moderatorID", actor.UserID))

	span.SetStatus(codes.Ok, "comment deleted")
	return nil
}

// validateCreateCommentParams 校验创建评论参数
func (s *Service) validateCreateCommentParams(params *model.CreateCommentParams) error {
	if params.ObjectID == "" {
		return model.ErrObjectIDRequired
	}
	if params.ObjectType != model.ObjectTypeTopic && params.ObjectType != model.ObjectTypeNews {
		return model.ErrInvalidObjectType
	}

	content := strings.TrimSpace(params.Content)
	if content == "" {
		return model.ErrEmptyContent
	}
	if len([]rune(content)) > model.MaxCommentLength {
		return model.ErrContentTooLong
	}
	if params.ParentID < 0 {
		return model.ErrParentNotFound
	}

	return nil
}

// validateModerationTarget 校验审核目标状态和意见
func validateModerationTarget(status, reason string) error {
	if status != model.CommentStatusApproved && status != model.CommentStatusRejected {
		return model.ErrInvalidStatus
	}
	if len([]rune(reason)) > model.MaxReasonLength {
		return model.ErrReasonTooLong
	}
	return nil
}

// buildCommentTree 把平铺评论组装为两级树
func buildCommentTree(comments []*model.Comment) []*model.Comment {
	byID := make(map[int64]*model.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	roots := make([]*model.Comment, 0, len(comments))
	for _, c := range comments {
		if c.ParentID > 0 {
			if parent, ok := byID[c.ParentID]; ok {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}

	return roots
}
