package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/telemetry"
)

// CreateSubmission 提交投稿，任何已认证用户可投，一律进入待审核状态
func (s *Service) CreateSubmission(ctx context.Context, actor model.Actor, title, body string) (*model.Submission, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.CreateSubmission")
	defer span.End()

	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, model.ErrEmptyContent
	}

	authorName, _ := s.projectAuthor(ctx, actor)

	submission := &model.Submission{
		ID:         uuid.New().String(),
		Title:      title,
		Body:       body,
		AuthorID:   actor.UserID,
		AuthorName: authorName,
		Status:     model.SubmissionStatusPending,
	}

	if err := s.submissionDAO.CreateSubmission(ctx, submission); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.logger.Info(ctx, "Submission created",
		logger.F("submissionID", submission.ID),
		logger.F("authorID", actor.UserID))

	span.SetStatus(codes.Ok, "submission created")
	return submission, nil
}

// ListApprovedSubmissions 公开投稿列表，仅返回已通过的投稿
func (s *Service) ListApprovedSubmissions(ctx context.Context, page, pageSize int32) ([]*model.Submission, int64, error) {
	return s.submissionDAO.ListSubmissions(ctx, model.SubmissionStatusApproved, page, pageSize)
}

// ModerateSubmission 审核投稿，与评论审核相同的条件更新保护
func (s *Service) ModerateSubmission(ctx context.Context, actor model.Actor, submissionID, newStatus, reason string) (*model.Submission, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.ModerateSubmission")
	defer span.End()

	span.SetAttributes(
		attribute.String("submission.id", submissionID),
		attribute.String("submission.new_status", newStatus),
	)

	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return nil, model.ErrForbidden
	}

	if newStatus != model.SubmissionStatusApproved && newStatus != model.SubmissionStatusRejected {
		return nil, model.ErrInvalidStatus
	}
	if len([]rune(reason)) > model.MaxReasonLength {
		return nil, model.ErrReasonTooLong
	}

	submission, err := s.submissionDAO.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, err
	}

	now := time.Now()
	updated, err := s.submissionDAO.UpdateStatusIfPending(ctx, submissionID, newStatus, actor.UserID, reason, now)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("moderate submission: %w", err)
	}
	if !updated {
		span.SetStatus(codes.Error, "already moderated")
		return nil, model.ErrSubmissionModerated
	}

	submission.Status = newStatus
	submission.ModeratedBy = actor.UserID
	submission.ModeratedAt = &now
	submission.Reason = reason

	s.publishEvent(ctx, model.TopicModerationEvents, model.EventSubmissionReviewed,
		"submission", submissionID, actor.UserID, newStatus)
	s.notifyModerationFeed(ctx, model.EventSubmissionReviewed, "submission", submissionID, actor.UserID, newStatus)
	s.recordActivity(ctx, actor, model.ActionModerateSubmit, "submission", submissionID, reason)

	s.logger.Info(ctx, "Submission moderated",
		logger.F("submissionID", submissionID),
		logger.F("moderatorID", actor.UserID),
		logger.F("newStatus", newStatus))

	span.SetStatus(codes.Ok, "submission moderated")
	return submission, nil
}
