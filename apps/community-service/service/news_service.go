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

	"campus-hub/apps/community-service/dao"
	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/telemetry"
)

// CreateNewsParams 创建稿件参数
type CreateNewsParams struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
}

// CreateNews 创建稿件草稿
func (s *Service) CreateNews(ctx context.Context, actor model.Actor, params *CreateNewsParams) (*model.NewsArticle, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.CreateNews")
	defer span.End()

	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return nil, model.ErrForbidden
	}

	title := strings.TrimSpace(params.Title)
	content := strings.TrimSpace(params.Content)
	if title == "" || content == "" {
		return nil, model.ErrEmptyContent
	}

	authorName, _ := s.projectAuthor(ctx, actor)

	news := &model.NewsArticle{
		ID:         uuid.New().String(),
		Title:      title,
		Summary:    strings.TrimSpace(params.Summary),
		Content:    content,
		CoverImage: params.CoverImage,
		Status:     model.NewsStatusDraft,
		AuthorID:   actor.UserID,
		AuthorName: authorName,
	}

	if err := s.newsDAO.CreateNews(ctx, news); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create news: %w", err)
	}

	s.logger.Info(ctx, "News article created",
		logger.F("newsID", news.ID),
		logger.F("authorID", actor.UserID))

	span.SetStatus(codes.Ok, "news created")
	return news, nil
}

// UpdateNews 更新稿件内容
func (s *Service) UpdateNews(ctx context.Context, actor model.Actor, newsID string, params *CreateNewsParams) (*model.NewsArticle, error) {
	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return nil, model.ErrForbidden
	}

	news, err := s.newsDAO.GetNews(ctx, newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNewsNotFound
		}
		return nil, err
	}

	if title := strings.TrimSpace(params.Title); title != "" {
		news.Title = title
	}
	if content := strings.TrimSpace(params.Content); content != "" {
		news.Content = content
	}
	news.Summary = strings.TrimSpace(params.Summary)
	if params.CoverImage != "" {
		news.CoverImage = params.CoverImage
	}

	if err := s.newsDAO.UpdateNews(ctx, news); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}

	// 已发布稿件内容变更后同步索引
	if news.IsPublished() {
		if err := s.searchDAO.IndexNews(ctx, news); err != nil {
			s.logger.Warn(ctx, "Failed to reindex news",
				logger.F("newsID", news.ID),
				logger.F("error", err.Error()))
		}
	}

	s.clearNewsCache(ctx, news.ID)

	s.logger.Info(ctx, "News article updated",
		logger.F("newsID", news.ID),
		logger.F("actorID", actor.UserID))

	return news, nil
}

// PublishNews 发布稿件：draft -> published，写入发布时间并进入搜索索引
func (s *Service) PublishNews(ctx context.Context, actor model.Actor, newsID string) (*model.NewsArticle, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.PublishNews")
	defer span.End()

	span.SetAttributes(attribute.String("news.id", newsID))

	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return nil, model.ErrForbidden
	}

	news, err := s.newsDAO.GetNews(ctx, newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNewsNotFound
		}
		return nil, err
	}

	now := time.Now()
	updated, err := s.newsDAO.UpdateNewsStatus(ctx, newsID, model.NewsStatusDraft, model.NewsStatusPublished, &now)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("publish news: %w", err)
	}
	if !updated {
		span.SetStatus(codes.Error, "illegal transition")
		return nil, model.ErrInvalidTransition
	}

	if err := s.newsDAO.CreateStatusLog(ctx, &model.NewsStatusLog{
		NewsID:     newsID,
		OperatorID: actor.UserID,
		OldStatus:  model.NewsStatusDraft,
		NewStatus:  model.NewsStatusPublished,
	}); err != nil {
		s.logger.Error(ctx, "Failed to write news status log",
			logger.F("newsID", newsID),
			logger.F("error", err.Error()))
	}

	news.Status = model.NewsStatusPublished
	news.PublishedAt = &now

	if err := s.searchDAO.IndexNews(ctx, news); err != nil {
		s.logger.Warn(ctx, "Failed to index news",
			logger.F("newsID", newsID),
			logger.F("error", err.Error()))
	}

	s.clearNewsCache(ctx, newsID)
	s.publishEvent(ctx, model.TopicContentEvents, model.EventNewsPublished,
		model.ObjectTypeNews, newsID, actor.UserID, model.NewsStatusPublished)
	s.recordActivity(ctx, actor, model.ActionPublishNews, model.ObjectTypeNews, newsID, news.Title)

	s.logger.Info(ctx, "News article published",
		logger.F("newsID", newsID),
		logger.F("actorID", actor.UserID))

	span.SetStatus(codes.Ok, "news published")
	return news, nil
}

// ArchiveNews 归档稿件：published -> archived，移出搜索索引
func (s *Service) ArchiveNews(ctx context.Context, actor model.Actor, newsID string) (*model.NewsArticle, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.ArchiveNews")
	defer span.End()

	span.SetAttributes(attribute.String("news.id", newsID))

	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanModerate) {
		return nil, model.ErrForbidden
	}

	news, err := s.newsDAO.GetNews(ctx, newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNewsNotFound
		}
		return nil, err
	}

	updated, err := s.newsDAO.UpdateNewsStatus(ctx, newsID, model.NewsStatusPublished, model.NewsStatusArchived, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("archive news: %w", err)
	}
	if !updated {
		span.SetStatus(codes.Error, "illegal transition")
		return nil, model.ErrInvalidTransition
	}

	if err := s.newsDAO.CreateStatusLog(ctx, &model.NewsStatusLog{
		NewsID:     newsID,
		OperatorID: actor.UserID,
		OldStatus:  model.NewsStatusPublished,
		NewStatus:  model.NewsStatusArchived,
	}); err != nil {
		s.logger.Error(ctx, "Failed to write news status log",
			logger.F("newsID", newsID),
			logger.F("error", err.Error()))
	}

	news.Status = model.NewsStatusArchived

	if err := s.searchDAO.RemoveNews(ctx, newsID); err != nil {
		s.logger.Warn(ctx, "Failed to remove news from index",
			logger.F("newsID", newsID),
			logger.F("error", err.Error()))
	}

	s.clearNewsCache(ctx, newsID)
	s.publishEvent(ctx, model.TopicContentEvents, model.EventNewsArchived,
		model.ObjectTypeNews, newsID, actor.UserID, model.NewsStatusArchived)
	s.recordActivity(ctx, actor, model.ActionArchiveNews, model.ObjectTypeNews, newsID, news.Title)

	s.logger.Info(ctx, "News article archived",
		logger.F("newsID", newsID),
		logger.F("actorID", actor.UserID))

	span.SetStatus(codes.Ok, "news archived")
	return news, nil
}

// ListPublishedNews 公开稿件列表，仅返回已发布内容
func (s *Service) ListPublishedNews(ctx context.Context, page, pageSize int32) ([]*model.NewsArticle, int64, error) {
	return s.newsDAO.ListNews(ctx, &model.ListNewsParams{
		Status:   model.NewsStatusPublished,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetPublishedNews 公开稿件详情，访问计入阅读数
func (s *Service) GetPublishedNews(ctx context.Context, newsID string) (*model.NewsArticle, error) {
	news, err := s.newsDAO.GetNews(ctx, newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNewsNotFound
		}
		return nil, err
	}
	if !news.IsPublished() {
		return nil, model.ErrNewsNotFound
	}

	if err := s.newsDAO.IncrementViewCount(ctx, newsID); err != nil {
		s.logger.Warn(ctx, "Failed to increment view count",
			logger.F("newsID", newsID),
			logger.F("error", err.Error()))
	} else {
		news.ViewCount++
	}

	return news, nil
}

// Search 全文检索，搜索后端不可用时返回空结果
func (s *Service) Search(ctx context.Context, params *model.SearchParams) ([]*dao.SearchResult, int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "community.service.Search")
	defer span.End()

	span.SetAttributes(attribute.String("search.query", params.Query))

	if strings.TrimSpace(params.Query) == "" {
		return nil, 0, model.ErrEmptyContent
	}

	if !s.searchDAO.IsAvailable() {
		s.logger.Warn(ctx, "Search backend unavailable, returning empty result")
		return []*dao.SearchResult{}, 0, nil
	}

	return s.searchDAO.Search(ctx, params)
}
