package handler

import (
	"github.com/gin-gonic/gin"

	"campus-hub/apps/community-service/model"
	"campus-hub/apps/community-service/service"
	"campus-hub/pkg/errs"
	"campus-hub/pkg/httpx"
	"campus-hub/pkg/logger"
)

// newsRequest 稿件请求体，创建和更新共用
type newsRequest struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
}

// CreateNews 创建稿件草稿
func (h *HTTPHandler) CreateNews(c *gin.Context) {
	ctx := c.Request.Context()

	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	news, err := h.svc.CreateNews(ctx, h.actorFromContext(c), &service.CreateNewsParams{
		Title:      req.Title,
		Summary:    req.Summary,
		Content:    req.Content,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		h.logger.Warn(ctx, "Create news failed", logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"news":    h.converter.NewsToView(news),
	}, nil)
}

// UpdateNews 更新稿件内容
func (h *HTTPHandler) UpdateNews(c *gin.Context) {
	ctx := c.Request.Context()

	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	news, err := h.svc.UpdateNews(ctx, h.actorFromContext(c), c.Param("id"), &service.CreateNewsParams{
		Title:      req.Title,
		Summary:    req.Summary,
		Content:    req.Content,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"news":    h.converter.NewsToView(news),
	}, nil)
}

// PublishNews 发布稿件
func (h *HTTPHandler) PublishNews(c *gin.Context) {
	ctx := c.Request.Context()

	news, err := h.svc.PublishNews(ctx, h.actorFromContext(c), c.Param("id"))
	if err != nil {
		h.logger.Warn(ctx, "Publish news failed",
			logger.F("newsID", c.Param("id")),
			logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"news":    h.converter.NewsToView(news),
	}, nil)
}

// ArchiveNews 归档稿件
func (h *HTTPHandler) ArchiveNews(c *gin.Context) {
	ctx := c.Request.Context()

	news, err := h.svc.ArchiveNews(ctx, h.actorFromContext(c), c.Param("id"))
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"news":    h.converter.NewsToView(news),
	}, nil)
}

// ListNews 公开稿件列表
func (h *HTTPHandler) ListNews(c *gin.Context) {
	ctx := c.Request.Context()

	page, pageSize := parsePage(c)
	articles, total, err := h.svc.ListPublishedNews(ctx, page, pageSize)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"news":  h.converter.NewsListToView(articles),
		"total": total,
	}, nil)
}

// GetNews 公开稿件详情
func (h *HTTPHandler) GetNews(c *gin.Context) {
	ctx := c.Request.Context()

	news, err := h.svc.GetPublishedNews(ctx, c.Param("id"))
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"news": h.converter.NewsToView(news)}, nil)
}

// Search 全文检索
func (h *HTTPHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	page, pageSize := parsePage(c)
	results, total, err := h.svc.Search(ctx, &model.SearchParams{
		Query:    c.Query("q"),
		Type:     c.Query("type"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"results": results,
		"total":   total,
	}, nil)
}
