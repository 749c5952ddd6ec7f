package handler

import (
	"github.com/gin-gonic/gin"

	"campus-hub/pkg/errs"
	"campus-hub/pkg/httpx"
	"campus-hub/pkg/logger"
)

// createTopicRequest 创建话题请求
type createTopicRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateTopic 创建话题
func (h *HTTPHandler) CreateTopic(c *gin.Context) {
	ctx := c.Request.Context()

	var req createTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	topic, err := h.svc.CreateTopic(ctx, h.actorFromContext(c), req.Title, req.Content)
	if err != nil {
		h.logger.Warn(ctx, "Create topic failed", logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"topic":   h.converter.TopicToView(topic),
	}, nil)
}

// ListTopics 话题列表
func (h *HTTPHandler) ListTopics(c *gin.Context) {
	ctx := c.Request.Context()

	page, pageSize := parsePage(c)
	topics, total, err := h.svc.ListTopics(ctx, page, pageSize)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"topics": h.converter.TopicsToView(topics),
		"total":  total,
	}, nil)
}

// GetTopic 话题详情
func (h *HTTPHandler) GetTopic(c *gin.Context) {
	ctx := c.Request.Context()

	topic, err := h.svc.GetTopic(ctx, c.Param("id"))
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"topic": h.converter.TopicToView(topic)}, nil)
}

// LockTopic 锁定话题
func (h *HTTPHandler) LockTopic(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.svc.LockTopic(ctx, h.actorFromContext(c), c.Param("id")); err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"success": true, "status": "locked"}, nil)
}

// UnlockTopic 解锁话题
func (h *HTTPHandler) UnlockTopic(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.svc.UnlockTopic(ctx, h.actorFromContext(c), c.Param("id")); err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"success": true, "status": "open"}, nil)
}

// DeleteTopic 删除话题
func (h *HTTPHandler) DeleteTopic(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.svc.DeleteTopic(ctx, h.actorFromContext(c), c.Param("id")); err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"success": true}, nil)
}
