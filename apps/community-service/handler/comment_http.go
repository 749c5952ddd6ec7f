package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/errs"
	"campus-hub/pkg/httpx"
	"campus-hub/pkg/logger"
)

// createCommentRequest 创建评论请求
type createCommentRequest struct {
	ObjectID   string `json:"object_id" binding:"required"`
	ObjectType string `json:"object_type" binding:"required"`
	Content    string `json:"content" binding:"required"`
	ParentID   string `json:"parent_id"`
}

// CreateComment 创建评论
func (h *HTTPHandler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(ctx, "Invalid create comment request", logger.F("error", err.Error()))
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	var parentID int64
	if req.ParentID != "" {
		var err error
		parentID, err = strconv.ParseInt(req.ParentID, 10, 64)
		if err != nil {
			httpx.WriteError(c, errs.ErrInvalidParams)
			return
		}
	}

	actor := h.actorFromContext(c)
	h.svc.EnsureProfile(ctx, actor)

	comment, err := h.svc.CreateComment(ctx, actor, &model.CreateCommentParams{
		ObjectID:   req.ObjectID,
		ObjectType: req.ObjectType,
		Content:    req.Content,
		ParentID:   parentID,
	})
	if err != nil {
		h.logger.Warn(ctx, "Create comment failed", logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"comment": h.converter.CommentToView(comment),
	}, nil)
}

// GetComments 公开评论列表
func (h *HTTPHandler) GetComments(c *gin.Context) {
	ctx := c.Request.Context()

	page, pageSize := parsePage(c)
	comments, total, err := h.svc.GetComments(ctx, &model.GetCommentsParams{
		ObjectID:   c.Query("object_id"),
		ObjectType: c.Query("object_type"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"comments": h.converter.CommentsToView(comments),
		"total":    total,
	}, nil)
}

// GetPendingComments 待审核队列
func (h *HTTPHandler) GetPendingComments(c *gin.Context) {
	ctx := c.Request.Context()

	page, pageSize := parsePage(c)
	comments, total, err := h.svc.GetPendingComments(ctx, h.actorFromContext(c), page, pageSize)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"comments": h.converter.CommentsToView(comments),
		"total":    total,
	}, nil)
}

// moderateCommentsRequest 审核请求，单条和批量共用一个入口
type moderateCommentsRequest struct {
	CommentID  string   `json:"comment_id"`
	CommentIDs []string `json:"comment_ids"`
	Status     string   `json:"status" binding:"required"`
	Reason     string   `json:"reason"`
}

// ModerateComments 审核评论，支持单条和批量
func (h *HTTPHandler) ModerateComments(c *gin.Context) {
	ctx := c.Request.Context()

	var req moderateCommentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(ctx, "Invalid moderation request", logger.F("error", err.Error()))
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	actor := h.actorFromContext(c)

	// 批量分支
	if len(req.CommentIDs) > 0 {
		ids, err := parseCommentIDs(req.CommentIDs)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}

		count, err := h.svc.BatchModerateComments(ctx, actor, &model.BatchModerateCommentsParams{
			CommentIDs: ids,
			NewStatus:  req.Status,
			Reason:     req.Reason,
		})
		if err != nil {
			h.logger.Warn(ctx, "Batch moderation failed", logger.F("error", err.Error()))
			httpx.WriteError(c, err)
			return
		}

		httpx.WriteObject(c, gin.H{
			"message":         "comments moderated",
			"processed_count": count,
		}, nil)
		return
	}

	commentID, err := strconv.ParseInt(req.CommentID, 10, 64)
	if err != nil || commentID <= 0 {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	comment, err := h.svc.ModerateComment(ctx, actor, &model.ModerateCommentParams{
		CommentID: commentID,
		NewStatus: req.Status,
		Reason:    req.Reason,
	})
	if err != nil {
		h.logger.Warn(ctx, "Moderation failed",
			logger.F("commentID", commentID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"comment": h.converter.CommentToView(comment),
	}, nil)
}

// parseCommentIDs 解析批量审核的评论ID，批量按集合处理，重复ID去重且保持原顺序
func parseCommentIDs(raw []string) ([]int64, error) {
	seen := make(map[int64]struct{}, len(raw))
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return nil, errs.ErrInvalidParams
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// DeleteComment 删除评论
func (h *HTTPHandler) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || commentID <= 0 {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	if err := h.svc.DeleteComment(ctx, h.actorFromContext(c), commentID); err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"success": true}, nil)
}
