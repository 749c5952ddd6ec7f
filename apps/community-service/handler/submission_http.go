package handler

import (
	"github.com/gin-gonic/gin"

	"campus-hub/pkg/errs"
	"campus-hub/pkg/httpx"
	"campus-hub/pkg/logger"
)

// createSubmissionRequest 投稿请求
type createSubmissionRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// CreateSubmission 提交投稿
func (h *HTTPHandler) CreateSubmission(c *gin.Context) {
	ctx := c.Request.Context()

	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	actor := h.actorFromContext(c)
	h.svc.EnsureProfile(ctx, actor)

	submission, err := h.svc.CreateSubmission(ctx, actor, req.Title, req.Body)
	if err != nil {
		h.logger.Warn(ctx, "Create submission failed", logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success":    true,
		"submission": h.converter.SubmissionToView(submission),
	}, nil)
}

// ListSubmissions 公开投稿列表
func (h *HTTPHandler) ListSubmissions(c *gin.Context) {
	ctx := c.Request.Context()

	page, pageSize := parsePage(c)
	submissions, total, err := h.svc.ListApprovedSubmissions(ctx, page, pageSize)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"submissions": h.converter.SubmissionsToView(submissions),
		"total":       total,
	}, nil)
}

// moderateSubmissionRequest 投稿审核请求
type moderateSubmissionRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ModerateSubmission 审核投稿
func (h *HTTPHandler) ModerateSubmission(c *gin.Context) {
	ctx := c.Request.Context()

	var req moderateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	submission, err := h.svc.ModerateSubmission(ctx, h.actorFromContext(c), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		h.logger.Warn(ctx, "Moderate submission failed",
			logger.F("submissionID", c.Param("id")),
			logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success":    true,
		"submission": h.converter.SubmissionToView(submission),
	}, nil)
}
