package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-hub/pkg/errs"
	"campus-hub/pkg/httpx"
	"campus-hub/pkg/logger"
)

// GetProfile 获取当前用户资料
func (h *HTTPHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.svc.GetProfile(ctx, h.actorFromContext(c))
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"profile": h.converter.ProfileToView(profile)}, nil)
}

// updateProfileRequest 更新资料请求
type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// UpdateProfile 更新当前用户资料
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	profile, err := h.svc.UpdateProfile(ctx, h.actorFromContext(c), req.DisplayName, req.AvatarURL)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"profile": h.converter.ProfileToView(profile),
	}, nil)
}

// changeRoleRequest 角色变更请求
type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole 管理员变更用户角色
func (h *HTTPHandler) ChangeRole(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	if err := h.svc.ChangeRole(ctx, h.actorFromContext(c), userID, req.Role); err != nil {
		h.logger.Warn(ctx, "Change role failed",
			logger.F("userID", userID),
			logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"success": true, "role": req.Role}, nil)
}

// ListActivities 最近操作审计
func (h *HTTPHandler) ListActivities(c *gin.Context) {
	ctx := c.Request.Context()

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	activities, err := h.svc.ListRecentActivities(ctx, h.actorFromContext(c), limit)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"activities": activities}, nil)
}
