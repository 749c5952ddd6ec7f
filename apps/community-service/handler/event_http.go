package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"campus-hub/apps/community-service/model"
	"campus-hub/apps/community-service/service"
	"campus-hub/pkg/errs"
	"campus-hub/pkg/httpx"
	"campus-hub/pkg/logger"
)

// eventRequest 校历活动请求体
type eventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartsAt    string `json:"starts_at" binding:"required"`
	EndsAt      string `json:"ends_at" binding:"required"`
	AllDay      bool   `json:"all_day"`
}

// toParams 解析时间字段
func (r *eventRequest) toParams() (*service.EventParams, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, errs.ErrInvalidParams
	}
	endsAt, err := time.Parse(time.RFC3339, r.EndsAt)
	if err != nil {
		return nil, errs.ErrInvalidParams
	}

	return &service.EventParams{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		AllDay:      r.AllDay,
	}, nil
}

// CreateEvent 创建校历活动
func (h *HTTPHandler) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	params, err := req.toParams()
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	event, err := h.svc.CreateEvent(ctx, h.actorFromContext(c), params)
	if err != nil {
		h.logger.Warn(ctx, "Create event failed", logger.F("error", err.Error()))
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"event":   h.converter.EventToView(event),
	}, nil)
}

// UpdateEvent 更新校历活动
func (h *HTTPHandler) UpdateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	params, err := req.toParams()
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	event, err := h.svc.UpdateEvent(ctx, h.actorFromContext(c), c.Param("id"), params)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{
		"success": true,
		"event":   h.converter.EventToView(event),
	}, nil)
}

// DeleteEvent 删除校历活动
func (h *HTTPHandler) DeleteEvent(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.svc.DeleteEvent(ctx, h.actorFromContext(c), c.Param("id")); err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"success": true}, nil)
}

// ListEvents 公开区间查询
func (h *HTTPHandler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		httpx.WriteError(c, errs.ErrInvalidParams)
		return
	}

	events, err := h.svc.ListEventsInRange(ctx, &model.EventRangeParams{From: from, To: to})
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	httpx.WriteObject(c, gin.H{"events": h.converter.EventsToView(events)}, nil)
}
