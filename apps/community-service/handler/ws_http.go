package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
)

var moderationUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	feedWriteTimeout = 10 * time.Second
	feedPingInterval = 30 * time.Second
)

// ModerationFeed 审核实时通知，订阅Redis频道并推送到WebSocket
func (h *HTTPHandler) ModerationFeed(c *gin.Context) {
	ctx := c.Request.Context()

	actor := h.actorFromContext(c)
	if !actor.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if !actor.Can(model.CanModerate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	conn, err := moderationUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "WebSocket upgrade failed", logger.F("error", err.Error()))
		return
	}
	defer conn.Close()

	sub := h.redis.Subscribe(ctx, model.ChannelModerationFeed)
	defer sub.Close()

	h.logger.Info(ctx, "Moderation feed connected",
		logger.F("userID", actor.UserID),
		logger.F("role", string(actor.Role)))

	// 读协程只用于感知客户端断开
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingInterval)
	defer ticker.Stop()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				h.logger.Warn(ctx, "Moderation feed write failed",
					logger.F("userID", actor.UserID),
					logger.F("error", err.Error()))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			h.logger.Info(ctx, "Moderation feed disconnected", logger.F("userID", actor.UserID))
			return
		case <-ctx.Done():
			return
		}
	}
}
