package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
)

// EventParams 校历活动参数
type EventParams struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	AllDay      bool      `json:"all_day"`
}

// CreateEvent 创建校历活动，仅管理员
func (s *Service) CreateEvent(ctx context.Context, actor model.Actor, params *EventParams) (*model.CalendarEvent, error) {
	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanAdministrate) {
		return nil, model.ErrForbidden
	}

	if err := validateEventParams(params); err != nil {
		return nil, err
	}

	event := &model.CalendarEvent{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Location:    params.Location,
		StartsAt:    params.StartsAt,
		EndsAt:      params.EndsAt,
		AllDay:      params.AllDay,
		CreatedBy:   actor.UserID,
	}

	if err := s.eventDAO.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.recordActivity(ctx, actor, model.ActionCreateEvent, "event", event.ID, event.Title)

	s.logger.Info(ctx, "Calendar event created",
		logger.F("eventID", event.ID),
		logger.F("actorID", actor.UserID))

	return event, nil
}

// UpdateEvent 更新校历活动
func (s *Service) UpdateEvent(ctx context.Context, actor model.Actor, eventID string, params *EventParams) (*model.CalendarEvent, error) {
	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}
	if !actor.Can(model.CanAdministrate) {
		return nil, model.ErrForbidden
	}

	if err := validateEventParams(params); err != nil {
		return nil, err
	}

	event, err := s.eventDAO.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, err
	}

	event.Title = strings.TrimSpace(params.Title)
	event.Description = params.Description
	event.Location = params.Location
	event.StartsAt = params.StartsAt
	event.EndsAt = params.EndsAt
	event.AllDay = params.AllDay

	if err := s.eventDAO.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.recordActivity(ctx, actor, model.ActionUpdateEvent, "event", event.ID, event.Title)

	s.logger.Info(ctx, "Calendar event updated",
		logger.F("eventID", event.ID),
		logger.F("actorID", actor.UserID))

	return event, nil
}

// DeleteEvent 删除校历活动
func (s *Service) DeleteEvent(ctx context.Context, actor model.Actor, eventID string) error {
	if !actor.IsAuthenticated() {
		return model.ErrUnauthenticated
	}
	if !actor.Can(model.CanAdministrate) {
		return model.ErrForbidden
	}

	if err := s.eventDAO.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	s.recordActivity(ctx, actor, model.ActionDeleteEvent, "event", eventID, "")

	s.logger.Info(ctx, "Calendar event deleted",
		logger.F("eventID", eventID),
		logger.F("actorID", actor.UserID))

	return nil
}

// ListEventsInRange 公开区间查询，按开始时间排序
func (s *Service) ListEventsInRange(ctx context.Context, params *model.EventRangeParams) ([]*model.CalendarEvent, error) {
	if params.From.IsZero() || params.To.IsZero() || !params.To.After(params.From) {
		return nil, model.ErrInvalidTimeRange
	}
	return s.eventDAO.ListEventsInRange(ctx, params.From, params.To)
}

// validateEventParams 校验活动参数
func validateEventParams(params *EventParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return model.ErrEmptyContent
	}
	if params.StartsAt.IsZero() || params.EndsAt.IsZero() || !params.EndsAt.After(params.StartsAt) {
		return model.ErrInvalidTimeRange
	}
	return nil
}
