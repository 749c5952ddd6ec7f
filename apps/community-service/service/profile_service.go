package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
)

// EnsureProfile 首次见到的用户落一条资料行，身份来自外部签发的JWT
func (s *Service) EnsureProfile(ctx context.Context, actor model.Actor) {
	if !actor.IsAuthenticated() {
		return
	}

	profile := &model.Profile{
		UserID:      actor.UserID,
		DisplayName: defaultDisplayName(actor),
		Role:        string(actor.Role),
		Email:       actor.Email,
	}

	if err := s.profileDAO.UpsertProfile(ctx, profile); err != nil {
		s.logger.Warn(ctx, "Failed to upsert profile",
			logger.F("userID", actor.UserID),
			logger.F("error", err.Error()))
	}
}

// GetProfile 获取当前用户资料
func (s *Service) GetProfile(ctx context.Context, actor model.Actor) (*model.Profile, error) {
	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}

	s.EnsureProfile(ctx, actor)

	profile, err := s.profileDAO.GetProfile(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile 用户更新自己的展示名和头像
func (s *Service) UpdateProfile(ctx context.Context, actor model.Actor, displayName, avatarURL string) (*model.Profile, error) {
	if !actor.IsAuthenticated() {
		return nil, model.ErrUnauthenticated
	}

	s.EnsureProfile(ctx, actor)

	if err := s.profileDAO.UpdateProfile(ctx, actor.UserID, displayName, avatarURL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return s.profileDAO.GetProfile(ctx, actor.UserID)
}

// ChangeRole 管理员变更用户角色
func (s *Service) ChangeRole(ctx context.Context, actor model.Actor, userID int64, newRole string) error {
	if !actor.IsAuthenticated() {
		return model.ErrUnauthenticated
	}
	if !actor.Can(model.CanAdministrate) {
		return model.ErrForbidden
	}

	if !model.IsValidRole(newRole) {
		return model.ErrInvalidRole
	}

	if err := s.profileDAO.UpdateRole(ctx, userID, newRole); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrProfileNotFound
		}
		return fmt.Errorf("change role: %w", err)
	}

	s.recordActivity(ctx, actor, model.ActionChangeRole, "profile", strconv.FormatInt(userID, 10), newRole)

	s.logger.Info(ctx, "User role changed",
		logger.F("userID", userID),
		logger.F("newRole", newRole),
		logger.F("actorID", actor.UserID))

	return nil
}
