package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-hub/apps/community-service/model"
)

// TestCreateEvent 测试校历活动创建权限与校验
func TestCreateEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	now := time.Now()

	params := &EventParams{
		Title:    "开学典礼",
		Location: "大礼堂",
		StartsAt: now.Add(24 * time.Hour),
		EndsAt:   now.Add(26 * time.Hour),
	}

	// 活动管理仅限管理员，版主也不行
	if _, err := env.svc.CreateEvent(ctx, modActor, params); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("版主创建活动期望403错误, 实际为 %v", err)
	}

	event, err := env.svc.CreateEvent(ctx, adminActor, params)
	if err != nil {
		t.Fatalf("创建活动失败: %v", err)
	}
	if event.CreatedBy != adminActor.UserID {
		t.Errorf("创建人应为 %d, 实际为 %d", adminActor.UserID, event.CreatedBy)
	}

	// 结束时间必须晚于开始时间
	bad := &EventParams{
		Title:    "时间倒置",
		StartsAt: now.Add(2 * time.Hour),
		EndsAt:   now.Add(time.Hour),
	}
	if _, err := env.svc.CreateEvent(ctx, adminActor, bad); !errors.Is(err, model.ErrInvalidTimeRange) {
		t.Errorf("非法时间区间期望错误, 实际为 %v", err)
	}
}

// TestListEventsInRange 测试区间查询包含跨界活动
func TestListEventsInRange(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	seed := []struct {
		title    string
		startsAt time.Time
		endsAt   time.Time
	}{
		{"区间内", base.Add(2 * time.Hour), base.Add(4 * time.Hour)},
		{"跨越起点", base.Add(-2 * time.Hour), base.Add(time.Hour)},
		{"区间外", base.Add(72 * time.Hour), base.Add(74 * time.Hour)},
	}
	for _, s := range seed {
		if _, err := env.svc.CreateEvent(ctx, adminActor, &EventParams{
			Title:    s.title,
			StartsAt: s.startsAt,
			EndsAt:   s.endsAt,
		}); err != nil {
			t.Fatalf("预置活动失败: %v", err)
		}
	}

	events, err := env.svc.ListEventsInRange(ctx, &model.EventRangeParams{
		From: base,
		To:   base.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("区间查询失败: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("期望2个活动, 实际为 %d", len(events))
	}

	if _, err := env.svc.ListEventsInRange(ctx, &model.EventRangeParams{
		From: base.Add(24 * time.Hour),
		To:   base,
	}); !errors.Is(err, model.ErrInvalidTimeRange) {
		t.Errorf("倒置区间期望错误, 实际为 %v", err)
	}
}

// TestUpdateDeleteEvent 测试活动更新和删除
func TestUpdateDeleteEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	now := time.Now()

	event, err := env.svc.CreateEvent(ctx, adminActor, &EventParams{
		Title:    "讲座",
		StartsAt: now.Add(time.Hour),
		EndsAt:   now.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("创建活动失败: %v", err)
	}

	updated, err := env.svc.UpdateEvent(ctx, adminActor, event.ID, &EventParams{
		Title:    "学术讲座",
		StartsAt: now.Add(time.Hour),
		EndsAt:   now.Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("更新活动失败: %v", err)
	}
	if updated.Title != "学术讲座" {
		t.Errorf("标题未更新, 实际为 %q", updated.Title)
	}

	if err := env.svc.DeleteEvent(ctx, adminActor, event.ID); err != nil {
		t.Fatalf("删除活动失败: %v", err)
	}
	if err := env.svc.DeleteEvent(ctx, adminActor, event.ID); !errors.Is(err, model.ErrEventNotFound) {
		t.Errorf("重复删除期望404错误, 实际为 %v", err)
	}
}
