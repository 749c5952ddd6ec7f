package service

import (
	"context"
	"errors"
	"testing"

	"campus-hub/apps/community-service/model"
)

// TestEnsureProfile 测试首次请求落资料行
func TestEnsureProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.svc.EnsureProfile(ctx, memberActor)

	profile, err := env.profiles.GetProfile(ctx, memberActor.UserID)
	if err != nil {
		t.Fatalf("资料行未创建: %v", err)
	}
	if profile.DisplayName != "student" {
		t.Errorf("展示名应取邮箱前缀, 实际为 %q", profile.DisplayName)
	}

	// 二次调用不覆盖已有资料
	profile.DisplayName = "自定义昵称"
	env.svc.EnsureProfile(ctx, memberActor)
	if env.profiles.profiles[memberActor.UserID].DisplayName != "自定义昵称" {
		t.Error("重复调用不应覆盖已有资料")
	}

	// 未认证主体不落行
	env.svc.EnsureProfile(ctx, anonActor)
	if len(env.profiles.profiles) != 1 {
		t.Error("未认证主体不应创建资料")
	}
}

// TestUpdateProfile 测试更新展示名和头像
func TestUpdateProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	profile, err := env.svc.UpdateProfile(ctx, memberActor, "小王", "https://cdn.campus.edu/a.png")
	if err != nil {
		t.Fatalf("更新资料失败: %v", err)
	}
	if profile.DisplayName != "小王" || profile.AvatarURL != "https://cdn.campus.edu/a.png" {
		t.Errorf("资料未更新: %+v", profile)
	}

	if _, err := env.svc.UpdateProfile(ctx, anonActor, "匿名", ""); !errors.Is(err, model.ErrUnauthenticated) {
		t.Errorf("未认证更新期望401错误, 实际为 %v", err)
	}
}

// TestChangeRole 测试角色变更权限
func TestChangeRole(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.svc.EnsureProfile(ctx, memberActor)

	// 版主没有管理权限
	if err := env.svc.ChangeRole(ctx, modActor, memberActor.UserID, "mod"); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("版主改角色期望403错误, 实际为 %v", err)
	}

	if err := env.svc.ChangeRole(ctx, adminActor, memberActor.UserID, "mod"); err != nil {
		t.Fatalf("管理员改角色失败: %v", err)
	}
	if env.profiles.profiles[memberActor.UserID].Role != "mod" {
		t.Error("角色未更新")
	}

	if err := env.svc.ChangeRole(ctx, adminActor, memberActor.UserID, "superuser"); !errors.Is(err, model.ErrInvalidRole) {
		t.Errorf("非法角色期望错误, 实际为 %v", err)
	}
	if err := env.svc.ChangeRole(ctx, adminActor, 99999, "mod"); !errors.Is(err, model.ErrProfileNotFound) {
		t.Errorf("改不存在用户期望404错误, 实际为 %v", err)
	}

	// 变更应留下审计记录
	if len(env.audit.activities) != 1 {
		t.Errorf("期望1条审计记录, 实际为 %d", len(env.audit.activities))
	}
}

// TestListRecentActivities 测试审计查询权限
func TestListRecentActivities(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.svc.ListRecentActivities(ctx, memberActor, 50); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("普通成员查审计期望403错误, 实际为 %v", err)
	}
	if _, err := env.svc.ListRecentActivities(ctx, modActor, 50); err != nil {
		t.Errorf("版主查审计不应报错: %v", err)
	}
}
