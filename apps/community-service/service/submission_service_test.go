package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"campus-hub/apps/community-service/model"
)

// TestCreateSubmission 测试投稿进入待审核状态
func TestCreateSubmission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	submission, err := env.svc.CreateSubmission(ctx, memberActor, "十四行诗", "我的原创作品……")
	if err != nil {
		t.Fatalf("投稿失败: %v", err)
	}
	if submission.Status != model.SubmissionStatusPending {
		t.Errorf("新投稿应为pending, 实际为 %s", submission.Status)
	}

	// 待审核投稿不进入公开列表
	approved, total, err := env.svc.ListApprovedSubmissions(ctx, 1, 20)
	if err != nil {
		t.Fatalf("查询公开投稿失败: %v", err)
	}
	if total != 0 || len(approved) != 0 {
		t.Error("待审核投稿不应公开")
	}

	if _, err := env.svc.CreateSubmission(ctx, anonActor, "标题", "内容"); !errors.Is(err, model.ErrUnauthenticated) {
		t.Errorf("未认证投稿期望401错误, 实际为 %v", err)
	}
	if _, err := env.svc.CreateSubmission(ctx, memberActor, "  ", "内容"); !errors.Is(err, model.ErrEmptyContent) {
		t.Errorf("空标题期望错误, 实际为 %v", err)
	}
}

// TestModerateSubmission 测试投稿审核
func TestModerateSubmission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	submission, err := env.svc.CreateSubmission(ctx, memberActor, "投稿", "正文")
	if err != nil {
		t.Fatalf("投稿失败: %v", err)
	}

	if _, err := env.svc.ModerateSubmission(ctx, memberActor, submission.ID, model.SubmissionStatusApproved, ""); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("普通成员审核期望403错误, 实际为 %v", err)
	}

	moderated, err := env.svc.ModerateSubmission(ctx, modActor, submission.ID, model.SubmissionStatusApproved, "质量不错")
	if err != nil {
		t.Fatalf("审核失败: %v", err)
	}
	if moderated.Status != model.SubmissionStatusApproved {
		t.Errorf("期望approved, 实际为 %s", moderated.Status)
	}

	// 审核后进入公开列表
	approved, total, err := env.svc.ListApprovedSubmissions(ctx, 1, 20)
	if err != nil {
		t.Fatalf("查询公开投稿失败: %v", err)
	}
	if total != 1 || len(approved) != 1 {
		t.Errorf("期望1条公开投稿, 实际为 %d", total)
	}

	// 重复审核返回冲突，错误信息指向投稿而非评论
	_, err = env.svc.ModerateSubmission(ctx, adminActor, submission.ID, model.SubmissionStatusRejected, "")
	if !errors.Is(err, model.ErrSubmissionModerated) {
		t.Errorf("重复审核期望冲突错误, 实际为 %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "submission already moderated") {
		t.Errorf("冲突错误应指明投稿实体, 实际为 %v", err)
	}

	if _, err := env.svc.ModerateSubmission(ctx, modActor, "missing", model.SubmissionStatusApproved, ""); !errors.Is(err, model.ErrSubmissionNotFound) {
		t.Errorf("审核不存在的投稿期望404错误, 实际为 %v", err)
	}
	if _, err := env.svc.ModerateSubmission(ctx, modActor, submission.ID, "maybe", ""); !errors.Is(err, model.ErrInvalidStatus) {
		t.Errorf("非法目标状态期望错误, 实际为 %v", err)
	}
}
