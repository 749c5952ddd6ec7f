package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/errs"
	"campus-hub/pkg/httpx"
)

// seedOpenTopic 预置一个开放话题
func seedOpenTopic(env *testEnv, id string) {
	env.topics.topics[id] = &model.Topic{
		ID:       id,
		Title:    "校园生活",
		Content:  "随便聊聊",
		Status:   model.TopicStatusOpen,
		AuthorID: adminActor.UserID,
	}
}

// seedPendingComment 预置一条待审核评论
func seedPendingComment(env *testEnv, objectID string) *model.Comment {
	comment := &model.Comment{
		ObjectID:   objectID,
		ObjectType: model.ObjectTypeTopic,
		AuthorID:   memberActor.UserID,
		Content:    "这是一条评论",
		Status:     model.CommentStatusPending,
	}
	env.comments.CreateComment(context.Background(), comment)
	return comment
}

// TestCreateComment 测试评论创建进入待审核状态
func TestCreateComment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")

	comment, err := env.svc.CreateComment(ctx, memberActor, &model.CreateCommentParams{
		ObjectID:   "topic-1",
		ObjectType: model.ObjectTypeTopic,
		Content:    "  支持一下  ",
	})
	if err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	if comment.Status != model.CommentStatusPending {
		t.Errorf("新评论状态应为pending, 实际为 %s", comment.Status)
	}
	if comment.Content != "支持一下" {
		t.Errorf("评论内容应去除首尾空白, 实际为 %q", comment.Content)
	}
	if comment.AuthorName != "student" {
		t.Errorf("展示名应回退邮箱前缀, 实际为 %q", comment.AuthorName)
	}
}

// TestCreateCommentUnauthenticated 测试未认证用户不能评论
func TestCreateCommentUnauthenticated(t *testing.T) {
	env := newTestEnv()
	seedOpenTopic(env, "topic-1")

	_, err := env.svc.CreateComment(context.Background(), anonActor, &model.CreateCommentParams{
		ObjectID:   "topic-1",
		ObjectType: model.ObjectTypeTopic,
		Content:    "测试",
	})
	if !errors.Is(err, model.ErrUnauthenticated) {
		t.Errorf("期望未认证错误, 实际为 %v", err)
	}
}

// TestCreateCommentOnLockedTopic 测试锁定话题拒绝新评论
func TestCreateCommentOnLockedTopic(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	env.topics.topics["topic-1"].Status = model.TopicStatusLocked

	_, err := env.svc.CreateComment(ctx, memberActor, &model.CreateCommentParams{
		ObjectID:   "topic-1",
		ObjectType: model.ObjectTypeTopic,
		Content:    "晚了一步",
	})
	if !errors.Is(err, model.ErrTopicLocked) {
		t.Errorf("期望话题已锁定错误, 实际为 %v", err)
	}
}

// TestCreateCommentValidation 测试评论参数校验
func TestCreateCommentValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")

	cases := []struct {
		name    string
		params  *model.CreateCommentParams
		wantErr error
	}{
		{
			name:    "空内容",
			params:  &model.CreateCommentParams{ObjectID: "topic-1", ObjectType: model.ObjectTypeTopic, Content: "   "},
			wantErr: model.ErrEmptyContent,
		},
		{
			name: "超长内容",
			params: &model.CreateCommentParams{
				ObjectID:   "topic-1",
				ObjectType: model.ObjectTypeTopic,
				Content:    strings.Repeat("长", model.MaxCommentLength+1),
			},
			wantErr: model.ErrContentTooLong,
		},
		{
			name:    "缺少对象ID",
			params:  &model.CreateCommentParams{ObjectID: "", ObjectType: model.ObjectTypeTopic, Content: "测试"},
			wantErr: model.ErrObjectIDRequired,
		},
		{
			name:    "非法对象类型",
			params:  &model.CreateCommentParams{ObjectID: "topic-1", ObjectType: "blog", Content: "测试"},
			wantErr: model.ErrInvalidObjectType,
		},
		{
			name:    "对象不存在",
			params:  &model.CreateCommentParams{ObjectID: "no-such-topic", ObjectType: model.ObjectTypeTopic, Content: "测试"},
			wantErr: model.ErrTopicNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.CreateComment(ctx, memberActor, tc.params)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("期望 %v, 实际为 %v", tc.wantErr, err)
			}
		})
	}
}

// TestCreateCommentParentMismatch 测试跨对象回复被拒绝
func TestCreateCommentParentMismatch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	seedOpenTopic(env, "topic-2")
	parent := seedPendingComment(env, "topic-1")

	_, err := env.svc.CreateComment(ctx, memberActor, &model.CreateCommentParams{
		ObjectID:   "topic-2",
		ObjectType: model.ObjectTypeTopic,
		Content:    "回复到别的话题",
		ParentID:   parent.ID,
	})
	if !errors.Is(err, model.ErrParentMismatch) {
		t.Errorf("期望父评论归属错误, 实际为 %v", err)
	}

	_, err = env.svc.CreateComment(ctx, memberActor, &model.CreateCommentParams{
		ObjectID:   "topic-1",
		ObjectType: model.ObjectTypeTopic,
		Content:    "回复不存在的评论",
		ParentID:   99999,
	})
	if !errors.Is(err, model.ErrParentNotFound) {
		t.Errorf("期望父评论不存在错误, 实际为 %v", err)
	}
}

// TestGetCommentsOnlyApproved 测试公开列表只返回已通过评论
func TestGetCommentsOnlyApproved(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")

	pending := seedPendingComment(env, "topic-1")
	approved := seedPendingComment(env, "topic-1")
	approved.Status = model.CommentStatusApproved
	env.comments.comments[approved.ID] = approved

	comments, total, err := env.svc.GetComments(ctx, &model.GetCommentsParams{
		ObjectID:   "topic-1",
		ObjectType: model.ObjectTypeTopic,
	})
	if err != nil {
		t.Fatalf("获取评论失败: %v", err)
	}
	if total != 1 || len(comments) != 1 {
		t.Fatalf("期望1条已通过评论, 实际为 %d", total)
	}
	if comments[0].ID == pending.ID {
		t.Error("待审核评论不应出现在公开列表")
	}

	if _, _, err := env.svc.GetComments(ctx, &model.GetCommentsParams{
		ObjectType: model.ObjectTypeTopic,
	}); !errors.Is(err, model.ErrObjectIDRequired) {
		t.Errorf("缺少object_id期望参数错误, 实际为 %v", err)
	}
}

// TestModerateComment 测试正常审核流程
func TestModerateComment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	comment := seedPendingComment(env, "topic-1")

	moderated, err := env.svc.ModerateComment(ctx, modActor, &model.ModerateCommentParams{
		CommentID: comment.ID,
		NewStatus: model.CommentStatusApproved,
		Reason:    "内容合规",
	})
	if err != nil {
		t.Fatalf("审核失败: %v", err)
	}
	if moderated.Status != model.CommentStatusApproved {
		t.Errorf("期望状态approved, 实际为 %s", moderated.Status)
	}
	if moderated.ModeratedBy != modActor.UserID {
		t.Errorf("审核人应为 %d, 实际为 %d", modActor.UserID, moderated.ModeratedBy)
	}
	if moderated.ModeratedAt == nil {
		t.Error("审核时间不应为空")
	}
	if len(env.comments.logs) != 1 {
		t.Errorf("期望1条审核日志, 实际为 %d", len(env.comments.logs))
	}
}

// TestModerateCommentTwice 测试重复审核返回冲突
func TestModerateCommentTwice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	comment := seedPendingComment(env, "topic-1")

	if _, err := env.svc.ModerateComment(ctx, modActor, &model.ModerateCommentParams{
		CommentID: comment.ID,
		NewStatus: model.CommentStatusApproved,
	}); err != nil {
		t.Fatalf("首次审核失败: %v", err)
	}

	_, err := env.svc.ModerateComment(ctx, adminActor, &model.ModerateCommentParams{
		CommentID: comment.ID,
		NewStatus: model.CommentStatusRejected,
	})
	if !errors.Is(err, model.ErrCommentModerated) {
		t.Errorf("期望已审核冲突, 实际为 %v", err)
	}

	// 第一次的结果不能被覆盖
	stored := env.comments.comments[comment.ID]
	if stored.Status != model.CommentStatusApproved {
		t.Errorf("首次审核结果被覆盖, 实际状态 %s", stored.Status)
	}
}

// TestModerateCommentPermission 测试审核权限检查
func TestModerateCommentPermission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	comment := seedPendingComment(env, "topic-1")

	params := &model.ModerateCommentParams{
		CommentID: comment.ID,
		NewStatus: model.CommentStatusApproved,
	}

	if _, err := env.svc.ModerateComment(ctx, anonActor, params); !errors.Is(err, model.ErrUnauthenticated) {
		t.Errorf("未认证主体期望401错误, 实际为 %v", err)
	}
	if _, err := env.svc.ModerateComment(ctx, memberActor, params); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("普通成员期望403错误, 实际为 %v", err)
	}

	stored := env.comments.comments[comment.ID]
	if stored.Status != model.CommentStatusPending {
		t.Errorf("被拒绝的请求不应改变状态, 实际为 %s", stored.Status)
	}
}

// TestModerateCommentInvalidTarget 测试非法目标状态
func TestModerateCommentInvalidTarget(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	comment := seedPendingComment(env, "topic-1")

	_, err := env.svc.ModerateComment(ctx, modActor, &model.ModerateCommentParams{
		CommentID: comment.ID,
		NewStatus: model.CommentStatusPending,
	})
	if !errors.Is(err, model.ErrInvalidStatus) {
		t.Errorf("pending不是合法目标状态, 实际错误 %v", err)
	}

	_, err = env.svc.ModerateComment(ctx, modActor, &model.ModerateCommentParams{
		CommentID: comment.ID,
		NewStatus: model.CommentStatusRejected,
		Reason:    strings.Repeat("理", model.MaxReasonLength+1),
	})
	if !errors.Is(err, model.ErrReasonTooLong) {
		t.Errorf("期望审核意见超长错误, 实际为 %v", err)
	}

	_, err = env.svc.ModerateComment(ctx, modActor, &model.ModerateCommentParams{
		CommentID: 99999,
		NewStatus: model.CommentStatusApproved,
	})
	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("期望评论不存在错误, 实际为 %v", err)
	}
}

// TestBatchModerateComments 测试批量审核全部成功
func TestBatchModerateComments(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")

	ids := make([]int64, 0, 3)
	for i := 0; i < 3; i++ {
		comment := seedPendingComment(env, "topic-1")
		ids = append(ids, comment.ID)
	}

	count, err := env.svc.BatchModerateComments(ctx, modActor, &model.BatchModerateCommentsParams{
		CommentIDs: ids,
		NewStatus:  model.CommentStatusApproved,
	})
	if err != nil {
		t.Fatalf("批量审核失败: %v", err)
	}
	if count != 3 {
		t.Errorf("期望处理3条, 实际为 %d", count)
	}
	for _, id := range ids {
		if env.comments.comments[id].Status != model.CommentStatusApproved {
			t.Errorf("评论 %d 未被更新", id)
		}
	}
}

// TestBatchModerateCommentsAllOrNothing 测试批量审核整体回滚
func TestBatchModerateCommentsAllOrNothing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")

	first := seedPendingComment(env, "topic-1")
	second := seedPendingComment(env, "topic-1")
	second.Status = model.CommentStatusApproved

	_, err := env.svc.BatchModerateComments(ctx, modActor, &model.BatchModerateCommentsParams{
		CommentIDs: []int64{first.ID, second.ID},
		NewStatus:  model.CommentStatusRejected,
	})
	if !errors.Is(err, model.ErrBatchMismatch) {
		t.Fatalf("期望批量冲突错误, 实际为 %v", err)
	}

	// 批内其它评论不能有部分写入
	if env.comments.comments[first.ID].Status != model.CommentStatusPending {
		t.Error("回滚后首条评论应保持pending")
	}
}

// TestBatchModerateCommentsStorageFailure 测试存储故障不被当作状态冲突
func TestBatchModerateCommentsStorageFailure(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	comment := seedPendingComment(env, "topic-1")
	env.comments.batchErr = errors.New("connection refused: database is down")

	_, err := env.svc.BatchModerateComments(ctx, modActor, &model.BatchModerateCommentsParams{
		CommentIDs: []int64{comment.ID},
		NewStatus:  model.CommentStatusApproved,
	})
	if err == nil {
		t.Fatal("存储故障应返回错误")
	}
	if errors.Is(err, errs.ErrConflict) {
		t.Errorf("存储故障不应映射为冲突: %v", err)
	}
	if got := httpx.StatusOf(err); got != http.StatusInternalServerError {
		t.Errorf("存储故障期望500, 实际为 %d", got)
	}
}

// TestBatchModerateCommentsSizeLimit 测试批量大小限制
func TestBatchModerateCommentsSizeLimit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tooMany := make([]int64, model.MaxBatchSize+1)
	for i := range tooMany {
		tooMany[i] = int64(i + 1)
	}

	if _, err := env.svc.BatchModerateComments(ctx, modActor, &model.BatchModerateCommentsParams{
		CommentIDs: tooMany,
		NewStatus:  model.CommentStatusApproved,
	}); !errors.Is(err, model.ErrInvalidBatchSize) {
		t.Errorf("超出批量上限期望错误, 实际为 %v", err)
	}

	if _, err := env.svc.BatchModerateComments(ctx, modActor, &model.BatchModerateCommentsParams{
		CommentIDs: nil,
		NewStatus:  model.CommentStatusApproved,
	}); !errors.Is(err, model.ErrInvalidBatchSize) {
		t.Errorf("空批量期望错误, 实际为 %v", err)
	}
}

// TestGetPendingCommentsPermission 测试待审核队列权限
func TestGetPendingCommentsPermission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	seedPendingComment(env, "topic-1")

	if _, _, err := env.svc.GetPendingComments(ctx, memberActor, 1, 20); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("普通成员期望403错误, 实际为 %v", err)
	}

	comments, total, err := env.svc.GetPendingComments(ctx, modActor, 1, 20)
	if err != nil {
		t.Fatalf("版主获取待审核队列失败: %v", err)
	}
	if total != 1 || len(comments) != 1 {
		t.Errorf("期望1条待审核评论, 实际为 %d", total)
	}
}

// TestDeleteComment 测试删除评论
func TestDeleteComment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seedOpenTopic(env, "topic-1")
	comment := seedPendingComment(env, "topic-1")

	if err := env.svc.DeleteComment(ctx, memberActor, comment.ID); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("普通成员删除期望403错误, 实际为 %v", err)
	}

	if err := env.svc.DeleteComment(ctx, adminActor, comment.ID); err != nil {
		t.Fatalf("管理员删除失败: %v", err)
	}
	if _, ok := env.comments.comments[comment.ID]; ok {
		t.Error("评论应已被删除")
	}

	if err := env.svc.DeleteComment(ctx, adminActor, comment.ID); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("重复删除期望404错误, 实际为 %v", err)
	}
}

// TestBuildCommentTree 测试两级评论树组装
func TestBuildCommentTree(t *testing.T) {
	root := &model.Comment{ID: 1, Content: "顶层"}
	reply := &model.Comment{ID: 2, ParentID: 1, Content: "回复"}
	orphan := &model.Comment{ID: 3, ParentID: 999, Content: "父评论未通过"}

	tree := buildCommentTree([]*model.Comment{root, reply, orphan})

	if len(tree) != 2 {
		t.Fatalf("期望2个顶层节点, 实际为 %d", len(tree))
	}
	if len(root.Replies) != 1 || root.Replies[0].ID != 2 {
		t.Error("回复应挂到父评论下")
	}
}
