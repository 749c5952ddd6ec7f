package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/database"
)

// commentDAO 评论数据访问实现
type commentDAO struct {
	db *database.PostgreSQL
}

// NewCommentDAO 创建评论DAO实例
func NewCommentDAO(db *database.PostgreSQL) CommentDAO {
	return &commentDAO{
		db: db,
	}
}

// CreateComment 创建评论
func (d *commentDAO) CreateComment(ctx context.Context, comment *model.Comment) error {
	return d.db.WithContext(ctx).Create(comment).Error
}

// GetComment 获取评论
func (d *commentDAO) GetComment(ctx context.Context, commentID int64) (*model.Comment, error) {
	var comment model.Comment
	err := d.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComments 获取评论列表
func (d *commentDAO) GetComments(ctx context.Context, params *model.GetCommentsParams) ([]*model.Comment, int64, error) {
	query := d.db.WithContext(ctx).Model(&model.Comment{})

	if params.ObjectID != "" {
		query = query.Where("object_id = ?", params.ObjectID)
	}
	if params.ObjectType != "" {
		query = query.Where("object_type = ?", params.ObjectType)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	} else {
		// 默认只显示已通过的评论
		query = query.Where("status = ?", model.CommentStatusApproved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(params.Page, params.PageSize)
	offset := (page - 1) * pageSize
	query = query.Order("created_at ASC").Offset(int(offset)).Limit(int(pageSize))

	var comments []*model.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// GetPendingComments 获取待审核评论队列
func (d *commentDAO) GetPendingComments(ctx context.Context, page, pageSize int32) ([]*model.Comment, int64, error) {
	query := d.db.WithContext(ctx).Model(&model.Comment{}).Where("status = ?", model.CommentStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize = normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	var comments []*model.Comment
	err := query.Order("created_at ASC").Offset(int(offset)).Limit(int(pageSize)).Find(&comments).Error
	return comments, total, err
}

// DeleteComment 删除评论
func (d *commentDAO) DeleteComment(ctx context.Context, commentID int64) error {
	result := d.db.WithContext(ctx).Where("id = ?", commentID).Delete(&model.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatusIfPending 条件状态更新。
// WHERE子句同时匹配ID和pending状态，并发审核下只有一个写入者能命中，
// 未命中时返回false由上层判定冲突。
func (d *commentDAO) UpdateStatusIfPending(ctx context.Context, commentID int64, status string, moderatorID int64, reason string, moderatedAt time.Time) (bool, error) {
	result := d.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND status = ?", commentID, model.CommentStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"moderated_by": moderatorID,
			"moderated_at": moderatedAt,
			"reason":       reason,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// BatchUpdateStatusIfPending 批量条件状态更新。
// 事务内执行，命中行数不等于请求行数时整体回滚，保证全部成功或全部失败。
func (d *commentDAO) BatchUpdateStatusIfPending(ctx context.Context, commentIDs []int64, status string, moderatorID int64, reason string, moderatedAt time.Time) (int64, error) {
	var affected int64
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Comment{}).
			Where("id IN ? AND status = ?", commentIDs, model.CommentStatusPending).
			Updates(map[string]interface{}{
				"status":       status,
				"moderated_by": moderatorID,
				"moderated_at": moderatedAt,
				"reason":       reason,
			})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected != int64(len(commentIDs)) {
			// 命中不足是状态冲突，与存储故障分开报告
			return fmt.Errorf("%w: matched %d of %d comments", model.ErrBatchMismatch, affected, len(commentIDs))
		}
		return nil
	})
	return affected, err
}

// CreateModerationLog 创建审核日志
func (d *commentDAO) CreateModerationLog(ctx context.Context, log *model.ModerationLog) error {
	return d.db.WithContext(ctx).Create(log).Error
}

// GetModerationLogs 获取评论的审核日志
func (d *commentDAO) GetModerationLogs(ctx context.Context, commentID int64) ([]*model.ModerationLog, error) {
	var logs []*model.ModerationLog
	err := d.db.WithContext(ctx).Where("comment_id = ?", commentID).
		Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// normalizePage 规范分页参数
func normalizePage(page, pageSize int32) (int32, int32) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	if pageSize > model.MaxPageSize {
		pageSize = model.MaxPageSize
	}
	return page, pageSize
}
