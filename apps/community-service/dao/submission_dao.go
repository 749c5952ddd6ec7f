package dao

import (
	"context"
	"time"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/database"
)

// submissionDAO 投稿数据访问实现
type submissionDAO struct {
	db *database.PostgreSQL
}

// NewSubmissionDAO 创建投稿DAO实例
func NewSubmissionDAO(db *database.PostgreSQL) SubmissionDAO {
	return &submissionDAO{
		db: db,
	}
}

// CreateSubmission 创建投稿
func (d *submissionDAO) CreateSubmission(ctx context.Context, submission *model.Submission) error {
	return d.db.WithContext(ctx).Create(submission).Error
}

// GetSubmission 获取投稿
func (d *submissionDAO) GetSubmission(ctx context.Context, submissionID string) (*model.Submission, error) {
	var submission model.Submission
	err := d.db.WithContext(ctx).Where("id = ?", submissionID).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListSubmissions 获取投稿列表
func (d *submissionDAO) ListSubmissions(ctx context.Context, status string, page, pageSize int32) ([]*model.Submission, int64, error) {
	query := d.db.WithContext(ctx).Model(&model.Submission{})

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize = normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	var submissions []*model.Submission
	err := query.Order("created_at DESC").Offset(int(offset)).Limit(int(pageSize)).Find(&submissions).Error
	return submissions, total, err
}

// UpdateStatusIfPending 条件状态更新，与评论审核相同的并发保护
func (d *submissionDAO) UpdateStatusIfPending(ctx context.Context, submissionID, status string, moderatorID int64, reason string, moderatedAt time.Time) (bool, error) {
	result := d.db.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ? AND status = ?", submissionID, model.SubmissionStatusPending).
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
