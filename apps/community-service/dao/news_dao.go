package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/database"
)

// newsDAO 新闻数据访问实现
type newsDAO struct {
	db *database.PostgreSQL
}

// NewNewsDAO 创建新闻DAO实例
func NewNewsDAO(db *database.PostgreSQL) NewsDAO {
	return &newsDAO{
		db: db,
	}
}

// CreateNews 创建稿件
func (d *newsDAO) CreateNews(ctx context.Context, news *model.NewsArticle) error {
	return d.db.WithContext(ctx).Create(news).Error
}

// GetNews 获取稿件
func (d *newsDAO) GetNews(ctx context.Context, newsID string) (*model.NewsArticle, error) {
	var news model.NewsArticle
	err := d.db.WithContext(ctx).Where("id = ?", newsID).First(&news).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// UpdateNews 更新稿件内容
func (d *newsDAO) UpdateNews(ctx context.Context, news *model.NewsArticle) error {
	return d.db.WithContext(ctx).Save(news).Error
}

// ListNews 获取稿件列表
func (d *newsDAO) ListNews(ctx context.Context, params *model.ListNewsParams) ([]*model.NewsArticle, int64, error) {
	query := d.db.WithContext(ctx).Model(&model.NewsArticle{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(params.Page, params.PageSize)
	offset := (page - 1) * pageSize

	var articles []*model.NewsArticle
	err := query.Order("COALESCE(published_at, created_at) DESC").
		Offset(int(offset)).Limit(int(pageSize)).Find(&articles).Error
	return articles, total, err
}

// DeleteNews 删除稿件并级联删除其评论
func (d *newsDAO) DeleteNews(ctx context.Context, newsID string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", newsID).Delete(&model.NewsArticle{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("object_id = ? AND object_type = ?", newsID, model.ObjectTypeNews).
			Delete(&model.Comment{}).Error
	})
}

// UpdateNewsStatus 条件状态流转，仅当前状态匹配fromStatus时生效
func (d *newsDAO) UpdateNewsStatus(ctx context.Context, newsID, fromStatus, toStatus string, publishedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status": toStatus,
	}
	if publishedAt != nil {
		updates["published_at"] = *publishedAt
	}

	result := d.db.WithContext(ctx).Model(&model.NewsArticle{}).
		Where("id = ? AND status = ?", newsID, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementViewCount 增加阅读数
func (d *newsDAO) IncrementViewCount(ctx context.Context, newsID string) error {
	return d.db.WithContext(ctx).Model(&model.NewsArticle{}).
		Where("id = ?", newsID).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// CreateStatusLog 创建状态流转日志
func (d *newsDAO) CreateStatusLog(ctx context.Context, log *model.NewsStatusLog) error {
	return d.db.WithContext(ctx).Create(log).Error
}
