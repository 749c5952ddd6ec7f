package dao

import (
	"context"

	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/database"
)

// topicDAO 话题数据访问实现
type topicDAO struct {
	db *database.PostgreSQL
}

// NewTopicDAO 创建话题DAO实例
func NewTopicDAO(db *database.PostgreSQL) TopicDAO {
	return &topicDAO{
		db: db,
	}
}

// CreateTopic 创建话题
func (d *topicDAO) CreateTopic(ctx context.Context, topic *model.Topic) error {
	return d.db.WithContext(ctx).Create(topic).Error
}

// GetTopic 获取话题
func (d *topicDAO) GetTopic(ctx context.Context, topicID string) (*model.Topic, error) {
	var topic model.Topic
	err := d.db.WithContext(ctx).Where("id = ?", topicID).First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// ListTopics 获取话题列表
func (d *topicDAO) ListTopics(ctx context.Context, status string, page, pageSize int32) ([]*model.Topic, int64, error) {
	query := d.db.WithContext(ctx).Model(&model.Topic{})

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize = normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	var topics []*model.Topic
	err := query.Order("created_at DESC").Offset(int(offset)).Limit(int(pageSize)).Find(&topics).Error
	return topics, total, err
}

// UpdateTopicStatus 更新话题状态，锁定和解锁为无条件写入
func (d *topicDAO) UpdateTopicStatus(ctx context.Context, topicID, status string) error {
	result := d.db.WithContext(ctx).Model(&model.Topic{}).
		Where("id = ?", topicID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTopic 删除话题并级联删除其评论
func (d *topicDAO) DeleteTopic(ctx context.Context, topicID string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", topicID).Delete(&model.Topic{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("object_id = ? AND object_type = ?", topicID, model.ObjectTypeTopic).
			Delete(&model.Comment{}).Error
	})
}
