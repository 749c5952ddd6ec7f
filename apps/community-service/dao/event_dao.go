package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/database"
)

// eventDAO 校历活动数据访问实现
type eventDAO struct {
	db *database.PostgreSQL
}

// NewEventDAO 创建活动DAO实例
func NewEventDAO(db *database.PostgreSQL) EventDAO {
	return &eventDAO{
		db: db,
	}
}

// CreateEvent 创建活动
func (d *eventDAO) CreateEvent(ctx context.Context, event *model.CalendarEvent) error {
	return d.db.WithContext(ctx).Create(event).Error
}

// GetEvent 获取活动
func (d *eventDAO) GetEvent(ctx context.Context, eventID string) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := d.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent 更新活动
func (d *eventDAO) UpdateEvent(ctx context.Context, event *model.CalendarEvent) error {
	return d.db.WithContext(ctx).Save(event).Error
}

// DeleteEvent 删除活动
func (d *eventDAO) DeleteEvent(ctx context.Context, eventID string) error {
	result := d.db.WithContext(ctx).Where("id = ?", eventID).Delete(&model.CalendarEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListEventsInRange 查询时间区间内的活动，按开始时间排序
func (d *eventDAO) ListEventsInRange(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error) {
	var events []*model.CalendarEvent
	err := d.db.WithContext(ctx).
		Where("starts_at < ? AND ends_at >= ?", to, from).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}
