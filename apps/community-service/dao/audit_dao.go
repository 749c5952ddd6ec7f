package dao

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/database"
)

// 审计集合名
const activitiesCollection = "activities"

// auditDAO 操作审计实现，文档写入MongoDB
type auditDAO struct {
	collection *mongo.Collection
}

// NewAuditDAO 创建审计DAO实例
func NewAuditDAO(db *database.MongoDB) AuditDAO {
	return &auditDAO{
		collection: db.GetCollection(activitiesCollection),
	}
}

// InsertActivity 追加一条操作记录
func (d *auditDAO) InsertActivity(ctx context.Context, activity *model.Activity) error {
	_, err := d.collection.InsertOne(ctx, activity)
	return err
}

// ListRecentActivities 按时间倒序获取最近操作记录
func (d *auditDAO) ListRecentActivities(ctx context.Context, limit int64) ([]*model.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := d.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []*model.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}

	return activities, nil
}
