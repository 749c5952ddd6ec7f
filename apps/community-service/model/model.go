package model

import (
	"time"
)

// Topic 话题模型
type Topic struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title      string    `json:"title" gorm:"type:varchar(200);not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Status     string    `json:"status" gorm:"type:varchar(20);not null;index;default:'open'"` // 话题状态
	AuthorID   int64     `json:"author_id" gorm:"not null;index"`
	AuthorName string    `json:"author_name" gorm:"type:varchar(100)"` // 作者名（冗余字段）
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Topic) TableName() string {
	return "topics"
}

// IsOpen 判断话题是否开放评论
func (t *Topic) IsOpen() bool {
	return t.Status == TopicStatusOpen
}

// Comment 评论模型
type Comment struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ObjectID     string     `json:"object_id" gorm:"type:uuid;not null;index:idx_object"`          // 被评论的对象ID
	ObjectType   string     `json:"object_type" gorm:"type:varchar(20);not null;index:idx_object"` // 被评论的对象类型
	AuthorID     int64      `json:"author_id" gorm:"not null;index"`
	AuthorName   string     `json:"author_name" gorm:"type:varchar(100)"`  // 作者名（冗余字段）
	AuthorAvatar string     `json:"author_avatar" gorm:"type:varchar(500)"` // 作者头像（冗余字段）
	Content      string     `json:"content" gorm:"type:text;not null"`
	ParentID     int64      `json:"parent_id" gorm:"default:0;index"` // 父评论ID（0表示顶级评论）
	Status       string     `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'"`
	ModeratedBy  int64      `json:"moderated_by" gorm:"default:0"` // 审核人ID
	ModeratedAt  *time.Time `json:"moderated_at"`
	Reason       string     `json:"reason" gorm:"type:varchar(500)"` // 审核意见
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// 关联字段（不存储到数据库）
	Replies []*Comment `json:"replies,omitempty" gorm:"-"` // 回复列表
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// IsTopLevel 判断是否为顶级评论
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == 0
}

// IsPending 判断是否待审核
func (c *Comment) IsPending() bool {
	return c.Status == CommentStatusPending
}

// ModerationLog 审核日志
type ModerationLog struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID   int64     `json:"comment_id" gorm:"not null;index"`
	ModeratorID int64     `json:"moderator_id" gorm:"not null"`
	OldStatus   string    `json:"old_status" gorm:"type:varchar(20);not null"`
	NewStatus   string    `json:"new_status" gorm:"type:varchar(20);not null"`
	Reason      string    `json:"reason" gorm:"type:varchar(500)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ModerationLog) TableName() string {
	return "moderation_logs"
}

// NewsArticle 新闻稿件模型
type NewsArticle struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null"`
	Summary     string     `json:"summary" gorm:"type:varchar(500)"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	CoverImage  string     `json:"cover_image" gorm:"type:varchar(500)"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;index;default:'draft'"` // 稿件状态
	AuthorID    int64      `json:"author_id" gorm:"not null;index"`
	AuthorName  string     `json:"author_name" gorm:"type:varchar(100)"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int64      `json:"view_count" gorm:"default:0"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (NewsArticle) TableName() string {
	return "news_articles"
}

// IsPublished 判断稿件是否已发布
func (n *NewsArticle) IsPublished() bool {
	return n.Status == NewsStatusPublished
}

// NewsStatusLog 稿件状态流转日志
type NewsStatusLog struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	NewsID     string    `json:"news_id" gorm:"type:uuid;not null;index"`
	OperatorID int64     `json:"operator_id" gorm:"not null"`
	OldStatus  string    `json:"old_status" gorm:"type:varchar(20);not null"`
	NewStatus  string    `json:"new_status" gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (NewsStatusLog) TableName() string {
	return "news_status_logs"
}

// Submission 投稿模型
type Submission struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null"`
	Body        string     `json:"body" gorm:"type:text;not null"`
	AuthorID    int64      `json:"author_id" gorm:"not null;index"`
	AuthorName  string     `json:"author_name" gorm:"type:varchar(100)"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'"`
	ModeratedBy int64      `json:"moderated_by" gorm:"default:0"`
	ModeratedAt *time.Time `json:"moderated_at"`
	Reason      string     `json:"reason" gorm:"type:varchar(500)"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Submission) TableName() string {
	return "submissions"
}

// CalendarEvent 校历活动模型
type CalendarEvent struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location" gorm:"type:varchar(200)"`
	StartsAt    time.Time `json:"starts_at" gorm:"not null;index"`
	EndsAt      time.Time `json:"ends_at" gorm:"not null"`
	AllDay      bool      `json:"all_day" gorm:"default:false"`
	CreatedBy   int64     `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (CalendarEvent) TableName() string {
	return "calendar_events"
}

// Profile 用户资料读模型，身份信息由外部签发的JWT带入
type Profile struct {
	UserID      int64     `json:"user_id" gorm:"primaryKey"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(100)"`
	Role        string    `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	AvatarURL   string    `json:"avatar_url" gorm:"type:varchar(500)"`
	Email       string    `json:"email" gorm:"type:varchar(200)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// Activity 操作审计文档，存储于MongoDB
type Activity struct {
	ActorID    int64     `json:"actor_id" bson:"actor_id"`
	ActorRole  string    `json:"actor_role" bson:"actor_role"`
	Action     string    `json:"action" bson:"action"`
	ObjectType string    `json:"object_type" bson:"object_type"`
	ObjectID   string    `json:"object_id" bson:"object_id"`
	Detail     string    `json:"detail" bson:"detail"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// 查询参数结构体

// GetCommentsParams 获取评论列表参数
type GetCommentsParams struct {
	ObjectID   string `json:"object_id"`
	ObjectType string `json:"object_type"`
	Status     string `json:"status"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
}

// CreateCommentParams 创建评论参数
type CreateCommentParams struct {
	ObjectID   string `json:"object_id"`
	ObjectType string `json:"object_type"`
	Content    string `json:"content"`
	ParentID   int64  `json:"parent_id"`
}

// ModerateCommentParams 审核评论参数
type ModerateCommentParams struct {
	CommentID int64  `json:"comment_id"`
	NewStatus string `json:"new_status"`
	Reason    string `json:"reason"`
}

// BatchModerateCommentsParams 批量审核评论参数
type BatchModerateCommentsParams struct {
	CommentIDs []int64 `json:"comment_ids"`
	NewStatus  string  `json:"new_status"`
	Reason     string  `json:"reason"`
}

// ListNewsParams 获取新闻列表参数
type ListNewsParams struct {
	Status   string `json:"status"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

// SearchParams 搜索参数
type SearchParams struct {
	Query    string `json:"query"`
	Type     string `json:"type"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

// EventRangeParams 活动区间查询参数
type EventRangeParams struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
