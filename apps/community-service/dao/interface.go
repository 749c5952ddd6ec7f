package dao

import (
	"context"
	"time"

	"campus-hub/apps/community-service/model"
)

// TopicDAO 话题数据访问接口
type TopicDAO interface {
	CreateTopic(ctx context.Context, topic *model.Topic) error
	GetTopic(ctx context.Context, topicID string) (*model.Topic, error)
	ListTopics(ctx context.Context, status string, page, pageSize int32) ([]*model.Topic, int64, error)
	UpdateTopicStatus(ctx context.Context, topicID, status string) error
	DeleteTopic(ctx context.Context, topicID string) error
}

// CommentDAO 评论数据访问接口
type CommentDAO interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, commentID int64) (*model.Comment, error)
	GetComments(ctx context.Context, params *model.GetCommentsParams) ([]*model.Comment, int64, error)
	GetPendingComments(ctx context.Context, page, pageSize int32) ([]*model.Comment, int64, error)
	DeleteComment(ctx context.Context, commentID int64) error

	// 条件状态更新：仅当评论仍为pending时生效，前置检查与写入同一条语句完成
	UpdateStatusIfPending(ctx context.Context, commentID int64, status string, moderatorID int64, reason string, moderatedAt time.Time) (bool, error)
	// 批量条件状态更新：事务内全部成功或全部回滚，返回实际更新行数
	BatchUpdateStatusIfPending(ctx context.Context, commentIDs []int64, status string, moderatorID int64, reason string, moderatedAt time.Time) (int64, error)

	// 审核日志
	CreateModerationLog(ctx context.Context, log *model.ModerationLog) error
	GetModerationLogs(ctx context.Context, commentID int64) ([]*model.ModerationLog, error)
}

// NewsDAO 新闻数据访问接口
type NewsDAO interface {
	CreateNews(ctx context.Context, news *model.NewsArticle) error
	GetNews(ctx context.Context, newsID string) (*model.NewsArticle, error)
	UpdateNews(ctx context.Context, news *model.NewsArticle) error
	ListNews(ctx context.Context, params *model.ListNewsParams) ([]*model.NewsArticle, int64, error)
	DeleteNews(ctx context.Context, newsID string) error

	// 条件状态流转：仅当当前状态匹配fromStatus时生效
	UpdateNewsStatus(ctx context.Context, newsID, fromStatus, toStatus string, publishedAt *time.Time) (bool, error)
	IncrementViewCount(ctx context.Context, newsID string) error

	CreateStatusLog(ctx context.Context, log *model.NewsStatusLog) error
}

// SubmissionDAO 投稿数据访问接口
type SubmissionDAO interface {
	CreateSubmission(ctx context.Context, submission *model.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (*model.Submission, error)
	ListSubmissions(ctx context.Context, status string, page, pageSize int32) ([]*model.Submission, int64, error)
	UpdateStatusIfPending(ctx context.Context, submissionID, status string, moderatorID int64, reason string, moderatedAt time.Time) (bool, error)
}

// EventDAO 校历活动数据访问接口
type EventDAO interface {
	CreateEvent(ctx context.Context, event *model.CalendarEvent) error
	GetEvent(ctx context.Context, eventID string) (*model.CalendarEvent, error)
	UpdateEvent(ctx context.Context, event *model.CalendarEvent) error
	DeleteEvent(ctx context.Context, eventID string) error
	ListEventsInRange(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error)
}

// ProfileDAO 用户资料数据访问接口
type ProfileDAO interface {
	UpsertProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, userID int64) (*model.Profile, error)
	GetProfiles(ctx context.Context, userIDs []int64) ([]*model.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, displayName, avatarURL string) error
	UpdateRole(ctx context.Context, userID int64, role string) error
}

// AuditDAO 操作审计数据访问接口，底层为MongoDB
type AuditDAO interface {
	InsertActivity(ctx context.Context, activity *model.Activity) error
	ListRecentActivities(ctx context.Context, limit int64) ([]*model.Activity, error)
}

// SearchResult 搜索命中
type SearchResult struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Score   float64 `json:"score"`
}

// SearchDAO 全文检索数据访问接口，底层为ElasticSearch
type SearchDAO interface {
	IndexNews(ctx context.Context, news *model.NewsArticle) error
	IndexTopic(ctx context.Context, topic *model.Topic) error
	RemoveNews(ctx context.Context, newsID string) error
	RemoveTopic(ctx context.Context, topicID string) error
	Search(ctx context.Context, params *model.SearchParams) ([]*SearchResult, int64, error)
	IsAvailable() bool
}
