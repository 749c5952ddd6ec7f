package model

// 话题状态常量
const (
	TopicStatusOpen   = "open"   // 开放评论
	TopicStatusLocked = "locked" // 锁定，禁止新评论
)

// 评论状态常量
const (
	CommentStatusPending  = "pending"  // 待审核
	CommentStatusApproved = "approved" // 已通过
	CommentStatusRejected = "rejected" // 已拒绝
)

// 新闻状态常量
const (
	NewsStatusDraft     = "draft"     // 草稿
	NewsStatusPublished = "published" // 已发布
	NewsStatusArchived  = "archived"  // 已归档
)

// 投稿状态常量
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// 评论对象类型常量
const (
	ObjectTypeTopic = "topic"
	ObjectTypeNews  = "news"
)

// 业务限制常量
const (
	MaxCommentLength = 1000 // 评论内容最大长度
	MaxReasonLength  = 500  // 审核意见最大长度
	MaxBatchSize     = 50   // 批量审核上限
	DefaultPageSize  = 20
	MaxPageSize      = 100
)

// 缓存键前缀常量
const (
	CommentListCachePrefix  = "comment:list:"
	CommentQueueCachePrefix = "comment:pending:"
	TopicListCachePrefix    = "topic:list:"
	TopicDetailCachePrefix  = "topic:detail:"
	NewsListCachePrefix     = "news:list:"
	NewsDetailCachePrefix   = "news:detail:"
)

// Kafka主题常量
const (
	TopicModerationEvents = "moderation-events"
	TopicContentEvents    = "content-events"
)

// 事件类型常量
const (
	EventCommentCreated     = "comment.created"
	EventCommentModerated   = "comment.moderated"
	EventCommentDeleted     = "comment.deleted"
	EventTopicCreated       = "topic.created"
	EventTopicLocked        = "topic.locked"
	EventTopicUnlocked      = "topic.unlocked"
	EventTopicDeleted       = "topic.deleted"
	EventNewsPublished      = "news.published"
	EventNewsArchived       = "news.archived"
	EventSubmissionReviewed = "submission.reviewed"
)

// Redis频道常量
const (
	ChannelModerationFeed = "moderation:events" // 审核实时通知频道
)

// 审计动作常量
const (
	ActionModerateComment  = "moderate_comment"
	ActionBatchModerate    = "batch_moderate_comments"
	ActionDeleteComment    = "delete_comment"
	ActionCreateTopic      = "create_topic"
	ActionLockTopic        = "lock_topic"
	ActionUnlockTopic      = "unlock_topic"
	ActionDeleteTopic      = "delete_topic"
	ActionPublishNews      = "publish_news"
	ActionArchiveNews      = "archive_news"
	ActionModerateSubmit   = "moderate_submission"
	ActionChangeRole       = "change_role"
	ActionCreateEvent      = "create_event"
	ActionUpdateEvent      = "update_event"
	ActionDeleteEvent      = "delete_event"
)
