package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campus-hub/apps/community-service/dao"
	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
)

// 内存实现的DAO桩，行为对齐存储层语义

type noopLogger struct{}

func (l *noopLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {}
func (l *noopLogger) Info(ctx context.Context, msg string, fields ...logger.Field)  {}
func (l *noopLogger) Warn(ctx context.Context, msg string, fields ...logger.Field)  {}
func (l *noopLogger) Error(ctx context.Context, msg string, fields ...logger.Field) {}
func (l *noopLogger) Fatal(ctx context.Context, msg string, fields ...logger.Field) {}

type fakeTopicDAO struct {
	topics map[string]*model.Topic
}

func newFakeTopicDAO() *fakeTopicDAO {
	return &fakeTopicDAO{topics: make(map[string]*model.Topic)}
}

func (d *fakeTopicDAO) CreateTopic(ctx context.Context, topic *model.Topic) error {
	topic.CreatedAt = time.Now()
	d.topics[topic.ID] = topic
	return nil
}

func (d *fakeTopicDAO) GetTopic(ctx context.Context, topicID string) (*model.Topic, error) {
	topic, ok := d.topics[topicID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return topic, nil
}

func (d *fakeTopicDAO) ListTopics(ctx context.Context, status string, page, pageSize int32) ([]*model.Topic, int64, error) {
	result := make([]*model.Topic, 0, len(d.topics))
	for _, topic := range d.topics {
		if status == "" || topic.Status == status {
			result = append(result, topic)
		}
	}
	return result, int64(len(result)), nil
}

func (d *fakeTopicDAO) UpdateTopicStatus(ctx context.Context, topicID, status string) error {
	topic, ok := d.topics[topicID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	topic.Status = status
	return nil
}

func (d *fakeTopicDAO) DeleteTopic(ctx context.Context, topicID string) error {
	if _, ok := d.topics[topicID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(d.topics, topicID)
	return nil
}

type fakeCommentDAO struct {
	comments map[int64]*model.Comment
	logs     []*model.ModerationLog
	nextID   int64
	batchErr error // 注入批量更新的存储故障
}

func newFakeCommentDAO() *fakeCommentDAO {
	return &fakeCommentDAO{comments: make(map[int64]*model.Comment), nextID: 1}
}

func (d *fakeCommentDAO) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = d.nextID
	comment.CreatedAt = time.Now()
	d.nextID++
	d.comments[comment.ID] = comment
	return nil
}

func (d *fakeCommentDAO) GetComment(ctx context.Context, commentID int64) (*model.Comment, error) {
	comment, ok := d.comments[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (d *fakeCommentDAO) GetComments(ctx context.Context, params *model.GetCommentsParams) ([]*model.Comment, int64, error) {
	result := make([]*model.Comment, 0)
	for _, comment := range d.comments {
		if comment.ObjectID != params.ObjectID || comment.ObjectType != params.ObjectType {
			continue
		}
		if params.Status != "" && comment.Status != params.Status {
			continue
		}
		result = append(result, comment)
	}
	return result, int64(len(result)), nil
}

func (d *fakeCommentDAO) GetPendingComments(ctx context.Context, page, pageSize int32) ([]*model.Comment, int64, error) {
	result := make([]*model.Comment, 0)
	for _, comment := range d.comments {
		if comment.Status == model.CommentStatusPending {
			result = append(result, comment)
		}
	}
	return result, int64(len(result)), nil
}

func (d *fakeCommentDAO) DeleteComment(ctx context.Context, commentID int64) error {
	if _, ok := d.comments[commentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(d.comments, commentID)
	return nil
}

func (d *fakeCommentDAO) UpdateStatusIfPending(ctx context.Context, commentID int64, status string, moderatorID int64, reason string, moderatedAt time.Time) (bool, error) {
	comment, ok := d.comments[commentID]
	if !ok || comment.Status != model.CommentStatusPending {
		return false, nil
	}
	comment.Status = status
	comment.ModeratedBy = moderatorID
	comment.ModeratedAt = &moderatedAt
	comment.Reason = reason
	return true, nil
}

func (d *fakeCommentDAO) BatchUpdateStatusIfPending(ctx context.Context, commentIDs []int64, status string, moderatorID int64, reason string, moderatedAt time.Time) (int64, error) {
	if d.batchErr != nil {
		return 0, d.batchErr
	}
	// 先检查全部可更新，模拟事务回滚语义
	for _, id := range commentIDs {
		comment, ok := d.comments[id]
		if !ok || comment.Status != model.CommentStatusPending {
			return 0, model.ErrBatchMismatch
		}
	}
	for _, id := range commentIDs {
		comment := d.comments[id]
		comment.Status = status
		comment.ModeratedBy = moderatorID
		comment.ModeratedAt = &moderatedAt
		comment.Reason = reason
	}
	return int64(len(commentIDs)), nil
}

func (d *fakeCommentDAO) CreateModerationLog(ctx context.Context, log *model.ModerationLog) error {
	d.logs = append(d.logs, log)
	return nil
}

func (d *fakeCommentDAO) GetModerationLogs(ctx context.Context, commentID int64) ([]*model.ModerationLog, error) {
	result := make([]*model.ModerationLog, 0)
	for _, log := range d.logs {
		if log.CommentID == commentID {
			result = append(result, log)
		}
	}
	return result, nil
}

type fakeNewsDAO struct {
	articles map[string]*model.NewsArticle
	logs     []*model.NewsStatusLog
}

func newFakeNewsDAO() *fakeNewsDAO {
	return &fakeNewsDAO{articles: make(map[string]*model.NewsArticle)}
}

func (d *fakeNewsDAO) CreateNews(ctx context.Context, news *model.NewsArticle) error {
	news.CreatedAt = time.Now()
	d.articles[news.ID] = news
	return nil
}

func (d *fakeNewsDAO) GetNews(ctx context.Context, newsID string) (*model.NewsArticle, error) {
	news, ok := d.articles[newsID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *news
	return &copied, nil
}

func (d *fakeNewsDAO) UpdateNews(ctx context.Context, news *model.NewsArticle) error {
	if _, ok := d.articles[news.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	d.articles[news.ID] = news
	return nil
}

func (d *fakeNewsDAO) ListNews(ctx context.Context, params *model.ListNewsParams) ([]*model.NewsArticle, int64, error) {
	result := make([]*model.NewsArticle, 0)
	for _, news := range d.articles {
		if params.Status == "" || news.Status == params.Status {
			result = append(result, news)
		}
	}
	return result, int64(len(result)), nil
}

func (d *fakeNewsDAO) DeleteNews(ctx context.Context, newsID string) error {
	if _, ok := d.articles[newsID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(d.articles, newsID)
	return nil
}

func (d *fakeNewsDAO) UpdateNewsStatus(ctx context.Context, newsID, fromStatus, toStatus string, publishedAt *time.Time) (bool, error) {
	news, ok := d.articles[newsID]
	if !ok || news.Status != fromStatus {
		return false, nil
	}
	news.Status = toStatus
	if publishedAt != nil {
		news.PublishedAt = publishedAt
	}
	return true, nil
}

func (d *fakeNewsDAO) IncrementViewCount(ctx context.Context, newsID string) error {
	news, ok := d.articles[newsID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	news.ViewCount++
	return nil
}

func (d *fakeNewsDAO) CreateStatusLog(ctx context.Context, log *model.NewsStatusLog) error {
	d.logs = append(d.logs, log)
	return nil
}

type fakeSubmissionDAO struct {
	submissions map[string]*model.Submission
}

func newFakeSubmissionDAO() *fakeSubmissionDAO {
	return &fakeSubmissionDAO{submissions: make(map[string]*model.Submission)}
}

func (d *fakeSubmissionDAO) CreateSubmission(ctx context.Context, submission *model.Submission) error {
	submission.CreatedAt = time.Now()
	d.submissions[submission.ID] = submission
	return nil
}

func (d *fakeSubmissionDAO) GetSubmission(ctx context.Context, submissionID string) (*model.Submission, error) {
	submission, ok := d.submissions[submissionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *submission
	return &copied, nil
}

func (d *fakeSubmissionDAO) ListSubmissions(ctx context.Context, status string, page, pageSize int32) ([]*model.Submission, int64, error) {
	result := make([]*model.Submission, 0)
	for _, submission := range d.submissions {
		if status == "" || submission.Status == status {
			result = append(result, submission)
		}
	}
	return result, int64(len(result)), nil
}

func (d *fakeSubmissionDAO) UpdateStatusIfPending(ctx context.Context, submissionID, status string, moderatorID int64, reason string, moderatedAt time.Time) (bool, error) {
	submission, ok := d.submissions[submissionID]
	if !ok || submission.Status != model.SubmissionStatusPending {
		return false, nil
	}
	submission.Status = status
	submission.ModeratedBy = moderatorID
	submission.ModeratedAt = &moderatedAt
	submission.Reason = reason
	return true, nil
}

type fakeEventDAO struct {
	events map[string]*model.CalendarEvent
}

func newFakeEventDAO() *fakeEventDAO {
	return &fakeEventDAO{events: make(map[string]*model.CalendarEvent)}
}

func (d *fakeEventDAO) CreateEvent(ctx context.Context, event *model.CalendarEvent) error {
	d.events[event.ID] = event
	return nil
}

func (d *fakeEventDAO) GetEvent(ctx context.Context, eventID string) (*model.CalendarEvent, error) {
	event, ok := d.events[eventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}

func (d *fakeEventDAO) UpdateEvent(ctx context.Context, event *model.CalendarEvent) error {
	if _, ok := d.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	d.events[event.ID] = event
	return nil
}

func (d *fakeEventDAO) DeleteEvent(ctx context.Context, eventID string) error {
	if _, ok := d.events[eventID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(d.events, eventID)
	return nil
}

func (d *fakeEventDAO) ListEventsInRange(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error) {
	result := make([]*model.CalendarEvent, 0)
	for _, event := range d.events {
		if event.StartsAt.Before(to) && !event.EndsAt.Before(from) {
			result = append(result, event)
		}
	}
	return result, nil
}

type fakeProfileDAO struct {
	profiles map[int64]*model.Profile
}

func newFakeProfileDAO() *fakeProfileDAO {
	return &fakeProfileDAO{profiles: make(map[int64]*model.Profile)}
}

func (d *fakeProfileDAO) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	if _, ok := d.profiles[profile.UserID]; !ok {
		d.profiles[profile.UserID] = profile
	}
	return nil
}

func (d *fakeProfileDAO) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	profile, ok := d.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (d *fakeProfileDAO) GetProfiles(ctx context.Context, userIDs []int64) ([]*model.Profile, error) {
	result := make([]*model.Profile, 0)
	for _, id := range userIDs {
		if profile, ok := d.profiles[id]; ok {
			result = append(result, profile)
		}
	}
	return result, nil
}

func (d *fakeProfileDAO) UpdateProfile(ctx context.Context, userID int64, displayName, avatarURL string) error {
	profile, ok := d.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if displayName != "" {
		profile.DisplayName = displayName
	}
	if avatarURL != "" {
		profile.AvatarURL = avatarURL
	}
	return nil
}

func (d *fakeProfileDAO) UpdateRole(ctx context.Context, userID int64, role string) error {
	profile, ok := d.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	profile.Role = role
	return nil
}

type fakeAuditDAO struct {
	activities []*model.Activity
}

func (d *fakeAuditDAO) InsertActivity(ctx context.Context, activity *model.Activity) error {
	d.activities = append(d.activities, activity)
	return nil
}

func (d *fakeAuditDAO) ListRecentActivities(ctx context.Context, limit int64) ([]*model.Activity, error) {
	return d.activities, nil
}

type fakeSearchDAO struct {
	indexed map[string]string
}

func newFakeSearchDAO() *fakeSearchDAO {
	return &fakeSearchDAO{indexed: make(map[string]string)}
}

func (d *fakeSearchDAO) IndexNews(ctx context.Context, news *model.NewsArticle) error {
	d.indexed["news:"+news.ID] = news.Title
	return nil
}

func (d *fakeSearchDAO) IndexTopic(ctx context.Context, topic *model.Topic) error {
	d.indexed["topic:"+topic.ID] = topic.Title
	return nil
}

func (d *fakeSearchDAO) RemoveNews(ctx context.Context, newsID string) error {
	delete(d.indexed, "news:"+newsID)
	return nil
}

func (d *fakeSearchDAO) RemoveTopic(ctx context.Context, topicID string) error {
	delete(d.indexed, "topic:"+topicID)
	return nil
}

func (d *fakeSearchDAO) Search(ctx context.Context, params *model.SearchParams) ([]*dao.SearchResult, int64, error) {
	return []*dao.SearchResult{}, 0, nil
}

func (d *fakeSearchDAO) IsAvailable() bool {
	return false
}

// testEnv 聚合测试桩，便于断言内部状态
type testEnv struct {
	svc         *Service
	topics      *fakeTopicDAO
	comments    *fakeCommentDAO
	news        *fakeNewsDAO
	submissions *fakeSubmissionDAO
	events      *fakeEventDAO
	profiles    *fakeProfileDAO
	audit       *fakeAuditDAO
	search      *fakeSearchDAO
}

func newTestEnv() *testEnv {
	env := &testEnv{
		topics:      newFakeTopicDAO(),
		comments:    newFakeCommentDAO(),
		news:        newFakeNewsDAO(),
		submissions: newFakeSubmissionDAO(),
		events:      newFakeEventDAO(),
		profiles:    newFakeProfileDAO(),
		audit:       &fakeAuditDAO{},
		search:      newFakeSearchDAO(),
	}

	env.svc = NewService(
		env.topics,
		env.comments,
		env.news,
		env.submissions,
		env.events,
		env.profiles,
		env.audit,
		env.search,
		nil,
		nil,
		&noopLogger{},
	)

	return env
}

// 常用测试主体
var (
	adminActor  = model.Actor{UserID: 1, Role: model.RoleAdmin, Email: "admin@campus.edu"}
	modActor    = model.Actor{UserID: 2, Role: model.RoleMod, Email: "mod@campus.edu"}
	memberActor = model.Actor{UserID: 3, Role: model.RoleMember, Email: "student@campus.edu"}
	anonActor   = model.Actor{}
)
