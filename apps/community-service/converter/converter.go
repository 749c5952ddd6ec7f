package converter

import (
	"strconv"
	"time"

	"campus-hub/apps/community-service/model"
)

// Converter 转换器，提供Model到视图对象的转换
type Converter struct{}

// NewConverter 创建转换器实例
func NewConverter() *Converter {
	return &Converter{}
}

// CommentView 评论视图
type CommentView struct {
	ID           string         `json:"id"`
	ObjectID     string         `json:"object_id"`
	ObjectType   string         `json:"object_type"`
	AuthorID     int64          `json:"author_id"`
	AuthorName   string         `json:"author_name"`
	AuthorAvatar string         `json:"author_avatar,omitempty"`
	Content      string         `json:"content"`
	ParentID     string         `json:"parent_id,omitempty"`
	Status       string         `json:"status"`
	ModeratedBy  int64          `json:"moderated_by,omitempty"`
	ModeratedAt  string         `json:"moderated_at,omitempty"`
	Reason       string         `json:"reason,omitempty"`
	CreatedAt    string         `json:"created_at"`
	Replies      []*CommentView `json:"replies,omitempty"`
}

// CommentToView 将评论Model转换为视图
func (c *Converter) CommentToView(comment *model.Comment) *CommentView {
	if comment == nil {
		return nil
	}

	view := &CommentView{
		ID:           strconv.FormatInt(comment.ID, 10),
		ObjectID:     comment.ObjectID,
		ObjectType:   comment.ObjectType,
		AuthorID:     comment.AuthorID,
		AuthorName:   comment.AuthorName,
		AuthorAvatar: comment.AuthorAvatar,
		Content:      comment.Content,
		Status:       comment.Status,
		ModeratedBy:  comment.ModeratedBy,
		Reason:       comment.Reason,
		CreatedAt:    comment.CreatedAt.Format(time.RFC3339),
	}

	if comment.ParentID > 0 {
		view.ParentID = strconv.FormatInt(comment.ParentID, 10)
	}
	if comment.ModeratedAt != nil {
		view.ModeratedAt = comment.ModeratedAt.Format(time.RFC3339)
	}
	for _, reply := range comment.Replies {
		view.Replies = append(view.Replies, c.CommentToView(reply))
	}

	return view
}

// CommentsToView 将评论Model列表转换为视图列表
func (c *Converter) CommentsToView(comments []*model.Comment) []*CommentView {
	result := make([]*CommentView, 0, len(comments))
	for _, comment := range comments {
		if view := c.CommentToView(comment); view != nil {
			result = append(result, view)
		}
	}
	return result
}

// TopicView 话题视图
type TopicView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
}

// TopicToView 将话题Model转换为视图
func (c *Converter) TopicToView(topic *model.Topic) *TopicView {
	if topic == nil {
		return nil
	}

	return &TopicView{
		ID:         topic.ID,
		Title:      topic.Title,
		Content:    topic.Content,
		Status:     topic.Status,
		AuthorID:   topic.AuthorID,
		AuthorName: topic.AuthorName,
		CreatedAt:  topic.CreatedAt.Format(time.RFC3339),
	}
}

// TopicsToView 将话题Model列表转换为视图列表
func (c *Converter) TopicsToView(topics []*model.Topic) []*TopicView {
	result := make([]*TopicView, 0, len(topics))
	for _, topic := range topics {
		if view := c.TopicToView(topic); view != nil {
			result = append(result, view)
		}
	}
	return result
}

// NewsView 稿件视图
type NewsView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Content     string `json:"content"`
	CoverImage  string `json:"cover_image,omitempty"`
	Status      string `json:"status"`
	AuthorID    int64  `json:"author_id"`
	AuthorName  string `json:"author_name"`
	PublishedAt string `json:"published_at,omitempty"`
	ViewCount   int64  `json:"view_count"`
	CreatedAt   string `json:"created_at"`
}

// NewsToView 将稿件Model转换为视图
func (c *Converter) NewsToView(news *model.NewsArticle) *NewsView {
	if news == nil {
		return nil
	}

	view := &NewsView{
		ID:         news.ID,
		Title:      news.Title,
		Summary:    news.Summary,
		Content:    news.Content,
		CoverImage: news.CoverImage,
		Status:     news.Status,
		AuthorID:   news.AuthorID,
		AuthorName: news.AuthorName,
		ViewCount:  news.ViewCount,
		CreatedAt:  news.CreatedAt.Format(time.RFC3339),
	}
	if news.PublishedAt != nil {
		view.PublishedAt = news.PublishedAt.Format(time.RFC3339)
	}
	return view
}

// NewsListToView 将稿件Model列表转换为视图列表
func (c *Converter) NewsListToView(articles []*model.NewsArticle) []*NewsView {
	result := make([]*NewsView, 0, len(articles))
	for _, news := range articles {
		if view := c.NewsToView(news); view != nil {
			result = append(result, view)
		}
	}
	return result
}

// SubmissionView 投稿视图
type SubmissionView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	AuthorID    int64  `json:"author_id"`
	AuthorName  string `json:"author_name"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	ModeratedAt string `json:"moderated_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// SubmissionToView 将投稿Model转换为视图
func (c *Converter) SubmissionToView(submission *model.Submission) *SubmissionView {
	if submission == nil {
		return nil
	}

	view := &SubmissionView{
		ID:         submission.ID,
		Title:      submission.Title,
		Body:       submission.Body,
		AuthorID:   submission.AuthorID,
		AuthorName: submission.AuthorName,
		Status:     submission.Status,
		Reason:     submission.Reason,
		CreatedAt:  submission.CreatedAt.Format(time.RFC3339),
	}
	if submission.ModeratedAt != nil {
		view.ModeratedAt = submission.ModeratedAt.Format(time.RFC3339)
	}
	return view
}

// SubmissionsToView 将投稿Model列表转换为视图列表
func (c *Converter) SubmissionsToView(submissions []*model.Submission) []*SubmissionView {
	result := make([]*SubmissionView, 0, len(submissions))
	for _, submission := range submissions {
		if view := c.SubmissionToView(submission); view != nil {
			result = append(result, view)
		}
	}
	return result
}

// EventView 校历活动视图
type EventView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	AllDay      bool   `json:"all_day"`
}

// EventToView 将活动Model转换为视图
func (c *Converter) EventToView(event *model.CalendarEvent) *EventView {
	if event == nil {
		return nil
	}

	return &EventView{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		StartsAt:    event.StartsAt.Format(time.RFC3339),
		EndsAt:      event.EndsAt.Format(time.RFC3339),
		AllDay:      event.AllDay,
	}
}

// EventsToView 将活动Model列表转换为视图列表
func (c *Converter) EventsToView(events []*model.CalendarEvent) []*EventView {
	result := make([]*EventView, 0, len(events))
	for _, event := range events {
		if view := c.EventToView(event); view != nil {
			result = append(result, view)
		}
	}
	return result
}

// ProfileView 用户资料视图
type ProfileView struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Email       string `json:"email,omitempty"`
}

// ProfileToView 将资料Model转换为视图
func (c *Converter) ProfileToView(profile *model.Profile) *ProfileView {
	if profile == nil {
		return nil
	}

	return &ProfileView{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		Role:        profile.Role,
		AvatarURL:   profile.AvatarURL,
		Email:       profile.Email,
	}
}
