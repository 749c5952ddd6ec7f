package model

import (
	"fmt"

	"campus-hub/pkg/errs"
)

// 业务错误，统一包装错误类别哨兵，HTTP层据此映射状态码
var (
	ErrUnauthenticated = fmt.Errorf("%w: login required", errs.ErrUnauthenticated)
	ErrForbidden       = fmt.Errorf("%w: insufficient role", errs.ErrForbidden)

	ErrTopicNotFound       = fmt.Errorf("%w: topic not found", errs.ErrNotFound)
	ErrTopicLocked         = fmt.Errorf("%w: topic is locked", errs.ErrConflict)
	ErrCommentNotFound     = fmt.Errorf("%w: comment not found", errs.ErrNotFound)
	ErrCommentModerated    = fmt.Errorf("%w: comment already moderated", errs.ErrConflict)
	ErrBatchMismatch       = fmt.Errorf("%w: batch contains missing or already moderated comments", errs.ErrConflict)
	ErrParentNotFound      = fmt.Errorf("%w: parent comment not found", errs.ErrInvalidParams)
	ErrParentMismatch      = fmt.Errorf("%w: parent comment belongs to another object", errs.ErrInvalidParams)
	ErrNewsNotFound        = fmt.Errorf("%w: news article not found", errs.ErrNotFound)
	ErrNewsNotPublished    = fmt.Errorf("%w: news article is not published", errs.ErrConflict)
	ErrSubmissionNotFound  = fmt.Errorf("%w: submission not found", errs.ErrNotFound)
	ErrSubmissionModerated = fmt.Errorf("%w: submission already moderated", errs.ErrConflict)
	ErrEventNotFound       = fmt.Errorf("%w: event not found", errs.ErrNotFound)
	ErrProfileNotFound     = fmt.Errorf("%w: profile not found", errs.ErrNotFound)

	ErrInvalidStatus     = fmt.Errorf("%w: invalid target status", errs.ErrInvalidParams)
	ErrInvalidTransition = fmt.Errorf("%w: illegal status transition", errs.ErrConflict)
	ErrEmptyContent      = fmt.Errorf("%w: content is required", errs.ErrInvalidParams)
	ErrContentTooLong    = fmt.Errorf("%w: content exceeds maximum length", errs.ErrInvalidParams)
	ErrReasonTooLong     = fmt.Errorf("%w: reason exceeds maximum length", errs.ErrInvalidParams)
	ErrObjectIDRequired  = fmt.Errorf("%w: object_id is required", errs.ErrInvalidParams)
	ErrInvalidObjectType = fmt.Errorf("%w: invalid object type", errs.ErrInvalidParams)
	ErrInvalidBatchSize  = fmt.Errorf("%w: batch size must be between 1 and 50", errs.ErrInvalidParams)
	ErrInvalidRole       = fmt.Errorf("%w: invalid role", errs.ErrInvalidParams)
	ErrInvalidTimeRange  = fmt.Errorf("%w: invalid time range", errs.ErrInvalidParams)
)
