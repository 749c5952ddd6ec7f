package errs

import "errors"

// 错误类别哨兵，业务错误通过 %w 包装其中之一，
// HTTP层据此映射状态码。
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidParams   = errors.New("invalid params")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)
