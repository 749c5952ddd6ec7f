package httpx

import (
	"fmt"
	"net/http"
	"testing"

	"campus-hub/pkg/errs"
)

// TestStatusOf 测试错误类别到状态码的映射
func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"无错误", nil, http.StatusOK},
		{"未认证", errs.ErrUnauthenticated, http.StatusUnauthorized},
		{"无权限", errs.ErrForbidden, http.StatusForbidden},
		{"参数错误", errs.ErrInvalidParams, http.StatusBadRequest},
		{"未找到", errs.ErrNotFound, http.StatusNotFound},
		{"冲突", errs.ErrConflict, http.StatusConflict},
		{"未分类", fmt.Errorf("database connection lost"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Errorf("StatusOf(%v) = %d, 期望 %d", tc.err, got, tc.want)
			}
		})
	}
}

// TestStatusOfWrappedError 测试包装后的业务错误仍能正确映射
func TestStatusOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("%w: comment already moderated", errs.ErrConflict)
	if got := StatusOf(wrapped); got != http.StatusConflict {
		t.Errorf("包装错误应映射409, 实际为 %d", got)
	}

	doubleWrapped := fmt.Errorf("moderate comment: %w", wrapped)
	if got := StatusOf(doubleWrapped); got != http.StatusConflict {
		t.Errorf("多层包装错误应映射409, 实际为 %d", got)
	}
}
