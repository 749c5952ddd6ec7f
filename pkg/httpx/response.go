package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-hub/pkg/errs"
)

// StatusOf 把错误类别映射为HTTP状态码
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteObject 统一响应出口：成功写业务对象，失败写错误信封
func WriteObject(c *gin.Context, obj interface{}, err error) {
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// WriteError 写错误响应，未分类错误不向外透出内部细节
func WriteError(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
