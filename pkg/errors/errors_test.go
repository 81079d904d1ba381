package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("参数错误")))
	assert.True(t, IsNotFound(NewNotFoundError("不存在")))
	assert.True(t, IsConflict(NewConflictError("冲突")))
	assert.True(t, IsConfiguration(NewConfigurationError("配置缺陷")))

	assert.False(t, IsValidation(NewNotFoundError("不存在")))
	assert.False(t, IsNotFound(stderrors.New("普通错误")))
	assert.False(t, IsConflict(nil))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInvalidParam, CodeOf(NewValidationError("参数错误")))
	assert.Equal(t, CodeNotFound, CodeOf(NewNotFoundError("不存在")))
	assert.Equal(t, CodeConflict, CodeOf(NewConflictError("冲突")))
	assert.Equal(t, CodeConfigError, CodeOf(NewConfigurationError("配置缺陷")))

	// 非业务错误统一按服务器错误
	assert.Equal(t, CodeServerError, CodeOf(stderrors.New("普通错误")))
}

func TestWrapPreservesKind(t *testing.T) {
	cause := stderrors.New("底层错误")
	wrapped := Wrap(NewConflictError("状态冲突"), cause)

	assert.True(t, IsConflict(wrapped))
	assert.True(t, Is(wrapped, cause))
	assert.Contains(t, wrapped.Error(), "状态冲突")
	assert.Contains(t, wrapped.Error(), "底层错误")
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	inner := NewNotFoundError("记录不存在")
	outer := fmt.Errorf("查询失败: %w", inner)

	assert.True(t, IsNotFound(outer))
	assert.Equal(t, CodeNotFound, CodeOf(outer))

	var appErr *AppError
	assert.True(t, As(outer, &appErr))
	assert.Equal(t, KindNotFound, appErr.Kind)
}
