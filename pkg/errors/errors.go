package errors

import (
	stderrors "errors"
	"fmt"
)

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
	CodeConfigError  = 510
)

// ========== 业务错误类型 ==========

// Kind 业务错误类别
type Kind int

const (
	// KindValidation 写入时必填字段缺失或格式非法
	KindValidation Kind = iota
	// KindNotFound 按ID或谓词定位时要求命中却未命中
	KindNotFound
	// KindConflict 引用约束冲突或状态机重入
	KindConflict
	// KindConfiguration 实体未声明主键等内部配置缺陷，非调用方输入问题
	KindConfiguration
)

// AppError 携带类别和错误码的业务错误
type AppError struct {
	Kind    Kind
	Code    int
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewValidationError 创建参数校验错误
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: CodeInvalidParam, Message: message}
}

// NewNotFoundError 创建未找到错误
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

// NewConflictError 创建冲突错误
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Code: CodeConflict, Message: message}
}

// NewConfigurationError 创建配置错误
func NewConfigurationError(message string) *AppError {
	return &AppError{Kind: KindConfiguration, Code: CodeConfigError, Message: message}
}

// Wrap 在保留类别的前提下附加底层错误
func Wrap(err *AppError, cause error) *AppError {
	return &AppError{Kind: err.Kind, Code: err.Code, Message: err.Message, cause: cause}
}

// ========== 类别判定 ==========

func kindOf(err error, kind Kind) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// IsValidation 是否为参数校验错误
func IsValidation(err error) bool { return kindOf(err, KindValidation) }

// IsNotFound 是否为未找到错误
func IsNotFound(err error) bool { return kindOf(err, KindNotFound) }

// IsConflict 是否为冲突错误
func IsConflict(err error) bool { return kindOf(err, KindConflict) }

// IsConfiguration 是否为配置错误
func IsConfiguration(err error) bool { return kindOf(err, KindConfiguration) }

// CodeOf 提取错误码，非业务错误按服务器错误处理
func CodeOf(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeServerError
}

// Is 转发标准库判定，调用方无需额外引入 errors 包
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As 转发标准库判定
func As(err error, target any) bool { return stderrors.As(err, target) }
