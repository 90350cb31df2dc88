// Package model 定义核心数据模型与自定义错误类型
package model

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode 错误代码类型
type ErrorCode string

// 预定义错误代码
const (
	// 通用错误
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// 文件操作错误
	ErrCodeFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrCodeFileReadError ErrorCode = "FILE_READ_ERROR"
	ErrCodeFileWrite     ErrorCode = "FILE_WRITE_ERROR"

	// 输入格式错误
	ErrCodeMissingColumns ErrorCode = "MISSING_COLUMNS"
	ErrCodeEmptyResult    ErrorCode = "EMPTY_RESULT"

	// 行级错误
	ErrCodeRowError ErrorCode = "ROW_ERROR"
)

// BaseError 基础错误结构
type BaseError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error 实现error接口
func (e *BaseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// GetCode 获取错误代码
func (e *BaseError) GetCode() ErrorCode {
	return e.Code
}

// InputFormatError 输入格式错误
// 对当前操作是致命的，错误信息会原样展示给调用方。
type InputFormatError struct {
	BaseError
	FilePath       string   `json:"file_path,omitempty"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// NewMissingColumnsError 创建缺列错误
func NewMissingColumnsError(filePath string, columns []string) *InputFormatError {
	return &InputFormatError{
		BaseError: BaseError{
			Code:      ErrCodeMissingColumns,
			Message:   fmt.Sprintf("文件缺少以下列：%s", strings.Join(columns, "、")),
			Timestamp: time.Now(),
		},
		FilePath:       filePath,
		MissingColumns: columns,
	}
}

// NewInputFormatError 创建输入格式错误
func NewInputFormatError(filePath, message string) *InputFormatError {
	return &InputFormatError{
		BaseError: BaseError{
			Code:      ErrCodeInvalidInput,
			Message:   message,
			Timestamp: time.Now(),
		},
		FilePath: filePath,
	}
}

// EmptyResultError 空结果错误
// 过滤/分组之后数据集为空，对当前操作是致命的。
type EmptyResultError struct {
	BaseError
	Operation string `json:"operation"`
}

// NewEmptyResultError 创建空结果错误
func NewEmptyResultError(operation, message string) *EmptyResultError {
	return &EmptyResultError{
		BaseError: BaseError{
			Code:      ErrCodeEmptyResult,
			Message:   message,
			Timestamp: time.Now(),
		},
		Operation: operation,
	}
}

// RowError 行级错误
// 单行数据损坏时本地恢复并记录，永远不会中止整批处理。
type RowError struct {
	BaseError
	RowIndex int    `json:"row_index"`
	Field    string `json:"field,omitempty"`
	Cause    error  `json:"cause,omitempty"`
}

// NewRowError 创建行级错误
func NewRowError(rowIndex int, field, message string, cause error) *RowError {
	return &RowError{
		BaseError: BaseError{
			Code:      ErrCodeRowError,
			Message:   message,
			Timestamp: time.Now(),
		},
		RowIndex: rowIndex,
		Field:    field,
		Cause:    cause,
	}
}

// Error 实现error接口
func (e *RowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] 第%d行处理失败: %s (原因: %v)", e.Code, e.RowIndex+1, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] 第%d行处理失败: %s", e.Code, e.RowIndex+1, e.Message)
}

// Unwrap 返回原始错误
func (e *RowError) Unwrap() error {
	return e.Cause
}

// FileError 文件操作错误
type FileError struct {
	BaseError
	FilePath  string `json:"file_path"`
	Operation string `json:"operation"`
	Cause     error  `json:"cause,omitempty"`
}

// NewFileError 创建文件错误
func NewFileError(code ErrorCode, filePath, operation, message string, cause error) *FileError {
	return &FileError{
		BaseError: BaseError{
			Code:      code,
			Message:   message,
			Timestamp: time.Now(),
		},
		FilePath:  filePath,
		Operation: operation,
		Cause:     cause,
	}
}

// Error 实现error接口
func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] 文件操作失败 %s('%s'): %s (原因: %v)",
			e.Code, e.Operation, e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] 文件操作失败 %s('%s'): %s",
		e.Code, e.Operation, e.FilePath, e.Message)
}

// Unwrap 返回原始错误
func (e *FileError) Unwrap() error {
	return e.Cause
}

// IsErrorType 检查错误是否为指定类型
func IsErrorType(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	switch e := err.(type) {
	case *BaseError:
		return e.Code == code
	case *InputFormatError:
		return e.Code == code
	case *EmptyResultError:
		return e.Code == code
	case *RowError:
		return e.Code == code
	case *FileError:
		return e.Code == code
	}

	return false
}
