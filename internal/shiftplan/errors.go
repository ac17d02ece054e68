package shiftplan

import (
	"fmt"
	"strings"
)

// ── 排班导入错误分类 ──
//
// 全部错误均为致命错误，不做自动重试；调用方通过 errors.As 区分类型。

// FileReadError 上传的二进制内容无法读取
type FileReadError struct {
	Err error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("Failed to read file: %v", e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// FormatError 工作表结构不可用（无数据行、表头缺失、容器无法解析）
type FormatError struct {
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FormatError) Unwrap() error { return e.Err }

// ValidationError 一行或多行数据未通过校验，Problems 保留扫描顺序
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "\n")
}

// EmptyResultError 结构合法但未解析出任何班次
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "No valid shift data found in file"
}

// PersistenceError 某一批次写入失败；Committed 为此前已成功提交的班次数
type PersistenceError struct {
	Committed int
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("Failed to save shift plan after %d shifts were committed: %v", e.Committed, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

const (
	msgTemplateEmpty  = "Template is empty"
	msgInvalidHeaders = "Invalid template format: first three columns must be tenant_id, employee_id, employee_type"
	msgUnreadable     = "Unable to parse workbook"
)
