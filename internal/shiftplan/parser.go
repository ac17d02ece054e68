package shiftplan

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// 表头固定列
var requiredHeaders = [...]string{"tenant_id", "employee_id", "employee_type"}

const (
	fixedColumns = len(requiredHeaders)
	dateLayout   = "20060102"
	monthLayout  = "2006-01"
)

var dateHeaderPattern = regexp.MustCompile(`^\d{8}$`)

// UploadRow 工作表中的一行原始数据，仅在解析阶段存在
type UploadRow struct {
	Row   int // 工作表行号（从 1 开始，表头为第 1 行）
	Cells []string
}

// cell 返回第 idx 列（从 0 开始）的去空白文本，越界视为空
func (r UploadRow) cell(idx int) string {
	if idx < len(r.Cells) {
		return strings.TrimSpace(r.Cells[idx])
	}
	return ""
}

// blank 整行无任何非空单元格
func (r UploadRow) blank() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// NormalizedShift 一条已校验的排班事实
type NormalizedShift struct {
	TenantID   int64
	EmployeeID int64
	Date       string // YYYYMMDD
	Shift      ShiftCode
}

// Month 所属月份，格式 YYYY-MM-01
func (s NormalizedShift) Month() string {
	return s.Date[0:4] + "-" + s.Date[4:6] + "-01"
}

// Day 月内日期，不含前导零（"1".."31"）
func (s NormalizedShift) Day() string {
	d, _ := strconv.Atoi(s.Date[6:8])
	return strconv.Itoa(d)
}

// ParseWorkbook 读取并校验上传的工作簿
func ParseWorkbook(r io.Reader, filename string) ([]NormalizedShift, error) {
	rows, err := ReadWorkbook(r, filename)
	if err != nil {
		return nil, err
	}
	return ParseRows(rows)
}

// ParseRows 校验第一张工作表的所有行并输出规范化班次。
//
// 规则：
//   - 行数 < 2 或表头前三列不符 → FormatError，不处理任何数据行
//   - 全空行跳过
//   - tenant_id / employee_id / employee_type 任一无效 → 记录行级错误并跳过该行的日期列
//   - 日期列表头须为 8 位 YYYYMMDD，单元格按员工类型规范化
//   - 所有错误汇总为一个 ValidationError（全有或全无）
func ParseRows(rows [][]string) ([]NormalizedShift, error) {
	if len(rows) < 2 {
		return nil, &FormatError{Message: msgTemplateEmpty}
	}

	header := rows[0]
	if !validHeader(header) {
		return nil, &FormatError{Message: msgInvalidHeaders}
	}

	var (
		shifts   []NormalizedShift
		problems []string
	)

	for i := 1; i < len(rows); i++ {
		row := UploadRow{Row: i + 1, Cells: rows[i]}
		if row.blank() {
			continue
		}

		tenantID, ok := parsePositiveInt(row.cell(0))
		if !ok {
			problems = append(problems, fmt.Sprintf("Row %d: Invalid tenant_id (expected positive integer)", row.Row))
			continue
		}
		employeeID, ok := parsePositiveInt(row.cell(1))
		if !ok {
			problems = append(problems, fmt.Sprintf("Row %d: Invalid employee_id (expected positive integer)", row.Row))
			continue
		}
		empType, ok := parseEmployeeType(row.cell(2))
		if !ok {
			problems = append(problems, fmt.Sprintf("Row %d: Invalid employee_type (expected 1 or 2)", row.Row))
			continue
		}

		for col := fixedColumns; col < len(header); col++ {
			colNum := col + 1
			date := strings.TrimSpace(header[col])
			if !validDateHeader(date) {
				problems = append(problems, fmt.Sprintf("Row %d, Column %d: Invalid date header %q (expected YYYYMMDD)", row.Row, colNum, date))
				continue
			}

			code, ok := NormalizeShift(empType, row.cell(col))
			if !ok {
				problems = append(problems, invalidShiftMessage(row.Row, colNum, empType))
				continue
			}

			shifts = append(shifts, NormalizedShift{
				TenantID:   tenantID,
				EmployeeID: employeeID,
				Date:       date,
				Shift:      code,
			})
		}
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	if len(shifts) == 0 {
		return nil, &EmptyResultError{}
	}
	return shifts, nil
}

func validHeader(header []string) bool {
	if len(header) < fixedColumns {
		return false
	}
	for i, want := range requiredHeaders {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return false
		}
	}
	return true
}

// validDateHeader 8 位数字且为真实日历日期（拒绝 20241301 之类）
func validDateHeader(h string) bool {
	if !dateHeaderPattern.MatchString(h) {
		return false
	}
	_, err := time.Parse(dateLayout, h)
	return err == nil
}

func parsePositiveInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func parseEmployeeType(s string) (EmployeeType, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	t := EmployeeType(n)
	return t, t.Valid()
}

func invalidShiftMessage(row, col int, t EmployeeType) string {
	if t == EmployeeTypeOffice {
		return fmt.Sprintf("Row %d, Column %d: Invalid shift value for Type 2 employee (expected 0 or HC)", row, col)
	}
	return fmt.Sprintf("Row %d, Column %d: Invalid shift value for Type 1 employee (expected 0-3)", row, col)
}
