package shiftplan

import (
	"errors"
	"strings"
	"testing"
)

var testHeader = []string{"tenant_id", "employee_id", "employee_type", "20240101", "20240102", "20240103"}

func TestParseRows_InvalidShiftForType1(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"1", "42", "1", "", "2", "HC"},
	}

	shifts, err := ParseRows(rows)
	if shifts != nil {
		t.Errorf("校验失败时不应返回任何班次，实际 %d 条", len(shifts))
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	want := "Row 2, Column 6: Invalid shift value for Type 1 employee (expected 0-3)"
	if verr.Error() != want {
		t.Errorf("错误信息不符:\n got: %s\nwant: %s", verr.Error(), want)
	}
}

func TestParseRows_Success(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"1", "42", "1", "", "2", "3"},
		{"1", "43", "2", "hc", "0", ""},
	}

	shifts, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows 应成功: %v", err)
	}
	if len(shifts) != 6 {
		t.Fatalf("期望 6 条班次，实际 %d", len(shifts))
	}

	want := []NormalizedShift{
		{1, 42, "20240101", ShiftOff},
		{1, 42, "20240102", ShiftAfternoon},
		{1, 42, "20240103", ShiftNight},
		{1, 43, "20240101", ShiftHolidayCover},
		{1, 43, "20240102", ShiftOfficeOff},
		{1, 43, "20240103", ShiftOfficeOff},
	}
	for i := range want {
		if shifts[i] != want[i] {
			t.Errorf("shift[%d] = %+v, want %+v", i, shifts[i], want[i])
		}
	}
}

func TestParseRows_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{"NoRows", nil, msgTemplateEmpty},
		{"HeaderOnly", [][]string{testHeader}, msgTemplateEmpty},
		{"MissingTenant", [][]string{{"tenant", "employee_id", "employee_type", "20240101"}, {"1", "1", "1", "1"}}, msgInvalidHeaders},
		{"WrongOrder", [][]string{{"employee_id", "tenant_id", "employee_type"}, {"1", "1", "1"}}, msgInvalidHeaders},
		{"TooShort", [][]string{{"tenant_id", "employee_id"}, {"1", "1"}}, msgInvalidHeaders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shifts, err := ParseRows(tt.rows)
			if len(shifts) != 0 {
				t.Errorf("expected zero shifts, got %d", len(shifts))
			}
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if ferr.Message != tt.want {
				t.Errorf("expected %q, got %q", tt.want, ferr.Message)
			}
		})
	}
}

func TestParseRows_HeaderCaseInsensitive(t *testing.T) {
	rows := [][]string{
		{" Tenant_ID ", "EMPLOYEE_ID", "Employee_Type", "20240101"},
		{"1", "7", "2", "HC"},
	}
	shifts, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("大小写不敏感的表头应通过: %v", err)
	}
	if len(shifts) != 1 || shifts[0].Shift != ShiftHolidayCover {
		t.Errorf("unexpected shifts: %+v", shifts)
	}
}

func TestParseRows_RowTrioErrors(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"0", "42", "1", "9", "9", "9"},
		{"1", "abc", "1"},
		{"1", "42", "3", "1"},
		{"1", "42", "", "1"},
	}

	_, err := ParseRows(rows)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}

	// 头三列无效的行不再校验日期列
	want := []string{
		"Row 2: Invalid tenant_id (expected positive integer)",
		"Row 3: Invalid employee_id (expected positive integer)",
		"Row 4: Invalid employee_type (expected 1 or 2)",
		"Row 5: Invalid employee_type (expected 1 or 2)",
	}
	if len(verr.Problems) != len(want) {
		t.Fatalf("期望 %d 条错误，实际 %d: %v", len(want), len(verr.Problems), verr.Problems)
	}
	for i := range want {
		if verr.Problems[i] != want[i] {
			t.Errorf("problem[%d] = %q, want %q", i, verr.Problems[i], want[i])
		}
	}
	if verr.Error() != strings.Join(want, "\n") {
		t.Errorf("错误信息应以换行连接")
	}
}

func TestParseRows_AccumulatesAcrossRows(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"1", "1", "1", "4", "1", "1"},
		{"1", "2", "2", "HC", "1", "X"},
		{"1", "3", "1", "1", "1", "1"},
	}

	_, err := ParseRows(rows)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	want := []string{
		"Row 2, Column 4: Invalid shift value for Type 1 employee (expected 0-3)",
		"Row 3, Column 5: Invalid shift value for Type 2 employee (expected 0 or HC)",
		"Row 3, Column 6: Invalid shift value for Type 2 employee (expected 0 or HC)",
	}
	if strings.Join(verr.Problems, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", verr.Error(), strings.Join(want, "\n"))
	}
}

func TestParseRows_InvalidDateHeader(t *testing.T) {
	rows := [][]string{
		{"tenant_id", "employee_id", "employee_type", "2024-01-01", "20241301", "20240102"},
		{"1", "1", "1", "1", "1", "1"},
		{"1", "2", "1", "1", "1", "1"},
	}

	_, err := ParseRows(rows)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	// 每行每个无效表头各记录一次
	if len(verr.Problems) != 4 {
		t.Fatalf("期望 4 条错误，实际 %d: %v", len(verr.Problems), verr.Problems)
	}
	if !strings.HasPrefix(verr.Problems[0], "Row 2, Column 4: Invalid date header") {
		t.Errorf("unexpected problem: %s", verr.Problems[0])
	}
	if !strings.HasPrefix(verr.Problems[3], "Row 3, Column 5: Invalid date header") {
		t.Errorf("unexpected problem: %s", verr.Problems[3])
	}
}

func TestParseRows_SkipsBlankRows(t *testing.T) {
	rows := [][]string{
		testHeader,
		{},
		{"", "  ", ""},
		{"1", "42", "1", "1", "2", "3"},
		nil,
	}

	shifts, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("空行应被跳过: %v", err)
	}
	if len(shifts) != 3 {
		t.Errorf("期望 3 条班次，实际 %d", len(shifts))
	}
}

func TestParseRows_EmptyResult(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"OnlyBlankRows", [][]string{testHeader, {}, {"", ""}}},
		{"NoDateColumns", [][]string{{"tenant_id", "employee_id", "employee_type"}, {"1", "1", "1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRows(tt.rows)
			var eerr *EmptyResultError
			if !errors.As(err, &eerr) {
				t.Fatalf("期望 EmptyResultError，实际: %v", err)
			}
		})
	}
}

func TestParseRows_ShortRowTreatedAsBlankCells(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"1", "42", "2"},
	}
	shifts, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("缺失的单元格应视为空: %v", err)
	}
	for _, s := range shifts {
		if s.Shift != ShiftOfficeOff {
			t.Errorf("expected office day off, got %d", s.Shift)
		}
	}
}

func TestNormalizedShift_MonthAndDay(t *testing.T) {
	s := NormalizedShift{Date: "20240309"}
	if s.Month() != "2024-03-01" {
		t.Errorf("Month() = %s", s.Month())
	}
	if s.Day() != "9" {
		t.Errorf("Day() = %s", s.Day())
	}
}
