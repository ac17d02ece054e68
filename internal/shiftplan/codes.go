// Package shiftplan 月度排班表的导入、校验、分组与模板生成
//
// 数据流：
//   - 上传：工作簿 → ReadWorkbook → ParseRows → []NormalizedShift → Committer.Commit
//   - 下载：员工名单 + 日期列表 → GenerateTemplate → *excelize.File
//
// 本包不持有任何跨调用状态，持久化通过 Upserter 接口注入。
package shiftplan

import (
	"strconv"
	"strings"
)

// EmployeeType 员工类型，决定班次编码的取值范围
type EmployeeType int

const (
	EmployeeTypeShift  EmployeeType = 1 // 倒班员工
	EmployeeTypeOffice EmployeeType = 2 // 行政员工
)

// Valid 是否为已知员工类型
func (t EmployeeType) Valid() bool {
	return t == EmployeeTypeShift || t == EmployeeTypeOffice
}

// ShiftCode 单日班次编码
type ShiftCode int

// 类型 1（倒班员工）
const (
	ShiftOff       ShiftCode = 0
	ShiftMorning   ShiftCode = 1
	ShiftAfternoon ShiftCode = 2
	ShiftNight     ShiftCode = 3
)

// 类型 2（行政员工）
const (
	ShiftHolidayCover ShiftCode = 4
	ShiftOfficeOff    ShiftCode = 5
)

// String 持久化使用的字符串形式（"0".."5"）
func (c ShiftCode) String() string {
	return strconv.Itoa(int(c))
}

// NormalizeShift 将单元格原始文本按员工类型转换为班次编码。
// 文本先去除首尾空白并转大写；ok=false 表示该值对该类型无效。
func NormalizeShift(t EmployeeType, raw string) (ShiftCode, bool) {
	v := strings.ToUpper(strings.TrimSpace(raw))

	switch t {
	case EmployeeTypeShift:
		if v == "" || v == "0" {
			return ShiftOff, true
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 3 {
			return 0, false
		}
		return ShiftCode(n), true
	case EmployeeTypeOffice:
		switch v {
		case "", "0":
			return ShiftOfficeOff, true
		case "HC":
			return ShiftHolidayCover, true
		}
		return 0, false
	}
	return 0, false
}

// DisplayShift 将已存储的班次编码还原为模板单元格文本，与 NormalizeShift 互逆
func DisplayShift(t EmployeeType, c ShiftCode) string {
	switch t {
	case EmployeeTypeOffice:
		if c == ShiftHolidayCover {
			return "HC"
		}
		return "0"
	default:
		if c >= ShiftMorning && c <= ShiftNight {
			return c.String()
		}
		return "0"
	}
}

// InferEmployeeType 根据已存储的编码推断员工类型（4/5 仅属于类型 2）
func InferEmployeeType(codes map[string]string) (EmployeeType, bool) {
	found := false
	for _, raw := range codes {
		switch raw {
		case ShiftHolidayCover.String(), ShiftOfficeOff.String():
			return EmployeeTypeOffice, true
		case ShiftMorning.String(), ShiftAfternoon.String(), ShiftNight.String(), ShiftOff.String():
			found = true
		}
	}
	if found {
		return EmployeeTypeShift, true
	}
	return 0, false
}
