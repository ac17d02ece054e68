package shiftplan

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// TemplateFilename 模板默认下载文件名
const TemplateFilename = "shift_plan_template.xlsx"

// SheetName 生成工作簿的工作表名称
const SheetName = "ShiftPlan"

// 列宽
const (
	idColumnWidth   = 14
	typeColumnWidth = 15
	dateColumnWidth = 11
)

// RosterEntry 名单中的一名员工
type RosterEntry struct {
	EmployeeID   int64
	Name         string
	EmployeeType EmployeeType // 0 表示未知
}

// TemplateOptions 模板生成参数
type TemplateOptions struct {
	TenantID  int64
	Employees []RosterEntry
	Dates     []time.Time
}

// MonthDates 返回指定月份的每一天（从 1 日到月末）
func MonthDates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// GenerateTemplate 生成空白排班模板：每名员工一行，每天一列，
// employee_type 与全部日期单元格留空，待用户离线填写后重新上传。
func GenerateTemplate(opts TemplateOptions) (*excelize.File, error) {
	return buildWorkbook(opts, nil)
}

// GenerateFilled 生成已填充的排班表，版式与模板一致，可直接修改后重新上传。
//
// 员工类型优先从已存编码推断，与名单不一致时以已存编码为准，
// 否则取名单中的值；都无法确定时整行留空。
// 没有存储值的日期导出为空白，重新上传后会写入显式的休息编码（类型 1 为 0，类型 2 为 5）。
// 同一月份内混有两种类型编码时按类型 2 导出，类型 1 的编码显示为 0。
func GenerateFilled(opts TemplateOptions, docs []MonthlyShiftDocument) (*excelize.File, error) {
	byEmployee := make(map[int64][]MonthlyShiftDocument)
	for _, d := range docs {
		byEmployee[d.EmployeeID] = append(byEmployee[d.EmployeeID], d)
	}
	return buildWorkbook(opts, byEmployee)
}

func buildWorkbook(opts TemplateOptions, filled map[int64][]MonthlyShiftDocument) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("重命名工作表失败: %w", err)
	}

	// 表头
	header := make([]interface{}, 0, fixedColumns+len(opts.Dates))
	for _, h := range requiredHeaders {
		header = append(header, h)
	}
	for _, d := range opts.Dates {
		header = append(header, d.Format(dateLayout))
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}

	// 数据行
	for i, emp := range opts.Employees {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{opts.TenantID, emp.EmployeeID, nil}

		if filled != nil {
			docs := filled[emp.EmployeeID]
			empType := inferFromDocs(docs)
			if !empType.Valid() {
				empType = emp.EmployeeType
			}
			if empType.Valid() {
				row[2] = int(empType)
				for _, d := range opts.Dates {
					row = append(row, filledCell(docs, empType, d))
				}
			}
		}

		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("写入第 %d 行失败: %w", i+2, err)
		}
	}

	if err := decorate(f, len(opts.Employees), len(opts.Dates)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// decorate 列宽、表头样式、冻结窗格与 employee_type 下拉校验（仅提示作用，导入时以 ParseRows 为准）
func decorate(f *excelize.File, employees, dates int) error {
	_ = f.SetColWidth(SheetName, "A", "B", idColumnWidth)
	_ = f.SetColWidth(SheetName, "C", "C", typeColumnWidth)
	if dates > 0 {
		first, _ := excelize.ColumnNumberToName(fixedColumns + 1)
		last, _ := excelize.ColumnNumberToName(fixedColumns + dates)
		_ = f.SetColWidth(SheetName, first, last, dateColumnWidth)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(fixedColumns+dates, 1)
		_ = f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle)
	}

	_ = f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      fixedColumns,
		YSplit:      1,
		TopLeftCell: "D2",
		ActivePane:  "bottomRight",
	})

	if employees == 0 {
		return nil
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("C2:C%d", employees+1)
	if err := dv.SetDropList([]string{"1", "2"}); err != nil {
		return fmt.Errorf("设置员工类型下拉失败: %w", err)
	}
	dv.SetInput("employee_type", "1 = shift worker (0-3), 2 = office worker (0 or HC)")
	if err := f.AddDataValidation(SheetName, dv); err != nil {
		return fmt.Errorf("添加数据校验失败: %w", err)
	}
	return nil
}

func inferFromDocs(docs []MonthlyShiftDocument) EmployeeType {
	for _, d := range docs {
		if t, ok := InferEmployeeType(d.Shifts); ok {
			return t
		}
	}
	return 0
}

// filledCell 查找某天的已存编码；无记录时留空（导入时等同休息）
func filledCell(docs []MonthlyShiftDocument, t EmployeeType, date time.Time) interface{} {
	month := date.Format(monthLayout) + "-01"
	day := strconv.Itoa(date.Day())
	for _, d := range docs {
		if d.Month != month {
			continue
		}
		raw, ok := d.Shifts[day]
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil
		}
		return DisplayShift(t, ShiftCode(n))
	}
	return nil
}
