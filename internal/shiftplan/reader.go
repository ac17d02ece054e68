package shiftplan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// 旧版 .xls (BIFF/OLE2) 文件头
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ReadWorkbook 读取工作簿第一张工作表的全部行。
// .xls 通过扩展名或 OLE2 文件头识别，其余按 .xlsx 处理。
func ReadWorkbook(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileReadError{Err: err}
	}

	if isLegacyXLS(data, filename) {
		return readXLS(data)
	}
	return readXLSX(data)
}

func isLegacyXLS(data []byte, filename string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".xls") {
		return true
	}
	return bytes.HasPrefix(data, oleMagic)
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Message: msgUnreadable, Err: err}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, &FormatError{Message: msgTemplateEmpty}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &FormatError{Message: msgUnreadable, Err: err}
	}
	return rows, nil
}

// readXLS 读取 BIFF 工作簿的第一张工作表。
// 解析库遇到损坏的 OLE2 结构会直接 panic，这里统一转成 FormatError。
func readXLS(data []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, &FormatError{Message: msgUnreadable, Err: fmt.Errorf("%v", r)}
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &FormatError{Message: msgUnreadable, Err: err}
	}
	// 找不到 Workbook 流时返回 nil, nil
	if wb == nil {
		return nil, &FormatError{Message: msgUnreadable, Err: errors.New("workbook stream not found")}
	}
	if wb.NumSheets() == 0 {
		return nil, &FormatError{Message: msgTemplateEmpty}
	}

	sheet := wb.GetSheet(0)
	// MaxRow 为 0 表示最多只有表头
	if sheet == nil || sheet.MaxRow == 0 {
		return nil, &FormatError{Message: msgTemplateEmpty}
	}

	// 只读取第一张工作表，缺失的行保留为 nil
	return wb.ReadAllCells(int(sheet.MaxRow) + 1), nil
}
