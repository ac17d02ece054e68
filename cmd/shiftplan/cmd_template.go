package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hris/backend/internal/service"
	"hris/backend/internal/shiftplan"
)

var (
	templateMonth     string
	templateEmployees string
	templateTenant    int64
	templateOutput    string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "按员工编号生成空白排班模板",
	Example: `  shiftplan template --month 2024-01 --employees 1,2,3
  shiftplan template --month 2024-02 --employees 42 --tenant 7 -o feb.xlsx`,
	Args: cobra.NoArgs,
	RunE: runTemplate,
}

func init() {
	templateCmd.Flags().StringVar(&templateMonth, "month", "", "目标月份 YYYY-MM（默认当前月）")
	templateCmd.Flags().StringVar(&templateEmployees, "employees", "", "逗号分隔的员工编号")
	templateCmd.Flags().Int64Var(&templateTenant, "tenant", 1, "tenant_id 列的值")
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", shiftplan.TemplateFilename, "输出文件")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	first := time.Now().UTC()
	if templateMonth != "" {
		m, err := service.ParseMonth(templateMonth)
		if err != nil {
			return err
		}
		first = m
	}
	if templateTenant <= 0 {
		return fmt.Errorf("--tenant 必须为正整数")
	}

	roster, err := parseEmployeeIDs(templateEmployees)
	if err != nil {
		return err
	}

	f, err := shiftplan.GenerateTemplate(shiftplan.TemplateOptions{
		TenantID:  templateTenant,
		Employees: roster,
		Dates:     shiftplan.MonthDates(first.Year(), first.Month()),
	})
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(templateOutput); err != nil {
		return fmt.Errorf("保存模板失败: %w", err)
	}

	logger.Debug("模板已生成", zap.String("path", templateOutput), zap.Int("employees", len(roster)))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d employees, %s)\n", templateOutput, len(roster), first.Format("2006-01"))
	return nil
}

// parseEmployeeIDs 解析 "1,2,3"，保持输入顺序并去重
func parseEmployeeIDs(raw string) ([]shiftplan.RosterEntry, error) {
	var roster []shiftplan.RosterEntry
	seen := make(map[int64]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("员工编号 %q 无效", part)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		roster = append(roster, shiftplan.RosterEntry{EmployeeID: id})
	}
	return roster, nil
}

// openInput 打开待校验/导入的文件
func openInput(path string) (*os.File, error) {
	if err := service.CheckUploadFilename(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &shiftplan.FileReadError{Err: err}
	}
	return f, nil
}
