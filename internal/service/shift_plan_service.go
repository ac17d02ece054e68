package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"hris/backend/config"
	"hris/backend/internal/dto"
	"hris/backend/internal/model"
	"hris/backend/internal/repository"
	"hris/backend/internal/shiftplan"
)

// ── 排班计划模块业务错误 ──

var (
	ErrInvalidMonth    = errors.New("月份格式无效，应为 YYYY-MM")
	ErrUnsupportedFile = errors.New("仅支持 .xlsx 或 .xls 文件")
)

const monthLayout = "2006-01"

// ShiftPlanService 排班计划导入导出业务接口
//
// 设计说明：
//   - 上传：解析 → 校验 → 分批 upsert，任何校验错误都会使整批失败
//   - 模板与导出以 bytes.Buffer 返回，由 Handler 层设置下载响应头
//   - 租户由调用方传入，为 0 时取配置中的默认租户
type ShiftPlanService interface {
	GenerateTemplate(ctx context.Context, tenantID int64, month string) (*bytes.Buffer, string, error)
	ExportShiftPlan(ctx context.Context, tenantID int64, month string) (*bytes.Buffer, string, error)
	UploadShiftPlan(ctx context.Context, uploader string, r io.Reader, filename string) (*dto.UploadShiftPlanResponse, error)
	ListMonthlyShifts(ctx context.Context, tenantID int64, month string) ([]dto.MonthlyShiftResponse, error)
}

type shiftPlanService struct {
	cfg       *config.ShiftPlanConfig
	repo      *repository.Repository
	committer *shiftplan.Committer
	logger    *zap.Logger
	now       func() time.Time
}

// NewShiftPlanService 创建 ShiftPlanService 实例
func NewShiftPlanService(cfg *config.ShiftPlanConfig, repo *repository.Repository, logger *zap.Logger) ShiftPlanService {
	return &shiftPlanService{
		cfg:       cfg,
		repo:      repo,
		committer: shiftplan.NewCommitter(&shiftStore{repo: repo.MonthlyShift}, cfg.BatchSize),
		logger:    logger,
		now:       time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// GenerateTemplate 下载空白模板
// ═══════════════════════════════════════════════════════════

func (s *shiftPlanService) GenerateTemplate(ctx context.Context, tenantID int64, month string) (*bytes.Buffer, string, error) {
	first, err := s.resolveMonth(month)
	if err != nil {
		return nil, "", err
	}
	tenantID = s.effectiveTenant(tenantID)

	roster, err := s.roster(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}

	f, err := shiftplan.GenerateTemplate(shiftplan.TemplateOptions{
		TenantID:  tenantID,
		Employees: roster,
		Dates:     shiftplan.MonthDates(first.Year(), first.Month()),
	})
	if err != nil {
		s.logger.Error("生成排班模板失败", zap.Error(err))
		return nil, "", err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出排班模板失败", zap.Error(err))
		return nil, "", fmt.Errorf("写出排班模板失败: %w", err)
	}

	s.logger.Info("生成排班模板",
		zap.Int64("tenant_id", tenantID),
		zap.String("month", first.Format(monthLayout)),
		zap.Int("employees", len(roster)),
	)
	return buf, shiftplan.TemplateFilename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportShiftPlan 导出已保存的排班（可修改后重新上传）
// ═══════════════════════════════════════════════════════════

func (s *shiftPlanService) ExportShiftPlan(ctx context.Context, tenantID int64, month string) (*bytes.Buffer, string, error) {
	first, err := s.resolveMonth(month)
	if err != nil {
		return nil, "", err
	}
	tenantID = s.effectiveTenant(tenantID)

	roster, err := s.roster(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}

	stored, err := s.repo.MonthlyShift.ListByTenantMonth(ctx, tenantID, first)
	if err != nil {
		s.logger.Error("查询月度排班失败", zap.Error(err))
		return nil, "", err
	}

	docs := make([]shiftplan.MonthlyShiftDocument, 0, len(stored))
	for _, m := range stored {
		docs = append(docs, toDocument(m))
	}
	roster = appendOrphans(roster, docs)

	f, err := shiftplan.GenerateFilled(shiftplan.TemplateOptions{
		TenantID:  tenantID,
		Employees: roster,
		Dates:     shiftplan.MonthDates(first.Year(), first.Month()),
	}, docs)
	if err != nil {
		s.logger.Error("生成排班导出失败", zap.Error(err))
		return nil, "", err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出排班导出失败", zap.Error(err))
		return nil, "", fmt.Errorf("写出排班导出失败: %w", err)
	}

	return buf, fmt.Sprintf("shift_plan_%s.xlsx", first.Format(monthLayout)), nil
}

// ═══════════════════════════════════════════════════════════
// UploadShiftPlan 上传并写入排班
// ═══════════════════════════════════════════════════════════

func (s *shiftPlanService) UploadShiftPlan(ctx context.Context, uploader string, r io.Reader, filename string) (*dto.UploadShiftPlanResponse, error) {
	if err := CheckUploadFilename(filename); err != nil {
		return nil, err
	}

	shifts, err := shiftplan.ParseWorkbook(r, filename)
	if err != nil {
		s.logger.Warn("排班文件校验未通过",
			zap.String("uploader", uploader),
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, err
	}

	committed, err := s.committer.Commit(ctx, shifts)
	if err != nil {
		s.logger.Error("排班写入失败",
			zap.String("uploader", uploader),
			zap.String("filename", filename),
			zap.Int("committed", committed),
			zap.Int("total", len(shifts)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("排班上传完成",
		zap.String("uploader", uploader),
		zap.String("filename", filename),
		zap.Int("committed", committed),
	)
	return &dto.UploadShiftPlanResponse{Committed: committed}, nil
}

// ═══════════════════════════════════════════════════════════
// ListMonthlyShifts 查询月度排班文档
// ═══════════════════════════════════════════════════════════

func (s *shiftPlanService) ListMonthlyShifts(ctx context.Context, tenantID int64, month string) ([]dto.MonthlyShiftResponse, error) {
	first, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	tenantID = s.effectiveTenant(tenantID)

	stored, err := s.repo.MonthlyShift.ListByTenantMonth(ctx, tenantID, first)
	if err != nil {
		s.logger.Error("查询月度排班失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MonthlyShiftResponse, 0, len(stored))
	for _, m := range stored {
		shifts := map[string]string(m.Shifts)
		if shifts == nil {
			shifts = map[string]string{}
		}
		result = append(result, dto.MonthlyShiftResponse{
			ID:         m.ID,
			TenantID:   m.TenantID,
			EmployeeID: m.EmployeeID,
			Month:      m.Month.Format("2006-01-02"),
			Shifts:     shifts,
			UpdatedAt:  m.UpdatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// ── 辅助函数 ──

// CheckUploadFilename 仅接受 .xlsx / .xls 扩展名
func CheckUploadFilename(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return nil
	default:
		return ErrUnsupportedFile
	}
}

// ParseMonth 解析 YYYY-MM，返回当月 1 日（UTC）
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

func (s *shiftPlanService) resolveMonth(month string) (time.Time, error) {
	if strings.TrimSpace(month) == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return ParseMonth(month)
}

func (s *shiftPlanService) effectiveTenant(tenantID int64) int64 {
	return fallbackTenant(tenantID, s.cfg.DefaultTenantID)
}

// fallbackTenant Token 未携带租户（0）时使用配置的默认租户
func fallbackTenant(tenantID, defaultTenantID int64) int64 {
	if tenantID > 0 {
		return tenantID
	}
	return defaultTenantID
}

func (s *shiftPlanService) roster(ctx context.Context, tenantID int64) ([]shiftplan.RosterEntry, error) {
	employees, err := s.repo.Employee.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("查询员工名单失败", zap.Int64("tenant_id", tenantID), zap.Error(err))
		return nil, err
	}

	roster := make([]shiftplan.RosterEntry, 0, len(employees))
	for _, e := range employees {
		entry := shiftplan.RosterEntry{EmployeeID: e.EmployeeID, Name: e.Name}
		if e.EmployeeType != nil {
			entry.EmployeeType = shiftplan.EmployeeType(*e.EmployeeType)
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

// appendOrphans 已存排班但不在名单中的员工（如已离职）按 employee_id 追加到末尾
func appendOrphans(roster []shiftplan.RosterEntry, docs []shiftplan.MonthlyShiftDocument) []shiftplan.RosterEntry {
	known := make(map[int64]bool, len(roster))
	for _, r := range roster {
		known[r.EmployeeID] = true
	}

	var orphans []shiftplan.RosterEntry
	for _, d := range docs {
		if !known[d.EmployeeID] {
			known[d.EmployeeID] = true
			orphans = append(orphans, shiftplan.RosterEntry{EmployeeID: d.EmployeeID})
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].EmployeeID < orphans[j].EmployeeID })
	return append(roster, orphans...)
}

func toDocument(m model.MonthlyShift) shiftplan.MonthlyShiftDocument {
	return shiftplan.MonthlyShiftDocument{
		TenantID:   m.TenantID,
		EmployeeID: m.EmployeeID,
		Month:      m.Month.Format("2006-01-02"),
		Shifts:     map[string]string(m.Shifts),
	}
}

// shiftStore 将 MonthlyShiftRepository 适配为 shiftplan.Upserter
type shiftStore struct {
	repo repository.MonthlyShiftRepository
}

func (s *shiftStore) UpsertMonthlyShifts(ctx context.Context, docs []shiftplan.MonthlyShiftDocument) error {
	rows := make([]model.MonthlyShift, 0, len(docs))
	for _, d := range docs {
		month, err := time.Parse("2006-01-02", d.Month)
		if err != nil {
			return fmt.Errorf("月份 %q 无效: %w", d.Month, err)
		}
		rows = append(rows, model.MonthlyShift{
			TenantID:   d.TenantID,
			EmployeeID: d.EmployeeID,
			Month:      month,
			Shifts:     model.ShiftMap(d.Shifts),
		})
	}
	return s.repo.UpsertBatch(ctx, rows)
}
