package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hris/backend/internal/model"
)

// MonthlyShiftRepository 月度排班数据访问接口
type MonthlyShiftRepository interface {
	// UpsertBatch 以 (employee_id, month) 为冲突键批量写入，
	// 冲突时按键合并 shifts（未出现的日期保留原值）
	UpsertBatch(ctx context.Context, docs []model.MonthlyShift) error
	ListByTenantMonth(ctx context.Context, tenantID int64, month time.Time) ([]model.MonthlyShift, error)
	GetByEmployeeMonth(ctx context.Context, employeeID int64, month time.Time) (*model.MonthlyShift, error)
}

type monthlyShiftRepo struct {
	db *gorm.DB
}

func NewMonthlyShiftRepo(db *gorm.DB) MonthlyShiftRepository {
	return &monthlyShiftRepo{db: db}
}

// UpsertBatch 按 (employee_id, month) 合并写入。
// 冲突时只合并 shifts，tenant_id 保持首次写入的值。
func (r *monthlyShiftRepo) UpsertBatch(ctx context.Context, docs []model.MonthlyShift) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"shifts":     gorm.Expr("monthly_shifts.shifts || EXCLUDED.shifts"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&docs).Error
}

func (r *monthlyShiftRepo) ListByTenantMonth(ctx context.Context, tenantID int64, month time.Time) ([]model.MonthlyShift, error) {
	var docs []model.MonthlyShift
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND month = ?", tenantID, month.Format("2006-01-02")).
		Order("employee_id ASC").
		Find(&docs).Error
	return docs, err
}

func (r *monthlyShiftRepo) GetByEmployeeMonth(ctx context.Context, employeeID int64, month time.Time) (*model.MonthlyShift, error) {
	var doc model.MonthlyShift
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND month = ?", employeeID, month.Format("2006-01-02")).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
