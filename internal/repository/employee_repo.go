package repository

import (
	"context"

	"gorm.io/gorm"

	"hris/backend/internal/model"
)

// EmployeeRepository 员工目录数据访问接口
type EmployeeRepository interface {
	ListByTenant(ctx context.Context, tenantID int64) ([]model.Employee, error)
	List(ctx context.Context, tenantID int64, offset, limit int) ([]model.Employee, int64, error)
}

// employeeRepo EmployeeRepository 的 GORM 实现
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

// ListByTenant 按姓名排序返回租户下的全部员工
func (r *employeeRepo) ListByTenant(ctx context.Context, tenantID int64) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC, employee_id ASC").
		Find(&employees).Error
	return employees, err
}

// List 分页查询租户下的员工
func (r *employeeRepo) List(ctx context.Context, tenantID int64, offset, limit int) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Employee{}).Where("tenant_id = ?", tenantID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC, employee_id ASC").
		Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}
