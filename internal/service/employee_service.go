package service

import (
	"context"

	"go.uber.org/zap"

	"hris/backend/config"
	"hris/backend/internal/dto"
	"hris/backend/internal/model"
	"hris/backend/internal/repository"
)

// EmployeeService 员工目录业务接口（只读）
type EmployeeService interface {
	List(ctx context.Context, tenantID int64, page *dto.PaginationRequest) ([]dto.EmployeeResponse, int64, error)
}

type employeeService struct {
	cfg    *config.ShiftPlanConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(cfg *config.ShiftPlanConfig, repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{cfg: cfg, repo: repo, logger: logger}
}

// List 分页返回租户下的员工，tenantID 为 0 时回退到默认租户
func (s *employeeService) List(ctx context.Context, tenantID int64, page *dto.PaginationRequest) ([]dto.EmployeeResponse, int64, error) {
	tenantID = fallbackTenant(tenantID, s.cfg.DefaultTenantID)
	employees, total, err := s.repo.Employee.List(ctx, tenantID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Int64("tenant_id", tenantID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, toEmployeeResponse(&employees[i]))
	}
	return result, total, nil
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		EmployeeID:   e.EmployeeID,
		TenantID:     e.TenantID,
		Name:         e.Name,
		EmployeeType: e.EmployeeType,
		Department:   e.Department,
		Position:     e.Position,
	}
}
