package service

import (
	"go.uber.org/zap"

	"hris/backend/config"
	"hris/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	ShiftPlan ShiftPlanService
	Employee  EmployeeService
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		ShiftPlan: NewShiftPlanService(&cfg.ShiftPlan, repo, logger),
		Employee:  NewEmployeeService(&cfg.ShiftPlan, repo, logger),
	}
}
