package handler

import "hris/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	ShiftPlan *ShiftPlanHandler
	Employee  *EmployeeHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		ShiftPlan: NewShiftPlanHandler(svc.ShiftPlan),
		Employee:  NewEmployeeHandler(svc.Employee),
	}
}
