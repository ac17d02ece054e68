package handler

import (
	"github.com/gin-gonic/gin"

	"hris/backend/internal/dto"
	"hris/backend/internal/service"
	"hris/backend/pkg/response"
)

// EmployeeHandler 员工目录 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// ListEmployees 当前租户的员工列表（按姓名排序）
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	tenantID, ok := MustGetTenantID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employees, total, err := h.employeeSvc.List(c.Request.Context(), tenantID, &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, employees, total, page.GetPage(), page.GetPageSize())
}
