package dto

// ── 排班计划请求 ──

// MonthQuery 月份查询参数，格式 YYYY-MM；为空时取当前月份
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,len=7"`
}

// ── 排班计划响应 ──

// UploadShiftPlanResponse 上传结果
type UploadShiftPlanResponse struct {
	Committed int `json:"committed"` // 已写入的班次数
}

// MonthlyShiftResponse 月度排班文档
type MonthlyShiftResponse struct {
	ID         string            `json:"id"`
	TenantID   int64             `json:"tenant_id"`
	EmployeeID int64             `json:"employee_id"`
	Month      string            `json:"month"` // YYYY-MM-01
	Shifts     map[string]string `json:"shifts"`
	UpdatedAt  string            `json:"updated_at"`
}
