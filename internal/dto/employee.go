package dto

// EmployeeResponse 员工目录条目
type EmployeeResponse struct {
	EmployeeID   int64  `json:"employee_id"`
	TenantID     int64  `json:"tenant_id"`
	Name         string `json:"name"`
	EmployeeType *int   `json:"employee_type,omitempty"`
	Department   string `json:"department,omitempty"`
	Position     string `json:"position,omitempty"`
}
