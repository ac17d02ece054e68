package model

// Employee 员工表：employees
type Employee struct {
	EmployeeID   int64  `gorm:"primaryKey;autoIncrement:false"  json:"employee_id"`
	TenantID     int64  `gorm:"not null;index"                  json:"tenant_id"`
	Name         string `gorm:"type:varchar(100);not null"      json:"name"`
	EmployeeType *int   `gorm:"type:smallint"                   json:"employee_type,omitempty"` // 1 倒班 | 2 行政 | NULL 未设置
	Department   string `gorm:"type:varchar(100)"               json:"department,omitempty"`
	Position     string `gorm:"type:varchar(100)"               json:"position,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }
