package model

import "time"

// MonthlyShift 月度排班文档：monthly_shifts
// (employee_id, month) 唯一；month 固定为当月 1 日
type MonthlyShift struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID   int64     `gorm:"not null;index"                                 json:"tenant_id"`
	EmployeeID int64     `gorm:"not null;uniqueIndex:uq_monthly_shift"          json:"employee_id"`
	Month      time.Time `gorm:"type:date;not null;uniqueIndex:uq_monthly_shift" json:"month"`
	Shifts     ShiftMap  `gorm:"type:jsonb;not null;default:'{}'"               json:"shifts"`
	BaseModel
}

func (MonthlyShift) TableName() string { return "monthly_shifts" }
