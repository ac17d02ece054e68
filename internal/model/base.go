package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ── PostgreSQL JSONB 自定义类型 ──

// ShiftMap 对应 monthly_shifts.shifts JSONB 列：月内日期 "1".."31" → 班次编码。
// 实现 GORM Scanner/Valuer 接口。
type ShiftMap map[string]string

// Scan 将 PostgreSQL 返回的 JSON 文本解析为 map。
func (m *ShiftMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("ShiftMap.Scan: unsupported type %T", src)
	}
	out := make(ShiftMap)
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("ShiftMap.Scan: %w", err)
	}
	*m = out
	return nil
}

// Value 将 map 序列化为 JSON 文本；nil 写入空对象，保证 || 合并有效。
func (m ShiftMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDataType 声明列类型
func (ShiftMap) GormDataType() string { return "jsonb" }

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// SoftDeleteModel 支持软删除的审计字段
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
