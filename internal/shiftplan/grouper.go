package shiftplan

import (
	"context"
)

// DefaultBatchSize 单次 upsert 请求包含的班次数上限（传输层限制，与正确性无关）
const DefaultBatchSize = 100

// MonthlyShiftDocument 持久化单元：一名员工一个自然月
type MonthlyShiftDocument struct {
	TenantID   int64
	EmployeeID int64
	Month      string            // YYYY-MM-01
	Shifts     map[string]string // 月内日期 "1".."31" → 班次编码
}

// Upserter 持久化协作者
//
// 以 (employee_id, month) 为冲突键执行"冲突即更新"，
// 单次调用对本模块而言是原子的。
type Upserter interface {
	UpsertMonthlyShifts(ctx context.Context, docs []MonthlyShiftDocument) error
}

type groupKey struct {
	employeeID int64
	month      string
}

// GroupByEmployeeMonth 按 (employee_id, month) 分组。
// 同一天出现多次时按输入顺序后写覆盖前写；文档按首次出现的顺序输出。
func GroupByEmployeeMonth(shifts []NormalizedShift) []MonthlyShiftDocument {
	index := make(map[groupKey]int)
	var docs []MonthlyShiftDocument

	for _, s := range shifts {
		key := groupKey{employeeID: s.EmployeeID, month: s.Month()}
		i, ok := index[key]
		if !ok {
			i = len(docs)
			index[key] = i
			docs = append(docs, MonthlyShiftDocument{
				TenantID:   s.TenantID,
				EmployeeID: s.EmployeeID,
				Month:      key.month,
				Shifts:     make(map[string]string),
			})
		}
		docs[i].Shifts[s.Day()] = s.Shift.String()
	}
	return docs
}

// Committer 分批提交班次
type Committer struct {
	Store     Upserter
	BatchSize int
}

// NewCommitter 创建 Committer，batchSize <= 0 时使用 DefaultBatchSize
func NewCommitter(store Upserter, batchSize int) *Committer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Committer{Store: store, BatchSize: batchSize}
}

// Commit 顺序提交所有批次，返回成功提交的班次总数。
// 任一批次失败立即停止并返回 *PersistenceError，已提交的批次不回滚。
func (c *Committer) Commit(ctx context.Context, shifts []NormalizedShift) (int, error) {
	size := c.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	committed := 0
	for start := 0; start < len(shifts); start += size {
		end := start + size
		if end > len(shifts) {
			end = len(shifts)
		}
		batch := shifts[start:end]

		if err := c.Store.UpsertMonthlyShifts(ctx, GroupByEmployeeMonth(batch)); err != nil {
			return committed, &PersistenceError{Committed: committed, Err: err}
		}
		committed += len(batch)
	}
	return committed, nil
}
