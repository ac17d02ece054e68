package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"hris/backend/internal/model"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees []model.Employee
	err       error
}

func newMockEmployeeRepo(employees ...model.Employee) *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: employees}
}

func (m *mockEmployeeRepo) ListByTenant(_ context.Context, tenantID int64) ([]model.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Employee
	for _, e := range m.employees {
		if e.TenantID == tenantID {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}

func (m *mockEmployeeRepo) List(ctx context.Context, tenantID int64, offset, limit int) ([]model.Employee, int64, error) {
	all, err := m.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Employee{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock MonthlyShiftRepository ──

// mockMonthlyShiftRepo 以 (employee_id, month) 为键，按键合并 shifts，与 JSONB || 行为一致
type mockMonthlyShiftRepo struct {
	docs   map[string]*model.MonthlyShift
	calls  int
	failAt int // 第 failAt 次 UpsertBatch 返回错误；0 表示不失败
}

func newMockMonthlyShiftRepo() *mockMonthlyShiftRepo {
	return &mockMonthlyShiftRepo{docs: make(map[string]*model.MonthlyShift)}
}

func shiftKey(employeeID int64, month time.Time) string {
	return fmt.Sprintf("%d|%s", employeeID, month.Format("2006-01-02"))
}

func (m *mockMonthlyShiftRepo) UpsertBatch(_ context.Context, docs []model.MonthlyShift) error {
	m.calls++
	if m.failAt > 0 && m.calls == m.failAt {
		return errors.New("connection reset")
	}
	for _, d := range docs {
		key := shiftKey(d.EmployeeID, d.Month)
		existing, ok := m.docs[key]
		if !ok {
			doc := d
			doc.ID = fmt.Sprintf("doc-%d", len(m.docs)+1)
			doc.Shifts = model.ShiftMap{}
			for k, v := range d.Shifts {
				doc.Shifts[k] = v
			}
			m.docs[key] = &doc
			continue
		}
		for k, v := range d.Shifts {
			existing.Shifts[k] = v
		}
	}
	return nil
}

func (m *mockMonthlyShiftRepo) ListByTenantMonth(_ context.Context, tenantID int64, month time.Time) ([]model.MonthlyShift, error) {
	var result []model.MonthlyShift
	for _, d := range m.docs {
		if d.TenantID == tenantID && d.Month.Equal(month) {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (m *mockMonthlyShiftRepo) GetByEmployeeMonth(_ context.Context, employeeID int64, month time.Time) (*model.MonthlyShift, error) {
	if d, ok := m.docs[shiftKey(employeeID, month)]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}
