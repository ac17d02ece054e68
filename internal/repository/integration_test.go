//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hris/backend/internal/model"
	"hris/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=hris password=hris_password dbname=hris_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Employee{},
		&model.MonthlyShift{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// uniqueEmployeeID 避免并行运行的测试相互干扰
func uniqueEmployeeID() int64 {
	return time.Now().UnixNano() % 1_000_000_000
}

func cleanupShifts(t *testing.T, employeeIDs ...int64) {
	t.Helper()
	testDB.Where("employee_id IN ?", employeeIDs).Delete(&model.MonthlyShift{})
}

// ═══════════════════════════════════════════════════════════
// Test: Employee
// ═══════════════════════════════════════════════════════════

func TestEmployee_ListByTenant_OrderedByName(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tenantID := uniqueEmployeeID()
	base := uniqueEmployeeID()
	employees := []model.Employee{
		{EmployeeID: base + 1, TenantID: tenantID, Name: "Zhang"},
		{EmployeeID: base + 2, TenantID: tenantID, Name: "Adams"},
		{EmployeeID: base + 3, TenantID: tenantID + 1, Name: "Other Tenant"},
	}
	if err := testDB.WithContext(ctx).Create(&employees).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	defer testDB.Unscoped().Where("employee_id IN ?", []int64{base + 1, base + 2, base + 3}).Delete(&model.Employee{})

	list, err := repo.Employee.ListByTenant(ctx, tenantID)
	if err != nil {
		t.Fatalf("ListByTenant 失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 名员工，实际 %d", len(list))
	}
	if list[0].Name != "Adams" || list[1].Name != "Zhang" {
		t.Errorf("应按姓名排序，实际: %s, %s", list[0].Name, list[1].Name)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: MonthlyShift Upsert
// ═══════════════════════════════════════════════════════════

func TestMonthlyShift_Upsert_InsertThenMerge(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	empID := uniqueEmployeeID()
	defer cleanupShifts(t, empID)
	month := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	first := []model.MonthlyShift{{
		TenantID:   1,
		EmployeeID: empID,
		Month:      month,
		Shifts:     model.ShiftMap{"1": "1", "2": "2"},
	}}
	if err := repo.MonthlyShift.UpsertBatch(ctx, first); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	// 第二次只覆盖 2 号并新增 3 号，1 号应保留
	second := []model.MonthlyShift{{
		TenantID:   1,
		EmployeeID: empID,
		Month:      month,
		Shifts:     model.ShiftMap{"2": "3", "3": "0"},
	}}
	if err := repo.MonthlyShift.UpsertBatch(ctx, second); err != nil {
		t.Fatalf("再次写入失败: %v", err)
	}

	doc, err := repo.MonthlyShift.GetByEmployeeMonth(ctx, empID, month)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	want := map[string]string{"1": "1", "2": "3", "3": "0"}
	for k, v := range want {
		if doc.Shifts[k] != v {
			t.Errorf("day %s: expected %s, got %s", k, v, doc.Shifts[k])
		}
	}
	if len(doc.Shifts) != len(want) {
		t.Errorf("expected %d days, got %d", len(want), len(doc.Shifts))
	}

	var count int64
	testDB.Model(&model.MonthlyShift{}).Where("employee_id = ?", empID).Count(&count)
	if count != 1 {
		t.Errorf("(employee_id, month) 应唯一，实际 %d 条", count)
	}
}

func TestMonthlyShift_Upsert_KeepsTenant(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	empID := uniqueEmployeeID()
	defer cleanupShifts(t, empID)
	month := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.MonthlyShift.UpsertBatch(ctx, []model.MonthlyShift{
		{TenantID: 1, EmployeeID: empID, Month: month, Shifts: model.ShiftMap{"1": "1"}},
	}); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}
	if err := repo.MonthlyShift.UpsertBatch(ctx, []model.MonthlyShift{
		{TenantID: 2, EmployeeID: empID, Month: month, Shifts: model.ShiftMap{"2": "2"}},
	}); err != nil {
		t.Fatalf("再次写入失败: %v", err)
	}

	doc, err := repo.MonthlyShift.GetByEmployeeMonth(ctx, empID, month)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if doc.TenantID != 1 {
		t.Errorf("冲突写入不应改变 tenant_id，实际 %d", doc.TenantID)
	}
	if doc.Shifts["1"] != "1" || doc.Shifts["2"] != "2" {
		t.Errorf("班次应合并，实际: %v", doc.Shifts)
	}
}

func TestMonthlyShift_ListByTenantMonth(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tenantID := uniqueEmployeeID()
	a, b := uniqueEmployeeID(), uniqueEmployeeID()+1
	defer cleanupShifts(t, a, b)

	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	docs := []model.MonthlyShift{
		{TenantID: tenantID, EmployeeID: a, Month: jan, Shifts: model.ShiftMap{"1": "1"}},
		{TenantID: tenantID, EmployeeID: b, Month: jan, Shifts: model.ShiftMap{"1": "4"}},
		{TenantID: tenantID, EmployeeID: a, Month: feb, Shifts: model.ShiftMap{"1": "2"}},
	}
	if err := repo.MonthlyShift.UpsertBatch(ctx, docs); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	list, err := repo.MonthlyShift.ListByTenantMonth(ctx, tenantID, jan)
	if err != nil {
		t.Fatalf("ListByTenantMonth 失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 条 1 月文档，实际 %d", len(list))
	}
}
