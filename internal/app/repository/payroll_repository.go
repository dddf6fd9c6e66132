package repository

import (
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
)

// PayrollAggregate sums the live salary figures of a company.
type PayrollAggregate struct {
	TotalBase       float64
	TotalAllowances float64
	TotalDeductions float64
	EmployeeCount   int64
}

// PayrollRepository handles payroll snapshots and salary aggregates.
type PayrollRepository interface {
	AggregateCompany(companyID uint) (*PayrollAggregate, error)
	CreateSnapshot(snapshot *model.PayrollSnapshot) error
	FindSnapshots(companyID uint, fromYear, toYear int) ([]model.PayrollSnapshot, error)
	SnapshotExists(companyID uint, year int) (bool, error)
	ListCompanyIDs() ([]uint, error)
	SalaryBuckets(companyID uint) (map[string]int64, error)
}

type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a payroll repository.
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) AggregateCompany(companyID uint) (*PayrollAggregate, error) {
	var agg PayrollAggregate
	err := r.db.Model(&model.User{}).
		Where("company_id = ? AND status != ?", companyID, model.StatusDisabled).
		Select("COALESCE(SUM(base_salary), 0) AS total_base, " +
			"COALESCE(SUM(allowances), 0) AS total_allowances, " +
			"COALESCE(SUM(deductions), 0) AS total_deductions, " +
			"COUNT(*) AS employee_count").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *payrollRepository) CreateSnapshot(snapshot *model.PayrollSnapshot) error {
	return r.db.Create(snapshot).Error
}

func (r *payrollRepository) FindSnapshots(companyID uint, fromYear, toYear int) ([]model.PayrollSnapshot, error) {
	var snapshots []model.PayrollSnapshot
	err := r.db.Where("company_id = ? AND year >= ? AND year <= ?", companyID, fromYear, toYear).
		Order("year ASC").
		Find(&snapshots).Error
	return snapshots, err
}

func (r *payrollRepository) SnapshotExists(companyID uint, year int) (bool, error) {
	var count int64
	err := r.db.Model(&model.PayrollSnapshot{}).
		Where("company_id = ? AND year = ?", companyID, year).
		Count(&count).Error
	return count > 0, err
}

func (r *payrollRepository) ListCompanyIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Company{}).Pluck("id", &ids).Error
	return ids, err
}

// SalaryBuckets groups active employees into salary bands for the
// distribution chart.
func (r *payrollRepository) SalaryBuckets(companyID uint) (map[string]int64, error) {
	type row struct {
		Bucket string
		Count  int64
	}

	var rows []row
	err := r.db.Model(&model.User{}).
		Where("company_id = ? AND status != ?", companyID, model.StatusDisabled).
		Select("CASE " +
			"WHEN base_salary < 30000 THEN 'under_30k' " +
			"WHEN base_salary < 50000 THEN '30k_50k' " +
			"WHEN base_salary < 80000 THEN '50k_80k' " +
			"WHEN base_salary < 120000 THEN '80k_120k' " +
			"ELSE 'over_120k' END AS bucket, COUNT(*) AS count").
		Group("bucket").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]int64, len(rows))
	for _, r := range rows {
		buckets[r.Bucket] = r.Count
	}
	return buckets, nil
}
