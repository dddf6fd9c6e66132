package service

import (
	"time"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/pkg/logger"
)

// PayrollSummary is the live monthly payroll of a company.
type PayrollSummary struct {
	TotalBase       float64 `json:"total_base"`
	TotalAllowances float64 `json:"total_allowances"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalNet        float64 `json:"total_net"`
	EmployeeCount   int64   `json:"employee_count"`
	AverageNet      float64 `json:"average_net"`
}

// TrendPoint is one year of payroll totals.
type TrendPoint struct {
	Year      int     `json:"year"`
	TotalNet  float64 `json:"total_net"`
	Headcount int     `json:"headcount"`
}

// PayrollService computes payroll summaries, historical trends and
// salary distributions.
type PayrollService interface {
	Summary(companyID uint) (*PayrollSummary, error)
	// Trend returns yearly totals from snapshots plus a live point
	// for the current year.
	Trend(companyID uint, years int) ([]TrendPoint, error)
	Distribution(companyID uint) (map[string]int64, error)
	// SnapshotYear freezes the company's current payroll under the
	// given year. Snapshots are idempotent per company and year.
	SnapshotYear(companyID uint, year int) error
}

type payrollService struct {
	repo repository.PayrollRepository
}

// NewPayrollService creates a payroll service.
func NewPayrollService(repo repository.PayrollRepository) PayrollService {
	return &payrollService{repo: repo}
}

func (s *payrollService) Summary(companyID uint) (*PayrollSummary, error) {
	agg, err := s.repo.AggregateCompany(companyID)
	if err != nil {
		return nil, err
	}

	summary := &PayrollSummary{
		TotalBase:       agg.TotalBase,
		TotalAllowances: agg.TotalAllowances,
		TotalDeductions: agg.TotalDeductions,
		TotalNet:        agg.TotalBase + agg.TotalAllowances - agg.TotalDeductions,
		EmployeeCount:   agg.EmployeeCount,
	}
	if agg.EmployeeCount > 0 {
		summary.AverageNet = summary.TotalNet / float64(agg.EmployeeCount)
	}
	return summary, nil
}

func (s *payrollService) Trend(companyID uint, years int) ([]TrendPoint, error) {
	if years < 1 || years > 10 {
		years = 5
	}
	currentYear := time.Now().Year()

	snapshots, err := s.repo.FindSnapshots(companyID, currentYear-years, currentYear-1)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, 0, len(snapshots)+1)
	for _, snap := range snapshots {
		points = append(points, TrendPoint{
			Year:      snap.Year,
			TotalNet:  snap.TotalNet,
			Headcount: snap.EmployeeCount,
		})
	}

	live, err := s.Summary(companyID)
	if err != nil {
		return nil, err
	}
	points = append(points, TrendPoint{
		Year:      currentYear,
		TotalNet:  live.TotalNet,
		Headcount: int(live.EmployeeCount),
	})

	return points, nil
}

func (s *payrollService) Distribution(companyID uint) (map[string]int64, error) {
	return s.repo.SalaryBuckets(companyID)
}

func (s *payrollService) SnapshotYear(companyID uint, year int) error {
	exists, err := s.repo.SnapshotExists(companyID, year)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	agg, err := s.repo.AggregateCompany(companyID)
	if err != nil {
		return err
	}

	snapshot := &model.PayrollSnapshot{
		CompanyID:       companyID,
		Year:            year,
		TotalBase:       agg.TotalBase,
		TotalAllowances: agg.TotalAllowances,
		TotalDeductions: agg.TotalDeductions,
		TotalNet:        agg.TotalBase + agg.TotalAllowances - agg.TotalDeductions,
		EmployeeCount:   int(agg.EmployeeCount),
	}
	if err := s.repo.CreateSnapshot(snapshot); err != nil {
		return err
	}

	logger.Get().Info("payroll snapshot written", map[string]interface{}{
		"company_id": companyID,
		"year":       year,
	})
	return nil
}
