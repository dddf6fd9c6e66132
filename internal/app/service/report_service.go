package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/pkg/logger"
)

// ReportService exports company HR data as XLSX workbooks.
type ReportService interface {
	AttendanceReport(companyID uint, year int, month time.Month) (*bytes.Buffer, string, error)
	PayrollReport(companyID uint) (*bytes.Buffer, string, error)
	LeaveReport(companyID uint, year int) (*bytes.Buffer, string, error)
}

type reportService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRepository
}

// NewReportService creates a report service.
func NewReportService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	leaveRepo repository.LeaveRepository,
) ReportService {
	return &reportService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
	}
}

func (s *reportService) AttendanceReport(companyID uint, year int, month time.Month) (*bytes.Buffer, string, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	records, err := s.attendanceRepo.FindCompanyRecordsInRange(companyID, start, end)
	if err != nil {
		return nil, "", err
	}

	users, err := s.companyUsers(companyID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee", "Email", "Date", "Worked Hours", "Overtime Hours"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range records {
		user, ok := users[r.UserID]
		if !ok {
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), user.FullName())
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), user.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), float64(r.WorkedSeconds)/3600)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), float64(r.OvertimeSeconds)/3600)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%d_%02d.xlsx", year, month)
	logger.Get().Info("attendance report exported", map[string]interface{}{
		"company_id": companyID,
		"rows":       row - 2,
	})
	return buf, filename, nil
}

func (s *reportService) PayrollReport(companyID uint) (*bytes.Buffer, string, error) {
	users, _, err := s.userRepo.List(repository.UserFilter{
		CompanyID: companyID,
		Limit:     100,
	})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee", "Email", "Position", "Base Salary", "Allowances", "Deductions", "Net Pay"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, u := range users {
		row := i + 2
		net := u.BaseSalary + u.Allowances - u.Deductions
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), u.FullName())
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), u.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), u.Position)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), u.BaseSalary)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), u.Allowances)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), u.Deductions)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), net)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payroll_%s.xlsx", time.Now().Format("2006_01"))
	return buf, filename, nil
}

func (s *reportService) LeaveReport(companyID uint, year int) (*bytes.Buffer, string, error) {
	leaves, _, err := s.leaveRepo.List(repository.LeaveFilter{
		CompanyID: companyID,
		Limit:     100,
	})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Leaves"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee", "Type", "Start", "End", "Days", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, l := range leaves {
		if l.StartDate.Year() != year {
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), l.User.FullName())
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), l.Type)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), l.StartDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), l.EndDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), l.Days)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), l.Status)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("leaves_%d.xlsx", year)
	return buf, filename, nil
}

func (s *reportService) companyUsers(companyID uint) (map[uint]model.User, error) {
	users, _, err := s.userRepo.List(repository.UserFilter{
		CompanyID: companyID,
		Limit:     100,
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
