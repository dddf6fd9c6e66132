package main

import (
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/config"
	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/db"
	"github.com/proximahr/proximahr-backend/pkg/logger"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

// Seeds a demo company with an admin and a handful of employees for
// local development. Safe to re-run: it skips when the company exists.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})
	log := logger.Get()

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal("failed to run migrations", err)
	}

	var existing model.Company
	if err := database.Where("name = ?", "Acme Corp").First(&existing).Error; err == nil {
		log.Info("seed data already present, skipping")
		return
	}

	if err := seed(database); err != nil {
		log.Fatal("seeding failed", err)
	}
	log.Info("seed data created")
}

func seed(database *gorm.DB) error {
	return database.Transaction(func(tx *gorm.DB) error {
		company := &model.Company{
			Name:         "Acme Corp",
			Email:        "hr@acme.example",
			Address:      "1 Demo Street",
			Industry:     "Software",
			AdminCreated: true,
		}
		if err := tx.Create(company).Error; err != nil {
			return err
		}

		engineering := &model.Department{
			CompanyID:   company.ID,
			Name:        "Engineering",
			Description: "Product development",
		}
		if err := tx.Create(engineering).Error; err != nil {
			return err
		}

		adminHash, err := util.HashPassword("admin1234")
		if err != nil {
			return err
		}
		admin := &model.User{
			CompanyID:    company.ID,
			Email:        "admin@acme.example",
			PasswordHash: adminHash,
			FirstName:    "Ada",
			LastName:     "Admin",
			Role:         model.RoleAdmin,
			Status:       model.StatusActive,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		hireDate := time.Now().AddDate(-1, 0, 0)
		employees := []model.User{
			{
				Email: "eve@acme.example", FirstName: "Eve", LastName: "Engineer",
				Position: "Backend Engineer", BaseSalary: 72000, Allowances: 3000, Deductions: 900,
			},
			{
				Email: "max@acme.example", FirstName: "Max", LastName: "Maker",
				Position: "Frontend Engineer", BaseSalary: 68000, Allowances: 2500, Deductions: 850,
			},
			{
				Email: "pat@acme.example", FirstName: "Pat", LastName: "Planner",
				Position: "Product Manager", BaseSalary: 81000, Allowances: 4000, Deductions: 1100,
			},
		}
		for i := range employees {
			hash, err := util.HashPassword("employee1234")
			if err != nil {
				return err
			}
			employees[i].CompanyID = company.ID
			employees[i].PasswordHash = hash
			employees[i].Role = model.RoleEmployee
			employees[i].Status = model.StatusActive
			employees[i].DepartmentID = &engineering.ID
			employees[i].EmploymentType = model.EmploymentFullTime
			employees[i].HireDate = &hireDate
			employees[i].WeeklyHours = 40
			employees[i].VacationDays = 15
			if err := tx.Create(&employees[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
