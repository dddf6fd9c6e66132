package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/proximahr/proximahr-backend/config"
	"github.com/proximahr/proximahr-backend/internal/app/controller"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/app/service"
	"github.com/proximahr/proximahr-backend/internal/db"
	"github.com/proximahr/proximahr-backend/internal/router"
	"github.com/proximahr/proximahr-backend/internal/scheduler"
	"github.com/proximahr/proximahr-backend/internal/storage"
	"github.com/proximahr/proximahr-backend/internal/websocket"
	"github.com/proximahr/proximahr-backend/pkg/logger"
	"github.com/proximahr/proximahr-backend/pkg/redis"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})
	log := logger.Get()

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal("failed to run migrations", err)
	}

	if err := redis.Init(&cfg.Redis); err != nil {
		// token revocation degrades to no-ops without redis
		log.Warn("redis unavailable, continuing without token blacklist", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	mailer := util.NewMailer(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)

	hub := websocket.NewHub()
	go hub.Run()

	s3Store, err := storage.NewS3Storage(context.Background(), &cfg.S3)
	if err != nil {
		log.Fatal("failed to initialize storage", err)
	}

	userRepo := repository.NewUserRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	resetRepo := repository.NewPasswordResetRepository(database)
	deptRepo := repository.NewDepartmentRepository(database)
	leaveRepo := repository.NewLeaveRepository(database)
	attendanceRepo := repository.NewAttendanceRepository(database)
	payrollRepo := repository.NewPayrollRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	notificationService := service.NewNotificationService(notificationRepo, hub)
	authService := service.NewAuthService(userRepo, &cfg.JWT)
	resetService := service.NewPasswordResetService(database, userRepo, resetRepo, mailer)
	companyService := service.NewCompanyService(database, companyRepo, userRepo, mailer)
	employeeService := service.NewEmployeeService(userRepo, deptRepo, mailer)
	departmentService := service.NewDepartmentService(deptRepo, userRepo)
	leaveService := service.NewLeaveService(database, leaveRepo, userRepo, notificationService)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo)
	payrollService := service.NewPayrollService(payrollRepo)
	reportService := service.NewReportService(userRepo, attendanceRepo, leaveRepo)
	dashboardService := service.NewDashboardService(
		userRepo, deptRepo, leaveRepo, attendanceRepo, payrollService)

	engine := router.Setup(cfg, router.Controllers{
		Auth:          controller.NewAuthController(authService),
		PasswordReset: controller.NewPasswordResetController(resetService, cfg.Server.FrontendURL),
		Company:       controller.NewCompanyController(companyService),
		Employee:      controller.NewEmployeeController(employeeService),
		Department:    controller.NewDepartmentController(departmentService),
		Leave:         controller.NewLeaveController(leaveService),
		Attendance:    controller.NewAttendanceController(attendanceService),
		Payroll:       controller.NewPayrollController(payrollService),
		Report:        controller.NewReportController(reportService),
		Notification:  controller.NewNotificationController(notificationService, hub),
		Dashboard:     controller.NewDashboardController(dashboardService),
		Upload:        controller.NewUploadController(s3Store),
	})

	hrScheduler := scheduler.NewHRScheduler(userRepo, resetRepo, payrollRepo, payrollService)
	if err := hrScheduler.Start(); err != nil {
		log.Fatal("failed to start scheduler", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"env":  cfg.Server.Environment,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	hrScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", err)
	}
}
