package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/config"
	"github.com/proximahr/proximahr-backend/internal/app/controller"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth          *controller.AuthController
	PasswordReset *controller.PasswordResetController
	Company       *controller.CompanyController
	Employee      *controller.EmployeeController
	Department    *controller.DepartmentController
	Leave         *controller.LeaveController
	Attendance    *controller.AttendanceController
	Payroll       *controller.PayrollController
	Report        *controller.ReportController
	Notification  *controller.NotificationController
	Dashboard     *controller.DashboardController
	Upload        *controller.UploadController
}

// Setup builds the gin engine with all routes mounted.
func Setup(cfg *config.Config, ctrls Controllers) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	// public
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctrls.Auth.Login)
		auth.POST("/refresh", ctrls.Auth.Refresh)
		auth.POST("/logout", ctrls.Auth.Logout)
		auth.POST("/password-reset/request", ctrls.PasswordReset.Request)
		auth.GET("/password-reset/validate", ctrls.PasswordReset.Validate)
		auth.POST("/password-reset/confirm", ctrls.PasswordReset.Confirm)
	}

	companies := api.Group("/companies")
	{
		companies.POST("/register", ctrls.Company.Register)
		companies.POST("/admin", ctrls.Company.CreateAdmin)
	}

	// authenticated
	authed := api.Group("")
	authed.Use(middleware.Authenticate(cfg.JWT.Secret))
	{
		authed.POST("/auth/change-password", ctrls.Auth.ChangePassword)
		authed.GET("/companies/me", ctrls.Company.Get)

		authed.POST("/leaves", ctrls.Leave.Create)
		authed.GET("/leaves/me", ctrls.Leave.ListMine)

		timer := authed.Group("/attendance")
		{
			timer.POST("/timer/start", ctrls.Attendance.Start)
			timer.POST("/timer/pause", ctrls.Attendance.Pause)
			timer.POST("/timer/resume", ctrls.Attendance.Resume)
			timer.POST("/timer/stop", ctrls.Attendance.Stop)
			timer.GET("/timer", ctrls.Attendance.Active)
			timer.GET("/summary", ctrls.Attendance.Summary)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", ctrls.Notification.List)
			notifications.GET("/stream", ctrls.Notification.Stream)
			notifications.POST("/read-all", ctrls.Notification.MarkAllRead)
			notifications.POST("/:id/read", ctrls.Notification.MarkRead)
			notifications.DELETE("/:id", ctrls.Notification.Delete)
		}

		authed.POST("/uploads/profile-image", ctrls.Upload.PresignProfileImage)
	}

	// admin only
	admin := api.Group("")
	admin.Use(middleware.Authenticate(cfg.JWT.Secret), middleware.RequireAdmin())
	{
		employees := admin.Group("/employees")
		{
			employees.POST("", ctrls.Employee.Create)
			employees.GET("", ctrls.Employee.List)
			employees.GET("/:id", ctrls.Employee.Get)
			employees.PATCH("/:id", ctrls.Employee.Update)
			employees.POST("/:id/suspend", ctrls.Employee.Suspend)
			employees.POST("/:id/reinstate", ctrls.Employee.Reinstate)
			employees.DELETE("/:id", ctrls.Employee.Disable)
		}

		departments := admin.Group("/departments")
		{
			departments.POST("", ctrls.Department.Create)
			departments.GET("", ctrls.Department.List)
			departments.GET("/:id", ctrls.Department.Get)
			departments.PATCH("/:id", ctrls.Department.Update)
			departments.DELETE("/:id", ctrls.Department.Delete)
		}

		leaves := admin.Group("/leaves")
		{
			leaves.GET("", ctrls.Leave.List)
			leaves.POST("/:id/approve", ctrls.Leave.Approve)
			leaves.POST("/:id/reject", ctrls.Leave.Reject)
		}

		payroll := admin.Group("/payroll")
		{
			payroll.GET("/summary", ctrls.Payroll.Summary)
			payroll.GET("/trend", ctrls.Payroll.Trend)
			payroll.GET("/distribution", ctrls.Payroll.Distribution)
		}

		reports := admin.Group("/reports")
		{
			reports.GET("/attendance", ctrls.Report.Attendance)
			reports.GET("/payroll", ctrls.Report.Payroll)
			reports.GET("/leaves", ctrls.Report.Leaves)
		}

		admin.GET("/dashboard/overview", ctrls.Dashboard.Overview)
	}

	return engine
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
