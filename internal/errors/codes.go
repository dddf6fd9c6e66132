package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL — the frontend maps these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthAccountDisabled    = "AUTH_ACCOUNT_DISABLED"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthCodeInvalid        = "AUTH_CODE_INVALID"
	AuthCodeExpired        = "AUTH_CODE_EXPIRED"
	AuthCodeUsed           = "AUTH_CODE_USED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzWrongCompany = "AUTHZ_WRONG_COMPANY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationPasswordWeak  = "VALIDATION_PASSWORD_WEAK"
	ValidationPastDate      = "VALIDATION_PAST_DATE"
	ValidationDateOrder     = "VALIDATION_DATE_ORDER"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Company (COMPANY_) ====================
	CompanyNotFound          = "COMPANY_NOT_FOUND"
	CompanyAlreadyRegistered = "COMPANY_ALREADY_REGISTERED"
	CompanyAdminCodeInvalid  = "COMPANY_ADMIN_CODE_INVALID"
	CompanyAdminLimitReached = "COMPANY_ADMIN_LIMIT_REACHED"

	// ==================== Employee (EMPLOYEE_) ====================
	EmployeeNotFound      = "EMPLOYEE_NOT_FOUND"
	EmployeeAlreadyExists = "EMPLOYEE_ALREADY_EXISTS"
	EmployeeSuspended     = "EMPLOYEE_SUSPENDED"

	// ==================== Department (DEPARTMENT_) ====================
	DepartmentNotFound   = "DEPARTMENT_NOT_FOUND"
	DepartmentNameExists = "DEPARTMENT_NAME_EXISTS"

	// ==================== Leave (LEAVE_) ====================
	LeaveNotFound         = "LEAVE_NOT_FOUND"
	LeaveAlreadyResolved  = "LEAVE_ALREADY_RESOLVED"
	LeaveInsufficientDays = "LEAVE_INSUFFICIENT_DAYS"
	LeaveOverlapping      = "LEAVE_OVERLAPPING"

	// ==================== Attendance (ATTENDANCE_) ====================
	AttendanceNotFound     = "ATTENDANCE_NOT_FOUND"
	AttendanceNoTimer      = "ATTENDANCE_NO_TIMER"
	AttendanceTimerRunning = "ATTENDANCE_TIMER_RUNNING"

	// ==================== Notifications (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
