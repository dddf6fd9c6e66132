package util

import (
	"fmt"
	"net/smtp"

	"github.com/proximahr/proximahr-backend/pkg/logger"
)

// Mailer sends transactional email over SMTP. When no credentials are
// configured it runs in dev mode and only logs the message content.
type Mailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewMailer(host, port, user, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

func (m *Mailer) devMode() bool {
	return m.user == "" || m.password == ""
}

func (m *Mailer) send(toEmail, subject, body string) error {
	message := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.from, toEmail, subject, body,
	))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)

	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{toEmail}, message); err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to":      toEmail,
			"subject": subject,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent", map[string]interface{}{
		"to":      toEmail,
		"subject": subject,
	})
	return nil
}

// SendAdminCreationCode delivers the admin bootstrap code to a freshly
// registered company.
func (m *Mailer) SendAdminCreationCode(toEmail, companyName, code string) error {
	if m.devMode() {
		logger.Info("[DEV MODE] Admin creation code", map[string]interface{}{
			"email": toEmail,
			"code":  code,
		})
		return nil
	}

	subject := "[ProximaHR] Admin Creation Code"
	body := fmt.Sprintf(
		"Welcome to ProximaHR, %s.\n\n"+
			"Your admin creation code is: %s\n\n"+
			"Use this code to create the first admin account for your company.",
		companyName, code,
	)
	return m.send(toEmail, subject, body)
}

// SendPasswordResetToken delivers a password reset link.
func (m *Mailer) SendPasswordResetToken(toEmail, frontendURL, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)

	if m.devMode() {
		logger.Info("[DEV MODE] Password reset link", map[string]interface{}{
			"email": toEmail,
			"link":  resetLink,
		})
		return nil
	}

	subject := "[ProximaHR] Password Reset"
	body := fmt.Sprintf(
		"A password reset was requested for your ProximaHR account.\n\n"+
			"Open the link below to choose a new password:\n%s\n\n"+
			"The link is valid for 1 hour. If you did not request a reset, ignore this email.",
		resetLink,
	)
	return m.send(toEmail, subject, body)
}

// SendEmployeeCredentials delivers a one-time password to a new employee.
func (m *Mailer) SendEmployeeCredentials(toEmail, employeeID, tempPassword string) error {
	if m.devMode() {
		logger.Info("[DEV MODE] Employee credentials", map[string]interface{}{
			"email":       toEmail,
			"employee_id": employeeID,
		})
		return nil
	}

	subject := "[ProximaHR] Your Employee Account"
	body := fmt.Sprintf(
		"An employee account has been created for you.\n\n"+
			"Employee ID: %s\nTemporary password: %s\n\n"+
			"Sign in and change your password as soon as possible.",
		employeeID, tempPassword,
	)
	return m.send(toEmail, subject, body)
}
