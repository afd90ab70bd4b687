// Package email delivers the application's outbound notifications:
// welcome mail on registration, one-time login codes, application
// submission and outcome mail, and the winner announcement.
package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService is the notification sink consumed by the core services.
type EmailService interface {
	SendWelcomeEmail(toEmail, toName, regNumber string) error
	SendOTPEmail(toEmail, toName, code string) error
	SendApplicationReceivedEmail(toEmail, toName, position string) error
	SendApplicationOutcomeEmail(toEmail, toName string, approved bool) error
	SendWinnerEmail(toEmail, toName string, totalVotes int64) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromName   string
	FromEmail  string
	AdminEmail string // contact copied on new applications
	UseTLS     bool
}

// EmailServiceImpl implements EmailService over SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// devFallback logs the mail instead of sending it when SMTP credentials
// are not configured. Returns true when the send should be skipped.
func (s *EmailServiceImpl) devFallback(kind, toEmail string, fields map[string]string) bool {
	if s.config.Username != "" && s.config.Password != "" {
		return false
	}
	evt := s.logger.Warn().Str("kind", kind).Str("toEmail", toEmail)
	for k, v := range fields {
		evt = evt.Str(k, v)
	}
	evt.Msg("SMTP credentials not configured - notification logged instead of sent")
	return true
}

// SendWelcomeEmail sends the post-registration welcome mail carrying the
// derived registration number.
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName, regNumber string) error {
	if s.devFallback("welcome", toEmail, map[string]string{"regNumber": regNumber}) {
		return nil
	}
	subject := "Welcome to Uchaguzi - Registration Successful"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to Uchaguzi!</h2>
				<p>Hello %s,</p>
				<p>Your registration was successful. Your registration number is:</p>
				<p style="text-align: center; font-size: 24px; font-weight: bold;">%s</p>
				<p>You will use your facial biometric or a one-time code sent to this address to log in.</p>
				<p>Best regards,<br>The Uchaguzi Electoral Commission</p>
			</div>
		</body>
		</html>
	`, toName, regNumber)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendOTPEmail sends a one-time login code.
func (s *EmailServiceImpl) SendOTPEmail(toEmail, toName, code string) error {
	if s.devFallback("otp", toEmail, map[string]string{"code": code}) {
		return nil
	}
	subject := "Your Uchaguzi One-Time Login Code"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>Your one-time login code is:</p>
				<p style="text-align: center; font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</p>
				<p>The code expires in 5 minutes. If you did not request it, ignore this email.</p>
				<p>Best regards,<br>The Uchaguzi Electoral Commission</p>
			</div>
		</body>
		</html>
	`, toName, code)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendApplicationReceivedEmail confirms a submitted application to the
// candidate and copies the admin contact.
func (s *EmailServiceImpl) SendApplicationReceivedEmail(toEmail, toName, position string) error {
	if s.devFallback("application-received", toEmail, map[string]string{"position": position}) {
		return nil
	}
	subject := "Application Received - " + position

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>Your application to contest for <strong>%s</strong> has been received and is pending review by the electoral commission.</p>
				<p>You will be notified by email once a decision has been made.</p>
				<p>Best regards,<br>The Uchaguzi Electoral Commission</p>
			</div>
		</body>
		</html>
	`, toName, position)

	if err := s.sendHTMLEmail(toEmail, subject, body); err != nil {
		return err
	}
	if s.config.AdminEmail != "" {
		adminBody := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>A new application for <strong>%s</strong> was submitted by %s (%s) and awaits review.</p>
			</div>
		</body>
		</html>
	`, position, toName, toEmail)
		return s.sendHTMLEmail(s.config.AdminEmail, "New Application Pending Review", adminBody)
	}
	return nil
}

// SendApplicationOutcomeEmail notifies a candidate of approval or rejection.
func (s *EmailServiceImpl) SendApplicationOutcomeEmail(toEmail, toName string, approved bool) error {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	if s.devFallback("application-outcome", toEmail, map[string]string{"outcome": outcome}) {
		return nil
	}
	subject := "Your Application Has Been " + outcome

	detail := "Unfortunately your application was not successful this time."
	if approved {
		detail = "Congratulations! Your name will appear on the ballot."
	}
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>Your application has been <strong>%s</strong>. %s</p>
				<p>Best regards,<br>The Uchaguzi Electoral Commission</p>
			</div>
		</body>
		</html>
	`, toName, outcome, detail)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendWinnerEmail sends the one-time winner announcement.
func (s *EmailServiceImpl) SendWinnerEmail(toEmail, toName string, totalVotes int64) error {
	if s.devFallback("winner", toEmail, map[string]string{"totalVotes": strconv.FormatInt(totalVotes, 10)}) {
		return nil
	}
	subject := "Congratulations - You Have Won the Election!"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Congratulations %s!</h2>
				<p>The votes have been tallied and you emerged the winner with <strong>%d</strong> votes.</p>
				<p>The electoral commission will contact you with next steps.</p>
				<p>Best regards,<br>The Uchaguzi Electoral Commission</p>
			</div>
		</body>
		</html>
	`, toName, totalVotes)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
