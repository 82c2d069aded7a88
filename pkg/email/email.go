package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// Service sends transactional emails via SMTP.
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

func NewService(cfg Config) *Service {
	return &Service{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: cfg.FromEmail,
	}
}

// OTPEmailData holds the data for one-time passcode emails.
type OTPEmailData struct {
	Code       string
	TTLMinutes int
}

const otpEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your verification code</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; text-align: center; }
        .code { font-size: 32px; letter-spacing: 8px; font-weight: bold; padding: 15px; background: white; display: inline-block; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Verification code</h1>
        </div>
        <div class="content">
            <p>Use this code to continue:</p>
            <div class="code">{{.Code}}</div>
            <p>The code expires in {{.TTLMinutes}} minutes.</p>
        </div>
        <div class="footer">
            <p>If you did not request this code you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>`

// SendOTPEmail delivers a one-time passcode to the given address.
func (s *Service) SendOTPEmail(toEmail string, data OTPEmailData) error {
	tmpl, err := template.New("otp").Parse(otpEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: Your verification code\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		toEmail,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the service has a usable SMTP configuration.
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
