package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"unicode/utf8"

	"social_cases_go/config"
	"social_cases_go/logger"

	"github.com/resend/resend-go/v2"
)

//go:embed emails/*
var emailTemplates embed.FS

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders emails/<name>.html and emails/<name>.txt with data
func loadTemplate(name string, data interface{}) (html string, text string, err error) {
	htmlTmpl, err := htmltemplate.ParseFS(emailTemplates, "emails/"+name+".html")
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.html: %w", name, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %w", name, err)
	}

	textTmpl, err := texttemplate.ParseFS(emailTemplates, "emails/"+name+".txt")
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.txt: %w", name, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %w", name, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API.
// In test mode the email is logged instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	if cfg.EmailTestMode {
		logger.Log.Infow("Email logged (test mode, not sent)",
			"to", email.To, "subject", email.Subject, "text", truncate(email.TextBody, 500))
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	logger.Log.Infow("Email sent via Resend", "id", sent.Id, "to", email.To)
	return nil
}

// truncate keeps at most maxLen characters of s
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}

// PlanReminderEmailData contains data for the intervention plan reminder
type PlanReminderEmailData struct {
	ProfessionalName string
	ManagementName   string
	Frequency        string
	Date             string
	SocialCaseID     uint
	EmployeeNames    string
}

// BuildPlanReminderEmail creates the reminder sent to a plan's professional
func BuildPlanReminderEmail(to string, data PlanReminderEmailData) (*Email, error) {
	html, text, err := loadTemplate("plan_reminder", data)
	if err != nil {
		return nil, err
	}

	return &Email{
		To:       []string{strings.TrimSpace(to)},
		Subject:  fmt.Sprintf("Recordatorio: %s el %s", data.ManagementName, data.Date),
		HTMLBody: html,
		TextBody: text,
	}, nil
}
