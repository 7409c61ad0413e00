package worker

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// Default notification templates
const (
	DefaultSubjectTemplate = "New contact request from {first_name} {last_name}"
	DefaultBodyTemplate    = "Name: {first_name} {last_name}\n" +
		"Email: {email}\n" +
		"Phone: {phone}\n" +
		"Topics: {topics}\n" +
		"Received: {received_at}\n\n" +
		"{message}\n"
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

var validPlaceholders = map[string]bool{
	"first_name":  true,
	"last_name":   true,
	"email":       true,
	"phone":       true,
	"topics":      true,
	"message":     true,
	"received_at": true,
}

// EmailTemplate renders staff notifications from {placeholder} templates
type EmailTemplate struct {
	subject string
	body    string
}

// NewEmailTemplate validates both templates. Empty templates fall back to the defaults.
func NewEmailTemplate(subject, body string) (*EmailTemplate, error) {
	if subject == "" {
		subject = DefaultSubjectTemplate
	}
	if body == "" {
		body = DefaultBodyTemplate
	}

	for name, tmpl := range map[string]string{"subject": subject, "body": body} {
		if err := validateTemplate(tmpl); err != nil {
			return nil, fmt.Errorf("invalid %s template: %w", name, err)
		}
	}

	return &EmailTemplate{subject: subject, body: body}, nil
}

// Render builds the email for a submission
func (t *EmailTemplate) Render(to string, s *models.ContactSubmission) Email {
	fields := map[string]string{
		"first_name":  s.FirstName,
		"last_name":   s.LastName,
		"email":       s.Email,
		"phone":       s.Phone,
		"topics":      strings.Join(s.Topics, ", "),
		"message":     s.Message,
		"received_at": s.ReceivedAt.Format(time.RFC1123),
	}

	return Email{
		To:      to,
		ReplyTo: s.Email,
		// Header values must stay on one line
		Subject: strings.Join(strings.Fields(render(t.subject, fields)), " "),
		Body:    render(t.body, fields),
	}
}

func render(tmpl string, fields map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		return fields[strings.Trim(match, "{}")]
	})
}

// ExtractPlaceholders returns all placeholders found in tmpl
func ExtractPlaceholders(tmpl string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(tmpl, -1)
	placeholders := make([]string, 0, len(matches))
	for _, match := range matches {
		placeholders = append(placeholders, match[1])
	}
	return placeholders
}

func validateTemplate(tmpl string) error {
	var invalid []string
	for _, placeholder := range ExtractPlaceholders(tmpl) {
		if !validPlaceholders[placeholder] {
			invalid = append(invalid, placeholder)
		}
	}

	if len(invalid) > 0 {
		return models.ErrInvalidInput(
			fmt.Sprintf("unknown placeholders: %s", strings.Join(invalid, ", ")),
		)
	}
	return nil
}
