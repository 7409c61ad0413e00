package worker

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/steadydrive/driving-school-web/internal/models"
)

func TestEmailTemplate_Render(t *testing.T) {
	submission := &models.ContactSubmission{
		FirstName:  "Alice",
		LastName:   "Mwangi",
		Phone:      "+1 555 010 2000",
		Email:      "alice@x.com",
		Message:    "Can I book a road test for next week?",
		Topics:     []string{"Road test", "Pricing"},
		ReceivedAt: time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		name        string
		subject     string
		body        string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "custom templates",
			subject:     "{first_name} asked about {topics}",
			body:        "{message} ({phone})",
			wantSubject: "Alice asked about Road test, Pricing",
			wantBody:    "Can I book a road test for next week? (+1 555 010 2000)",
		},
		{
			name:        "repeated placeholder",
			subject:     "{first_name} {first_name}",
			body:        "{email}",
			wantSubject: "Alice Alice",
			wantBody:    "alice@x.com",
		},
		{
			name:        "received_at is RFC1123",
			subject:     "Lead",
			body:        "{received_at}",
			wantSubject: "Lead",
			wantBody:    "Sat, 14 Mar 2026 14:30:00 UTC",
		},
		{
			name:        "subject newlines collapsed",
			subject:     "Lead:\n{last_name}\t\tcall back",
			body:        "plain body",
			wantSubject: "Lead: Mwangi call back",
			wantBody:    "plain body",
		},
		{
			name:        "unclosed brace left alone",
			subject:     "Hi {first_name",
			body:        "{ first_name }",
			wantSubject: "Hi {first_name",
			wantBody:    "{ first_name }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := NewEmailTemplate(tt.subject, tt.body)
			if err != nil {
				t.Fatalf("NewEmailTemplate() error = %v", err)
			}

			got := tmpl.Render("office@school.test", submission)
			if got.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", got.Subject, tt.wantSubject)
			}
			if got.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", got.Body, tt.wantBody)
			}
		})
	}
}

func TestEmailTemplate_Defaults(t *testing.T) {
	tmpl, err := NewEmailTemplate("", "")
	if err != nil {
		t.Fatalf("NewEmailTemplate() error = %v", err)
	}

	got := tmpl.Render("office@school.test", &models.ContactSubmission{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@x.com",
		Message:   "Hello there, lessons please.",
	})

	if got.Subject != "New contact request from Jane Doe" {
		t.Errorf("Subject = %q", got.Subject)
	}
	for _, want := range []string{"Name: Jane Doe", "Email: jane@x.com", "Hello there, lessons please."} {
		if !strings.Contains(got.Body, want) {
			t.Errorf("Body missing %q:\n%s", want, got.Body)
		}
	}
}

func TestNewEmailTemplate_UnknownPlaceholder(t *testing.T) {
	_, err := NewEmailTemplate("Hi {first_name}", "Your {preferred_product} and {location}")
	if err == nil {
		t.Fatal("expected error for unknown placeholders")
	}

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeInvalidInput {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
	if !strings.Contains(err.Error(), "preferred_product, location") {
		t.Errorf("error should list unknown placeholders, got %v", err)
	}
}

func TestExtractPlaceholders(t *testing.T) {
	tests := []struct {
		template string
		want     []string
	}{
		{template: "Hi {first_name}, re {topics}", want: []string{"first_name", "topics"}},
		{template: "No placeholders", want: []string{}},
		{template: "{First_Name} {123}", want: []string{}},
		{template: "{email}{email}", want: []string{"email", "email"}},
	}

	for _, tt := range tests {
		got := ExtractPlaceholders(tt.template)
		if !slices.Equal(got, tt.want) {
			t.Errorf("ExtractPlaceholders(%q) = %v, want %v", tt.template, got, tt.want)
		}
	}
}
