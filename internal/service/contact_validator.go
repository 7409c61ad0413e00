package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// phonePattern accepts digits, spaces, parentheses and + . -
var phonePattern = regexp.MustCompile(`^[0-9 ()+.\-]+$`)

// ContactValidator checks a ContactRequest against the contact form rules
type ContactValidator struct {
	validate *validator.Validate
}

// NewContactValidator creates a validator with the contact form rules registered
func NewContactValidator() *ContactValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so issue paths match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}

	return &ContactValidator{validate: v}
}

// Validate returns every issue found in req, in field declaration order.
// A nil slice means the request is valid.
func (cv *ContactValidator) Validate(req *models.ContactRequest) []models.ValidationIssue {
	err := cv.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []models.ValidationIssue{{
			Path:    []any{},
			Message: "Invalid input",
			Code:    models.IssueCustom,
		}}
	}

	issues := make([]models.ValidationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, issueFromFieldError(fe))
	}
	return issues
}

// issueFromFieldError maps a validator tag failure onto the form's issue vocabulary
func issueFromFieldError(fe validator.FieldError) models.ValidationIssue {
	issue := models.ValidationIssue{Path: []any{fe.Field()}}

	switch fe.Tag() {
	case "required":
		issue.Code = models.IssueInvalidType
		issue.Message = "Required"
	case "min":
		issue.Code = models.IssueTooSmall
		issue.Message = fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		issue.Code = models.IssueTooBig
		if fe.Kind() == reflect.Slice {
			issue.Message = fmt.Sprintf("Select at most %s topics", fe.Param())
		} else {
			issue.Message = fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
	case "email":
		issue.Code = models.IssueInvalidString
		issue.Message = "Invalid email address"
	case "phone":
		issue.Code = models.IssueInvalidString
		issue.Message = "Invalid phone number"
	default:
		issue.Code = models.IssueCustom
		issue.Message = "Invalid value"
	}

	return issue
}
