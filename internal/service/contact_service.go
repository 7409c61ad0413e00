package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// ContactService handles contact form business logic
type ContactService interface {
	Submit(ctx context.Context, raw []byte, clientID string) (*models.ContactResult, error)
}

type contactService struct {
	validator *ContactValidator
	recorder  SubmissionRecorder
	store     Store
	notifier  Notifier
	limiter   RateLimiter
	now       func() time.Time
	logger    *slog.Logger
}

// ContactOption configures optional collaborators of the contact service
type ContactOption func(*contactService)

// WithStore persists every accepted submission
func WithStore(store Store) ContactOption {
	return func(s *contactService) { s.store = store }
}

// WithNotifier sends a notification for every accepted submission
func WithNotifier(notifier Notifier) ContactOption {
	return func(s *contactService) { s.notifier = notifier }
}

// WithRateLimiter limits submissions per client
func WithRateLimiter(limiter RateLimiter) ContactOption {
	return func(s *contactService) { s.limiter = limiter }
}

// WithClock overrides the time source used for ReceivedAt
func WithClock(now func() time.Time) ContactOption {
	return func(s *contactService) { s.now = now }
}

// NewContactService creates a new contact service
func NewContactService(
	validator *ContactValidator,
	recorder SubmissionRecorder,
	logger *slog.Logger,
	opts ...ContactOption,
) ContactService {
	s := &contactService{
		validator: validator,
		recorder:  recorder,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// contactFields lists body fields in the order issues are reported
var contactFields = []string{"firstName", "lastName", "phone", "email", "message", "topics"}

// Submit parses, screens and validates one contact form body.
// Validation failures are returned as *models.ValidationError.
func (s *contactService) Submit(ctx context.Context, raw []byte, clientID string) (*models.ContactResult, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, models.ErrMalformed(err)
	}

	body, ok := decoded.(map[string]any)
	if !ok {
		return nil, &models.ValidationError{Issues: []models.ValidationIssue{{
			Path:    []any{},
			Message: fmt.Sprintf("Expected object, received %s", jsonTypeName(decoded)),
			Code:    models.IssueInvalidType,
		}}}
	}

	// Honeypot: answer like a success and do nothing else
	if honeypotTripped(body) {
		s.logger.Info("contact submission rejected by honeypot",
			slog.String("client_id", clientID),
		)
		return &models.ContactResult{Outcome: models.OutcomeBotRejected}, nil
	}

	if err := s.checkRateLimit(ctx, clientID); err != nil {
		return nil, err
	}

	req, issues := decodeContactRequest(body)
	if issues = mergeIssues(issues, s.validator.Validate(req)); len(issues) > 0 {
		s.logger.Debug("contact submission failed validation",
			slog.String("client_id", clientID),
			slog.Int("issues", len(issues)),
		)
		return nil, &models.ValidationError{Issues: issues}
	}

	submission := &models.ContactSubmission{
		ID:         uuid.NewString(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		Message:    req.Message,
		Topics:     nonNil(req.Topics),
		ReceivedAt: s.now().UTC(),
	}

	if err := s.record(ctx, submission); err != nil {
		s.logger.Error("failed to record contact submission",
			slog.String("submission_id", submission.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	if err := s.dispatch(ctx, submission); err != nil {
		s.logger.Error("failed to dispatch contact submission",
			slog.String("submission_id", submission.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to dispatch submission: %w", err)
	}

	return &models.ContactResult{
		Outcome:    models.OutcomeAccepted,
		Submission: submission,
	}, nil
}

// checkRateLimit fails open when the limiter backend is unavailable
func (s *contactService) checkRateLimit(ctx context.Context, clientID string) error {
	if s.limiter == nil {
		return nil
	}

	allowed, err := s.limiter.Allow(ctx, clientID)
	if err != nil {
		s.logger.Warn("rate limiter unavailable, allowing submission",
			slog.String("client_id", clientID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if !allowed {
		s.logger.Info("contact submission rate limited",
			slog.String("client_id", clientID),
		)
		return models.ErrTooManyRequests()
	}
	return nil
}

// record hands the submission to the recorder, converting a panic into an error
func (s *contactService) record(ctx context.Context, submission *models.ContactSubmission) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recorder panic: %v", r)
		}
	}()
	return s.recorder.Record(ctx, models.NewSubmissionEvent(submission))
}

// dispatch runs the optional store and notifier concurrently
func (s *contactService) dispatch(ctx context.Context, submission *models.ContactSubmission) error {
	if s.store == nil && s.notifier == nil {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.store != nil {
		g.Go(func() error {
			if err := s.store.Persist(gctx, submission); err != nil {
				return fmt.Errorf("persist: %w", err)
			}
			return nil
		})
	}
	if s.notifier != nil {
		g.Go(func() error {
			if err := s.notifier.SendEmail(gctx, submission); err != nil {
				return fmt.Errorf("notify: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// honeypotTripped reports whether the hidden company field carries any value
func honeypotTripped(body map[string]any) bool {
	v, ok := body["company"]
	if !ok || v == nil {
		return false
	}
	if str, isString := v.(string); isString {
		return str != ""
	}
	return true
}

// decodeContactRequest copies body fields into a ContactRequest,
// reporting fields whose JSON type is wrong
func decodeContactRequest(body map[string]any) (*models.ContactRequest, []models.ValidationIssue) {
	var issues []models.ValidationIssue

	str := func(key string) string {
		v, ok := body[key]
		if !ok || v == nil {
			return ""
		}
		s, ok := v.(string)
		if !ok {
			issues = append(issues, typeIssue([]any{key}, "string", v))
			return ""
		}
		return s
	}

	req := &models.ContactRequest{
		FirstName: str("firstName"),
		LastName:  str("lastName"),
		Phone:     str("phone"),
		Email:     str("email"),
		Message:   str("message"),
	}

	switch topics := body["topics"].(type) {
	case nil:
	case []any:
		// Count every entry, including ones dropped below for their type
		if len(topics) > models.MaxTopics {
			issues = append(issues, models.ValidationIssue{
				Path:    []any{"topics"},
				Message: fmt.Sprintf("Select at most %d topics", models.MaxTopics),
				Code:    models.IssueTooBig,
			})
		}
		req.Topics = make([]string, 0, len(topics))
		for i, t := range topics {
			topic, ok := t.(string)
			if !ok {
				issues = append(issues, typeIssue([]any{"topics", i}, "string", t))
				continue
			}
			req.Topics = append(req.Topics, topic)
		}
	default:
		issues = append(issues, typeIssue([]any{"topics"}, "array", topics))
	}

	return req, issues
}

// mergeIssues combines decode issues with rule issues. A field already
// reported as a whole while decoding is not reported again by the rules.
func mergeIssues(typeIssues, ruleIssues []models.ValidationIssue) []models.ValidationIssue {
	if len(typeIssues) == 0 {
		return ruleIssues
	}

	typed := make(map[any]bool, len(typeIssues))
	for _, issue := range typeIssues {
		if len(issue.Path) == 1 {
			typed[issue.Path[0]] = true
		}
	}

	merged := slices.Clone(typeIssues)
	for _, issue := range ruleIssues {
		if len(issue.Path) > 0 && typed[issue.Path[0]] {
			continue
		}
		merged = append(merged, issue)
	}

	slices.SortStableFunc(merged, func(a, b models.ValidationIssue) int {
		return fieldRank(a) - fieldRank(b)
	})
	return merged
}

// nonNil keeps an absent topics list from reaching stores as NULL
func nonNil(topics []string) []string {
	if topics == nil {
		return []string{}
	}
	return topics
}

func fieldRank(issue models.ValidationIssue) int {
	if len(issue.Path) == 0 {
		return -1
	}
	name, _ := issue.Path[0].(string)
	if i := slices.Index(contactFields, name); i >= 0 {
		return i
	}
	return len(contactFields)
}

func typeIssue(path []any, expected string, got any) models.ValidationIssue {
	return models.ValidationIssue{
		Path:    path,
		Message: fmt.Sprintf("Expected %s, received %s", expected, jsonTypeName(got)),
		Code:    models.IssueInvalidType,
	}
}

// jsonTypeName names the JSON type of a value produced by encoding/json
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
