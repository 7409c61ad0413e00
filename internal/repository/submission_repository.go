package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// SubmissionRepository defines the interface for contact submission storage
type SubmissionRepository interface {
	Persist(ctx context.Context, submission *models.ContactSubmission) error
	GetByID(ctx context.Context, id string) (*models.ContactSubmission, error)
	Count(ctx context.Context) (int64, error)
}

// submissionRepository implements SubmissionRepository using PostgreSQL
type submissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Persist inserts a contact submission
func (r *submissionRepository) Persist(ctx context.Context, submission *models.ContactSubmission) error {
	query := `
		INSERT INTO contact_submissions (id, first_name, last_name, phone, email, message, topics, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		submission.ID,
		submission.FirstName,
		submission.LastName,
		submission.Phone,
		submission.Email,
		submission.Message,
		// A nil array encodes as NULL; the column is NOT NULL
		pq.StringArray(append([]string{}, submission.Topics...)),
		submission.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to persist submission: %w", err)
	}

	return nil
}

// GetByID retrieves a submission by ID
func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.ContactSubmission, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, message, topics, received_at
		FROM contact_submissions
		WHERE id = $1`

	submission := &models.ContactSubmission{}
	var topics pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.FirstName,
		&submission.LastName,
		&submission.Phone,
		&submission.Email,
		&submission.Message,
		&topics,
		&submission.ReceivedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("submission %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	submission.Topics = []string(topics)
	return submission, nil
}

// Count returns the number of stored submissions
func (r *submissionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}
