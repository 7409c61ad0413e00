package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/steadydrive/driving-school-web/internal/models"
)

var submissionsBucket = []byte("submissions")

// BoltSubmissionStore implements SubmissionRepository on a local bbolt file
type BoltSubmissionStore struct {
	db *bolt.DB
}

// NewBoltSubmissionStore opens (or creates) the bbolt file at path
func NewBoltSubmissionStore(path string) (*BoltSubmissionStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(submissionsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create submissions bucket: %w", err)
	}

	return &BoltSubmissionStore{db: db}, nil
}

// Persist stores the submission as JSON keyed by its ID
func (s *BoltSubmissionStore) Persist(ctx context.Context, submission *models.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(submissionsBucket).Put([]byte(submission.ID), data)
	}); err != nil {
		return fmt.Errorf("failed to persist submission: %w", err)
	}

	return nil
}

// GetByID retrieves a submission by ID
func (s *BoltSubmissionStore) GetByID(ctx context.Context, id string) (*models.ContactSubmission, error) {
	var data []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		// bolt values are only valid inside the transaction
		if v := tx.Bucket(submissionsBucket).Get([]byte(id)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if data == nil {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("submission %s not found", id))
	}

	submission := &models.ContactSubmission{}
	if err := json.Unmarshal(data, submission); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored submission: %w", err)
	}
	return submission, nil
}

// Count returns the number of stored submissions
func (s *BoltSubmissionStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.View(func(tx *bolt.Tx) error {
		count = int64(tx.Bucket(submissionsBucket).Stats().KeyN)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

// Close releases the bolt file lock
func (s *BoltSubmissionStore) Close() error {
	return s.db.Close()
}
