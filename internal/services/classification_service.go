package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/leafguard/leafguard-be/internal/models"
)

// ClassificationServiceProvider defines the interface for read-only access to
// classification records.
type ClassificationServiceProvider interface {
	List(ctx context.Context) ([]models.Classification, error)
	Summary(ctx context.Context) (models.Summary, error)
	RecentUploads(ctx context.Context) ([]models.RecentUpload, error)
}

// ClassificationService reads classification records produced by the external
// ingestion pipeline. Every operation here is an idempotent read, so each
// gets a small fixed retry budget on top of the per-call timeout. Writes
// elsewhere (signup) never retry.
type ClassificationService struct {
	db           *sql.DB
	storeTimeout time.Duration
}

const recentUploadLimit = 5

// NewClassificationService creates a new ClassificationService.
func NewClassificationService(db *sql.DB, storeTimeout time.Duration) *ClassificationService {
	return &ClassificationService{db: db, storeTimeout: storeTimeout}
}

// withReadRetry runs fn with the service's timeout and retry budget: two
// retries with a short constant backoff.
func (s *ClassificationService) withReadRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(2, retry.NewConstant(100*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
		if err := fn(attemptCtx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// List returns every classification record, unfiltered and unpaginated. The
// dashboard filters and sorts client-side.
func (s *ClassificationService) List(ctx context.Context) ([]models.Classification, error) {
	var result []models.Classification
	err := s.withReadRetry(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, image_url, classification, location, created_at
			 FROM plant_classifications`)
		if err != nil {
			return err
		}
		defer rows.Close()

		records := []models.Classification{}
		for rows.Next() {
			var c models.Classification
			if err := rows.Scan(&c.ID, &c.ImageURL, &c.Classification, &c.Location, &c.CreatedAt); err != nil {
				return err
			}
			records = append(records, c)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		result = records
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing classifications: %w", err)
	}
	return result, nil
}

// Summary composes three independent counts into one aggregate. Any count
// failing aborts the whole response.
func (s *ClassificationService) Summary(ctx context.Context) (models.Summary, error) {
	var summary models.Summary
	err := s.withReadRetry(ctx, func(ctx context.Context) error {
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM plant_classifications").Scan(&summary.Total); err != nil {
			return err
		}
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM plant_classifications WHERE classification = $1",
			models.ClassificationHealthy).Scan(&summary.Healthy); err != nil {
			return err
		}
		return s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM plant_classifications WHERE classification = $1",
			models.ClassificationUnhealthy).Scan(&summary.Unhealthy)
	})
	if err != nil {
		return models.Summary{}, fmt.Errorf("building summary: %w", err)
	}
	return summary, nil
}

// RecentUploads returns the most recent records, newest first, capped at
// five, projected to what the dashboard renders.
func (s *ClassificationService) RecentUploads(ctx context.Context) ([]models.RecentUpload, error) {
	var result []models.RecentUpload
	err := s.withReadRetry(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT image_url, classification, created_at
			 FROM plant_classifications
			 ORDER BY created_at DESC
			 LIMIT $1`, recentUploadLimit)
		if err != nil {
			return err
		}
		defer rows.Close()

		uploads := []models.RecentUpload{}
		for rows.Next() {
			var u models.RecentUpload
			if err := rows.Scan(&u.ImageURL, &u.Classification, &u.CreatedAt); err != nil {
				return err
			}
			uploads = append(uploads, u)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		result = uploads
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing recent uploads: %w", err)
	}
	return result, nil
}
