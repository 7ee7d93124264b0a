package repository

import (
	"time"

	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"gorm.io/gorm"
)

// MarkingJobRepository is the durable marking queue. Jobs are written in the
// same transaction as the submit transition (see AttemptRepository.Submit);
// workers claim them here.
type MarkingJobRepository interface {
	// ClaimNext atomically claims the oldest eligible pending job, or returns
	// nil when the queue is empty. Concurrent workers never claim the same job.
	ClaimNext(now time.Time) (*model.MarkingJob, error)
	// Reschedule returns a claimed job to the queue with a later retry time.
	Reschedule(jobID uint, retryCount int, nextRetryAt time.Time, lastError string) error
	MarkDone(jobID uint) error
	MarkFailed(jobID uint, lastError string) error
	// RequeueForAttempt resets an exhausted job for a teacher-triggered retry.
	RequeueForAttempt(attemptID string, now time.Time) (bool, error)
	// RequeueOrphans returns jobs stuck in running (crashed worker) to
	// pending. Called once at startup.
	RequeueOrphans(now time.Time) (int64, error)
}

type markingJobRepository struct {
	db *gorm.DB
}

func NewMarkingJobRepository(db *gorm.DB) MarkingJobRepository {
	return &markingJobRepository{db: db}
}

func (r *markingJobRepository) ClaimNext(now time.Time) (*model.MarkingJob, error) {
	var job model.MarkingJob
	err := r.db.Raw(`
		UPDATE marking_jobs SET status = ?, updated_at = ?
		WHERE id = (
			SELECT id FROM marking_jobs
			WHERE status = ? AND next_retry_at <= ?
			ORDER BY next_retry_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		model.JobStatusRunning, now, model.JobStatusPending, now,
	).Scan(&job).Error
	if err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, nil
	}
	return &job, nil
}

func (r *markingJobRepository) Reschedule(jobID uint, retryCount int, nextRetryAt time.Time, lastError string) error {
	return r.db.Model(&model.MarkingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":        model.JobStatusPending,
			"retry_count":   retryCount,
			"next_retry_at": nextRetryAt,
			"last_error":    lastError,
		}).Error
}

func (r *markingJobRepository) MarkDone(jobID uint) error {
	return r.db.Model(&model.MarkingJob{}).
		Where("id = ?", jobID).
		Update("status", model.JobStatusDone).Error
}

func (r *markingJobRepository) MarkFailed(jobID uint, lastError string) error {
	return r.db.Model(&model.MarkingJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":     model.JobStatusFailed,
			"last_error": lastError,
		}).Error
}

func (r *markingJobRepository) RequeueForAttempt(attemptID string, now time.Time) (bool, error) {
	res := r.db.Model(&model.MarkingJob{}).
		Where("attempt_id = ? AND status = ?", attemptID, model.JobStatusFailed).
		Updates(map[string]interface{}{
			"status":        model.JobStatusPending,
			"retry_count":   0,
			"next_retry_at": now,
			"last_error":    "",
		})
	return res.RowsAffected > 0, res.Error
}

func (r *markingJobRepository) RequeueOrphans(now time.Time) (int64, error) {
	res := r.db.Model(&model.MarkingJob{}).
		Where("status = ?", model.JobStatusRunning).
		Updates(map[string]interface{}{
			"status":        model.JobStatusPending,
			"next_retry_at": now,
		})
	return res.RowsAffected, res.Error
}
