package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

// AIScorer is the external scoring collaborator. Implementations must return
// a fully populated result or an error; the pipeline validates the score
// against the question's mark scheme bound before accepting it.
type AIScorer interface {
	Score(ctx context.Context, answerText string, question *model.Question) (*repository.MarkingResult, error)
}

// OCRService is the external text-extraction collaborator, used only for
// image-based answers.
type OCRService interface {
	ExtractText(ctx context.Context, imageURL string) (string, error)
}

// PipelineConfig bounds the retry/backoff policy and the worker pool.
type PipelineConfig struct {
	Workers      int
	PollInterval time.Duration
	CallTimeout  time.Duration
	BackoffBase  time.Duration
	BackoffCap   time.Duration
	MaxRetries   int
}

func (c PipelineConfig) withDefaults() PipelineConfig {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 60 * time.Second
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = 5 * time.Second
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = 2 * time.Minute
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 4
	}
	return c
}

// MarkingPipeline turns submitted attempts into marked ones: a pool of
// workers pulls durable jobs from the marking queue, runs the optional OCR
// stage and the AI scoring stage, and writes the result (or error state) back
// to the attempt. Stage failures reschedule the job with exponential backoff
// until the retry bound, then park the attempt in "error" for an explicit
// teacher retry.
type MarkingPipeline struct {
	cfg            PipelineConfig
	jobRepo        repository.MarkingJobRepository
	attemptRepo    repository.AttemptRepository
	questionRepo   repository.QuestionRepository
	assessmentRepo repository.AssessmentRepository
	scorer         AIScorer
	ocr            OCRService

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

func NewMarkingPipeline(
	cfg PipelineConfig,
	jobRepo repository.MarkingJobRepository,
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	assessmentRepo repository.AssessmentRepository,
	scorer AIScorer,
	ocr OCRService,
) *MarkingPipeline {
	return &MarkingPipeline{
		cfg:            cfg.withDefaults(),
		jobRepo:        jobRepo,
		attemptRepo:    attemptRepo,
		questionRepo:   questionRepo,
		assessmentRepo: assessmentRepo,
		scorer:         scorer,
		ocr:            ocr,
		wake:           make(chan struct{}, 1),
	}
}

// Wake nudges idle workers. Non-blocking; coalesces with pending wakeups.
func (p *MarkingPipeline) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Start requeues jobs orphaned by a previous crash and launches the worker
// pool. Safe to call once.
func (p *MarkingPipeline) Start() error {
	requeued, err := p.jobRepo.RequeueOrphans(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("requeueing orphaned marking jobs: %w", err)
	}
	if requeued > 0 {
		log.Warn().Int64("count", requeued).Msg("Requeued marking jobs orphaned by previous run")
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		var workers []chan struct{}
		for i := 0; i < p.cfg.Workers; i++ {
			stopped := make(chan struct{})
			workers = append(workers, stopped)
			go p.worker(ctx, i, stopped)
		}
		for _, stopped := range workers {
			<-stopped
		}
	}()
	log.Info().Int("workers", p.cfg.Workers).Msg("Marking pipeline started")
	return nil
}

// Stop waits for in-flight jobs to finish their current stage.
func (p *MarkingPipeline) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	log.Info().Msg("Marking pipeline stopped")
}

func (p *MarkingPipeline) worker(ctx context.Context, id int, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()
	for {
		// Drain everything eligible before sleeping.
		for p.RunOnce(ctx) {
			if ctx.Err() != nil {
				return
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-p.wake:
		case <-ticker.C:
		}
	}
}

// RunOnce claims and processes at most one job. Returns true when a job was
// claimed, so callers can keep draining. A cancelled context stops the drain
// before claiming; a claimed job that fails on a dead context would burn a
// retry for nothing.
func (p *MarkingPipeline) RunOnce(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	job, err := p.jobRepo.ClaimNext(time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("Claiming marking job failed")
		return false
	}
	if job == nil {
		return false
	}
	p.process(ctx, job)
	return true
}

func (p *MarkingPipeline) process(ctx context.Context, job *model.MarkingJob) {
	attempt, err := p.attemptRepo.FindByID(job.AttemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Str("attemptID", job.AttemptID).Msg("Marking job references missing attempt, dropping")
			_ = p.jobRepo.MarkFailed(job.ID, "attempt not found")
			return
		}
		p.retryLater(job, fmt.Errorf("loading attempt: %w", err))
		return
	}

	// At-most-one-in-flight guard: only submitted (or error, via explicit
	// teacher retry) attempts are markable. Anything else is a stale job.
	if attempt.Status != model.AttemptStatusSubmitted && attempt.Status != model.AttemptStatusError {
		log.Info().Str("attemptID", attempt.ID).Str("status", attempt.Status).
			Msg("Attempt no longer markable, completing job as no-op")
		_ = p.jobRepo.MarkDone(job.ID)
		return
	}

	question, err := p.loadQuestion(attempt)
	if err != nil {
		p.retryLater(job, err)
		return
	}

	answerText, err := p.resolveAnswer(ctx, job)
	if err != nil {
		p.stageFailed(job, attempt, fmt.Errorf("ocr stage: %w", err))
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.CallTimeout)
	result, err := p.scorer.Score(callCtx, answerText, question)
	cancel()
	if err != nil {
		p.stageFailed(job, attempt, fmt.Errorf("scoring stage: %w", err))
		return
	}
	if err := validateResult(result, question); err != nil {
		// Malformed provider output is a stage failure, same policy as a
		// transport error. Never store partial or out-of-range results.
		p.stageFailed(job, attempt, fmt.Errorf("scoring stage: %w", err))
		return
	}

	ok, err := p.attemptRepo.MarkCompleted(attempt.ID, *result, time.Now().UTC())
	if err != nil {
		p.retryLater(job, fmt.Errorf("writing marking result: %w", err))
		return
	}
	if !ok {
		log.Warn().Str("attemptID", attempt.ID).Msg("Attempt left markable state during marking, dropping result")
	}
	if err := p.jobRepo.MarkDone(job.ID); err != nil {
		log.Error().Err(err).Uint("jobID", job.ID).Msg("Failed to complete marking job record")
	}
	log.Info().Str("attemptID", attempt.ID).Int("score", result.Score).Msg("Attempt marked")
}

func (p *MarkingPipeline) loadQuestion(attempt *model.Attempt) (*model.Question, error) {
	assessment, err := p.assessmentRepo.FindByID(attempt.AssessmentID)
	if err != nil {
		return nil, fmt.Errorf("loading assessment %s: %w", attempt.AssessmentID, err)
	}
	question, err := p.questionRepo.FindByID(assessment.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("loading question %s: %w", assessment.QuestionID, err)
	}
	return question, nil
}

// resolveAnswer returns the text to score, running OCR when the snapshot is
// an image-based answer.
func (p *MarkingPipeline) resolveAnswer(ctx context.Context, job *model.MarkingJob) (string, error) {
	if job.AnswerImageURL == nil || *job.AnswerImageURL == "" {
		return job.AnswerSnapshot, nil
	}
	callCtx, cancel := context.WithTimeout(ctx, p.cfg.CallTimeout)
	defer cancel()
	text, err := p.ocr.ExtractText(callCtx, *job.AnswerImageURL)
	if err != nil {
		return "", err
	}
	return text, nil
}

// stageFailed applies the shared retry/backoff/error policy for OCR and
// scoring failures, including timeouts and malformed results.
func (p *MarkingPipeline) stageFailed(job *model.MarkingJob, attempt *model.Attempt, cause error) {
	retryCount := job.RetryCount + 1
	if retryCount > p.cfg.MaxRetries {
		reason := cause.Error()
		log.Error().Err(cause).Str("attemptID", attempt.ID).Int("retries", job.RetryCount).
			Msg("Marking retries exhausted, moving attempt to error")
		if _, err := p.attemptRepo.MarkError(attempt.ID, reason); err != nil {
			log.Error().Err(err).Str("attemptID", attempt.ID).Msg("Failed to record attempt error state")
		}
		if err := p.jobRepo.MarkFailed(job.ID, reason); err != nil {
			log.Error().Err(err).Uint("jobID", job.ID).Msg("Failed to park exhausted marking job")
		}
		return
	}

	delay := p.backoffDelay(job.RetryCount)
	log.Warn().Err(cause).Str("attemptID", attempt.ID).Int("retry", retryCount).
		Dur("delay", delay).Msg("Marking stage failed, rescheduling")
	if err := p.jobRepo.Reschedule(job.ID, retryCount, time.Now().UTC().Add(delay), cause.Error()); err != nil {
		log.Error().Err(err).Uint("jobID", job.ID).Msg("Failed to reschedule marking job")
	}
}

// retryLater handles internal (storage) errors: the job goes back to the
// queue without consuming a retry, since no external stage actually ran.
func (p *MarkingPipeline) retryLater(job *model.MarkingJob, cause error) {
	log.Error().Err(cause).Uint("jobID", job.ID).Msg("Marking job hit internal error, requeueing")
	if err := p.jobRepo.Reschedule(job.ID, job.RetryCount, time.Now().UTC().Add(p.cfg.BackoffBase), cause.Error()); err != nil {
		log.Error().Err(err).Uint("jobID", job.ID).Msg("Failed to requeue marking job")
	}
}

func (p *MarkingPipeline) backoffDelay(retriesSoFar int) time.Duration {
	delay := p.cfg.BackoffBase
	for i := 0; i < retriesSoFar; i++ {
		delay *= 2
		if delay >= p.cfg.BackoffCap {
			return p.cfg.BackoffCap
		}
	}
	return delay
}

// RetryMarking is the teacher/operator affordance for an attempt parked in
// error: it resets the exhausted job and wakes the workers. The attempt stays
// "error" until a pass succeeds.
func (p *MarkingPipeline) RetryMarking(attemptID, teacherID string) error {
	attempt, err := p.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrNotFound)
		}
		return err
	}
	if attempt.OwnerTeacherID != teacherID {
		return fmt.Errorf("attempt %s is not owned by caller: %w", attemptID, apperr.ErrForbidden)
	}
	if attempt.Status != model.AttemptStatusError {
		return fmt.Errorf("cannot retry marking for attempt in status %q: %w", attempt.Status, apperr.ErrInvalidTransition)
	}
	ok, err := p.jobRepo.RequeueForAttempt(attemptID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		// Job already pending or running; the retry will happen anyway.
		log.Info().Str("attemptID", attemptID).Msg("Marking retry requested but job already active")
	}
	p.Wake()
	return nil
}

func validateResult(result *repository.MarkingResult, question *model.Question) error {
	if result == nil {
		return fmt.Errorf("scorer returned no result: %w", apperr.ErrExternalService)
	}
	if result.Score < 0 || result.Score > question.MaxMarks {
		return fmt.Errorf("score %d outside mark scheme bound 0..%d: %w",
			result.Score, question.MaxMarks, apperr.ErrExternalService)
	}
	return nil
}
