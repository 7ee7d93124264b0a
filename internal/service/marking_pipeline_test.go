package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

type pipelineFixture struct {
	jobs        *fakeMarkingJobRepo
	attempts    *fakeAttemptRepo
	questions   *fakeQuestionRepo
	assessments *fakeAssessmentRepo
	scorer      *fakeScorer
	ocr         *fakeOCR
	pipeline    *MarkingPipeline
}

func newPipelineFixture(t *testing.T, maxRetries int) *pipelineFixture {
	t.Helper()
	jobs := newFakeMarkingJobRepo()
	attempts := newFakeAttemptRepo(jobs)
	questions := newFakeQuestionRepo()
	assessments := newFakeAssessmentRepo()
	scorer := &fakeScorer{}
	ocr := &fakeOCR{}

	if err := questions.Create(&model.Question{
		ID:             "question-1",
		OwnerTeacherID: "teacher-1",
		Subject:        "Biology",
		QuestionText:   "Describe osmosis.",
		MarkScheme:     "1 mark per point",
		MaxMarks:       5,
		AnswerMode:     model.AnswerModeText,
	}); err != nil {
		t.Fatalf("seeding question: %v", err)
	}
	started := time.Now().UTC().Add(-time.Minute)
	if err := assessments.Create(&model.Assessment{
		ID:             "assessment-1",
		OwnerTeacherID: "teacher-1",
		QuestionID:     "question-1",
		Status:         model.AssessmentStatusStarted,
		JoinCode:       "CODE42",
		StartedAt:      &started,
	}); err != nil {
		t.Fatalf("seeding assessment: %v", err)
	}

	// Zero backoff keeps rescheduled jobs immediately claimable so tests can
	// drive retries synchronously with RunOnce.
	pipeline := NewMarkingPipeline(PipelineConfig{
		Workers:      1,
		PollInterval: time.Hour,
		CallTimeout:  time.Second,
		BackoffBase:  time.Nanosecond,
		BackoffCap:   time.Nanosecond,
		MaxRetries:   maxRetries,
	}, jobs, attempts, questions, assessments, scorer, ocr)

	return &pipelineFixture{
		jobs:        jobs,
		attempts:    attempts,
		questions:   questions,
		assessments: assessments,
		scorer:      scorer,
		ocr:         ocr,
		pipeline:    pipeline,
	}
}

// seedSubmitted creates a submitted attempt with its pending marking job, the
// way the submit transition enqueues it.
func (f *pipelineFixture) seedSubmitted(t *testing.T, id string) {
	t.Helper()
	if err := f.attempts.Create(&model.Attempt{
		ID:             id,
		AssessmentID:   "assessment-1",
		OwnerTeacherID: "teacher-1",
		StudentName:    "Ada",
		AnswerText:     "water moves across the membrane",
		Status:         model.AttemptStatusInProgress,
		JoinedAt:       time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seeding attempt: %v", err)
	}
	ok, err := f.attempts.Submit(id, nil, nil, false, model.FinalizeReasonManual, time.Now().UTC())
	if err != nil || !ok {
		t.Fatalf("submitting attempt: ok=%v err=%v", ok, err)
	}
}

func (f *pipelineFixture) drain(ctx context.Context) int {
	runs := 0
	for f.pipeline.RunOnce(ctx) {
		runs++
		if runs > 100 {
			break
		}
		// Rescheduled jobs carry a nanosecond delay; let it lapse.
		time.Sleep(time.Millisecond)
	}
	return runs
}

func TestPipelineMarksSubmittedAttempt(t *testing.T) {
	f := newPipelineFixture(t, 3)
	f.seedSubmitted(t, "attempt-1")
	f.scorer.responses = []scorerResponse{
		{result: &repository.MarkingResult{Score: 4, WWW: "clear structure", NextSteps: "add detail", OverallFeedback: "good"}},
	}

	if !f.pipeline.RunOnce(context.Background()) {
		t.Fatal("expected a job to be claimed")
	}

	attempt, _ := f.attempts.FindByID("attempt-1")
	if attempt.Status != model.AttemptStatusMarked {
		t.Fatalf("status = %q, want marked", attempt.Status)
	}
	if attempt.Score == nil || *attempt.Score != 4 {
		t.Errorf("score = %v, want 4", attempt.Score)
	}
	if attempt.WWW != "clear structure" || attempt.NextSteps != "add detail" {
		t.Errorf("feedback fields not written: %+v", attempt)
	}
	if attempt.FeedbackReleased {
		t.Error("marking must not release feedback")
	}
	if job := f.jobs.jobFor("attempt-1"); job.Status != model.JobStatusDone {
		t.Errorf("job status = %q, want done", job.Status)
	}
}

func TestPipelineRetriesThenSucceeds(t *testing.T) {
	f := newPipelineFixture(t, 3)
	f.seedSubmitted(t, "attempt-1")
	f.scorer.responses = []scorerResponse{
		{err: fmt.Errorf("upstream 500: %w", apperr.ErrExternalService)},
		{err: fmt.Errorf("upstream 500: %w", apperr.ErrExternalService)},
		{result: &repository.MarkingResult{Score: 3, WWW: "ok", NextSteps: "more", OverallFeedback: "fine"}},
	}

	runs := f.drain(context.Background())
	if runs != 3 {
		t.Fatalf("runs = %d, want 3 (two failures then success)", runs)
	}
	attempt, _ := f.attempts.FindByID("attempt-1")
	if attempt.Status != model.AttemptStatusMarked {
		t.Fatalf("status = %q, want marked after retries", attempt.Status)
	}
}

func TestPipelineExhaustsRetriesIntoError(t *testing.T) {
	f := newPipelineFixture(t, 2)
	f.seedSubmitted(t, "attempt-1")
	f.scorer.responses = []scorerResponse{
		{err: fmt.Errorf("provider down: %w", apperr.ErrExternalService)},
	}

	// retries 1 and 2 reschedule, the third failure exhausts the bound
	runs := f.drain(context.Background())
	if runs != 3 {
		t.Fatalf("runs = %d, want 3", runs)
	}
	attempt, _ := f.attempts.FindByID("attempt-1")
	if attempt.Status != model.AttemptStatusError {
		t.Fatalf("status = %q, want error", attempt.Status)
	}
	if attempt.FailureReason == "" {
		t.Error("failure reason not persisted")
	}
	if job := f.jobs.jobFor("attempt-1"); job.Status != model.JobStatusFailed {
		t.Errorf("job status = %q, want failed", job.Status)
	}
}

func TestPipelineRejectsOutOfRangeScore(t *testing.T) {
	f := newPipelineFixture(t, 1)
	f.seedSubmitted(t, "attempt-1")
	// MaxMarks is 5; a score of 9 is provider garbage and must never land.
	f.scorer.responses = []scorerResponse{
		{result: &repository.MarkingResult{Score: 9, WWW: "x", NextSteps: "y", OverallFeedback: "z"}},
	}

	f.drain(context.Background())
	attempt, _ := f.attempts.FindByID("attempt-1")
	if attempt.Status == model.AttemptStatusMarked {
		t.Fatal("out-of-range score was accepted")
	}
	if attempt.Score != nil {
		t.Errorf("partial result stored: score=%v", *attempt.Score)
	}
}

func TestPipelineSkipsNonMarkableAttempt(t *testing.T) {
	f := newPipelineFixture(t, 3)
	f.seedSubmitted(t, "attempt-1")
	// Mark it behind the pipeline's back; the stale job must complete as a
	// no-op without a second scoring pass.
	if ok, _ := f.attempts.MarkCompleted("attempt-1", repository.MarkingResult{Score: 2}, time.Now().UTC()); !ok {
		t.Fatal("seeding marked attempt failed")
	}

	if !f.pipeline.RunOnce(context.Background()) {
		t.Fatal("expected the stale job to be claimed")
	}
	if f.scorer.calls != 0 {
		t.Errorf("scorer called %d times for a non-markable attempt", f.scorer.calls)
	}
	attempt, _ := f.attempts.FindByID("attempt-1")
	if attempt.Score == nil || *attempt.Score != 2 {
		t.Errorf("existing marking overwritten: %+v", attempt)
	}
	if job := f.jobs.jobFor("attempt-1"); job.Status != model.JobStatusDone {
		t.Errorf("job status = %q, want done", job.Status)
	}
}

func TestPipelineStopsClaimingOnCancelledContext(t *testing.T) {
	f := newPipelineFixture(t, 3)
	f.seedSubmitted(t, "attempt-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if f.pipeline.RunOnce(ctx) {
		t.Fatal("claimed a job on a cancelled context")
	}
	if f.scorer.calls != 0 {
		t.Errorf("scorer called %d times during shutdown", f.scorer.calls)
	}
	// The job is untouched and keeps its retry budget for the next start.
	job := f.jobs.jobFor("attempt-1")
	if job.Status != model.JobStatusPending {
		t.Errorf("job status = %q, want pending", job.Status)
	}
	if job.RetryCount != 0 {
		t.Errorf("retry count = %d, want 0", job.RetryCount)
	}
}

func TestPipelineRunsOCRForImageAnswers(t *testing.T) {
	f := newPipelineFixture(t, 3)
	imageURL := "https://uploads.example.com/answer.png"
	if err := f.attempts.Create(&model.Attempt{
		ID:             "attempt-1",
		AssessmentID:   "assessment-1",
		OwnerTeacherID: "teacher-1",
		StudentName:    "Ada",
		Status:         model.AttemptStatusInProgress,
		JoinedAt:       time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seeding attempt: %v", err)
	}
	if ok, _ := f.attempts.Submit("attempt-1", nil, &imageURL, false, model.FinalizeReasonManual, time.Now().UTC()); !ok {
		t.Fatal("submit failed")
	}
	if job := f.jobs.jobFor("attempt-1"); job.AnswerImageURL == nil || *job.AnswerImageURL != imageURL {
		t.Fatalf("job image URL = %v, want the submitted upload", job.AnswerImageURL)
	}
	f.ocr.text = "transcribed answer"
	f.scorer.responses = []scorerResponse{
		{result: &repository.MarkingResult{Score: 5, WWW: "w", NextSteps: "n", OverallFeedback: "o"}},
	}

	if !f.pipeline.RunOnce(context.Background()) {
		t.Fatal("expected the job to be claimed")
	}
	attempt, _ := f.attempts.FindByID("attempt-1")
	if attempt.Status != model.AttemptStatusMarked {
		t.Fatalf("status = %q, want marked", attempt.Status)
	}
}

func TestRetryMarking(t *testing.T) {
	f := newPipelineFixture(t, 1)
	f.seedSubmitted(t, "attempt-1")
	f.scorer.responses = []scorerResponse{
		{err: errors.New("provider down")},
	}
	f.drain(context.Background())

	attempt, _ := f.attempts.FindByID("attempt-1")
	if attempt.Status != model.AttemptStatusError {
		t.Fatalf("precondition: status = %q, want error", attempt.Status)
	}

	if err := f.pipeline.RetryMarking("attempt-1", "teacher-2"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("retry by non-owner: expected ErrForbidden, got %v", err)
	}

	if err := f.pipeline.RetryMarking("attempt-1", "teacher-1"); err != nil {
		t.Fatalf("RetryMarking: %v", err)
	}
	job := f.jobs.jobFor("attempt-1")
	if job.Status != model.JobStatusPending || job.RetryCount != 0 {
		t.Fatalf("job after retry request = %+v, want requeued fresh", job)
	}

	// A successful pass moves the attempt out of error.
	f.scorer.responses = []scorerResponse{
		{result: &repository.MarkingResult{Score: 3, WWW: "w", NextSteps: "n", OverallFeedback: "o"}},
	}
	f.drain(context.Background())
	attempt, _ = f.attempts.FindByID("attempt-1")
	if attempt.Status != model.AttemptStatusMarked {
		t.Fatalf("status after retried marking = %q, want marked", attempt.Status)
	}
	if attempt.FailureReason != "" {
		t.Errorf("failure reason not cleared: %q", attempt.FailureReason)
	}
}

func TestRetryMarkingOnlyFromError(t *testing.T) {
	f := newPipelineFixture(t, 3)
	f.seedSubmitted(t, "attempt-1")

	err := f.pipeline.RetryMarking("attempt-1", "teacher-1")
	if !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("retry on submitted attempt: expected ErrInvalidTransition, got %v", err)
	}
}

func TestStartRequeuesOrphans(t *testing.T) {
	f := newPipelineFixture(t, 3)
	f.seedSubmitted(t, "attempt-1")

	// Simulate a worker crash mid-job: claimed but never finished.
	if job, _ := f.jobs.ClaimNext(time.Now().UTC()); job == nil {
		t.Fatal("claim failed")
	}
	if job := f.jobs.jobFor("attempt-1"); job.Status != model.JobStatusRunning {
		t.Fatalf("precondition: job status = %q", job.Status)
	}

	if err := f.pipeline.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer f.pipeline.Stop()

	// Start requeued the orphan; the worker pool will pick it up.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		attempt, _ := f.attempts.FindByID("attempt-1")
		if attempt.Status == model.AttemptStatusMarked {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("orphaned job was not reprocessed after restart")
}
