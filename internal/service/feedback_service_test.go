package service

import (
	"errors"
	"testing"
	"time"

	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/dto"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

type feedbackFixture struct {
	attempts    *fakeAttemptRepo
	assessments *fakeAssessmentRepo
	svc         FeedbackService
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()
	attempts := newFakeAttemptRepo(newFakeMarkingJobRepo())
	assessments := newFakeAssessmentRepo()
	if err := assessments.Create(&model.Assessment{
		ID:             "assessment-1",
		OwnerTeacherID: "teacher-1",
		QuestionID:     "question-1",
		Status:         model.AssessmentStatusStarted,
	}); err != nil {
		t.Fatalf("seeding assessment: %v", err)
	}
	return &feedbackFixture{
		attempts:    attempts,
		assessments: assessments,
		svc:         NewFeedbackService(attempts, assessments),
	}
}

func (f *feedbackFixture) seedAttempt(t *testing.T, id, status string) {
	t.Helper()
	attempt := model.Attempt{
		ID:             id,
		AssessmentID:   "assessment-1",
		OwnerTeacherID: "teacher-1",
		StudentName:    "Ada",
		AnswerText:     "my answer",
		Status:         status,
		JoinedAt:       time.Now().UTC(),
	}
	if status == model.AttemptStatusMarked {
		score := 4
		attempt.Score = &score
		attempt.WWW = "good points"
		attempt.NextSteps = "expand the conclusion"
		attempt.OverallFeedback = "solid work"
	}
	if err := f.attempts.Create(&attempt); err != nil {
		t.Fatalf("seeding attempt: %v", err)
	}
}

func TestStudentViewRedactsUntilRelease(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusMarked)

	view, err := f.svc.StudentView("attempt-1")
	if err != nil {
		t.Fatalf("StudentView: %v", err)
	}
	if view.FeedbackReleased {
		t.Fatal("feedback reported released before release")
	}
	if view.Score != nil || view.WWW != nil || view.NextSteps != nil || view.OverallFeedback != nil {
		t.Errorf("marked-but-unreleased view leaks feedback: %+v", view)
	}

	if err := f.svc.Release("attempt-1", "teacher-1"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	view, err = f.svc.StudentView("attempt-1")
	if err != nil {
		t.Fatalf("StudentView after release: %v", err)
	}
	if !view.FeedbackReleased || view.Score == nil || *view.Score != 4 {
		t.Errorf("released view missing feedback: %+v", view)
	}
	if view.WWW == nil || *view.WWW != "good points" {
		t.Errorf("released view www = %v", view.WWW)
	}
}

func TestReleaseRequiresMarked(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusSubmitted)

	err := f.svc.Release("attempt-1", "teacher-1")
	if !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("release on submitted: expected ErrInvalidTransition, got %v", err)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusMarked)

	if err := f.svc.Release("attempt-1", "teacher-1"); err != nil {
		t.Fatalf("first release: %v", err)
	}
	first, _ := f.attempts.FindByID("attempt-1")

	if err := f.svc.Release("attempt-1", "teacher-1"); err != nil {
		t.Fatalf("second release must be a no-op, got %v", err)
	}
	second, _ := f.attempts.FindByID("attempt-1")
	if !second.FeedbackReleasedAt.Equal(*first.FeedbackReleasedAt) {
		t.Error("second release moved the release timestamp")
	}
}

func TestReleaseOwnershipEnforced(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusMarked)

	if err := f.svc.Release("attempt-1", "teacher-2"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.Release("missing", "teacher-1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReleaseAllCountsOnlyMarkedUnreleased(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusMarked)
	f.seedAttempt(t, "attempt-2", model.AttemptStatusMarked)
	f.seedAttempt(t, "attempt-3", model.AttemptStatusSubmitted)
	f.seedAttempt(t, "attempt-4", model.AttemptStatusInProgress)
	// Already released; must not be counted again.
	f.seedAttempt(t, "attempt-5", model.AttemptStatusMarked)
	if ok, _ := f.attempts.Release("attempt-5", time.Now().UTC()); !ok {
		t.Fatal("seeding released attempt failed")
	}

	resp, err := f.svc.ReleaseAll("assessment-1", "teacher-1")
	if err != nil {
		t.Fatalf("ReleaseAll: %v", err)
	}
	if resp.ReleasedCount != 2 {
		t.Errorf("released count = %d, want 2", resp.ReleasedCount)
	}

	for _, id := range []string{"attempt-3", "attempt-4"} {
		a, _ := f.attempts.FindByID(id)
		if a.FeedbackReleased {
			t.Errorf("%s released despite not being marked", id)
		}
	}
}

func TestReleaseAllOwnershipEnforced(t *testing.T) {
	f := newFeedbackFixture(t)

	if _, err := f.svc.ReleaseAll("assessment-1", "teacher-2"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestModerateEditsMarkedFeedback(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusMarked)

	score := 2
	www := "teacher's revised praise"
	resp, err := f.svc.Moderate("attempt-1", "teacher-1", dto.ModerateFeedbackRequest{
		Score: &score,
		WWW:   &www,
	})
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if resp.Score == nil || *resp.Score != 2 {
		t.Errorf("moderated score = %v, want 2", resp.Score)
	}
	if resp.WWW != www {
		t.Errorf("moderated www = %q", resp.WWW)
	}
	// Untouched fields survive a partial edit.
	if resp.NextSteps != "expand the conclusion" {
		t.Errorf("untouched next_steps changed: %q", resp.NextSteps)
	}
	// Moderation never transitions state or releases.
	attempt, _ := f.attempts.FindByID("attempt-1")
	if attempt.Status != model.AttemptStatusMarked || attempt.FeedbackReleased {
		t.Errorf("moderation changed lifecycle state: %+v", attempt)
	}
}

func TestModerateRequiresMarked(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusError)

	score := 1
	_, err := f.svc.Moderate("attempt-1", "teacher-1", dto.ModerateFeedbackRequest{Score: &score})
	if !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("moderate on error attempt: expected ErrInvalidTransition, got %v", err)
	}
}

func TestTeacherViewShowsUnreleasedFeedback(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusMarked)

	view, err := f.svc.TeacherView("attempt-1", "teacher-1")
	if err != nil {
		t.Fatalf("TeacherView: %v", err)
	}
	if view.Score == nil || *view.Score != 4 || view.WWW != "good points" {
		t.Errorf("teacher view must include unreleased feedback: %+v", view)
	}
}

// The full lifecycle: join-like creation, autosave, submit, mark, release.
func TestAttemptLifecycleEndToEnd(t *testing.T) {
	f := newFeedbackFixture(t)
	f.seedAttempt(t, "attempt-1", model.AttemptStatusInProgress)

	if ok, _ := f.attempts.ApplyAutosave("attempt-1", "draft", 1, time.Now().UTC()); !ok {
		t.Fatal("autosave rejected on in_progress attempt")
	}
	if ok, _ := f.attempts.Submit("attempt-1", nil, nil, false, model.FinalizeReasonManual, time.Now().UTC()); !ok {
		t.Fatal("submit rejected")
	}
	if ok, _ := f.attempts.MarkCompleted("attempt-1", repository.MarkingResult{
		Score: 3, WWW: "w", NextSteps: "n", OverallFeedback: "o",
	}, time.Now().UTC()); !ok {
		t.Fatal("marking rejected")
	}
	if err := f.svc.Release("attempt-1", "teacher-1"); err != nil {
		t.Fatalf("release: %v", err)
	}

	view, err := f.svc.StudentView("attempt-1")
	if err != nil {
		t.Fatalf("StudentView: %v", err)
	}
	if view.Status != model.AttemptStatusMarked || !view.FeedbackReleased || view.Score == nil || *view.Score != 3 {
		t.Errorf("final student view = %+v", view)
	}

	// Transitions are one-way: a marked attempt cannot be re-submitted.
	if ok, _ := f.attempts.Submit("attempt-1", nil, nil, false, model.FinalizeReasonManual, time.Now().UTC()); ok {
		t.Error("submit succeeded on a marked attempt")
	}
}
