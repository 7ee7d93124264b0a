package service

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

// The fakes below implement the repository contracts in memory, including the
// compare-and-set semantics the services rely on, so the state machine logic
// can be tested without a database.

type fakeAssessmentRepo struct {
	mu            sync.Mutex
	assessments   map[string]*model.Assessment
	allCodesInUse bool
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{assessments: map[string]*model.Assessment{}}
}

func (r *fakeAssessmentRepo) Create(a *model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.assessments[a.ID] = &cp
	return nil
}

func (r *fakeAssessmentRepo) FindByID(id string) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssessmentRepo) FindAllByOwner(teacherID string) ([]model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Assessment
	for _, a := range r.assessments {
		if a.OwnerTeacherID == teacherID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) FindStartedByJoinCode(code string) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assessments {
		if a.JoinCode == code && a.Status == model.AssessmentStatusStarted {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssessmentRepo) JoinCodeInUse(code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.allCodesInUse {
		return true, nil
	}
	for _, a := range r.assessments {
		if a.JoinCode == code && a.Status != model.AssessmentStatusClosed {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssessmentRepo) Start(id, code string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assessments[id]
	if !ok || a.Status != model.AssessmentStatusDraft {
		return false, nil
	}
	a.Status = model.AssessmentStatusStarted
	a.JoinCode = code
	a.StartedAt = &at
	return true, nil
}

func (r *fakeAssessmentRepo) Close(id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assessments[id]
	if !ok || a.Status != model.AssessmentStatusStarted {
		return false, nil
	}
	a.Status = model.AssessmentStatusClosed
	a.ClosedAt = &at
	return true, nil
}

type fakeAttemptRepo struct {
	mu       sync.Mutex
	attempts map[string]*model.Attempt
	jobs     *fakeMarkingJobRepo
}

func newFakeAttemptRepo(jobs *fakeMarkingJobRepo) *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: map[string]*model.Attempt{}, jobs: jobs}
}

func (r *fakeAttemptRepo) Create(a *model.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.attempts[a.ID] = &cp
	return nil
}

func (r *fakeAttemptRepo) FindByID(id string) (*model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttemptRepo) FindAllByAssessment(assessmentID string) ([]model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Attempt
	for _, a := range r.attempts {
		if a.AssessmentID == assessmentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) ApplyAutosave(id string, answerText string, sequence int64, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok || a.Status != model.AttemptStatusInProgress || a.LastSequence >= sequence {
		return false, nil
	}
	a.AnswerText = answerText
	a.LastSequence = sequence
	a.LastSavedAt = &at
	return true, nil
}

func (r *fakeAttemptRepo) Submit(id string, finalAnswer, imageURL *string, late bool, reason string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok || a.Status != model.AttemptStatusInProgress {
		return false, nil
	}
	if finalAnswer != nil {
		a.AnswerText = *finalAnswer
	}
	if imageURL != nil {
		a.AnswerImageURL = imageURL
	}
	a.Status = model.AttemptStatusSubmitted
	a.Late = late
	a.FinalizeReason = reason
	a.SubmittedAt = &at
	r.jobs.upsert(id, a.AnswerText, a.AnswerImageURL, at)
	return true, nil
}

func (r *fakeAttemptRepo) MarkCompleted(id string, result repository.MarkingResult, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok || (a.Status != model.AttemptStatusSubmitted && a.Status != model.AttemptStatusError) {
		return false, nil
	}
	score := result.Score
	a.Status = model.AttemptStatusMarked
	a.Score = &score
	a.WWW = result.WWW
	a.NextSteps = result.NextSteps
	a.OverallFeedback = result.OverallFeedback
	a.FailureReason = ""
	a.MarkedAt = &at
	return true, nil
}

func (r *fakeAttemptRepo) MarkError(id string, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok || (a.Status != model.AttemptStatusSubmitted && a.Status != model.AttemptStatusError) {
		return false, nil
	}
	a.Status = model.AttemptStatusError
	a.FailureReason = reason
	return true, nil
}

func (r *fakeAttemptRepo) Release(id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok || a.Status != model.AttemptStatusMarked || a.FeedbackReleased {
		return false, nil
	}
	a.FeedbackReleased = true
	a.FeedbackReleasedAt = &at
	return true, nil
}

func (r *fakeAttemptRepo) FindMarkedUnreleased(assessmentID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, a := range r.attempts {
		if a.AssessmentID == assessmentID && a.Status == model.AttemptStatusMarked && !a.FeedbackReleased {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

func (r *fakeAttemptRepo) UpdateFeedbackFields(id string, fields map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok || a.Status != model.AttemptStatusMarked {
		return false, nil
	}
	if v, ok := fields["score"]; ok {
		score := v.(int)
		a.Score = &score
	}
	if v, ok := fields["www"]; ok {
		a.WWW = v.(string)
	}
	if v, ok := fields["next_steps"]; ok {
		a.NextSteps = v.(string)
	}
	if v, ok := fields["overall_feedback"]; ok {
		a.OverallFeedback = v.(string)
	}
	return true, nil
}

type fakeMarkingJobRepo struct {
	mu     sync.Mutex
	nextID uint
	jobs   map[string]*model.MarkingJob // by attempt ID; at most one job per attempt
}

func newFakeMarkingJobRepo() *fakeMarkingJobRepo {
	return &fakeMarkingJobRepo{jobs: map[string]*model.MarkingJob{}}
}

func (r *fakeMarkingJobRepo) upsert(attemptID, snapshot string, imageURL *string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.jobs[attemptID]; ok {
		job.AnswerSnapshot = snapshot
		job.AnswerImageURL = imageURL
		job.Status = model.JobStatusPending
		job.RetryCount = 0
		job.NextRetryAt = at
		job.LastError = ""
		return
	}
	r.nextID++
	r.jobs[attemptID] = &model.MarkingJob{
		ID:             r.nextID,
		AttemptID:      attemptID,
		AnswerSnapshot: snapshot,
		AnswerImageURL: imageURL,
		Status:         model.JobStatusPending,
		NextRetryAt:    at,
	}
}

func (r *fakeMarkingJobRepo) ClaimNext(now time.Time) (*model.MarkingJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *model.MarkingJob
	for _, job := range r.jobs {
		if job.Status != model.JobStatusPending || job.NextRetryAt.After(now) {
			continue
		}
		if best == nil || job.NextRetryAt.Before(best.NextRetryAt) {
			best = job
		}
	}
	if best == nil {
		return nil, nil
	}
	best.Status = model.JobStatusRunning
	cp := *best
	return &cp, nil
}

func (r *fakeMarkingJobRepo) Reschedule(jobID uint, retryCount int, nextRetryAt time.Time, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.ID == jobID {
			job.Status = model.JobStatusPending
			job.RetryCount = retryCount
			job.NextRetryAt = nextRetryAt
			job.LastError = lastError
		}
	}
	return nil
}

func (r *fakeMarkingJobRepo) MarkDone(jobID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.ID == jobID {
			job.Status = model.JobStatusDone
		}
	}
	return nil
}

func (r *fakeMarkingJobRepo) MarkFailed(jobID uint, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.ID == jobID {
			job.Status = model.JobStatusFailed
			job.LastError = lastError
		}
	}
	return nil
}

func (r *fakeMarkingJobRepo) RequeueForAttempt(attemptID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[attemptID]
	if !ok || job.Status != model.JobStatusFailed {
		return false, nil
	}
	job.Status = model.JobStatusPending
	job.RetryCount = 0
	job.NextRetryAt = now
	job.LastError = ""
	return true, nil
}

func (r *fakeMarkingJobRepo) RequeueOrphans(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, job := range r.jobs {
		if job.Status == model.JobStatusRunning {
			job.Status = model.JobStatusPending
			job.NextRetryAt = now
			count++
		}
	}
	return count, nil
}

func (r *fakeMarkingJobRepo) jobFor(attemptID string) *model.MarkingJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[attemptID]
	if !ok {
		return nil
	}
	cp := *job
	return &cp
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]*model.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[string]*model.Question{}}
}

func (r *fakeQuestionRepo) Create(q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.questions[q.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) FindByID(id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionRepo) FindAllByOwner(teacherID string) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Question
	for _, q := range r.questions {
		if q.OwnerTeacherID == teacherID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.questions[q.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.questions, id)
	return nil
}

type fakeRosterRepo struct {
	students []model.Student
}

func (r *fakeRosterRepo) FindStudentsByClass(classID, teacherID string) ([]model.Student, error) {
	var out []model.Student
	for _, s := range r.students {
		if s.ClassID == classID && s.OwnerTeacherID == teacherID && !s.Archived {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRosterRepo) FindStudent(studentID, classID, teacherID string) (*model.Student, error) {
	for _, s := range r.students {
		if s.ID == studentID && s.ClassID == classID && s.OwnerTeacherID == teacherID && !s.Archived {
			cp := s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSecurityEventRepo struct {
	mu     sync.Mutex
	events []model.SecurityEvent
}

func (r *fakeSecurityEventRepo) Append(event *model.SecurityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := *event
	e.ID = uint(len(r.events) + 1)
	r.events = append(r.events, e)
	return nil
}

func (r *fakeSecurityEventRepo) FindByAttempt(attemptID string) ([]model.SecurityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SecurityEvent
	for _, e := range r.events {
		if e.AttemptID == attemptID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeScorer pops one canned response per call, then repeats the last one.
type fakeScorer struct {
	mu        sync.Mutex
	responses []scorerResponse
	calls     int
}

type scorerResponse struct {
	result *repository.MarkingResult
	err    error
}

func (s *fakeScorer) Score(ctx context.Context, answerText string, question *model.Question) (*repository.MarkingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.responses) == 0 {
		return &repository.MarkingResult{Score: question.MaxMarks}, nil
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp.result, resp.err
}

type fakeOCR struct {
	text string
	err  error
}

func (o *fakeOCR) ExtractText(ctx context.Context, imageURL string) (string, error) {
	return o.text, o.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	wakes int
}

func (n *fakeNotifier) Wake() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.wakes++
}

func (n *fakeNotifier) wakeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.wakes
}
