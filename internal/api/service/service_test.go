package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/api/storage"
	"github.com/workhive/marketplace-be/internal/domain"
)

// fakeStore embeds Store so each test overrides only the methods it
// exercises; calling anything else panics loudly.
type fakeStore struct {
	Store

	applyStatusTransitionFn func(ctx context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error)
	listStatusAuditFn       func(ctx context.Context, workerID string) ([]model.StatusAudit, error)
	createProfileFn         func(ctx context.Context, p *model.Profile) error
	getProfileFn            func(ctx context.Context, userID string) (*model.Profile, error)
	upsertDocumentFn        func(ctx context.Context, workerID string, docType domain.DocumentType, filePath string) (*storage.UploadResult, error)
	listDocumentsFn         func(ctx context.Context, workerID string) ([]model.WorkerDocument, error)
	applyDocDecisionFn      func(ctx context.Context, documentID string, decision domain.DocumentStatus, verifierID, notes string) (*storage.DecisionResult, error)
	scheduleInterviewFn     func(ctx context.Context, p storage.ScheduleParams) (*storage.ScheduleResult, error)
	completeInterviewFn     func(ctx context.Context, interviewID string, result domain.InterviewResult, feedback, actor string) (*storage.ResultOutcome, error)
	getScheduledFn          func(ctx context.Context, workerID string) (*model.WorkerInterview, error)
	createTaskFn            func(ctx context.Context, t *model.Task) error
	getTaskFn               func(ctx context.Context, taskID string) (*model.Task, error)
	getSubmissionFn         func(ctx context.Context, submissionID string) (*model.TaskSubmission, error)
	decideSubmissionFn      func(ctx context.Context, submissionID string, decision domain.SubmissionStatus, reviewerID, notes string) (*model.TaskSubmission, error)
	rateSubmissionFn        func(ctx context.Context, submissionID string, rating float64) (*model.TaskSubmission, error)
	initiatePaymentFn       func(ctx context.Context, taskID, workerID, employerID string, amount float64, method string) (*model.PaymentRecord, bool, error)
	getPaymentFn            func(ctx context.Context, paymentID string) (*model.PaymentRecord, error)
	listPaymentsFn          func(ctx context.Context, taskID string) ([]model.PaymentRecord, error)
	attachProofFn           func(ctx context.Context, paymentID, filePath, claimedReference string) (*model.TransactionProof, error)
	completePaymentFn       func(ctx context.Context, paymentID string) (*model.PaymentRecord, error)
}

func (f *fakeStore) ApplyStatusTransition(ctx context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
	return f.applyStatusTransitionFn(ctx, workerID, trigger, actor)
}

func (f *fakeStore) ListStatusAudit(ctx context.Context, workerID string) ([]model.StatusAudit, error) {
	return f.listStatusAuditFn(ctx, workerID)
}

func (f *fakeStore) CreateProfile(ctx context.Context, p *model.Profile) error {
	return f.createProfileFn(ctx, p)
}

func (f *fakeStore) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return f.getProfileFn(ctx, userID)
}

func (f *fakeStore) UpsertDocument(ctx context.Context, workerID string, docType domain.DocumentType, filePath string) (*storage.UploadResult, error) {
	return f.upsertDocumentFn(ctx, workerID, docType, filePath)
}

func (f *fakeStore) ListDocuments(ctx context.Context, workerID string) ([]model.WorkerDocument, error) {
	return f.listDocumentsFn(ctx, workerID)
}

func (f *fakeStore) ApplyDocumentDecision(ctx context.Context, documentID string, decision domain.DocumentStatus, verifierID, notes string) (*storage.DecisionResult, error) {
	return f.applyDocDecisionFn(ctx, documentID, decision, verifierID, notes)
}

func (f *fakeStore) ScheduleInterview(ctx context.Context, p storage.ScheduleParams) (*storage.ScheduleResult, error) {
	return f.scheduleInterviewFn(ctx, p)
}

func (f *fakeStore) CompleteInterview(ctx context.Context, interviewID string, result domain.InterviewResult, feedback, actor string) (*storage.ResultOutcome, error) {
	return f.completeInterviewFn(ctx, interviewID, result, feedback, actor)
}

func (f *fakeStore) GetScheduledInterview(ctx context.Context, workerID string) (*model.WorkerInterview, error) {
	return f.getScheduledFn(ctx, workerID)
}

func (f *fakeStore) CreateTask(ctx context.Context, t *model.Task) error {
	return f.createTaskFn(ctx, t)
}

func (f *fakeStore) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	return f.getTaskFn(ctx, taskID)
}

func (f *fakeStore) GetSubmission(ctx context.Context, submissionID string) (*model.TaskSubmission, error) {
	return f.getSubmissionFn(ctx, submissionID)
}

func (f *fakeStore) DecideSubmission(ctx context.Context, submissionID string, decision domain.SubmissionStatus, reviewerID, notes string) (*model.TaskSubmission, error) {
	return f.decideSubmissionFn(ctx, submissionID, decision, reviewerID, notes)
}

func (f *fakeStore) RateSubmission(ctx context.Context, submissionID string, rating float64) (*model.TaskSubmission, error) {
	return f.rateSubmissionFn(ctx, submissionID, rating)
}

func (f *fakeStore) InitiatePayment(ctx context.Context, taskID, workerID, employerID string, amount float64, method string) (*model.PaymentRecord, bool, error) {
	return f.initiatePaymentFn(ctx, taskID, workerID, employerID, amount, method)
}

func (f *fakeStore) GetPayment(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	return f.getPaymentFn(ctx, paymentID)
}

func (f *fakeStore) ListPayments(ctx context.Context, taskID string) ([]model.PaymentRecord, error) {
	return f.listPaymentsFn(ctx, taskID)
}

func (f *fakeStore) AttachProof(ctx context.Context, paymentID, filePath, claimedReference string) (*model.TransactionProof, error) {
	return f.attachProofFn(ctx, paymentID, filePath, claimedReference)
}

func (f *fakeStore) CompletePayment(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	return f.completePaymentFn(ctx, paymentID)
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) published() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Event(nil), p.events...)
}

// fakeCache is an in-memory SummaryCache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	getErr  error
	setErr  error
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	value, found := c.entries[key]
	return value, found, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
