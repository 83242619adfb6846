package memory

import (
	"context"
	"slices"

	"anoa.com/edusphere/internal/entity"
	assignmentRepo "anoa.com/edusphere/internal/modules/assignment/repository"
	feedbackRepo "anoa.com/edusphere/internal/modules/feedback/repository"
	paymentRepo "anoa.com/edusphere/internal/modules/payment/repository"
	teachRepo "anoa.com/edusphere/internal/modules/teachrequest/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
)

var (
	_ paymentRepo.PaymentRepository       = (*paymentRepository)(nil)
	_ assignmentRepo.AssignmentRepository = (*assignmentRepository)(nil)
	_ assignmentRepo.SubmissionRepository = (*submissionRepository)(nil)
	_ teachRepo.TeachRequestRepository    = (*teachRequestRepository)(nil)
	_ feedbackRepo.FeedbackRepository     = (*feedbackRepository)(nil)
)

type paymentRepository struct {
	db *DB
}

func (r *paymentRepository) find(email string, classID uuid.UUID) *entity.Payment {
	for _, id := range r.db.payments.order {
		if p := r.db.payments.rows[id]; p.PayerEmail == email && p.ClassID == classID {
			return p
		}
	}
	return nil
}

func (r *paymentRepository) Create(_ context.Context, payment *entity.Payment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.find(payment.PayerEmail, payment.ClassID) != nil {
		return apperror.ErrConflict
	}
	payment.ID = newID(payment.ID)
	payment.CreatedAt = r.db.now()
	r.db.payments.insert(payment.ID, *payment)
	return nil
}

func (r *paymentRepository) FindByPayerAndClass(_ context.Context, email string, classID uuid.UUID) (*entity.Payment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p := r.find(email, classID)
	if p == nil {
		return nil, apperror.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *paymentRepository) FindByPayer(_ context.Context, email string) ([]*entity.Payment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	payments := r.db.payments.scan(func(p *entity.Payment) bool { return p.PayerEmail == email })
	slices.Reverse(payments)
	return payments, nil
}

type assignmentRepository struct {
	db *DB
}

func (r *assignmentRepository) Create(_ context.Context, assignment *entity.Assignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	assignment.ID = newID(assignment.ID)
	assignment.CreatedAt = r.db.now()
	r.db.assignments.insert(assignment.ID, *assignment)
	return nil
}

func (r *assignmentRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.assignments.get(id)
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *assignmentRepository) FindByClass(_ context.Context, classID uuid.UUID) ([]*entity.Assignment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.assignments.scan(func(a *entity.Assignment) bool { return a.ClassID == classID }), nil
}

type submissionRepository struct {
	db *DB
}

func (r *submissionRepository) Create(_ context.Context, submission *entity.Submission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	submission.ID = newID(submission.ID)
	submission.CreatedAt = r.db.now()
	r.db.submissions.insert(submission.ID, *submission)
	return nil
}

func (r *submissionRepository) FindByAssignment(_ context.Context, assignmentID uuid.UUID) ([]*entity.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.submissions.scan(func(s *entity.Submission) bool { return s.AssignmentID == assignmentID }), nil
}

type teachRequestRepository struct {
	db *DB
}

func (r *teachRequestRepository) findByEmail(email string) *entity.TeachRequest {
	for _, id := range r.db.teachRequests.order {
		if t := r.db.teachRequests.rows[id]; t.Email == email {
			return t
		}
	}
	return nil
}

func (r *teachRequestRepository) Create(_ context.Context, req *entity.TeachRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.findByEmail(req.Email) != nil {
		return apperror.ErrConflict
	}
	req.ID = newID(req.ID)
	if req.Status == "" {
		req.Status = entity.TeachRequestPending
	}
	req.CreatedAt = r.db.now()
	req.UpdatedAt = req.CreatedAt
	r.db.teachRequests.insert(req.ID, *req)
	return nil
}

func (r *teachRequestRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.TeachRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.teachRequests.get(id)
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *teachRequestRepository) FindByEmail(_ context.Context, email string) (*entity.TeachRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t := r.findByEmail(email)
	if t == nil {
		return nil, apperror.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *teachRequestRepository) FindAll(_ context.Context, status string) ([]*entity.TeachRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	reqs := r.db.teachRequests.scan(func(t *entity.TeachRequest) bool {
		return status == "" || t.Status == status
	})
	slices.Reverse(reqs)
	return reqs, nil
}

func (r *teachRequestRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t, ok := r.db.teachRequests.get(id)
	if !ok {
		return apperror.ErrNotFound
	}
	if t.Status != from {
		return apperror.ErrConflict
	}
	t.Status = to
	t.UpdatedAt = r.db.now()
	return nil
}

type feedbackRepository struct {
	db *DB
}

func (r *feedbackRepository) Create(_ context.Context, feedback *entity.Feedback) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	feedback.ID = newID(feedback.ID)
	feedback.CreatedAt = r.db.now()
	r.db.feedback.insert(feedback.ID, *feedback)
	return nil
}

func (r *feedbackRepository) FindAll(_ context.Context) ([]*entity.Feedback, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	feedback := r.db.feedback.scan(nil)
	slices.Reverse(feedback)
	return feedback, nil
}
