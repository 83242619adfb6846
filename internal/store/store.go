// Package store groups the repositories of every entity behind one value so
// the server can be wired against postgres or the in-memory driver.
package store

import (
	assignmentRepo "anoa.com/edusphere/internal/modules/assignment/repository"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	feedbackRepo "anoa.com/edusphere/internal/modules/feedback/repository"
	paymentRepo "anoa.com/edusphere/internal/modules/payment/repository"
	teachRepo "anoa.com/edusphere/internal/modules/teachrequest/repository"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"gorm.io/gorm"
)

type Repositories struct {
	Users         userRepo.UserRepository
	Classes       classRepo.ClassRepository
	Payments      paymentRepo.PaymentRepository
	Assignments   assignmentRepo.AssignmentRepository
	Submissions   assignmentRepo.SubmissionRepository
	TeachRequests teachRepo.TeachRequestRepository
	Feedback      feedbackRepo.FeedbackRepository
}

func NewGorm(db *gorm.DB) Repositories {
	return Repositories{
		Users:         userRepo.NewUserRepository(db),
		Classes:       classRepo.NewClassRepository(db),
		Payments:      paymentRepo.NewPaymentRepository(db),
		Assignments:   assignmentRepo.NewAssignmentRepository(db),
		Submissions:   assignmentRepo.NewSubmissionRepository(db),
		TeachRequests: teachRepo.NewTeachRequestRepository(db),
		Feedback:      feedbackRepo.NewFeedbackRepository(db),
	}
}
