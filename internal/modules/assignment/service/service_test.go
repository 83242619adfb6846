package service

import (
	"context"
	"sync"
	"testing"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/internal/modules/assignment/dto"
	"anoa.com/edusphere/internal/modules/counter"
	"anoa.com/edusphere/internal/store"
	"anoa.com/edusphere/internal/store/memory"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (AssignmentService, store.Repositories, *entity.Class) {
	t.Helper()
	ctx := context.Background()
	repos := memory.New()
	svc := NewAssignmentService(repos.Assignments, repos.Submissions, repos.Classes, repos.Payments, repos.Users,
		counter.NewUpdater(repos.Classes, nil))

	class := &entity.Class{Title: "Go", OwnerEmail: "t@x.com", Status: entity.ClassStatusAccepted}
	require.NoError(t, repos.Classes.Create(ctx, class))
	require.NoError(t, repos.Payments.Create(ctx, &entity.Payment{PayerEmail: "s@x.com", ClassID: class.ID}))
	return svc, repos, class
}

func TestCreateAssignment(t *testing.T) {
	ctx := context.Background()
	svc, _, class := setup(t)

	for i := 1; i <= 3; i++ {
		res, err := svc.CreateAssignment(ctx, "t@x.com", dto.CreateAssignmentInput{ClassID: class.ID.String(), Title: "hw"})
		require.NoError(t, err)
		assert.Equal(t, int64(i), res.AssignmentCount)
	}

	list, err := svc.GetClassAssignments(ctx, class.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = svc.CreateAssignment(ctx, "other@x.com", dto.CreateAssignmentInput{ClassID: class.ID.String(), Title: "hw"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.CreateAssignment(ctx, "t@x.com", dto.CreateAssignmentInput{ClassID: uuid.NewString(), Title: "hw"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSubmitConcurrent(t *testing.T) {
	ctx := context.Background()
	svc, repos, class := setup(t)
	a, err := svc.CreateAssignment(ctx, "t@x.com", dto.CreateAssignmentInput{ClassID: class.ID.String(), Title: "hw"})
	require.NoError(t, err)

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, "s@x.com", dto.CreateSubmissionInput{
				ClassID:      class.ID.String(),
				AssignmentID: a.Assignment.ID.String(),
				Content:      "answer",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repos.Classes.FindByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.SubmissionCount)

	subs, err := repos.Submissions.FindByAssignment(ctx, a.Assignment.ID)
	require.NoError(t, err)
	assert.Len(t, subs, n)
}

func TestSubmitRequiresEnrollmentAndMatchingClass(t *testing.T) {
	ctx := context.Background()
	svc, repos, class := setup(t)
	a, err := svc.CreateAssignment(ctx, "t@x.com", dto.CreateAssignmentInput{ClassID: class.ID.String(), Title: "hw"})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "stranger@x.com", dto.CreateSubmissionInput{
		ClassID: class.ID.String(), AssignmentID: a.Assignment.ID.String(), Content: "x",
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	other := &entity.Class{Title: "Rust"}
	require.NoError(t, repos.Classes.Create(ctx, other))
	_, err = svc.Submit(ctx, "s@x.com", dto.CreateSubmissionInput{
		ClassID: other.ID.String(), AssignmentID: a.Assignment.ID.String(), Content: "x",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.Submit(ctx, "s@x.com", dto.CreateSubmissionInput{
		ClassID: class.ID.String(), AssignmentID: uuid.NewString(), Content: "x",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	got, err := repos.Classes.FindByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Zero(t, got.SubmissionCount)
}
