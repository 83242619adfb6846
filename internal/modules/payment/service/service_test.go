package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/internal/modules/counter"
	"anoa.com/edusphere/internal/modules/payment/dto"
	"anoa.com/edusphere/internal/store"
	"anoa.com/edusphere/internal/store/memory"
	"anoa.com/edusphere/pkg/apperror"
	"anoa.com/edusphere/pkg/payment"
	"anoa.com/edusphere/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	mu   sync.Mutex
	reqs []payment.IntentRequest
	err  error
}

func (f *fakeProcessor) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.reqs = append(f.reqs, req)
	return &payment.Intent{ClientSecret: "pi_secret", Reference: "pi_1"}, nil
}

func newService(t *testing.T, processor payment.Processor) (PaymentService, store.Repositories) {
	t.Helper()
	repos := memory.New()
	svc := NewPaymentService(repos.Payments, repos.Classes, repos.Users,
		counter.NewUpdater(repos.Classes, nil), processor, ratelimit.New(nil), Config{}, nil)
	return svc, repos
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	proc := &fakeProcessor{}
	svc, _ := newService(t, proc)

	res, err := svc.CreateIntent(context.Background(), "a@x.com", 19.99)
	require.NoError(t, err)
	assert.Equal(t, "pi_secret", res.ClientSecret)
	assert.Equal(t, int64(1999), res.Amount)
	require.Len(t, proc.reqs, 1)
	assert.Equal(t, payment.IntentRequest{AmountMinor: 1999, Currency: "usd", Email: "a@x.com"}, proc.reqs[0])
}

func TestCreateIntentRejectsNonPositivePrice(t *testing.T) {
	proc := &fakeProcessor{}
	svc, _ := newService(t, proc)

	for _, price := range []float64{0, -5} {
		_, err := svc.CreateIntent(context.Background(), "a@x.com", price)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	}
	assert.Empty(t, proc.reqs)
}

func TestCreateIntentProviderFailure(t *testing.T) {
	svc, _ := newService(t, &fakeProcessor{err: errors.New("card_declined")})

	_, err := svc.CreateIntent(context.Background(), "a@x.com", 10)
	assert.ErrorIs(t, err, apperror.ErrPaymentProvider)
	assert.Equal(t, http.StatusBadGateway, apperror.MapErrorToStatus(err))
}

func TestCreateIntentWithoutProcessor(t *testing.T) {
	svc, _ := newService(t, nil)
	_, err := svc.CreateIntent(context.Background(), "a@x.com", 10)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.MapErrorToStatus(err))
}

func TestRecordPaymentCountsEnrollments(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t, nil)
	class := &entity.Class{Title: "Go", Status: entity.ClassStatusAccepted}
	require.NoError(t, repos.Classes.Create(ctx, class))

	res, err := svc.RecordPayment(ctx, "a@x.com", dto.CreatePaymentInput{ClassID: class.ID.String(), Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.EnrollCount)

	_, err = svc.RecordPayment(ctx, "a@x.com", dto.CreatePaymentInput{ClassID: class.ID.String(), Amount: 10})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	res, err = svc.RecordPayment(ctx, "b@x.com", dto.CreatePaymentInput{ClassID: class.ID.String(), Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.EnrollCount)

	got, err := repos.Classes.FindByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.EnrollCount)
}

func TestRecordPaymentMissingClass(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t, nil)

	_, err := svc.RecordPayment(ctx, "a@x.com", dto.CreatePaymentInput{ClassID: "7f1d2c4e-8a1b-4c3d-9e5f-0a1b2c3d4e5f"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	payments, err := repos.Payments.FindByPayer(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestGetEnrollments(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t, nil)
	require.NoError(t, repos.Users.Create(ctx, &entity.User{Email: "admin@x.com", Role: entity.RoleAdmin}))
	class := &entity.Class{Title: "Go"}
	require.NoError(t, repos.Classes.Create(ctx, class))
	_, err := svc.RecordPayment(ctx, "a@x.com", dto.CreatePaymentInput{ClassID: class.ID.String()})
	require.NoError(t, err)

	mine, err := svc.GetEnrollments(ctx, "a@x.com", "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Class)
	assert.Equal(t, "Go", mine[0].Class.Title)

	_, err = svc.GetEnrollments(ctx, "b@x.com", "a@x.com")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	theirs, err := svc.GetEnrollments(ctx, "admin@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
