package monitor_venue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeClient struct {
	bookable    domain.BookableStatus
	bookableErr error
	matrix      *domain.ResourceMatrix
	matrixErr   error

	bookableCalls int
	matrixCalls   int
}

func (c *fakeClient) CheckBookable(context.Context, string, string) (domain.BookableStatus, error) {
	c.bookableCalls++
	return c.bookable, c.bookableErr
}

func (c *fakeClient) GetResources(context.Context, string, string) (*domain.ResourceMatrix, error) {
	c.matrixCalls++
	return c.matrix, c.matrixErr
}

type fakeNotifier struct {
	sent []domain.Notification
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, notification domain.Notification) error {
	n.sent = append(n.sent, notification)
	return n.err
}

type fakeStore struct {
	saved []domain.PairStatus
}

func (s *fakeStore) Save(_ context.Context, status domain.PairStatus) error {
	s.saved = append(s.saved, status)
	return nil
}

type fakeHistory struct {
	saved [][]domain.AvailableSlot
	err   error
}

func (h *fakeHistory) SaveNotified(_ context.Context, _ domain.Venue, _ string, slots []domain.AvailableSlot, _ time.Time) error {
	h.saved = append(h.saved, slots)
	return h.err
}

type fakeMetrics struct {
	outcomes []string
}

func (m *fakeMetrics) ObservePair(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

func (m *fakeMetrics) SetSlotsFound(string, string, int) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type testEnv struct {
	client   *fakeClient
	notifier *fakeNotifier
	store    *fakeStore
	history  *fakeHistory
	metrics  *fakeMetrics
	uc       *UseCase
}

func newTestEnv(client *fakeClient, opts Options) *testEnv {
	env := &testEnv{
		client:   client,
		notifier: &fakeNotifier{},
		store:    &fakeStore{},
		history:  &fakeHistory{},
		metrics:  &fakeMetrics{},
	}
	env.uc = NewUseCase(env.client, env.notifier, env.store, env.history, env.metrics, opts, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)})
	return env
}

func defaultOptions() Options {
	return Options{Filter: DefaultSlotFilter()}
}

func testRequest() *Request {
	return &Request{
		Venue:   domain.Venue{ID: "1001", Name: "体育馆", Dates: []string{"2025-06-01"}},
		Date:    "2025-06-01",
		CycleID: "cycle-1",
	}
}

func TestExecute_NotBookable(t *testing.T) {
	env := newTestEnv(&fakeClient{bookable: domain.BookableStatus{Bookable: false, Msg: "NOT_OPEN"}}, defaultOptions())

	resp, err := env.uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotOpen, resp.Outcome)
	assert.Equal(t, domain.StateCheckingBookable, resp.State)
	assert.False(t, resp.Notified)
	assert.Equal(t, 0, env.client.matrixCalls, "matrix must not be fetched")
	assert.Empty(t, env.notifier.sent)
	require.Len(t, env.store.saved, 1)
	assert.Equal(t, "NOT_OPEN", env.store.saved[0].Message)
	assert.Equal(t, []string{"not_open"}, env.metrics.outcomes)
}

func TestExecute_BookableFetchFailure(t *testing.T) {
	env := newTestEnv(&fakeClient{bookableErr: errors.New("timeout")}, defaultOptions())

	resp, err := env.uc.Execute(context.Background(), testRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookableUnknown)
	require.NotNil(t, resp)
	assert.Equal(t, domain.OutcomeBookableUnknown, resp.Outcome)
	assert.Equal(t, 0, env.client.matrixCalls)
	assert.Empty(t, env.notifier.sent)
}

func TestExecute_MatrixErrorCode(t *testing.T) {
	env := newTestEnv(&fakeClient{
		bookable: domain.BookableStatus{Bookable: true},
		matrix:   &domain.ResourceMatrix{Code: 500, Msg: "system busy", Data: sampleMatrix().Data},
	}, defaultOptions())

	resp, err := env.uc.Execute(context.Background(), testRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMatrixUnavailable)
	assert.Equal(t, domain.OutcomeMatrixUnavailable, resp.Outcome)
	assert.Empty(t, resp.Slots, "data of a failed matrix must not be parsed")
	assert.Empty(t, env.notifier.sent)
	assert.Empty(t, env.history.saved)
	assert.Equal(t, "system busy", env.store.saved[0].Message)
}

func TestExecute_MatrixFetchFailure(t *testing.T) {
	env := newTestEnv(&fakeClient{
		bookable:  domain.BookableStatus{Bookable: true},
		matrixErr: errors.New("decode error"),
	}, defaultOptions())

	resp, err := env.uc.Execute(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrMatrixUnavailable)
	assert.Equal(t, domain.StateFetchingMatrix, resp.State)
	assert.Empty(t, env.notifier.sent)
}

func TestExecute_SlotsFound(t *testing.T) {
	env := newTestEnv(&fakeClient{
		bookable: domain.BookableStatus{Bookable: true},
		matrix:   sampleMatrix(),
	}, defaultOptions())

	resp, err := env.uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSlotsFound, resp.Outcome)
	assert.Equal(t, domain.StateNotifying, resp.State)
	assert.True(t, resp.Notified)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "18:00-19:00", resp.Slots[0].Time)
	assert.Equal(t, 80.0, resp.Slots[0].Price)

	require.Len(t, env.notifier.sent, 1)
	n := env.notifier.sent[0]
	assert.Equal(t, domain.NotificationSlotsFound, n.Kind)
	assert.Equal(t, "体育馆", n.VenueName)
	assert.Equal(t, "2025-06-01", n.Date)
	assert.Equal(t, "18:00", n.WatchFrom)
	assert.Contains(t, n.Message, "有 1 个可用时段")
	require.Len(t, n.Slots, 1)
	assert.Equal(t, "A", n.Slots[0].FieldID)
	for _, slot := range n.Slots {
		assert.NotEqual(t, "B", slot.FieldID, "ordered field must be omitted")
	}

	require.Len(t, env.history.saved, 1)
	require.Len(t, env.store.saved, 1)
	assert.Len(t, env.store.saved[0].Slots, 1)
}

func TestExecute_NotifierAndHistoryErrorsDoNotFail(t *testing.T) {
	env := newTestEnv(&fakeClient{
		bookable: domain.BookableStatus{Bookable: true},
		matrix:   sampleMatrix(),
	}, defaultOptions())
	env.notifier.err = errors.New("webhook down")
	env.history.err = errors.New("db down")

	resp, err := env.uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSlotsFound, resp.Outcome)
	assert.Len(t, env.notifier.sent, 1)
}

func TestExecute_NoSlots(t *testing.T) {
	matrix := &domain.ResourceMatrix{Code: 200, Data: []domain.FieldEntry{{FieldID: "B", FieldResource: []domain.SlotRecord{
		{Status: domain.SlotStatusLocked, Start: 1200, End: 1260},
		{Status: domain.SlotStatusAvailable, Start: 600, End: 660},
	}}}}

	t.Run("silent by default", func(t *testing.T) {
		env := newTestEnv(&fakeClient{bookable: domain.BookableStatus{Bookable: true}, matrix: matrix}, defaultOptions())

		resp, err := env.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeNoSlots, resp.Outcome)
		assert.Equal(t, domain.StateParsing, resp.State)
		assert.NotNil(t, resp.Slots)
		assert.Empty(t, env.notifier.sent)
		assert.Empty(t, env.history.saved)
	})

	t.Run("notify when empty", func(t *testing.T) {
		opts := defaultOptions()
		opts.NotifyWhenEmpty = true
		env := newTestEnv(&fakeClient{bookable: domain.BookableStatus{Bookable: true}, matrix: matrix}, opts)

		resp, err := env.uc.Execute(context.Background(), testRequest())

		require.NoError(t, err)
		assert.True(t, resp.Notified)
		require.Len(t, env.notifier.sent, 1)
		assert.Equal(t, domain.NotificationNoSlots, env.notifier.sent[0].Kind)
		assert.Empty(t, env.notifier.sent[0].Slots)
		assert.Empty(t, env.history.saved)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(&fakeClient{}, defaultOptions())

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "nil request", req: nil},
		{name: "empty venue", req: &Request{Date: "2025-06-01"}},
		{name: "bad date", req: &Request{Venue: domain.Venue{ID: "1001"}, Date: "01.06.2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, env.client.bookableCalls)
}

func TestExecute_NilHistory(t *testing.T) {
	client := &fakeClient{bookable: domain.BookableStatus{Bookable: true}, matrix: sampleMatrix()}
	notifier := &fakeNotifier{}
	uc := NewUseCase(client, notifier, &fakeStore{}, nil, &fakeMetrics{}, defaultOptions(), nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSlotsFound, resp.Outcome)
	assert.Len(t, notifier.sent, 1)
}
