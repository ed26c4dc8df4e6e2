package policyconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	storage "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policyconfig/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

// Стабы зависимостей

type stubPolicyRepo struct {
	stored  *domain.BookingPolicy
	created *domain.BookingPolicy
	updated *domain.BookingPolicy
}

func (s *stubPolicyRepo) GetByStudioID(_ context.Context, _ int64) (*domain.BookingPolicy, error) {
	if s.stored == nil {
		return nil, storage.ErrPolicyNotFound
	}
	p := *s.stored
	return &p, nil
}

func (s *stubPolicyRepo) Create(_ context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	created := *p
	created.ID = 1
	s.created = &created
	return &created, nil
}

func (s *stubPolicyRepo) Update(_ context.Context, _ int64, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	updated := *p
	s.updated = &updated
	return &updated, nil
}

type stubStudioClient struct {
	studio *studioservice.Studio
}

func (s *stubStudioClient) GetStudio(_ context.Context, _ int64) (*studioservice.Studio, error) {
	if s.studio == nil {
		return nil, studioservice.ErrStudioNotFound
	}
	return s.studio, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Фикстуры

const managerID int64 = 99

func testStudio() *studioservice.Studio {
	return &studioservice.Studio{
		ID:         1,
		Name:       "Studio One",
		Timezone:   "UTC",
		ManagerIDs: []int64{managerID},
	}
}

func newTestService(repo *stubPolicyRepo, studio *studioservice.Studio) *Service {
	return NewService(repo, &stubStudioClient{studio: studio}, noopLogger{})
}

// Тесты

func TestGet_ReturnsDefaultsWhenNotConfigured(t *testing.T) {
	svc := newTestService(&stubPolicyRepo{}, testStudio())

	resp, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, int64(1), resp.StudioID)
	assert.True(t, resp.OnlineBookingEnabled)
}

func TestGet_ReturnsStoredPolicy(t *testing.T) {
	stored := domain.DefaultBookingPolicy(1)
	stored.MaxGroupSize = 6
	stored.AllowGroupAppointments = true
	svc := newTestService(&stubPolicyRepo{stored: stored}, testStudio())

	resp, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 6, resp.MaxGroupSize)
}

func TestUpdate_PartialUpdatePreservesOtherFields(t *testing.T) {
	stored := domain.DefaultBookingPolicy(1)
	stored.CancellationBufferHours = 48
	repo := &stubPolicyRepo{stored: stored}
	svc := newTestService(repo, testStudio())

	resp, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:       managerID,
		MaxGroupSize: ptr.Ptr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxGroupSize)
	// Не тронутые поля сохраняются
	assert.Equal(t, 48, resp.CancellationBufferHours)
}

func TestUpdate_DisableCancellationKeepsBuffer(t *testing.T) {
	stored := domain.DefaultBookingPolicy(1)
	stored.CancellationBufferHours = 48
	repo := &stubPolicyRepo{stored: stored}
	svc := newTestService(repo, testStudio())

	resp, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:              managerID,
		CancellationAllowed: ptr.Ptr(false),
	})

	require.NoError(t, err)
	assert.False(t, resp.CancellationAllowed)
	assert.Equal(t, 48, resp.CancellationBufferHours)
}

func TestUpdate_CreatesRowOnFirstUpdate(t *testing.T) {
	repo := &stubPolicyRepo{}
	svc := newTestService(repo, testStudio())

	resp, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:               managerID,
		OnlineBookingEnabled: ptr.Ptr(false),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.False(t, resp.OnlineBookingEnabled)
	assert.False(t, resp.IsDefault)
}

func TestUpdate_NotManager(t *testing.T) {
	svc := newTestService(&stubPolicyRepo{}, testStudio())

	_, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:       123,
		MaxGroupSize: ptr.Ptr(3),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_StudioNotFound(t *testing.T) {
	svc := newTestService(&stubPolicyRepo{}, nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID: managerID,
	})

	assert.ErrorIs(t, err, ErrStudioNotFound)
}

func TestUpdate_InvalidHorizon(t *testing.T) {
	svc := newTestService(&stubPolicyRepo{}, testStudio())

	_, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:                   managerID,
		FutureBookingLimitMonths: ptr.Ptr(0),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_InvalidGroupSize(t *testing.T) {
	svc := newTestService(&stubPolicyRepo{}, testStudio())

	_, err := svc.Update(context.Background(), 1, &models.UpdatePolicyRequest{
		UserID:       managerID,
		MaxGroupSize: ptr.Ptr(50),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
