package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Стабы зависимостей

type stubAppointmentRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
}

func (s *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	created := *a
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *stubAppointmentRepo) GetByStaffWithFilter(_ context.Context, _ domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	return s.existing, nil
}

type stubShiftRepo struct {
	intervals []domain.ShiftInterval
}

func (s *stubShiftRepo) GetIntervals(_ context.Context, _ int64, _, _ time.Time, _ *int64, _ bool) ([]domain.ShiftInterval, error) {
	return s.intervals, nil
}

type stubPolicyProvider struct {
	policy *domain.BookingPolicy
}

func (s *stubPolicyProvider) GetDomain(_ context.Context, _ int64) (*domain.BookingPolicy, error) {
	return s.policy, nil
}

type stubStudioClient struct {
	studio  *studioservice.Studio
	service *studioservice.Service
	staff   *studioservice.StaffMember
}

func (s *stubStudioClient) GetStudio(_ context.Context, _ int64) (*studioservice.Studio, error) {
	return s.studio, nil
}

func (s *stubStudioClient) GetService(_ context.Context, _, _ int64) (*studioservice.Service, error) {
	return s.service, nil
}

func (s *stubStudioClient) GetStaffMember(_ context.Context, _, _ int64) (*studioservice.StaffMember, error) {
	return s.staff, nil
}

type stubTxManager struct{}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Фикстуры

func testNow() time.Time {
	return time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
}

func permissivePolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		StudioID:                 1,
		OnlineBookingEnabled:     true,
		ImmediateBookingAllowed:  true,
		FutureBookingLimitMonths: 12,
		AllowTeamMemberSelection: true,
		AllowGroupAppointments:   true,
		MaxGroupSize:             4,
		CancellationAllowed:      true,
		ReschedulingAllowed:      true,
	}
}

func testStudio() *studioservice.Studio {
	return &studioservice.Studio{
		ID:         1,
		Name:       "Studio One",
		Timezone:   "UTC",
		ManagerIDs: []int64{99},
		Locations:  []studioservice.Location{{ID: 10, Name: "Main"}},
	}
}

func testService() *studioservice.Service {
	price := 1500.0
	return &studioservice.Service{
		ID:              5,
		Name:            "Haircut",
		DurationMinutes: 60,
		Price:           &price,
		LocationIDs:     []int64{10},
	}
}

func testStaff() *studioservice.StaffMember {
	return &studioservice.StaffMember{
		ID:          7,
		Name:        "Alice",
		LocationIDs: []int64{10},
	}
}

func workdayShift(date time.Time) domain.ShiftInterval {
	return domain.ShiftInterval{
		ID:         1,
		StudioID:   1,
		StaffID:    7,
		LocationID: 10,
		Date:       date,
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("18:00"),
		Status:     domain.ShiftScheduled,
	}
}

func newTestUseCase(
	appointmentRepo *stubAppointmentRepo,
	shiftRepo *stubShiftRepo,
	p *domain.BookingPolicy,
) *UseCase {
	uc := NewUseCase(
		appointmentRepo,
		shiftRepo,
		&stubPolicyProvider{policy: p},
		&stubStudioClient{studio: testStudio(), service: testService(), staff: testStaff()},
		&stubTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow()}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:       100,
		StudioID:       1,
		LocationID:     10,
		ServiceID:      5,
		StaffID:        7,
		StaffSelected:  true,
		ScheduledStart: time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC),
		GroupSize:      1,
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	repo := &stubAppointmentRepo{}
	shifts := &stubShiftRepo{intervals: []domain.ShiftInterval{
		workdayShift(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)),
	}}
	uc := newTestUseCase(repo, shifts, permissivePolicy())

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, "1500", resp.ServicePrice.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", resp.PublicID.String())
}

func TestExecute_SlotOutsideShifts(t *testing.T) {
	repo := &stubAppointmentRepo{}
	// Смен на дату запроса нет вовсе
	uc := newTestUseCase(repo, &stubShiftRepo{}, permissivePolicy())

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_SlotEndsAfterShift(t *testing.T) {
	repo := &stubAppointmentRepo{}
	shifts := &stubShiftRepo{intervals: []domain.ShiftInterval{
		workdayShift(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)),
	}}
	uc := newTestUseCase(repo, shifts, permissivePolicy())

	// 17:30 + 60 минут выходит за конец смены 18:00
	req := validRequest()
	req.ScheduledStart = time.Date(2025, 3, 11, 17, 30, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_SlotOverlapsExistingAppointment(t *testing.T) {
	repo := &stubAppointmentRepo{existing: []*domain.Appointment{{
		ID:              7,
		StaffID:         7,
		ScheduledStart:  time.Date(2025, 3, 11, 13, 30, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}}
	shifts := &stubShiftRepo{intervals: []domain.ShiftInterval{
		workdayShift(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)),
	}}
	uc := newTestUseCase(repo, shifts, permissivePolicy())

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_BackToBackAppointmentsAllowed(t *testing.T) {
	// Существующее бронирование заканчивается ровно в начале нового
	repo := &stubAppointmentRepo{existing: []*domain.Appointment{{
		ID:              7,
		StaffID:         7,
		ScheduledStart:  time.Date(2025, 3, 11, 13, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}}
	shifts := &stubShiftRepo{intervals: []domain.ShiftInterval{
		workdayShift(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)),
	}}
	uc := newTestUseCase(repo, shifts, permissivePolicy())

	_, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_OnlineBookingDisabled(t *testing.T) {
	p := permissivePolicy()
	p.OnlineBookingEnabled = false
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubShiftRepo{}, p)

	_, err := uc.Execute(context.Background(), validRequest())

	v, ok := policy.AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, policy.ReasonOnlineBookingDisabled, v.Reason)
}

func TestExecute_StaffSelectionDisabled(t *testing.T) {
	p := permissivePolicy()
	p.AllowTeamMemberSelection = false
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubShiftRepo{}, p)

	req := validRequest()
	req.StaffSelected = true

	_, err := uc.Execute(context.Background(), req)

	v, ok := policy.AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, policy.ReasonStaffSelectionDisabled, v.Reason)
}

func TestExecute_StudioAssignedStaffBypassesSelectionToggle(t *testing.T) {
	p := permissivePolicy()
	p.AllowTeamMemberSelection = false
	shifts := &stubShiftRepo{intervals: []domain.ShiftInterval{
		workdayShift(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)),
	}}
	uc := newTestUseCase(&stubAppointmentRepo{}, shifts, p)

	req := validRequest()
	req.StaffSelected = false

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_GroupSizeAboveLimit(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubShiftRepo{}, permissivePolicy())

	req := validRequest()
	req.GroupSize = 5

	_, err := uc.Execute(context.Background(), req)

	v, ok := policy.AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, policy.ReasonGroupSizeExceeded, v.Reason)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubShiftRepo{}, permissivePolicy())

	req := validRequest()
	req.ClientID = 0

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
