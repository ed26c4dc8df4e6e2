package shifts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	storage "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/shift"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/studioservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// Стабы зависимостей

type stubShiftRepo struct {
	intervals []domain.ShiftInterval
	templates []domain.ShiftTemplate
	created   *domain.ShiftInterval
	replaced  []domain.ShiftTemplate
	deletedID int64
}

func (s *stubShiftRepo) CreateInterval(_ context.Context, iv *domain.ShiftInterval) (*domain.ShiftInterval, error) {
	created := *iv
	created.ID = 11
	s.created = &created
	return &created, nil
}

func (s *stubShiftRepo) GetIntervalByID(_ context.Context, id int64) (*domain.ShiftInterval, error) {
	for i := range s.intervals {
		if s.intervals[i].ID == id {
			return &s.intervals[i], nil
		}
	}
	return nil, storage.ErrShiftNotFound
}

func (s *stubShiftRepo) GetIntervals(_ context.Context, _ int64, _, _ time.Time, _ *int64, _ bool) ([]domain.ShiftInterval, error) {
	return s.intervals, nil
}

func (s *stubShiftRepo) DeleteInterval(_ context.Context, id int64) error {
	s.deletedID = id
	return nil
}

func (s *stubShiftRepo) GetTemplates(_ context.Context, _ int64) ([]domain.ShiftTemplate, error) {
	return s.templates, nil
}

func (s *stubShiftRepo) ReplaceTemplates(_ context.Context, _, _ int64, entries []domain.ShiftTemplate) error {
	s.replaced = entries
	return nil
}

type stubStudioClient struct {
	studio *studioservice.Studio
	staff  *studioservice.StaffMember
}

func (s *stubStudioClient) GetStudio(_ context.Context, _ int64) (*studioservice.Studio, error) {
	return s.studio, nil
}

func (s *stubStudioClient) GetStaffMember(_ context.Context, _, _ int64) (*studioservice.StaffMember, error) {
	return s.staff, nil
}

type stubTxManager struct{}

func (s *stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
		Locations:  []studioservice.Location{{ID: 10, Name: "Main"}},
	}
}

func testStaff() *studioservice.StaffMember {
	return &studioservice.StaffMember{
		ID:          7,
		Name:        "Alice",
		LocationIDs: []int64{10},
	}
}

func newTestService(repo *stubShiftRepo) *Service {
	return NewService(
		repo,
		&stubStudioClient{studio: testStudio(), staff: testStaff()},
		&stubTxManager{},
		noopLogger{},
	)
}

func createReq(start, end string) *models.CreateShiftRequest {
	return &models.CreateShiftRequest{
		UserID:     managerID,
		StudioID:   1,
		StaffID:    7,
		LocationID: 10,
		Date:       time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
	}
}

// Тесты

func TestCreate_Success(t *testing.T) {
	repo := &stubShiftRepo{}
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), createReq("09:00", "13:00"))

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "13:00", resp.EndTime)
	assert.Equal(t, string(domain.ShiftScheduled), resp.Status)
}

func TestCreate_ConflictWithExistingShift(t *testing.T) {
	repo := &stubShiftRepo{intervals: []domain.ShiftInterval{{
		ID:         1,
		StudioID:   1,
		StaffID:    7,
		LocationID: 10,
		Date:       time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
		EndTime:    types.TimeString("14:00"),
		Status:     domain.ShiftScheduled,
	}}}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), createReq("12:00", "16:00"))

	assert.ErrorIs(t, err, ErrShiftConflict)
	assert.Nil(t, repo.created)
}

func TestCreate_AdjacentShiftsAllowed(t *testing.T) {
	repo := &stubShiftRepo{intervals: []domain.ShiftInterval{{
		ID:         1,
		StudioID:   1,
		StaffID:    7,
		LocationID: 10,
		Date:       time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("13:00"),
		Status:     domain.ShiftScheduled,
	}}}
	svc := newTestService(repo)

	// Начало новой смены совпадает с концом существующей
	_, err := svc.Create(context.Background(), createReq("13:00", "17:00"))

	assert.NoError(t, err)
}

func TestCreate_NotManager(t *testing.T) {
	svc := newTestService(&stubShiftRepo{})

	req := createReq("09:00", "13:00")
	req.UserID = 123

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_InvalidTimes(t *testing.T) {
	svc := newTestService(&stubShiftRepo{})

	_, err := svc.Create(context.Background(), createReq("14:00", "09:00"))

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_Success(t *testing.T) {
	repo := &stubShiftRepo{intervals: []domain.ShiftInterval{{
		ID:       5,
		StudioID: 1,
		StaffID:  7,
	}}}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 5, managerID)

	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.deletedID)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(&stubShiftRepo{})

	err := svc.Delete(context.Background(), 404, managerID)

	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestPutTemplate_Success(t *testing.T) {
	repo := &stubShiftRepo{}
	svc := newTestService(repo)

	resp, err := svc.PutTemplate(context.Background(), &models.PutTemplateRequest{
		UserID:   managerID,
		StudioID: 1,
		StaffID:  7,
		Entries: []models.TemplateEntry{
			{Weekday: time.Monday, LocationID: 10, StartTime: "09:00", EndTime: "13:00"},
			{Weekday: time.Monday, LocationID: 10, StartTime: "14:00", EndTime: "18:00"},
		},
	})

	require.NoError(t, err)
	assert.Len(t, resp.Entries, 2)
	assert.Len(t, repo.replaced, 2)
}

func TestPutTemplate_OverlappingEntriesRejected(t *testing.T) {
	repo := &stubShiftRepo{}
	svc := newTestService(repo)

	_, err := svc.PutTemplate(context.Background(), &models.PutTemplateRequest{
		UserID:   managerID,
		StudioID: 1,
		StaffID:  7,
		Entries: []models.TemplateEntry{
			{Weekday: time.Monday, LocationID: 10, StartTime: "09:00", EndTime: "13:00"},
			{Weekday: time.Monday, LocationID: 10, StartTime: "12:00", EndTime: "16:00"},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.replaced)
}

func TestPutTemplate_EmptyEntriesClearsTemplate(t *testing.T) {
	repo := &stubShiftRepo{}
	svc := newTestService(repo)

	resp, err := svc.PutTemplate(context.Background(), &models.PutTemplateRequest{
		UserID:   managerID,
		StudioID: 1,
		StaffID:  7,
		Entries:  nil,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Entries)
}

func TestGetStaffShifts_InvalidRange(t *testing.T) {
	svc := newTestService(&stubShiftRepo{})

	_, err := svc.GetStaffShifts(context.Background(), &models.GetStaffShiftsRequest{
		StudioID: 1,
		StaffID:  7,
		From:     time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
