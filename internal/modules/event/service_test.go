package event

import (
	"context"
	"testing"
	"time"

	"eventbook/internal/domain"
	"eventbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	if e != nil && args.Error(0) == nil {
		e.ID = 10
	}
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, f repository.EventFilter) ([]domain.Event, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Event, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockHostReader struct {
	mock.Mock
}

func (m *MockHostReader) GetByUserID(ctx context.Context, userID int64) (*domain.Host, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Host), args.Error(1)
}

func TestListPublic_ForcesApprovedFilter(t *testing.T) {
	events := new(MockEventRepository)
	events.On("List", mock.Anything, mock.MatchedBy(func(f repository.EventFilter) bool {
		return f.Status == domain.EventApproved && f.City == "Mumbai"
	})).Return([]domain.Event{}, nil)

	svc := NewService(events, new(MockHostReader))
	_, err := svc.ListPublic(context.Background(), ListEventsQuery{City: "Mumbai"})

	assert.NoError(t, err)
	events.AssertExpectations(t)
}

func TestListPublic_BadDate(t *testing.T) {
	svc := NewService(new(MockEventRepository), new(MockHostReader))
	_, err := svc.ListPublic(context.Background(), ListEventsQuery{DateFrom: "not-a-date"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateEvent_StartsPendingAtFullCapacity(t *testing.T) {
	events := new(MockEventRepository)
	hosts := new(MockHostReader)
	hosts.On("GetByUserID", mock.Anything, int64(2)).Return(&domain.Host{ID: 1, UserID: 2}, nil)
	events.On("Create", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(nil)

	svc := NewService(events, hosts)
	e, err := svc.CreateEvent(context.Background(), 2, CreateEventRequest{
		Name:     "Launch Party",
		Date:     time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
		Price:    50000,
		Capacity: 200,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.EventPending, e.Status)
	assert.Equal(t, 200, e.AvailableTickets)
	assert.Equal(t, int64(1), e.HostID)
}

func TestCreateEvent_NotAHost(t *testing.T) {
	hosts := new(MockHostReader)
	hosts.On("GetByUserID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(new(MockEventRepository), hosts)
	_, err := svc.CreateEvent(context.Background(), 9, CreateEventRequest{Name: "x", Capacity: 1})

	assert.ErrorIs(t, err, ErrNotHost)
}

func TestUpdateEvent_ResetsApprovalAndKeepsSoldSeats(t *testing.T) {
	events := new(MockEventRepository)
	hosts := new(MockHostReader)

	// 200 seats, 50 sold
	hosts.On("GetByUserID", mock.Anything, int64(2)).Return(&domain.Host{ID: 1, UserID: 2}, nil)
	events.On("GetByID", mock.Anything, int64(10)).Return(&domain.Event{
		ID:               10,
		HostID:           1,
		Capacity:         200,
		AvailableTickets: 150,
		Status:           domain.EventApproved,
	}, nil)
	events.On("Update", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(nil)

	newCap := 100
	svc := NewService(events, hosts)
	e, err := svc.UpdateEvent(context.Background(), 2, 10, UpdateEventRequest{Capacity: &newCap})

	assert.NoError(t, err)
	assert.Equal(t, domain.EventPending, e.Status, "edits require re-approval")
	assert.Equal(t, 100, e.Capacity)
	assert.Equal(t, 50, e.AvailableTickets, "sold seats stay sold")
}

func TestUpdateEvent_CapacityBelowSold(t *testing.T) {
	events := new(MockEventRepository)
	hosts := new(MockHostReader)

	hosts.On("GetByUserID", mock.Anything, int64(2)).Return(&domain.Host{ID: 1, UserID: 2}, nil)
	events.On("GetByID", mock.Anything, int64(10)).Return(&domain.Event{
		ID:               10,
		HostID:           1,
		Capacity:         200,
		AvailableTickets: 150,
	}, nil)

	newCap := 40 // below the 50 already sold
	svc := NewService(events, hosts)
	_, err := svc.UpdateEvent(context.Background(), 2, 10, UpdateEventRequest{Capacity: &newCap})

	assert.ErrorIs(t, err, ErrValidation)
	events.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateEvent_NotOwner(t *testing.T) {
	events := new(MockEventRepository)
	hosts := new(MockHostReader)

	hosts.On("GetByUserID", mock.Anything, int64(3)).Return(&domain.Host{ID: 2, UserID: 3}, nil)
	events.On("GetByID", mock.Anything, int64(10)).Return(&domain.Event{ID: 10, HostID: 1}, nil)

	svc := NewService(events, hosts)
	_, err := svc.UpdateEvent(context.Background(), 3, 10, UpdateEventRequest{Name: "Hijacked"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteEvent(t *testing.T) {
	events := new(MockEventRepository)
	hosts := new(MockHostReader)

	hosts.On("GetByUserID", mock.Anything, int64(2)).Return(&domain.Host{ID: 1, UserID: 2}, nil)
	events.On("GetByID", mock.Anything, int64(10)).Return(&domain.Event{ID: 10, HostID: 1}, nil)
	events.On("Delete", mock.Anything, int64(10)).Return(nil)

	svc := NewService(events, hosts)
	assert.NoError(t, svc.DeleteEvent(context.Background(), 2, 10))
	events.AssertExpectations(t)
}
