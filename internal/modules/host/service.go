package host

import (
	"context"
	"errors"

	"eventbook/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrAlreadyHost = errors.New("host profile already exists")
	ErrNotFound    = errors.New("host profile not found")
)

type HostRepository interface {
	Create(ctx context.Context, h *domain.Host) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Host, error)
}

type UserRoleWriter interface {
	UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error
}

type EventLister interface {
	ListByHost(ctx context.Context, hostID int64) ([]domain.Event, error)
}

type BookingCounter interface {
	CountForHost(ctx context.Context, hostID int64) (int64, error)
}

// Service owns host profiles and the host dashboard. All store accessors
// are injected at construction, never resolved lazily.
type Service struct {
	hosts    HostRepository
	users    UserRoleWriter
	events   EventLister
	bookings BookingCounter
}

func NewService(hosts HostRepository, users UserRoleWriter, events EventLister, bookings BookingCounter) *Service {
	return &Service{hosts: hosts, users: users, events: events, bookings: bookings}
}

func (s *Service) Register(ctx context.Context, userID int64, req RegisterHostRequest) (*domain.Host, error) {
	if _, err := s.hosts.GetByUserID(ctx, userID); err == nil {
		return nil, ErrAlreadyHost
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	h := &domain.Host{
		UserID:             userID,
		BusinessName:       req.BusinessName,
		BusinessType:       req.BusinessType,
		BusinessAddress:    req.BusinessAddress,
		City:               req.City,
		VerificationStatus: domain.HostPending,
	}

	if err := s.hosts.Create(ctx, h); err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, userID, domain.RoleHost); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*domain.Host, error) {
	h, err := s.hosts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *Service) Dashboard(ctx context.Context, userID int64) (*DashboardResponse, error) {
	h, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.events.ListByHost(ctx, h.ID)
	if err != nil {
		return nil, err
	}

	totalBookings, err := s.bookings.CountForHost(ctx, h.ID)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{
		TotalEvents:   len(events),
		TotalBookings: totalBookings,
		TotalRevenue:  h.TotalRevenue,
	}
	for _, e := range events {
		switch e.Status {
		case domain.EventApproved:
			stats.ActiveEvents++
		case domain.EventPending:
			stats.PendingEvents++
		}
	}

	return &DashboardResponse{Host: h, Stats: stats, Events: events}, nil
}
