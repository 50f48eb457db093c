package event

import (
	"context"

	"eventbook/internal/domain"
	"eventbook/internal/repository"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context, f repository.EventFilter) ([]domain.Event, error)
	ListByHost(ctx context.Context, hostID int64) ([]domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id int64) error
}

type HostReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Host, error)
}
