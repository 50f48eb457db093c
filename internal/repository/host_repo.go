package repository

import (
	"context"

	"eventbook/internal/domain"

	"gorm.io/gorm"
)

type HostRepository struct {
	db *gorm.DB
}

func NewHostRepository(db *gorm.DB) *HostRepository {
	return &HostRepository{db: db}
}

func (r *HostRepository) Create(ctx context.Context, h *domain.Host) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HostRepository) GetByID(ctx context.Context, id int64) (*domain.Host, error) {
	var h domain.Host
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HostRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Host, error) {
	var h domain.Host
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HostRepository) Update(ctx context.Context, h *domain.Host) error {
	return r.db.WithContext(ctx).Save(h).Error
}

// creditHostRevenueForEvent adds a confirmed booking's amount to the revenue
// of the host owning the event. Runs on the given handle so it can join the
// payment confirmation transaction.
func creditHostRevenueForEvent(db *gorm.DB, eventID int64, amount int64) error {
	return db.Exec(
		"UPDATE hosts SET total_revenue = total_revenue + ? WHERE id = (SELECT host_id FROM events WHERE id = ?)",
		amount, eventID,
	).Error
}
