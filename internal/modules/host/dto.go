package host

import "eventbook/internal/domain"

type RegisterHostRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	BusinessType    string `json:"business_type" binding:"required"`
	BusinessAddress string `json:"business_address"`
	City            string `json:"city"`
}

type DashboardStats struct {
	TotalEvents   int   `json:"total_events"`
	ActiveEvents  int   `json:"active_events"`
	PendingEvents int   `json:"pending_events"`
	TotalBookings int64 `json:"total_bookings"`
	TotalRevenue  int64 `json:"total_revenue"` // minor currency units
}

type DashboardResponse struct {
	Host   *domain.Host   `json:"host"`
	Stats  DashboardStats `json:"stats"`
	Events []domain.Event `json:"events"`
}
