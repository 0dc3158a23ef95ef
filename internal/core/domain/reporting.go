package domain

import (
	"github.com/shopspring/decimal"
)

// ApplicationStats aggregates claim counts and amounts for the dashboard.
type ApplicationStats struct {
	Total         int64                       `json:"total"`
	ByStatus      map[ApplicationStatus]int64 `json:"byStatus"`
	TotalClaimed  decimal.Decimal             `json:"totalClaimed"`
	TotalApproved decimal.Decimal             `json:"totalApproved"`
}

// UserStats aggregates user counts per role.
type UserStats struct {
	Total  int64              `json:"total"`
	ByRole map[UserRole]int64 `json:"byRole"`
}

// SystemStats carries recent activity for the dashboard.
type SystemStats struct {
	RecentApplications []Application `json:"recentApplications"`
}

// DashboardSnapshot is the read-only reporting view over the claim workflow.
type DashboardSnapshot struct {
	ApplicationStats ApplicationStats `json:"applicationStats"`
	UserStats        UserStats        `json:"userStats"`
	SystemStats      SystemStats      `json:"systemStats"`
}
