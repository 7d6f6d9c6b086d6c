package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
// Totales históricos; se recalculan en cada petición.
type DashboardStatsResponse struct {
	TotalUsers        int64           `json:"totalUsers"`
	ActivePermutas    int64           `json:"activePermutas"`    // pending + analyzing + approved
	CompletedPermutas int64           `json:"completedPermutas"` // completed
	Sectors           int64           `json:"sectors"`
	CompletionRate    decimal.Decimal `json:"completionRate"` // % completadas sobre el total
}
