package entity

import "github.com/shopspring/decimal"

// DashboardStats conteos agregados de la página inicial (siempre totales históricos).
type DashboardStats struct {
	TotalUsers        int64
	ActivePermutas    int64
	CompletedPermutas int64
	Sectors           int64
	// CompletionRate porcentaje de permutas completadas sobre el total (0–100, 2 decimales).
	CompletionRate decimal.Decimal
}
