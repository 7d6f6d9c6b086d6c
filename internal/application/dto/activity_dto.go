package dto

import (
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// ActivityResponse entrada del feed de actividad.
type ActivityResponse struct {
	ID          int64     `json:"id"`
	UserID      *string   `json:"userId"`
	PermutaID   *int64    `json:"permutaId"`
	SectorID    *int64    `json:"sectorId"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToActivityResponse convierte la entidad.
func ToActivityResponse(a *entity.Activity) *ActivityResponse {
	if a == nil {
		return nil
	}
	return &ActivityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		PermutaID:   a.PermutaID,
		SectorID:    a.SectorID,
		Type:        a.Type,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}
