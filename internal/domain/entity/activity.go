package entity

import (
	"fmt"
	"time"
)

// Tipos de actividad conocidos. Los cambios de estado usan "permuta_<estado>".
const (
	ActivitySectorCreated    = "sector_created"
	ActivityPermutaCreated   = "permuta_created"
	ActivityPermutaCompleted = "permuta_completed"
	ActivityPermutaCancelled = "permuta_cancelled"
)

// Activity entrada append-only del feed de actividad.
type Activity struct {
	ID          int64
	UserID      *string
	PermutaID   *int64
	SectorID    *int64
	Type        string
	Description string
	CreatedAt   time.Time
}

// SectorCreatedActivity actividad registrada al crear un sector.
func SectorCreatedActivity(actorID *string, s *Sector) *Activity {
	id := s.ID
	return &Activity{
		UserID:      actorID,
		SectorID:    &id,
		Type:        ActivitySectorCreated,
		Description: fmt.Sprintf("Sector %s was added to the platform", s.Name),
	}
}

// PermutaCreatedActivity actividad registrada al crear una permuta.
func PermutaCreatedActivity(actorID *string, p *Permuta) *Activity {
	id := p.ID
	return &Activity{
		UserID:      actorID,
		PermutaID:   &id,
		Type:        ActivityPermutaCreated,
		Description: fmt.Sprintf("Permuta #%d was created", p.ID),
	}
}

// PermutaStatusActivity actividad registrada al cambiar el estado de una permuta.
func PermutaStatusActivity(actorID *string, p *Permuta) *Activity {
	id := p.ID
	return &Activity{
		UserID:      actorID,
		PermutaID:   &id,
		Type:        StatusActivityType(p.Status),
		Description: StatusActivityDescription(p.ID, p.Status),
	}
}
