package entity

import (
	"fmt"
	"strings"
	"time"
)

// PermutaStatus estado de una permuta (enum permuta_status en PostgreSQL).
// Cualquier estado puede seguir a cualquier otro; no hay grafo de transiciones.
type PermutaStatus string

const (
	PermutaPending   PermutaStatus = "pending"
	PermutaAnalyzing PermutaStatus = "analyzing"
	PermutaApproved  PermutaStatus = "approved"
	PermutaCompleted PermutaStatus = "completed"
	PermutaRejected  PermutaStatus = "rejected"
	PermutaCancelled PermutaStatus = "cancelled"
)

// PermutaStatuses dominio cerrado en orden de ciclo de vida.
var PermutaStatuses = []PermutaStatus{
	PermutaPending, PermutaAnalyzing, PermutaApproved,
	PermutaCompleted, PermutaRejected, PermutaCancelled,
}

// ActivePermutaStatuses estados que cuentan como "activa" en el dashboard.
var ActivePermutaStatuses = []PermutaStatus{PermutaPending, PermutaAnalyzing, PermutaApproved}

// ParsePermutaStatus convierte texto en un estado del dominio.
// Es sensible a mayúsculas: el enum de la base también lo es.
func ParsePermutaStatus(s string) (PermutaStatus, bool) {
	for _, st := range PermutaStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// IsActive informa si el estado cuenta como permuta en curso.
func (s PermutaStatus) IsActive() bool {
	for _, st := range ActivePermutaStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// StatusNames lista los estados como texto (mensajes de validación).
func StatusNames() string {
	names := make([]string, len(PermutaStatuses))
	for i, st := range PermutaStatuses {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

// Permuta solicitud de intercambio de sector de un usuario.
type Permuta struct {
	ID           int64
	UserID       string
	FromSectorID int64
	ToSectorID   int64
	Status       PermutaStatus
	Description  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time // se fija al pasar a completed y nunca se borra
}

// ApplyStatus cambia el estado en memoria con la misma regla que el UPDATE SQL:
// completedAt se fija solo al pasar a completed y se conserva después.
func (p *Permuta) ApplyStatus(status PermutaStatus, now time.Time) {
	p.Status = status
	p.UpdatedAt = now
	if status == PermutaCompleted {
		t := now
		p.CompletedAt = &t
	}
}

// PermutaPatch actualización parcial de una permuta (el estado va por su propio endpoint).
type PermutaPatch struct {
	FromSectorID *int64
	ToSectorID   *int64
	Description  *string
}

// Apply mezcla el patch sobre p.
func (pp PermutaPatch) Apply(p *Permuta) {
	if pp.FromSectorID != nil {
		p.FromSectorID = *pp.FromSectorID
	}
	if pp.ToSectorID != nil {
		p.ToSectorID = *pp.ToSectorID
	}
	if pp.Description != nil {
		p.Description = pp.Description
	}
}

// PermutaFilter modo de consulta del listado; Status y UserID son excluyentes
// (si ambos vienen, gana Status).
type PermutaFilter struct {
	Status *PermutaStatus
	UserID string
	Limit  int // 0 = sin límite
}

// StatusActivityType etiqueta de actividad para un cambio de estado.
func StatusActivityType(status PermutaStatus) string {
	switch status {
	case PermutaCompleted:
		return ActivityPermutaCompleted
	case PermutaCancelled:
		return ActivityPermutaCancelled
	default:
		return "permuta_" + string(status)
	}
}

// StatusActivityDescription texto fijo que acompaña a la actividad de cambio de estado.
func StatusActivityDescription(permutaID int64, status PermutaStatus) string {
	return fmt.Sprintf("Permuta #%d status changed to %s", permutaID, status)
}
