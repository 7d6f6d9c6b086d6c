package dto

import (
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// CreatePermutaRequest entrada para crear una permuta. El dueño sale de la sesión;
// UserID solo se considera cuando la sesión es administrativa.
type CreatePermutaRequest struct {
	UserID       string  `json:"userId"`
	FromSectorID int64   `json:"fromSectorId"`
	ToSectorID   int64   `json:"toSectorId"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
}

// Validate sectores requeridos y distintos; estado opcional dentro del enum.
func (r CreatePermutaRequest) Validate() error {
	var errs ValidationErrors
	if r.FromSectorID <= 0 {
		errs.add("fromSectorId", "fromSectorId es requerido")
	}
	if r.ToSectorID <= 0 {
		errs.add("toSectorId", "toSectorId es requerido")
	}
	if r.FromSectorID > 0 && r.FromSectorID == r.ToSectorID {
		errs.add("toSectorId", "el sector destino debe ser distinto del origen")
	}
	errs.checkOptionalText("description", r.Description, 2000)
	if r.Status != nil {
		if _, ok := entity.ParsePermutaStatus(*r.Status); !ok {
			errs.add("status", "debe ser uno de: "+entity.StatusNames())
		}
	}
	return errs.Err()
}

// InitialStatus estado inicial (pending por defecto). Llamar después de Validate.
func (r CreatePermutaRequest) InitialStatus() entity.PermutaStatus {
	if r.Status == nil {
		return entity.PermutaPending
	}
	st, _ := entity.ParsePermutaStatus(*r.Status)
	return st
}

// UpdatePermutaRequest actualización parcial de sectores y descripción.
type UpdatePermutaRequest struct {
	FromSectorID *int64  `json:"fromSectorId"`
	ToSectorID   *int64  `json:"toSectorId"`
	Description  *string `json:"description"`
}

// Validate ids positivos si vienen.
func (r UpdatePermutaRequest) Validate() error {
	var errs ValidationErrors
	if r.FromSectorID != nil && *r.FromSectorID <= 0 {
		errs.add("fromSectorId", "id inválido")
	}
	if r.ToSectorID != nil && *r.ToSectorID <= 0 {
		errs.add("toSectorId", "id inválido")
	}
	errs.checkOptionalText("description", r.Description, 2000)
	return errs.Err()
}

// ValidateMerged comprueba la permuta que resultaría de aplicar el patch sobre current.
func (r UpdatePermutaRequest) ValidateMerged(current *entity.Permuta) error {
	merged := *current
	r.Patch().Apply(&merged)
	var errs ValidationErrors
	if merged.FromSectorID == merged.ToSectorID {
		errs.add("toSectorId", "el sector destino debe ser distinto del origen")
	}
	return errs.Err()
}

// Patch convierte la petición en el patch de dominio.
func (r UpdatePermutaRequest) Patch() entity.PermutaPatch {
	return entity.PermutaPatch{
		FromSectorID: r.FromSectorID,
		ToSectorID:   r.ToSectorID,
		Description:  r.Description,
	}
}

// UpdatePermutaStatusRequest cambio de estado.
type UpdatePermutaStatusRequest struct {
	Status string `json:"status"`
}

// Parse valida el estado contra el dominio cerrado antes de tocar la base.
func (r UpdatePermutaStatusRequest) Parse() (entity.PermutaStatus, error) {
	var errs ValidationErrors
	if blank(r.Status) {
		errs.add("status", "status es requerido")
		return "", errs
	}
	st, ok := entity.ParsePermutaStatus(r.Status)
	if !ok {
		errs.add("status", "debe ser uno de: "+entity.StatusNames())
		return "", errs
	}
	return st, nil
}

// PermutaResponse salida de una permuta.
type PermutaResponse struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"userId"`
	FromSectorID int64      `json:"fromSectorId"`
	ToSectorID   int64      `json:"toSectorId"`
	Status       string     `json:"status"`
	Description  *string    `json:"description"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	CompletedAt  *time.Time `json:"completedAt"`
}

// ToPermutaResponse convierte la entidad.
func ToPermutaResponse(p *entity.Permuta) *PermutaResponse {
	if p == nil {
		return nil
	}
	return &PermutaResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		FromSectorID: p.FromSectorID,
		ToSectorID:   p.ToSectorID,
		Status:       string(p.Status),
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		CompletedAt:  p.CompletedAt,
	}
}
