package dto

import (
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// CreateSectorRequest entrada para crear un sector/institución.
type CreateSectorRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	ZipCode     *string `json:"zipCode"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

// Validate name requerido; el resto opcional con límites de longitud.
func (r CreateSectorRequest) Validate() error {
	var errs ValidationErrors
	if blank(r.Name) {
		errs.add("name", "name es requerido")
	} else if len(r.Name) > 200 {
		errs.add("name", "excede la longitud máxima")
	}
	validateSectorOptional(&errs, r.Description, r.Address, r.City, r.ZipCode, r.Phone, r.Email)
	return errs.Err()
}

// UpdateSectorRequest actualización parcial: solo se aplican los campos presentes.
type UpdateSectorRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	ZipCode     *string `json:"zipCode"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

// Validate name, si viene, no puede quedar vacío.
func (r UpdateSectorRequest) Validate() error {
	var errs ValidationErrors
	if r.Name != nil {
		if blank(*r.Name) {
			errs.add("name", "name no puede estar vacío")
		} else if len(*r.Name) > 200 {
			errs.add("name", "excede la longitud máxima")
		}
	}
	validateSectorOptional(&errs, r.Description, r.Address, r.City, r.ZipCode, r.Phone, r.Email)
	return errs.Err()
}

// Patch convierte la petición en el patch de dominio.
func (r UpdateSectorRequest) Patch() entity.SectorPatch {
	return entity.SectorPatch{
		Name: r.Name, Description: r.Description, Address: r.Address,
		City: r.City, ZipCode: r.ZipCode, Phone: r.Phone, Email: r.Email,
	}
}

func validateSectorOptional(errs *ValidationErrors, description, address, city, zip, phone, email *string) {
	errs.checkOptionalText("description", description, 1000)
	errs.checkOptionalText("address", address, 255)
	errs.checkOptionalText("city", city, 120)
	errs.checkOptionalText("zipCode", zip, 20)
	errs.checkOptionalText("phone", phone, 40)
	if email != nil && *email != "" && !validEmail(*email) {
		errs.add("email", "email inválido")
	}
}

// SectorResponse salida de un sector.
type SectorResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Address     *string   `json:"address"`
	City        *string   `json:"city"`
	ZipCode     *string   `json:"zipCode"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToSectorResponse convierte la entidad.
func ToSectorResponse(s *entity.Sector) *SectorResponse {
	if s == nil {
		return nil
	}
	return &SectorResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		City:        s.City,
		ZipCode:     s.ZipCode,
		Phone:       s.Phone,
		Email:       s.Email,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
