package entity

import "time"

// Sector es el extremo de una permuta (sector o institución).
// Los campos opcionales cubren ambas variantes: descripción o datos de contacto.
type Sector struct {
	ID          int64
	Name        string
	Description *string
	Address     *string
	City        *string
	ZipCode     *string
	Phone       *string
	Email       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SectorPatch actualización parcial: solo se aplican los campos no nil.
type SectorPatch struct {
	Name        *string
	Description *string
	Address     *string
	City        *string
	ZipCode     *string
	Phone       *string
	Email       *string
}

// Apply mezcla el patch sobre s.
func (p SectorPatch) Apply(s *Sector) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = p.Description
	}
	if p.Address != nil {
		s.Address = p.Address
	}
	if p.City != nil {
		s.City = p.City
	}
	if p.ZipCode != nil {
		s.ZipCode = p.ZipCode
	}
	if p.Phone != nil {
		s.Phone = p.Phone
	}
	if p.Email != nil {
		s.Email = p.Email
	}
}

// Empty informa si el patch no modifica nada.
func (p SectorPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Address == nil && p.City == nil &&
		p.ZipCode == nil && p.Phone == nil && p.Email == nil
}
