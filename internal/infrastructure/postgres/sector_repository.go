package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

const sectorColumns = `id, name, description, address, city, zip_code, phone, email, created_at, updated_at`

// SectorRepo implementación de SectorRepository sobre PostgreSQL (usable con pool o tx).
type SectorRepo struct {
	q Querier
}

// NewSectorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

// GetByID obtiene un sector por ID.
func (r *SectorRepo) GetByID(ctx context.Context, id int64) (*entity.Sector, error) {
	s, err := scanSector(r.q.QueryRow(ctx, `SELECT `+sectorColumns+` FROM sectors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return s, nil
}

// List devuelve todos los sectores ordenados por nombre.
func (r *SectorRepo) List(ctx context.Context) ([]*entity.Sector, error) {
	rows, err := r.q.Query(ctx, `SELECT `+sectorColumns+` FROM sectors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sector
	for rows.Next() {
		s, err := scanSector(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Create persiste un sector y completa ID y timestamps.
func (r *SectorRepo) Create(ctx context.Context, s *entity.Sector) error {
	query := `
		INSERT INTO sectors (name, description, address, city, zip_code, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		s.Name, s.Description, s.Address, s.City, s.ZipCode, s.Phone, s.Email, s.CreatedAt,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return translateWriteError("insert sector", err, domain.ErrInvalidReference)
	}
	return nil
}

// Update mezcla los campos presentes del patch.
func (r *SectorRepo) Update(ctx context.Context, id int64, patch entity.SectorPatch, now time.Time) (*entity.Sector, error) {
	query := `
		UPDATE sectors SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			address     = COALESCE($4, address),
			city        = COALESCE($5, city),
			zip_code    = COALESCE($6, zip_code),
			phone       = COALESCE($7, phone),
			email       = COALESCE($8, email),
			updated_at  = $9
		WHERE id = $1
		RETURNING ` + sectorColumns
	s, err := scanSector(r.q.QueryRow(ctx, query,
		id, patch.Name, patch.Description, patch.Address, patch.City, patch.ZipCode, patch.Phone, patch.Email, now,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateWriteError("update sector", err, domain.ErrInvalidReference)
	}
	return s, nil
}

// Delete elimina el sector. domain.ErrReferenced si alguna permuta lo usa.
func (r *SectorRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sectors WHERE id = $1`, id)
	if err != nil {
		return false, translateWriteError("delete sector", err, domain.ErrReferenced)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanSector(row pgxScanner) (*entity.Sector, error) {
	var s entity.Sector
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.Address, &s.City, &s.ZipCode, &s.Phone, &s.Email,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
