package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo sectores en memoria.
type SectorRepo struct {
	s *Store
}

func (r *SectorRepo) GetByID(_ context.Context, id int64) (*entity.Sector, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sec, ok := r.s.data.sectors[id]
	if !ok {
		return nil, nil
	}
	return &sec, nil
}

// List ordenados por nombre, como el ORDER BY del adaptador PostgreSQL.
func (r *SectorRepo) List(_ context.Context) ([]*entity.Sector, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Sector, 0, len(r.s.data.sectors))
	for _, sec := range r.s.data.sectors {
		sec := sec
		list = append(list, &sec)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *SectorRepo) Create(_ context.Context, sec *entity.Sector) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.sectorSeq++
	sec.ID = r.s.data.sectorSeq
	if sec.CreatedAt.IsZero() {
		sec.CreatedAt = r.s.now()
	}
	sec.UpdatedAt = sec.CreatedAt
	r.s.data.sectors[sec.ID] = *sec
	return nil
}

func (r *SectorRepo) Update(_ context.Context, id int64, patch entity.SectorPatch, now time.Time) (*entity.Sector, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sec, ok := r.s.data.sectors[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&sec)
	sec.UpdatedAt = now
	r.s.data.sectors[id] = sec
	return &sec, nil
}

// Delete falla con domain.ErrReferenced si alguna permuta usa el sector.
func (r *SectorRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.sectors[id]; !ok {
		return false, nil
	}
	for _, p := range r.s.data.permutas {
		if p.FromSectorID == id || p.ToSectorID == id {
			return false, domain.ErrReferenced
		}
	}
	delete(r.s.data.sectors, id)
	for aid, a := range r.s.data.activities {
		if a.SectorID != nil && *a.SectorID == id {
			a.SectorID = nil
			r.s.data.activities[aid] = a
		}
	}
	return true, nil
}
