package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.PermutaRepository = (*PermutaRepo)(nil)

// PermutaRepo permutas en memoria.
type PermutaRepo struct {
	s *Store
}

func (r *PermutaRepo) GetByID(_ context.Context, id int64) (*entity.Permuta, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.data.permutas[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PermutaRepo) List(_ context.Context, limit int) ([]*entity.Permuta, error) {
	return r.filter(limit, func(*entity.Permuta) bool { return true }), nil
}

func (r *PermutaRepo) ListByStatus(_ context.Context, status entity.PermutaStatus, limit int) ([]*entity.Permuta, error) {
	return r.filter(limit, func(p *entity.Permuta) bool { return p.Status == status }), nil
}

func (r *PermutaRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.Permuta, error) {
	return r.filter(limit, func(p *entity.Permuta) bool { return p.UserID == userID }), nil
}

func (r *PermutaRepo) filter(limit int, keep func(*entity.Permuta) bool) []*entity.Permuta {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Permuta, 0)
	for _, p := range r.s.data.permutas {
		p := p
		if keep(&p) {
			list = append(list, &p)
		}
	}
	return newestFirst(list, func(p *entity.Permuta) (time.Time, int64) { return p.CreatedAt, p.ID }, limit)
}

// Create valida las llaves foráneas de usuario y sectores.
func (r *PermutaRepo) Create(_ context.Context, p *entity.Permuta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefs(p.UserID, p.FromSectorID, p.ToSectorID); err != nil {
		return err
	}
	r.s.data.permutaSeq++
	p.ID = r.s.data.permutaSeq
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.Status == "" {
		p.Status = entity.PermutaPending
	}
	r.s.data.permutas[p.ID] = *p
	return nil
}

func (r *PermutaRepo) Update(_ context.Context, id int64, patch entity.PermutaPatch, now time.Time) (*entity.Permuta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.permutas[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&p)
	if err := r.checkRefs(p.UserID, p.FromSectorID, p.ToSectorID); err != nil {
		return nil, err
	}
	p.UpdatedAt = now
	r.s.data.permutas[id] = p
	return &p, nil
}

func (r *PermutaRepo) UpdateStatus(_ context.Context, id int64, status entity.PermutaStatus, now time.Time) (*entity.Permuta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.permutas[id]
	if !ok {
		return nil, nil
	}
	p.ApplyStatus(status, now)
	r.s.data.permutas[id] = p
	return &p, nil
}

func (r *PermutaRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.permutas[id]; !ok {
		return false, nil
	}
	delete(r.s.data.permutas, id)
	for aid, a := range r.s.data.activities {
		if a.PermutaID != nil && *a.PermutaID == id {
			a.PermutaID = nil
			r.s.data.activities[aid] = a
		}
	}
	return true, nil
}

// checkRefs requiere r.s.mu tomado.
func (r *PermutaRepo) checkRefs(userID string, from, to int64) error {
	if _, ok := r.s.data.users[userID]; !ok {
		return domain.ErrInvalidReference
	}
	if _, ok := r.s.data.sectors[from]; !ok {
		return domain.ErrInvalidReference
	}
	if _, ok := r.s.data.sectors[to]; !ok {
		return domain.ErrInvalidReference
	}
	return nil
}
