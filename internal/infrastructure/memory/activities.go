package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo feed de actividad en memoria.
type ActivityRepo struct {
	s *Store
}

func (r *ActivityRepo) List(_ context.Context, limit int) ([]*entity.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Activity, 0, len(r.s.data.activities))
	for _, a := range r.s.data.activities {
		a := a
		list = append(list, &a)
	}
	return newestFirst(list, func(a *entity.Activity) (time.Time, int64) { return a.CreatedAt, a.ID }, limit), nil
}

func (r *ActivityRepo) Create(_ context.Context, a *entity.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.activitySeq++
	a.ID = r.s.data.activitySeq
	a.CreatedAt = r.s.now()
	r.s.data.activities[a.ID] = *a
	return nil
}
