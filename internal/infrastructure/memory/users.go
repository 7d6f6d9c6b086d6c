package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		u := u
		list = append(list, &u)
	}
	return list, nil
}

// Upsert mismas reglas que el ON CONFLICT de PostgreSQL: los campos de perfil
// nil conservan el valor actual, igual que role y account_type vacíos.
func (r *UserRepo) Upsert(_ context.Context, user *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, exists := r.s.data.users[user.ID]
	if !exists {
		cur = entity.User{
			ID:          user.ID,
			Role:        entity.RoleUser,
			AccountType: entity.AccountFree,
			CreatedAt:   user.UpdatedAt,
		}
	}
	cur.Username = coalesce(user.Username, cur.Username)
	cur.Email = coalesce(user.Email, cur.Email)
	cur.FirstName = coalesce(user.FirstName, cur.FirstName)
	cur.LastName = coalesce(user.LastName, cur.LastName)
	cur.ProfileImageURL = coalesce(user.ProfileImageURL, cur.ProfileImageURL)
	if user.Role != "" {
		cur.Role = user.Role
	}
	if user.AccountType != "" {
		cur.AccountType = user.AccountType
	}
	cur.UpdatedAt = user.UpdatedAt

	for id, other := range r.s.data.users {
		if id == cur.ID {
			continue
		}
		if sameValue(other.Email, cur.Email) || sameValue(other.Username, cur.Username) {
			return nil, domain.ErrDuplicate
		}
	}
	r.s.data.users[cur.ID] = cur
	return &cur, nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id, role string, now time.Time) (*entity.User, error) {
	return r.update(id, func(u *entity.User) {
		u.Role = role
		u.UpdatedAt = now
	})
}

func (r *UserRepo) UpdateAccount(_ context.Context, id, accountType string, expiresAt *time.Time, now time.Time) (*entity.User, error) {
	return r.update(id, func(u *entity.User) {
		u.AccountType = accountType
		u.AccountExpiresAt = expiresAt
		u.UpdatedAt = now
	})
}

func (r *UserRepo) update(id string, fn func(*entity.User)) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	fn(&u)
	r.s.data.users[id] = u
	return &u, nil
}

// Delete falla con domain.ErrReferenced si el usuario tiene permutas o mensajes.
func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[id]; !ok {
		return false, nil
	}
	for _, p := range r.s.data.permutas {
		if p.UserID == id {
			return false, domain.ErrReferenced
		}
	}
	for _, m := range r.s.data.messages {
		if m.SenderID == id || m.IsReceiver(id) {
			return false, domain.ErrReferenced
		}
	}
	delete(r.s.data.users, id)
	for aid, a := range r.s.data.activities {
		if a.UserID != nil && *a.UserID == id {
			a.UserID = nil
			r.s.data.activities[aid] = a
		}
	}
	return true, nil
}

func (r *UserRepo) DowngradeExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, u := range r.s.data.users {
		if !u.AccountExpired(now) {
			continue
		}
		u.AccountType = entity.AccountFree
		u.AccountExpiresAt = nil
		u.UpdatedAt = now
		r.s.data.users[id] = u
		n++
	}
	return n, nil
}

func coalesce(v, fallback *string) *string {
	if v != nil {
		return v
	}
	return fallback
}

func sameValue(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}
