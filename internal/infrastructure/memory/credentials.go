package memory

import (
	"context"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.AdminCredentialRepository = (*AdminCredentialRepo)(nil)

// AdminCredentialRepo credencial administrativa en memoria.
type AdminCredentialRepo struct {
	s *Store
}

func (r *AdminCredentialRepo) Get(_ context.Context, username string) (*entity.AdminCredential, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.data.creds[username]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *AdminCredentialRepo) Upsert(_ context.Context, c *entity.AdminCredential) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.creds[c.Username] = *c
	return nil
}
