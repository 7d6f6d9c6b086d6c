package repository

import (
	"context"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// AdminCredentialRepository persistencia de la credencial administrativa.
type AdminCredentialRepository interface {
	Get(ctx context.Context, username string) (*entity.AdminCredential, error)
	Upsert(ctx context.Context, cred *entity.AdminCredential) error
}
